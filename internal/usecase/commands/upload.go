package commands

//go:generate mockgen -source=upload.go -destination=../../../tests/mock/commands/upload.go -package=commandsmock

import (
	"context"
	"log/slog"

	"jaac-backend/internal/domain/upload"
	"jaac-backend/internal/infra"
	"jaac-backend/internal/pkg/clock"
	"jaac-backend/internal/pkg/errs"
)

// Upper bound of the random part of generated file names.
const fileNameRandomBound = 1_000_000_000

type UploadCommands interface {
	Upload(ctx context.Context, file FileObject) (*upload.StoredFile, error)
}

type uploadUseCaseImpl struct {
	store   FileStore
	clock   clock.Clock
	random  clock.Random
	metrics Metrics
	logger  *slog.Logger
}

func NewUploadUseCase(store FileStore, clk clock.Clock, random clock.Random, metrics Metrics, logger *slog.Logger) UploadCommands {
	return &uploadUseCaseImpl{
		store:   store,
		clock:   clk,
		random:  random,
		metrics: metrics,
		logger:  logger,
	}
}

func (u *uploadUseCaseImpl) Upload(ctx context.Context, file FileObject) (*upload.StoredFile, error) {
	if err := upload.Validate(file.Name, file.Size); err != nil {
		u.metrics.Upload(false)
		return nil, errs.Public(errs.Mark(err, errs.ErrValidation), err.Error())
	}

	name := upload.NewFileName(u.clock.Now(), u.random.Int63n(fileNameRandomBound), file.Name)
	url, err := u.store.Save(ctx, FileObject{
		Name:        name,
		ContentType: file.ContentType,
		Size:        file.Size,
		Body:        file.Body,
	})
	if err != nil {
		u.metrics.Upload(false)
		return nil, storageFailure(err, "Failed to upload file")
	}

	u.metrics.Upload(true)
	u.logger.Info("File uploaded",
		slog.String("filename", name),
		slog.Int64("size", file.Size),
	)
	return &upload.StoredFile{
		URL:      url,
		Filename: name,
		Size:     file.Size,
		Type:     file.ContentType,
	}, nil
}

// storageFailure keeps the low-level reason in details, as the upload route
// has always reported it.
func storageFailure(err error, msg string) error {
	detail := err.Error()
	if ge, ok := infra.AsGatewayError(err); ok {
		detail = ge.Message()
	}
	return errs.WithDetails(errs.Public(errs.Mark(err, errs.ErrStorage), msg), detail)
}
