package commands

//go:generate mockgen -source=lead.go -destination=../../../tests/mock/commands/lead.go -package=commandsmock

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"

	"jaac-backend/internal/domain/lead"
	"jaac-backend/internal/domain/notification"
	"jaac-backend/internal/domain/upload"
	reqdto "jaac-backend/internal/handler/dto/request"
	"jaac-backend/internal/pkg/errs"
)

const (
	msgContactFailed     = "Failed to send contact us email"
	msgApplicationFailed = "Failed to send email"
)

type LeadCommands interface {
	SubmitContact(ctx context.Context, req reqdto.ContactRequest) error
	// SubmitApplication stores the résumé when one is given, then mails the
	// application with the file attached.
	SubmitApplication(ctx context.Context, req reqdto.JoinUsRequest, cv *FileObject) error
}

type leadUseCaseImpl struct {
	composer   notification.Composer
	dispatcher notification.Dispatcher
	uploads    UploadCommands
	baseURL    string
	logger     *slog.Logger
}

func NewLeadUseCase(
	composer notification.Composer,
	dispatcher notification.Dispatcher,
	uploads UploadCommands,
	baseURL string,
	logger *slog.Logger,
) LeadCommands {
	return &leadUseCaseImpl{
		composer:   composer,
		dispatcher: dispatcher,
		uploads:    uploads,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

func (u *leadUseCaseImpl) SubmitContact(ctx context.Context, req reqdto.ContactRequest) error {
	inquiry, err := lead.NewContactInquiry(req.FullName, req.Email, req.Phone, req.Company, req.Message)
	if err != nil {
		return errs.Public(err, "Invalid contact form")
	}

	msg, err := u.composer.ContactInquiry(inquiry)
	if err != nil {
		return errs.Wrap(err, "compose contact email")
	}

	if res := u.dispatcher.Send(ctx, msg); !res.Success {
		u.logger.Warn("Contact email not sent", slog.String("error", res.Error))
		return errs.Failure(errs.ErrEmailDispatch, msgContactFailed, map[string]string{"user": res.Error})
	}
	return nil
}

func (u *leadUseCaseImpl) SubmitApplication(ctx context.Context, req reqdto.JoinUsRequest, cv *FileObject) error {
	app, err := lead.NewJobApplication(req.Name, req.Email, req.Phone, req.Role, req.Message, nil)
	if err != nil {
		return errs.Public(err, "Invalid application form")
	}

	if cv != nil {
		att, err := u.storeResume(ctx, *cv)
		if err != nil {
			return err
		}
		app.Attach(att)
	}

	msg, err := u.composer.JobApplication(app)
	if err != nil {
		return errs.Wrap(err, "compose application email")
	}

	if res := u.dispatcher.Send(ctx, msg); !res.Success {
		u.logger.Warn("Application email not sent",
			slog.String("role", app.Role().String()),
			slog.String("error", res.Error),
		)
		return errs.Failure(errs.ErrEmailDispatch, msgApplicationFailed, res.Error)
	}
	return nil
}

// storeResume reads the file once so the same bytes are stored and attached.
func (u *leadUseCaseImpl) storeResume(ctx context.Context, cv FileObject) (*lead.Attachment, error) {
	if err := upload.Validate(cv.Name, cv.Size); err != nil {
		return nil, errs.Public(errs.Mark(err, errs.ErrValidation), err.Error())
	}
	content, err := io.ReadAll(io.LimitReader(cv.Body, upload.MaxFileSize+1))
	if err != nil {
		return nil, storageFailure(err, "Failed to read uploaded file")
	}
	if int64(len(content)) > upload.MaxFileSize {
		return nil, errs.Public(errs.Mark(upload.ErrFileTooLarge, errs.ErrValidation), upload.ErrFileTooLarge.Error())
	}

	stored, err := u.uploads.Upload(ctx, FileObject{
		Name:        cv.Name,
		ContentType: cv.ContentType,
		Size:        int64(len(content)),
		Body:        bytes.NewReader(content),
	})
	if err != nil {
		return nil, err
	}
	return &lead.Attachment{Name: cv.Name, Content: content, URL: u.absolute(stored.URL)}, nil
}

func (u *leadUseCaseImpl) absolute(url string) string {
	if strings.HasPrefix(url, "/") {
		return u.baseURL + url
	}
	return url
}
