package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"jaac-backend/internal/domain/upload"
	"jaac-backend/internal/infra"
	"jaac-backend/internal/usecase/commands"
)

const PublicPrefix = "/uploads/"

// LocalStore writes uploads under a directory that the router serves at PublicPrefix.
type LocalStore struct {
	dir    string
	logger *slog.Logger
}

func NewLocalStore(dir string, logger *slog.Logger) *LocalStore {
	return &LocalStore{dir: dir, logger: logger}
}

func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Save(ctx context.Context, obj commands.FileObject) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", infra.WrapGatewayErr(s.logger, infra.KindStorage, "failed to create upload directory", err,
			slog.String("dir", s.dir))
	}

	path := filepath.Join(s.dir, filepath.Base(obj.Name))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", infra.WrapGatewayErr(s.logger, infra.KindStorage, "failed to create upload file", err,
			slog.String("path", path))
	}

	written, err := io.Copy(f, contextReader{ctx: ctx, r: obj.Body})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && obj.Size >= 0 && written != obj.Size {
		err = errors.New("short write")
	}
	if err != nil {
		_ = os.Remove(path)
		return "", infra.WrapGatewayErr(s.logger, infra.KindStorage, "failed to write upload file", err,
			slog.String("path", path))
	}

	return upload.URLPath(PublicPrefix + filepath.Base(path)), nil
}

// contextReader stops a copy once the request is gone.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
