//go:build unit

package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"jaac-backend/internal/infra"
	"jaac-backend/internal/infra/storage"
	"jaac-backend/internal/usecase/commands"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestLocalStore_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public", "uploads")
	store := storage.NewLocalStore(dir, discard)
	content := bytes.Repeat([]byte("a"), 9_900_000)

	url, err := store.Save(context.Background(), commands.FileObject{
		Name: "1718000000123-42-cv.pdf",
		Size: int64(len(content)),
		Body: bytes.NewReader(content),
	})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/1718000000123-42-cv.pdf", url)

	info, err := os.Stat(filepath.Join(dir, "1718000000123-42-cv.pdf"))
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), info.Size())
}

func TestLocalStore_Failures(t *testing.T) {
	t.Run("existing file is never overwritten", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "x.pdf"), []byte("old"), 0o644))

		_, err := storage.NewLocalStore(dir, discard).Save(context.Background(), commands.FileObject{
			Name: "x.pdf", Size: 3, Body: bytes.NewReader([]byte("new")),
		})
		assert.True(t, infra.IsKind(err, infra.KindStorage))

		b, _ := os.ReadFile(filepath.Join(dir, "x.pdf"))
		assert.Equal(t, "old", string(b))
	})

	t.Run("short body leaves nothing behind", func(t *testing.T) {
		dir := t.TempDir()
		_, err := storage.NewLocalStore(dir, discard).Save(context.Background(), commands.FileObject{
			Name: "short.pdf", Size: 10, Body: bytes.NewReader([]byte("abc")),
		})
		assert.True(t, infra.IsKind(err, infra.KindStorage))
		_, statErr := os.Stat(filepath.Join(dir, "short.pdf"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("directory cannot be created", func(t *testing.T) {
		parent := t.TempDir()
		blocker := filepath.Join(parent, "file")
		require.NoError(t, os.WriteFile(blocker, nil, 0o644))

		_, err := storage.NewLocalStore(filepath.Join(blocker, "uploads"), discard).Save(context.Background(), commands.FileObject{
			Name: "a.pdf", Size: 1, Body: bytes.NewReader([]byte("a")),
		})
		assert.True(t, infra.IsKind(err, infra.KindStorage))
	})
}

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Store_Save(t *testing.T) {
	client := &fakeS3{}
	store := storage.NewS3Store(client, "jaac-uploads", "ca-central-1", "uploads", discard)

	url, err := store.Save(context.Background(), commands.FileObject{
		Name:        "1-2-cv.pdf",
		ContentType: "application/pdf",
		Size:        4,
		Body:        bytes.NewReader([]byte("%PDF")),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://jaac-uploads.s3.ca-central-1.amazonaws.com/uploads/1-2-cv.pdf", url)
	assert.Equal(t, "jaac-uploads", aws.ToString(client.input.Bucket))
	assert.Equal(t, "uploads/1-2-cv.pdf", aws.ToString(client.input.Key))
	assert.Equal(t, "application/pdf", aws.ToString(client.input.ContentType))
	assert.Equal(t, int64(4), aws.ToInt64(client.input.ContentLength))
	assert.Equal(t, "%PDF", string(client.body))
}

func TestS3Store_Save_EscapesURLNotKey(t *testing.T) {
	client := &fakeS3{}
	store := storage.NewS3Store(client, "jaac-uploads", "ca-central-1", "uploads", discard)

	url, err := store.Save(context.Background(), commands.FileObject{
		Name: "1-2-mon cv.pdf", ContentType: "application/pdf", Size: 4, Body: bytes.NewReader([]byte("%PDF")),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://jaac-uploads.s3.ca-central-1.amazonaws.com/uploads/1-2-mon%20cv.pdf", url)
	assert.Equal(t, "uploads/1-2-mon cv.pdf", aws.ToString(client.input.Key))
}

func TestS3Store_Error(t *testing.T) {
	client := &fakeS3{err: errors.New("AccessDenied")}
	store := storage.NewS3Store(client, "b", "ca-central-1", "uploads", discard)

	_, err := store.Save(context.Background(), commands.FileObject{Name: "a.pdf", Size: -1, Body: bytes.NewReader(nil)})
	require.Error(t, err)
	ge, ok := infra.AsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, infra.KindStorage, ge.Kind)
	assert.Equal(t, "AccessDenied", ge.Message())
	assert.Nil(t, client.input.ContentLength)
}
