package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	"jaac-backend/internal/domain/upload"
	"jaac-backend/internal/infra"
	"jaac-backend/internal/usecase/commands"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Store struct {
	client PutObjectAPI
	bucket string
	region string
	prefix string
	logger *slog.Logger
}

func NewS3Store(client PutObjectAPI, bucket, region, prefix string, logger *slog.Logger) *S3Store {
	return &S3Store{client: client, bucket: bucket, region: region, prefix: prefix, logger: logger}
}

// NewS3Client uses the default AWS credential chain.
func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

func (s *S3Store) Save(ctx context.Context, obj commands.FileObject) (string, error) {
	key := path.Join(s.prefix, path.Base(obj.Name))

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        obj.Body,
		ContentType: aws.String(obj.ContentType),
	}
	if obj.Size >= 0 {
		input.ContentLength = aws.Int64(obj.Size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", infra.WrapGatewayErr(s.logger, infra.KindStorage, "failed to upload to S3", err,
			slog.String("bucket", s.bucket), slog.String("key", key))
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, upload.URLPath(key)), nil
}
