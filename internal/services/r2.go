package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	appconfig "ticketbox-terminal/internal/config"
)

// objectUploader is the part of manager.Uploader the spooler needs
type objectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// R2Spooler archives ticket PDFs in a Cloudflare R2 (or any S3 compatible)
// bucket instead of sending them to a local printer
type R2Spooler struct {
	uploader objectUploader
	config   appconfig.R2Config
	logger   *zap.Logger
}

// NewR2Spooler creates a spooler uploading to the configured bucket
func NewR2Spooler(cfg appconfig.R2Config, logger *zap.Logger) (*R2Spooler, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("R2 credentials not configured")
	}
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("R2 bucket not configured")
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		} else {
			// Default R2 endpoint format
			o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
		}
		o.UsePathStyle = true
	})

	return newR2Spooler(manager.NewUploader(client), cfg, logger), nil
}

func newR2Spooler(uploader objectUploader, cfg appconfig.R2Config, logger *zap.Logger) *R2Spooler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &R2Spooler{uploader: uploader, config: cfg, logger: logger}
}

// Spool uploads the document as <prefix>/<name>.pdf
func (s *R2Spooler) Spool(ctx context.Context, name string, document []byte) error {
	key := s.Key(name)

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.BucketName),
		Key:           aws.String(key),
		Body:          bytes.NewReader(document),
		ContentType:   aws.String("application/pdf"),
		ContentLength: aws.Int64(int64(len(document))),
	}

	result, err := s.uploader.Upload(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to upload to R2: %w", err)
	}

	s.logger.Info("ticket archived",
		zap.String("bucket", s.config.BucketName),
		zap.String("key", key),
		zap.String("location", result.Location),
	)
	return nil
}

// Key returns the object key used for a document name
func (s *R2Spooler) Key(name string) string {
	prefix := strings.Trim(s.config.Prefix, "/")
	file := sanitizeFileName(name) + ".pdf"
	if prefix == "" {
		return file
	}
	return path.Join(prefix, file)
}
