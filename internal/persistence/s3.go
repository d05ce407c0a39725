package persistence

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/spec-kit/music-hub/internal/config"
)

// S3 wraps the blob storage client and its bucket.
type S3 struct {
	Client *s3.Client
	Bucket string
}

// NewS3 builds an S3 client from configuration. BaseEndpoint plus path-style
// addressing covers MinIO and other S3-compatible stores.
func NewS3(ctx context.Context, cfg config.S3Config, logger *zap.Logger) (*S3, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("blob storage client ready", zap.String("bucket", cfg.Bucket))
	return &S3{Client: client, Bucket: cfg.Bucket}, nil
}

// Ping verifies the bucket is reachable.
func (s *S3) Ping(ctx context.Context) error {
	if s == nil || s.Client == nil {
		return errors.New("s3 client not configured")
	}
	_, err := s.Client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.Bucket)})
	return err
}
