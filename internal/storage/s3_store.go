package storage

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/spec-kit/music-hub/internal/persistence"
)

// S3BlobStore stores blobs in a single S3 bucket.
type S3BlobStore struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
}

var _ BlobStore = (*S3BlobStore)(nil)

// NewS3BlobStore wraps an established S3 handle.
func NewS3BlobStore(s3Handle *persistence.S3) *S3BlobStore {
	return &S3BlobStore{
		client:   s3Handle.Client,
		uploader: manager.NewUploader(s3Handle.Client),
		bucket:   s3Handle.Bucket,
	}
}

// Upload streams body into the bucket under key. The multipart uploader reads
// the body in parts, so arbitrarily large files never sit in memory whole.
func (s *S3BlobStore) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	_, err := s.uploader.Upload(ctx, input)
	return err
}

// Download returns a streaming reader over the blob and its size. The caller
// owns closing the reader.
func (s *S3BlobStore) Download(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, 0, err
	}
	size := int64(0)
	if out.ContentLength != nil {
		size = *out.ContentLength
	}
	return out.Body, size, nil
}

// Delete removes the blob. Deleting an absent key is not an error.
func (s *S3BlobStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// List enumerates blobs under prefix.
func (s *S3BlobStore) List(ctx context.Context, prefix string) ([]BlobInfo, error) {
	var result []BlobInfo
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			info := BlobInfo{}
			if obj.Key != nil {
				info.Key = *obj.Key
			}
			if obj.Size != nil {
				info.Size = *obj.Size
			}
			if obj.LastModified != nil {
				info.LastModified = *obj.LastModified
			}
			result = append(result, info)
		}
	}
	return result, nil
}
