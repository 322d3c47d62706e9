package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Service stores images in Amazon S3 (or a compatible API such as MinIO).
type S3Service struct {
	client    *s3.Client
	uploader  *manager.Uploader
	bucket    string
	keyPrefix string
	baseURL   string
}

// NewS3Service uploads under bucket/keyPrefix. baseURL, when set, is the
// public endpoint images are reachable at (path-style: baseURL/bucket/key).
func NewS3Service(client *s3.Client, bucket, keyPrefix, baseURL string) *S3Service {
	return &S3Service{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

func (s *S3Service) SaveImage(ctx context.Context, name, contentType string, r io.Reader) error {
	if s.bucket == "" {
		return fmt.Errorf("storage bucket is required")
	}

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(name)),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("upload image %s: %w", name, err)
	}
	return nil
}

func (s *S3Service) ImageURL(name string) string {
	if s.baseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, s.key(name))
}

func (s *S3Service) key(name string) string {
	return path.Join(s.keyPrefix, path.Base(name))
}
