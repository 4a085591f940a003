package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Options selects the bucket and key layout for uploaded images.
type S3Options struct {
	Bucket    string
	KeyPrefix string
	// PublicBaseURL, when set, is joined with the object key to form the
	// returned URL (for a CDN or a public bucket website).
	PublicBaseURL string
}

// S3Service uploads product images to Amazon S3 (or compatible APIs).
type S3Service struct {
	uploader *manager.Uploader
	opts     S3Options
}

func NewS3Service(client *s3.Client, opts S3Options) *S3Service {
	return &S3Service{
		uploader: manager.NewUploader(client),
		opts:     opts,
	}
}

func (s *S3Service) UploadImage(ctx context.Context, in UploadInput) (Object, error) {
	if s.opts.Bucket == "" {
		return Object{}, fmt.Errorf("storage bucket is required")
	}
	if in.Body == nil {
		return Object{}, fmt.Errorf("upload body is required")
	}

	key := ObjectKey(s.opts.KeyPrefix, in.Filename)
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(key),
		Body:   in.Body,
		ACL:    types.ObjectCannedACLPrivate,
	}
	if in.ContentType != "" {
		input.ContentType = aws.String(in.ContentType)
	}
	if in.Size > 0 {
		input.ContentLength = aws.Int64(in.Size)
	}

	out, err := s.uploader.Upload(ctx, input)
	if err != nil {
		return Object{}, fmt.Errorf("upload %s: %w", key, err)
	}

	return Object{Key: key, URL: s.objectURL(key, out.Location)}, nil
}

func (s *S3Service) objectURL(key, location string) string {
	if base := strings.TrimRight(s.opts.PublicBaseURL, "/"); base != "" {
		return base + "/" + key
	}
	if location != "" {
		return location
	}
	return fmt.Sprintf("s3://%s/%s", s.opts.Bucket, key)
}
