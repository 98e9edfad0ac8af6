// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

// Package storage uploads invitation imagery to an S3-compatible object
// store and hands back public URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// MaxUploadSize is enforced before any bytes travel to the object store.
const MaxUploadSize = 5 << 20 // 5 MB

var ErrFileTooLarge = fmt.Errorf("file exceeds %d bytes", int(MaxUploadSize))

type Config struct {
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Bucket       string
	PublicURLFmt string // e.g. "http://localhost:9000/%s/%s" (bucket, key)
}

type Uploader struct {
	client *s3.Client
	cfg    Config
}

func NewUploader(ctx context.Context, cfg Config) (*Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	u := &Uploader{client: client, cfg: cfg}
	if err := u.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *Uploader) ensureBucket(ctx context.Context) error {
	_, err := u.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(u.cfg.Bucket)})
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	if !errors.As(err, &notFound) {
		return fmt.Errorf("check bucket: %w", err)
	}
	_, err = u.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(u.cfg.Bucket)})
	if err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}
	return nil
}

// Upload stores the file under a random key derived from the original
// filename's extension and returns its public URL. Files larger than
// MaxUploadSize are rejected without touching the store.
func (u *Uploader) Upload(ctx context.Context, filename string, size int64, body io.Reader) (string, error) {
	if size > MaxUploadSize {
		return "", ErrFileTooLarge
	}

	key := uuid.NewString()
	if ext := strings.ToLower(path.Ext(filename)); ext != "" {
		key += ext
	}

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.cfg.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("upload object: %w", err)
	}
	return fmt.Sprintf(u.cfg.PublicURLFmt, u.cfg.Bucket, key), nil
}
