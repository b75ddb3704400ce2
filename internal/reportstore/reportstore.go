// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package reportstore persists rendered flood-analysis reports to either
// local disk or S3, selected by the "reportKind" field in settings.json
// (mirroring the teacher's pkg/archive kind-switch over an ArchiveBackend).
package reportstore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/usace-mvr/flomon/internal/config"
)

// Backend writes a named report's rendered content to its destination.
type Backend interface {
	Store(ctx context.Context, name string, data []byte) error
}

// New selects a Backend according to settings.ReportKind ("file" by
// default, or "s3").
func New(settings config.Settings) (Backend, error) {
	switch settings.ReportKind {
	case "s3":
		return newS3Backend(settings.ReportS3Bucket)
	case "", "file":
		return newFileBackend(settings.ReportDir)
	default:
		return nil, fmt.Errorf("reportstore: unknown report backend kind %q", settings.ReportKind)
	}
}

// FileBackend writes reports under a local directory.
type FileBackend struct {
	dir string
}

func newFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		dir = "reports"
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("reportstore: creating report directory %s: %w", dir, err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) Store(_ context.Context, name string, data []byte) error {
	return os.WriteFile(filepath.Join(b.dir, name), data, 0o640)
}

// S3Backend writes reports to an S3 bucket.
type S3Backend struct {
	client *s3.Client
	bucket string
}

func newS3Backend(bucket string) (*S3Backend, error) {
	if bucket == "" {
		return nil, fmt.Errorf("reportstore: s3 backend selected but no bucket configured")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, fmt.Errorf("reportstore: loading aws config: %w", err)
	}
	return &S3Backend{client: s3.NewFromConfig(awsCfg), bucket: bucket}, nil
}

func (b *S3Backend) Store(ctx context.Context, name string, data []byte) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(name),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/markdown"),
	})
	if err != nil {
		return fmt.Errorf("reportstore: put object %q: %w", name, err)
	}
	return nil
}
