// Package filestore uploads checklist files to S3-compatible object
// storage.
package filestore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"

	"github.com/nhle/loan-checklist/internal/model"
)

// Config holds the object storage settings.
type Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	PublicURL string
	AccessKey string
	SecretKey string
	Prefix    string
}

// S3Storage stores files as public-read objects.
type S3Storage struct {
	client    s3iface.S3API
	bucket    string
	prefix    string
	publicURL string
}

// NewS3Storage creates a session for the configured endpoint. A custom
// endpoint switches to path-style addressing for S3-compatible servers.
func NewS3Storage(cfg Config) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is not configured")
	}

	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("creating AWS session: %w", err)
	}
	return New(s3.New(sess), cfg), nil
}

// New creates an S3Storage over an existing client.
func New(client s3iface.S3API, cfg Config) *S3Storage {
	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		publicURL = defaultPublicURL(cfg)
	}
	return &S3Storage{
		client:    client,
		bucket:    cfg.Bucket,
		prefix:    strings.Trim(cfg.Prefix, "/"),
		publicURL: publicURL,
	}
}

func defaultPublicURL(cfg Config) string {
	if cfg.Endpoint != "" {
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}

// Upload stores the file under a unique key and returns its public URL.
func (s *S3Storage) Upload(ctx context.Context, file model.UploadFile) (string, error) {
	if file.Body == nil {
		return "", fmt.Errorf("uploading %q: empty body", file.Name)
	}

	body, ok := file.Body.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(file.Body)
		if err != nil {
			return "", fmt.Errorf("reading %q: %w", file.Name, err)
		}
		body = bytes.NewReader(data)
	}

	key := s.objectKey(file.Name)
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(s.bucket),
		Key:                aws.String(key),
		Body:               body,
		ACL:                aws.String(s3.ObjectCannedACLPublicRead),
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String(fmt.Sprintf("inline; filename=%q", filepath.Base(file.Name))),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %q to bucket %s: %w", file.Name, s.bucket, err)
	}

	return s.publicURL + "/" + (&url.URL{Path: key}).EscapedPath(), nil
}

// objectKey builds a collision-free key that keeps the file extension.
func (s *S3Storage) objectKey(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	key := uuid.New().String() + ext
	if s.prefix != "" {
		key = path.Join(s.prefix, key)
	}
	return key
}
