// Package blob generates presigned S3 URLs for image uploads and downloads.
// Clients upload barber and haircut photos directly to the bucket; the API
// only hands out short-lived signed URLs.
package blob

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// ErrNotConfigured is returned by all Signer operations when the S3
// credentials were not provided at startup.
var ErrNotConfigured = errors.New("blob: object storage is not configured")

// Folders the API accepts as upload destinations.
const (
	FolderBarbers  = "barbers"
	FolderHaircuts = "haircuts"
)

// UploadURL is the outcome of a presigned upload request. The client PUTs the
// file to URL; Key is what gets stored on the catalog record.
type UploadURL struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Config holds the settings for the S3 signer.
type Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Expiry          time.Duration
}

// Signer issues presigned S3 URLs. A Signer constructed with NewDisabled
// rejects every operation with ErrNotConfigured instead of failing at
// startup, so the rest of the application keeps working without a bucket.
type Signer struct {
	client *s3.Client
	bucket string
	expiry time.Duration
	logger *slog.Logger
}

// New builds a Signer from static credentials.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Signer, error) {
	if cfg.Region == "" || cfg.Bucket == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("blob: region, bucket and credentials are all required")
	}
	expiry := cfg.Expiry
	if expiry <= 0 {
		expiry = time.Hour
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("blob: loading AWS config: %w", err)
	}

	logger.Info("object storage configured", "bucket", cfg.Bucket, "region", cfg.Region, "presign_expiry", expiry)
	return &Signer{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		expiry: expiry,
		logger: logger,
	}, nil
}

// NewDisabled returns a Signer whose operations all fail with
// ErrNotConfigured.
func NewDisabled(logger *slog.Logger) *Signer {
	logger.Warn("object storage not configured, uploads are disabled",
		"hint", "set AWS_S3_REGION, AWS_S3_BUCKET_NAME, AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY")
	return &Signer{logger: logger}
}

// Enabled reports whether the signer has a bucket to sign against.
func (s *Signer) Enabled() bool { return s.client != nil }

// PresignUpload returns a presigned PUT URL for a new object. The object key
// is derived from fileName but always unique, so uploads never overwrite each
// other.
func (s *Signer) PresignUpload(ctx context.Context, fileName, folder, contentType string) (*UploadURL, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(fileName) == "" {
		return nil, fmt.Errorf("blob: file name is required")
	}
	if folder != FolderBarbers && folder != FolderHaircuts {
		return nil, fmt.Errorf("blob: unknown folder %q", folder)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := folder + "/" + uniqueFileName(fileName)

	presigner := s3.NewPresignClient(s.client)
	req, err := presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.expiry
	})
	if err != nil {
		return nil, fmt.Errorf("blob: presigning upload for %q: %w", key, err)
	}

	s.logger.Info("presigned upload URL issued", "key", key, "content_type", contentType)
	return &UploadURL{URL: req.URL, Key: key}, nil
}

// PresignDownload returns a presigned GET URL for an existing object.
func (s *Signer) PresignDownload(ctx context.Context, key string) (string, error) {
	if !s.Enabled() {
		return "", ErrNotConfigured
	}
	if key == "" {
		return "", fmt.Errorf("blob: key is required")
	}

	presigner := s3.NewPresignClient(s.client)
	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.expiry
	})
	if err != nil {
		return "", fmt.Errorf("blob: presigning download for %q: %w", key, err)
	}
	return req.URL, nil
}

// Exists reports whether an object is present in the bucket. A missing key
// is not an error.
func (s *Signer) Exists(ctx context.Context, key string) (bool, error) {
	if !s.Enabled() {
		return false, ErrNotConfigured
	}
	if key == "" {
		return false, fmt.Errorf("blob: key is required")
	}

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("blob: checking %q: %w", key, err)
	}
	return true, nil
}

// Delete removes an object from the bucket.
func (s *Signer) Delete(ctx context.Context, key string) error {
	if !s.Enabled() {
		return ErrNotConfigured
	}
	if key == "" {
		return fmt.Errorf("blob: key is required")
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("blob: deleting %q: %w", key, err)
	}
	s.logger.Info("object deleted", "key", key)
	return nil
}

var (
	nonAlnum     = regexp.MustCompile(`[^a-z0-9]+`)
	leadTrailSep = regexp.MustCompile(`^-+|-+$`)
)

// uniqueFileName sanitizes the original file name and appends a timestamp and
// a short random suffix so the key is unique even for identical uploads.
func uniqueFileName(original string) string {
	ext := strings.ToLower(path.Ext(original))
	base := strings.TrimSuffix(original, path.Ext(original))

	sanitized := strings.ToLower(base)
	sanitized = nonAlnum.ReplaceAllString(sanitized, "-")
	sanitized = leadTrailSep.ReplaceAllString(sanitized, "")
	if len(sanitized) > 50 {
		sanitized = sanitized[:50]
	}
	if sanitized == "" {
		sanitized = "file"
	}

	return fmt.Sprintf("%s-%d-%s%s", sanitized, time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}
