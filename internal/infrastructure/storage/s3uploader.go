// Package storage keeps complaint images in an S3-compatible bucket.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/fixora-app/fixora/internal/application/complaint/usecases"
	"github.com/fixora-app/fixora/internal/shared/biztime"
	"github.com/fixora-app/fixora/internal/shared/config"
	"github.com/fixora-app/fixora/internal/shared/errors"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

const defaultMaxImageBytes int64 = 5 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var _ usecases.ImageUploader = (*S3ImageUploader)(nil)

type S3ImageUploader struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	maxBytes      int64
	logger        logger.Interface
}

func NewS3ImageUploader(cfg config.StorageConfig, log logger.Interface) *S3ImageUploader {
	opts := s3.Options{
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Region:       cfg.Region,
		UsePathStyle: cfg.ForcePathStyle,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	maxBytes := cfg.MaxImageBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxImageBytes
	}

	return &S3ImageUploader{
		client:        s3.New(opts),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		maxBytes:      maxBytes,
		logger:        log,
	}
}

// UploadImage rejects non-image content and anything over the size limit,
// then stores the bytes under complaints/<yyyy>/<mm>/<uuid><ext>.
func (u *S3ImageUploader) UploadImage(ctx context.Context, upload usecases.ImageUpload) (string, error) {
	contentType := strings.ToLower(strings.TrimSpace(strings.SplitN(upload.ContentType, ";", 2)[0]))
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", errors.NewValidationError("unsupported image type", "allowed: jpeg, png, webp, gif")
	}
	if upload.Size > u.maxBytes {
		return "", errors.NewValidationError(fmt.Sprintf("image exceeds %d bytes", u.maxBytes))
	}
	if upload.Body == nil {
		return "", errors.NewValidationError("image is empty")
	}

	// The declared size comes from the client, so the read is capped too.
	data, err := io.ReadAll(io.LimitReader(upload.Body, u.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > u.maxBytes {
		return "", errors.NewValidationError(fmt.Sprintf("image exceeds %d bytes", u.maxBytes))
	}
	if len(data) == 0 {
		return "", errors.NewValidationError("image is empty")
	}

	now := biztime.NowUTC()
	key := path.Join("complaints", now.Format("2006"), now.Format("01"), uuid.NewString()+ext)

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		u.logger.Errorw("failed to put complaint image", "bucket", u.bucket, "key", key, "error", err)
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	u.logger.Infow("complaint image stored", "key", key, "bytes", len(data), "filename", upload.Filename)
	return u.publicBaseURL + "/" + key, nil
}
