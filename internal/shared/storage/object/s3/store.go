package s3

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"jobboard-backend/internal/shared/storage/object"
	"jobboard-backend/internal/shared/util"
)

// Store implements ImageStore using Amazon S3.
type Store struct {
	client        *s3.Client
	bucket        string
	prefix        string
	publicBaseURL string
	region        string
}

// New creates a new S3-backed image store. publicBaseURL overrides the
// default virtual-hosted bucket URL (e.g. a CloudFront distribution).
func New(ctx context.Context, region, bucket, prefix, publicBaseURL string) (object.ImageStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Store{
		client:        s3.NewFromConfig(cfg),
		bucket:        bucket,
		prefix:        normalizePrefix(prefix),
		publicBaseURL: strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
		region:        region,
	}, nil
}

// Upload puts the normalized JPEG bytes under folder with a random key.
// The object is stored with image headers so the bucket's own renditions
// stay bounded even if a caller skips client-side normalization.
func (s *Store) Upload(ctx context.Context, data []byte, folder string) (object.ImageRef, error) {
	if err := ctx.Err(); err != nil {
		return object.ImageRef{}, err
	}
	if len(data) == 0 {
		return object.ImageRef{}, errors.New("empty image data")
	}

	publicID := path.Join(cleanFolder(folder), randomID()+".jpg")
	objectKey := applyPrefix(s.prefix, publicID)

	input := &s3.PutObjectInput{
		Bucket:               aws.String(s.bucket),
		Key:                  aws.String(objectKey),
		Body:                 bytes.NewReader(data),
		ContentType:          aws.String("image/jpeg"),
		CacheControl:         aws.String("public, max-age=31536000"),
		ServerSideEncryption: s3types.ServerSideEncryptionAes256,
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return object.ImageRef{}, fmt.Errorf("s3 put object bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}

	return object.ImageRef{
		URL:      s.publicURL(objectKey),
		PublicID: publicID,
	}, nil
}

// Delete removes a stored image by its public ID. S3 treats deleting a
// missing key as success, which gives us idempotent deletion for free.
func (s *Store) Delete(ctx context.Context, publicID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(publicID) == "" {
		return nil
	}

	objectKey := applyPrefix(s.prefix, publicID)
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	}); err != nil {
		return fmt.Errorf("s3 delete object bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}
	return nil
}

func (s *Store) publicURL(objectKey string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + objectKey
	}
	if s.region != "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, objectKey)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, objectKey)
}

func cleanFolder(folder string) string {
	clean, err := util.SanitizeFileName(strings.Trim(folder, "/"))
	if err != nil {
		return "job-posters"
	}
	return clean
}

func normalizePrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}

func applyPrefix(prefix, key string) string {
	cleanPrefix := strings.Trim(prefix, "/")
	cleanKey := strings.TrimLeft(key, "/")
	if cleanPrefix == "" {
		return cleanKey
	}
	if cleanKey == "" {
		return cleanPrefix
	}
	return cleanPrefix + "/" + cleanKey
}

func randomID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return util.HashKey(fmt.Sprintf("%d", time.Now().UnixNano()))[:32]
	}
	return hex.EncodeToString(b[:])
}

var _ object.ImageStore = (*Store)(nil)
