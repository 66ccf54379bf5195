package objectstore

import (
	"Bodi/internal/core/ports"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

const defaultUploadTTL = 15 * time.Minute

// Config points the image store at an S3-compatible bucket. Endpoint and
// PathStyle are for MinIO and similar; static keys fall back to the default
// AWS credential chain when empty.
type Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	PathStyle       bool
	AccessKeyID     string
	SecretAccessKey string
	// PublicBaseURL, when set, is the prefix clients use to read objects
	// (a CDN for instance).
	PublicBaseURL string
	UploadTTL     time.Duration
}

type S3ImageStore struct {
	log     zerolog.Logger
	presign *s3.PresignClient
	bucket  string
	baseURL string
	ttl     time.Duration
	now     func() time.Time
}

var _ ports.ImageStore = (*S3ImageStore)(nil)

func New(ctx context.Context, cfg Config, baseLogger *zerolog.Logger) (*S3ImageStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	ttl := cfg.UploadTTL
	if ttl <= 0 {
		ttl = defaultUploadTTL
	}
	return &S3ImageStore{
		log:     baseLogger.With().Str("component", "s3_image_store").Str("bucket", cfg.Bucket).Logger(),
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		baseURL: objectBaseURL(cfg, region),
		ttl:     ttl,
		now:     time.Now,
	}, nil
}

func objectBaseURL(cfg Config, region string) string {
	switch {
	case cfg.PublicBaseURL != "":
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	case cfg.Endpoint != "" && cfg.PathStyle:
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/")
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region)
}

// PresignUpload signs a PUT for key. The client must send the returned
// headers with the upload.
func (s *S3ImageStore) PresignUpload(ctx context.Context, key, contentType string) (ports.PresignedUpload, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Failed to presign upload")
		return ports.PresignedUpload{}, fmt.Errorf("presign put %q: %w", key, err)
	}

	return ports.PresignedUpload{
		URL:       req.URL,
		Method:    req.Method,
		Headers:   req.SignedHeader,
		ObjectURL: s.baseURL + "/" + key,
		Key:       key,
		ExpiresAt: s.now().Add(s.ttl).UTC(),
	}, nil
}
