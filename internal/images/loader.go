package images

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-resty/resty/v2"
	"github.com/tripline/guidemod/internal/cache"
	"github.com/tripline/guidemod/internal/logger"
)

// Loader performs the one-time fetch-and-swap for a guide photo: fetch the
// bytes from the origin, upload them to the R2 bucket, and hand back the
// bucket URL to swap into the placeholder. A processed marker in the cache
// keeps a photo shared across guides from being fetched twice. Without an
// R2 bucket the loader degrades to probing the origin and swapping in the
// original URL.
type Loader struct {
	http     *resty.Client
	cache    cache.Cache
	uploader *s3.Client
	bucket   string
	baseURL  string
	ttl      time.Duration
}

type LoaderOptions struct {
	// R2Endpoint, R2AccessKey, R2SecretKey, R2Bucket configure the
	// S3-compatible swap target; leave empty to disable uploading.
	R2Endpoint  string
	R2AccessKey string
	R2SecretKey string
	R2Bucket    string
	// PublicBaseURL is the serving prefix for uploaded objects.
	PublicBaseURL string
	Timeout       time.Duration
	MarkerTTL     time.Duration
}

func NewLoader(c cache.Cache, opts LoaderOptions) (*Loader, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MarkerTTL <= 0 {
		opts.MarkerTTL = 720 * time.Hour
	}

	l := &Loader{
		http:    resty.New().SetTimeout(opts.Timeout),
		cache:   c,
		bucket:  opts.R2Bucket,
		baseURL: strings.TrimSuffix(opts.PublicBaseURL, "/"),
		ttl:     opts.MarkerTTL,
	}

	if opts.R2Endpoint != "" && opts.R2AccessKey != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion("auto"),
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(opts.R2AccessKey, opts.R2SecretKey, ""),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to configure R2 client: %w", err)
		}
		l.uploader = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = &opts.R2Endpoint
			o.UsePathStyle = true
		})
	}

	return l, nil
}

// Load resolves the URL a placeholder should swap to. Fetching happens at
// most once per photo URL; later calls answer from the marker.
func (l *Loader) Load(ctx context.Context, photoURL string) (string, error) {
	log := logger.Get()
	key := objectKey(photoURL)

	fetched, err := l.cache.IsFetched(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("url", photoURL).Msg("Fetched-marker lookup failed, refetching")
	}
	if fetched {
		return l.swappedURL(photoURL, key), nil
	}

	resp, err := l.http.R().SetContext(ctx).Get(photoURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch photo %s: %w", photoURL, err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("unexpected status %d fetching photo %s", resp.StatusCode(), photoURL)
	}

	if l.uploader != nil {
		contentType := resp.Header().Get("Content-Type")
		_, err := l.uploader.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      &l.bucket,
			Key:         &key,
			Body:        bytes.NewReader(resp.Body()),
			ContentType: &contentType,
		})
		if err != nil {
			return "", fmt.Errorf("failed to upload photo %s: %w", photoURL, err)
		}
	}

	if err := l.cache.MarkFetched(ctx, key, l.ttl); err != nil {
		log.Warn().Err(err).Str("url", photoURL).Msg("Failed to mark photo as fetched")
	}

	swapped := l.swappedURL(photoURL, key)
	log.Debug().Str("url", photoURL).Str("swapped", swapped).Msg("Photo fetch-and-swap complete")
	return swapped, nil
}

func (l *Loader) swappedURL(photoURL, key string) string {
	if l.uploader == nil || l.baseURL == "" {
		return photoURL
	}
	return l.baseURL + "/" + key
}

// objectKey derives a stable storage key from the photo URL.
func objectKey(photoURL string) string {
	sum := sha256.Sum256([]byte(photoURL))
	return hex.EncodeToString(sum[:])
}
