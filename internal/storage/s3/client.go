// Package s3 archives exported invoices and branding assets in an S3 bucket.
package s3

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"invoicegen/internal/config"
	"invoicegen/internal/port"
)

const defaultLinkExpiry = 15 * time.Minute

// ErrNoBucket is returned by New when no bucket is configured.
var ErrNoBucket = errors.New("s3: bucket is required")

// Client implements port.ObjectStorage for one bucket.
type Client struct {
	api      *s3.Client
	signer   *s3.PresignClient
	uploader *manager.Uploader
	bucket   string
	expiry   time.Duration
}

var _ port.ObjectStorage = (*Client)(nil)

// New builds a client from cfg. Static keys are used when both are set,
// otherwise the default AWS credential chain applies. A custom endpoint
// (MinIO, LocalStack) switches to path-style addressing.
func New(ctx context.Context, cfg *config.S3Config) (*Client, error) {
	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3.New: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	expiry := time.Duration(cfg.PresignExpiry) * time.Second
	if expiry <= 0 {
		expiry = defaultLinkExpiry
	}

	return &Client{
		api:    api,
		signer: s3.NewPresignClient(api),
		uploader: manager.NewUploader(api, func(u *manager.Uploader) {
			u.PartSize = manager.MinUploadPartSize
		}),
		bucket: cfg.Bucket,
		expiry: expiry,
	}, nil
}

// Put streams obj into the bucket.
func (c *Client) Put(ctx context.Context, obj port.StoredObject) error {
	in := &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(obj.Key),
		Body:        obj.Body,
		ContentType: aws.String(obj.ContentType),
	}
	if obj.DownloadName != "" {
		in.ContentDisposition = aws.String(attachment(obj.DownloadName))
	}
	if _, err := c.uploader.Upload(ctx, in); err != nil {
		return fmt.Errorf("s3 put %s: %w", obj.Key, err)
	}
	return nil
}

// SignedURL returns a GET link valid for the configured expiry.
func (c *Client) SignedURL(ctx context.Context, key, downloadName string) (string, error) {
	in := &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}
	if downloadName != "" {
		in.ResponseContentDisposition = aws.String(attachment(downloadName))
	}
	req, err := c.signer.PresignGetObject(ctx, in, s3.WithPresignExpires(c.expiry))
	if err != nil {
		return "", fmt.Errorf("s3 presign %s: %w", key, err)
	}
	return req.URL, nil
}

// Remove deletes key. Deleting a missing key is not an error.
func (c *Client) Remove(ctx context.Context, key string) error {
	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 remove %s: %w", key, err)
	}
	return nil
}

func attachment(name string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": name})
}
