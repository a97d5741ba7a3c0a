// Package keys resolves the token signing key once at start-up. The key is
// either inline in the configuration or loaded from a file:// or s3:// URI.
package keys

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/bankaccounts/internal/server/config"
)

// maxKeySize bounds how much is read from a key source.
const maxKeySize = 64 << 10

var (
	ErrEmptyKey          = errors.New("signing key is empty")
	ErrUnsupportedScheme = errors.New("unsupported key URI scheme")
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	getObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
		return c.GetObject(ctx, in, optFns...)
	}
)

// Load returns the signing key described by cfg. SecretKeyURI wins over
// SecretKey when both are set. Surrounding whitespace of loaded keys is
// trimmed so that files ending in a newline work.
func Load(ctx context.Context, cfg *config.Config) ([]byte, error) {
	if cfg.SecretKeyURI == "" {
		if cfg.SecretKey == "" {
			return nil, ErrEmptyKey
		}
		return []byte(cfg.SecretKey), nil
	}

	u, err := url.Parse(cfg.SecretKeyURI)
	if err != nil {
		return nil, fmt.Errorf("bad key URI: %w", err)
	}

	var key []byte
	switch u.Scheme {
	case "file":
		key, err = loadFile(u.Host + u.Path)
	case "s3":
		key, err = loadS3(ctx, cfg, u.Host, strings.TrimPrefix(u.Path, "/"))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	if err != nil {
		return nil, err
	}

	key = bytes.TrimSpace(key)
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	return key, nil
}

func loadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening key file: %w", err)
	}
	defer f.Close()

	key, err := io.ReadAll(io.LimitReader(f, maxKeySize))
	if err != nil {
		return nil, fmt.Errorf("error reading key file: %w", err)
	}
	return key, nil
}

func loadS3(ctx context.Context, cfg *config.Config, bucket, key string) ([]byte, error) {
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("key URI must be s3://bucket/key")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.S3Region)}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			// S3-compatible servers (MinIO) expect path-style addressing
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	out, err := getObject(client, ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("error fetching key from s3: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxKeySize))
	if err != nil {
		return nil, fmt.Errorf("error reading key from s3: %w", err)
	}
	return data, nil
}
