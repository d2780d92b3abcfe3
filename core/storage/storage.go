package storage

import (
	"club-api/core/config"
	"club-api/core/logger"
	"club-api/core/utils"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gosimple/slug"
)

var ErrForeignObject = errors.New("object does not belong to the configured bucket")

// ObjectAPI is the subset of the S3 client used here.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Storage struct {
	api     ObjectAPI
	bucket  string
	baseURL string
}

func New(cfg config.S3Config) *Storage {
	awsCfg := aws.Config{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewWithAPI(client, cfg)
}

func NewWithAPI(api ObjectAPI, cfg config.S3Config) *Storage {
	base := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", cfg.Bucket, cfg.Region)
	if cfg.Endpoint != "" {
		base = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket + "/"
	}
	return &Storage{api: api, bucket: cfg.Bucket, baseURL: base}
}

// ObjectKey builds "<folder>/<slugged name>-<random id><ext>".
func ObjectKey(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	name := slug.Make(strings.TrimSuffix(filename, path.Ext(filename)))
	if name == "" {
		name = "file"
	}
	return fmt.Sprintf("%s/%s-%s%s", strings.Trim(folder, "/"), name, utils.GenerateID(), ext)
}

// Upload stores body under a new key in folder and returns its public URL.
func (s *Storage) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	key := ObjectKey(folder, filename)
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error("Storage:Upload", "key", key, "error", err)
		return "", err
	}
	return s.URL(key), nil
}

// Delete removes the object behind url. URLs outside the bucket are refused.
func (s *Storage) Delete(ctx context.Context, url string) error {
	key, ok := s.KeyFromURL(url)
	if !ok {
		return ErrForeignObject
	}
	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.Error("Storage:Delete", "key", key, "error", err)
	}
	return err
}

func (s *Storage) URL(key string) string {
	return s.baseURL + key
}

func (s *Storage) KeyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, s.baseURL) {
		return "", false
	}
	key := strings.TrimPrefix(url, s.baseURL)
	return key, key != ""
}
