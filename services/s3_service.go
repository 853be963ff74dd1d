package services

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appConfig "github.com/gloucester-auto/dealership-api/config"
	"github.com/gloucester-auto/dealership-api/utils"
)

// s3RequestTimeout bounds every call to S3 so a slow store cannot hang a
// request indefinitely.
const s3RequestTimeout = 15 * time.Second

// S3ImageStore implements ImageStore on an S3 bucket with public objects.
type S3ImageStore struct {
	client *s3.Client
	bucket string
	region string
}

// NewS3ImageStore creates an S3-backed image store from the app configuration.
func NewS3ImageStore(cfg *appConfig.Config) (*S3ImageStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3ImageStore{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.AWSS3Bucket,
		region: cfg.AWSRegion,
	}, nil
}

// Store validates the payload and uploads it under a collision-resistant key,
// returning the public object URL.
func (s *S3ImageStore) Store(ctx context.Context, data []byte, contentType, originalName string) (string, error) {
	if err := utils.ValidateImage(int64(len(data)), contentType); err != nil {
		return "", err
	}

	ext := utils.ImageExtension(contentType, originalName)
	key := fmt.Sprintf("cars/%s-%d%s", uuid.NewString(), time.Now().Unix(), ext)

	ctx, cancel := context.WithTimeout(ctx, s3RequestTimeout)
	defer cancel()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s.objectURL(key), nil
}

// Delete removes the object a previously returned URL points at. URLs that
// do not belong to this bucket are ignored.
func (s *S3ImageStore) Delete(ctx context.Context, imageURL string) error {
	key, ok := s.keyFromURL(imageURL)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s3RequestTimeout)
	defer cancel()

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}

	return nil
}

func (s *S3ImageStore) objectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// keyFromURL extracts the object key from a URL produced by objectURL.
func (s *S3ImageStore) keyFromURL(imageURL string) (string, bool) {
	parsed, err := url.Parse(imageURL)
	if err != nil || parsed.Host == "" {
		return "", false
	}
	if !strings.HasPrefix(parsed.Host, s.bucket+".s3.") {
		return "", false
	}
	key := strings.TrimPrefix(parsed.Path, "/")
	if key == "" {
		return "", false
	}
	return key, true
}
