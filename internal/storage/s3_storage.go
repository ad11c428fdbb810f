package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/vendra/vendra-backend/internal/app/service"
	"github.com/vendra/vendra-backend/pkg/logger"
)

// S3Storage stores catalog media objects in S3. It implements
// service.MediaStorage for synchronous uploads and also issues presigned
// PUT URLs for direct browser uploads.
type S3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

var _ service.MediaStorage = (*S3Storage)(nil)

type PresignedURLResponse struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
	Key       string `json:"key"`
}

func NewS3Storage(region, bucket, accessKeyID, secretAccessKey, baseURL string) *S3Storage {
	var cfg aws.Config
	var err error

	// Static credentials when provided, default chain otherwise
	if accessKeyID != "" && secretAccessKey != "" {
		cfg = aws.Config{
			Region: region,
			Credentials: credentials.NewStaticCredentialsProvider(
				accessKeyID,
				secretAccessKey,
				"",
			),
		}
	} else {
		cfg, err = awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(region),
		)
		if err != nil {
			cfg = aws.Config{
				Region: region,
			}
		}
	}

	client := s3.NewFromConfig(cfg)

	return &S3Storage{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// Store uploads the file under folder/baseName and returns its public URL.
func (s *S3Storage) Store(ctx context.Context, file service.MediaFile, folder, baseName string) (string, error) {
	ext := filepath.Ext(file.Filename)
	key := fmt.Sprintf("%s/%s%s", folder, baseName, ext)

	logger.Debug("Uploading media object", map[string]interface{}{
		"bucket": s.bucket,
		"key":    key,
		"size":   file.Size,
	})

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file.Reader,
		ContentType: aws.String(file.ContentType),
	}
	if file.Size > 0 {
		input.ContentLength = aws.Int64(file.Size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		logger.Error("Failed to upload media object", err, map[string]interface{}{
			"bucket": s.bucket,
			"key":    key,
		})
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return s.FileURL(key), nil
}

// GeneratePresignedURL issues a presigned PUT URL (valid 15 minutes) for a
// direct upload into the given folder. The object key gets a UUID so
// concurrent uploads never collide.
func (s *S3Storage) GeneratePresignedURL(filename, contentType, folder string) (*PresignedURLResponse, error) {
	ext := filepath.Ext(filename)
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	presignClient := s3.NewPresignClient(s.client)

	presignedReq, err := presignClient.PresignPutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return &PresignedURLResponse{
		UploadURL: presignedReq.URL,
		FileURL:   s.FileURL(key),
		Key:       key,
	}, nil
}

// ListObjects returns key and last-modified time for every object under the
// prefix. Used by the orphan sweep.
func (s *S3Storage) ListObjects(ctx context.Context, prefix string) (map[string]time.Time, error) {
	objects := make(map[string]time.Time)

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			modified := time.Time{}
			if obj.LastModified != nil {
				modified = *obj.LastModified
			}
			objects[*obj.Key] = modified
		}
	}

	return objects, nil
}

// DeleteObject removes a single object.
func (s *S3Storage) DeleteObject(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

// FileURL maps an object key to its public URL, preferring the configured
// CDN base URL.
func (s *S3Storage) FileURL(key string) string {
	if s.baseURL != "" {
		return fmt.Sprintf("%s/%s", s.baseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.client.Options().Region, key)
}

// KeyFromURL is the inverse of FileURL for keys under this bucket. It
// returns false for URLs that do not belong to this storage.
func (s *S3Storage) KeyFromURL(url string) (string, bool) {
	prefixes := []string{
		fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.client.Options().Region),
	}
	if s.baseURL != "" {
		prefixes = append(prefixes, s.baseURL+"/")
	}
	for _, prefix := range prefixes {
		if len(url) > len(prefix) && url[:len(prefix)] == prefix {
			return url[len(prefix):], true
		}
	}
	return "", false
}

// ValidateFileSize validates the file size
func (s *S3Storage) ValidateFileSize(size int64, maxSize int64) error {
	if size > maxSize {
		return fmt.Errorf("file size exceeds maximum allowed size of %d bytes", maxSize)
	}
	return nil
}

// ValidateContentType validates the content type
func (s *S3Storage) ValidateContentType(contentType string, allowedTypes []string) error {
	for _, allowed := range allowedTypes {
		if contentType == allowed {
			return nil
		}
	}
	return fmt.Errorf("content type %s is not allowed", contentType)
}
