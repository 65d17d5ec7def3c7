// Package objectstore implements the content image store on S3-compatible
// object storage.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"quill/contexts/community-content/content-service/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// maxBatchDelete is the DeleteObjects per-request key limit.
const maxBatchDelete = 1000

// Client is the subset of the S3 API the image store calls.
type Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

type Options struct {
	Bucket          string
	Region          string
	Endpoint        string
	PublicBaseURL   string
	KeyPrefix       string
	PathStyle       bool
	AccessKeyID     string
	SecretAccessKey string
}

type ImageStore struct {
	client  Client
	options Options
	logger  *slog.Logger
}

// NewS3Client builds an S3 client from the default credential chain, or from
// static keys when both are set.
func NewS3Client(ctx context.Context, opts Options) (*s3.Client, error) {
	loaders := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.PathStyle
	}), nil
}

func NewImageStore(client Client, opts Options, logger *slog.Logger) *ImageStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageStore{client: client, options: opts, logger: logger}
}

// Upload stores the staged file under a fresh key and returns its public URL
// with the key as reference.
func (s *ImageStore) Upload(ctx context.Context, localPath string) (entities.ImageRef, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return entities.ImageRef{}, fmt.Errorf("open staged image: %w", err)
	}
	defer file.Close()

	contentType, err := sniffContentType(file)
	if err != nil {
		return entities.ImageRef{}, err
	}

	key := s.options.KeyPrefix + uuid.NewString() + strings.ToLower(filepath.Ext(localPath))
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.options.Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return entities.ImageRef{}, fmt.Errorf("put object %s: %w", key, err)
	}

	s.logger.Debug("image uploaded",
		"event", "objectstore_image_uploaded",
		"module", "platform/objectstore",
		"layer", "platform",
		"reference_id", key,
	)
	return entities.ImageRef{URL: s.publicURL(key), ReferenceID: key}, nil
}

// Delete of a missing key succeeds.
func (s *ImageStore) Delete(ctx context.Context, referenceID string) error {
	if referenceID == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.options.Bucket),
		Key:    aws.String(referenceID),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("delete object %s: %w", referenceID, err)
	}
	return nil
}

func (s *ImageStore) DeleteMany(ctx context.Context, referenceIDs []string) error {
	var keys []types.ObjectIdentifier
	for _, referenceID := range referenceIDs {
		if referenceID != "" {
			keys = append(keys, types.ObjectIdentifier{Key: aws.String(referenceID)})
		}
	}

	var result error
	for start := 0; start < len(keys); start += maxBatchDelete {
		end := min(start+maxBatchDelete, len(keys))
		out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.options.Bucket),
			Delete: &types.Delete{Objects: keys[start:end], Quiet: aws.Bool(true)},
		})
		if err != nil {
			result = multierr.Append(result, fmt.Errorf("delete objects: %w", err))
			continue
		}
		for _, failure := range out.Errors {
			if aws.ToString(failure.Code) == "NoSuchKey" {
				continue
			}
			result = multierr.Append(result, fmt.Errorf("delete object %s: %s",
				aws.ToString(failure.Key), aws.ToString(failure.Message)))
		}
	}
	return result
}

func (s *ImageStore) publicURL(key string) string {
	if base := strings.TrimRight(s.options.PublicBaseURL, "/"); base != "" {
		return base + "/" + key
	}
	if endpoint := strings.TrimRight(s.options.Endpoint, "/"); endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", endpoint, s.options.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.options.Bucket, s.options.Region, key)
}

func sniffContentType(file io.ReadSeeker) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read staged image: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind staged image: %w", err)
	}
	return http.DetectContentType(head[:n]), nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var notFound *types.NotFound
	return errors.As(err, &notFound)
}
