package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Provider stores attachments in AWS S3
type S3Provider struct {
	client     *s3.Client
	bucketName string
	region     string
	baseURL    string
}

// NewS3Provider creates a new AWS S3 provider
func NewS3Provider(accessKeyID, secretAccessKey, region, bucketName string) (*S3Provider, error) {
	ctx := context.Background()

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	baseURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucketName, region)

	return &S3Provider{
		client:     client,
		bucketName: bucketName,
		region:     region,
		baseURL:    baseURL,
	}, nil
}

func (p *S3Provider) Upload(file io.Reader, filename string, options *Options) (*Result, error) {
	options = MergeOptions(options)

	ctx := context.Background()

	ext := filepath.Ext(filename)
	nameWithoutExt := strings.TrimSuffix(filename, ext)

	var key string
	if options.PublicID != "" {
		key = filepath.Join(options.Folder, options.PublicID+ext)
	} else {
		uniqueID := uuid.New().String()[:8]
		finalFilename := fmt.Sprintf("%s_%d_%s%s", nameWithoutExt, time.Now().Unix(), uniqueID, ext)
		key = filepath.Join(options.Folder, finalFilename)
	}

	// S3 keys always use forward slashes
	key = strings.ReplaceAll(key, "\\", "/")

	contentType := detectContentType(ext)

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucketName),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
		ACL:         "public-read",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("%s/%s", p.baseURL, key)

	return &Result{
		URL:      publicURL,
		FileName: filename,
		Size:     0, // PutObject does not report size; multipart path fills it in
		Format:   strings.TrimPrefix(ext, "."),
		Kind:     detectKind(ext),
		PublicID: key,
	}, nil
}

func (p *S3Provider) UploadMultipart(fileHeader *multipart.FileHeader, options *Options) (*Result, error) {
	options = MergeOptions(options)

	if len(options.AllowedTypes) > 0 {
		allowed := false
		for _, allowedType := range options.AllowedTypes {
			if fileHeader.Header.Get("Content-Type") == allowedType {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, fmt.Errorf("file type not allowed: %s", fileHeader.Header.Get("Content-Type"))
		}
	}

	if options.MaxSize > 0 && fileHeader.Size > options.MaxSize {
		return nil, fmt.Errorf("file size exceeds maximum allowed size: %d bytes", options.MaxSize)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	result, err := p.Upload(file, fileHeader.Filename, options)
	if err != nil {
		return nil, err
	}

	result.Size = fileHeader.Size

	return result, nil
}

func (p *S3Provider) Delete(publicID string) error {
	ctx := context.Background()

	_, err := p.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucketName),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}

	return nil
}

func (p *S3Provider) GetURL(publicID string) string {
	return fmt.Sprintf("%s/%s", p.baseURL, publicID)
}

func (p *S3Provider) GetProviderName() string {
	return "AWS S3"
}
