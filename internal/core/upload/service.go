package upload

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
)

// Service wraps an upload provider. This is the layer the application uses.
type Service struct {
	provider Provider
}

// NewService creates the service with the provider from environment.
// UPLOAD_PROVIDER selects local (default) or s3.
func NewService() *Service {
	providerType := os.Getenv("UPLOAD_PROVIDER")
	if providerType == "" {
		providerType = "local"
	}

	var provider Provider

	switch providerType {
	case "s3":
		p, err := NewS3Provider(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			os.Getenv("AWS_REGION"),
			os.Getenv("S3_BUCKET_NAME"),
		)
		if err != nil {
			log.Fatalf("❌ Failed to create S3 provider: %v", err)
		}
		provider = p

	case "local":
		basePath := os.Getenv("UPLOAD_DIR")
		if basePath == "" {
			basePath = "./uploads"
		}
		baseURL := os.Getenv("UPLOAD_BASE_URL")
		if baseURL == "" {
			baseURL = "http://localhost:8080"
		}
		provider = NewLocalProvider(basePath, baseURL)

	default:
		log.Fatalf("❌ Unknown upload provider: %s", providerType)
	}

	log.Printf("📦 Using upload provider: %s", provider.GetProviderName())

	return &Service{provider: provider}
}

// NewServiceWithProvider creates service with specific provider (for testing)
func NewServiceWithProvider(provider Provider) *Service {
	return &Service{provider: provider}
}

// Upload stores a file
func (s *Service) Upload(file io.Reader, filename string, options *Options) (*Result, error) {
	return s.provider.Upload(file, filename, options)
}

// UploadMultipart stores a file from a multipart form
func (s *Service) UploadMultipart(fileHeader *multipart.FileHeader, options *Options) (*Result, error) {
	return s.provider.UploadMultipart(fileHeader, options)
}

// Delete removes a stored file
func (s *Service) Delete(publicID string) error {
	if publicID == "" {
		return fmt.Errorf("public ID is required")
	}
	return s.provider.Delete(publicID)
}

// GetURL returns the public URL for a stored file
func (s *Service) GetURL(publicID string) string {
	return s.provider.GetURL(publicID)
}

// GetProviderName returns the active provider name
func (s *Service) GetProviderName() string {
	return s.provider.GetProviderName()
}
