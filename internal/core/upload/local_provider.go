package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalProvider stores attachments on the local filesystem
type LocalProvider struct {
	basePath   string // Base directory for uploads
	baseURL    string // Base URL to access files
	publicPath string // Public path for URL generation
}

// NewLocalProvider creates a new local file storage provider
func NewLocalProvider(basePath, baseURL string) *LocalProvider {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		panic(fmt.Sprintf("Failed to create upload directory: %v", err))
	}

	return &LocalProvider{
		basePath:   basePath,
		baseURL:    baseURL,
		publicPath: "/uploads/",
	}
}

func (p *LocalProvider) Upload(file io.Reader, filename string, options *Options) (*Result, error) {
	options = MergeOptions(options)

	ext := filepath.Ext(filename)
	nameWithoutExt := strings.TrimSuffix(filename, ext)

	var finalFilename string
	if options.PublicID != "" {
		finalFilename = options.PublicID + ext
	} else {
		uniqueID := uuid.New().String()[:8]
		finalFilename = fmt.Sprintf("%s_%d_%s%s", nameWithoutExt, time.Now().Unix(), uniqueID, ext)
	}

	folderPath := filepath.Join(p.basePath, options.Folder)
	if err := os.MkdirAll(folderPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	filePath := filepath.Join(folderPath, finalFilename)

	if !options.Overwrite {
		if _, err := os.Stat(filePath); err == nil {
			return nil, fmt.Errorf("file already exists: %s", finalFilename)
		}
	}

	out, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	size, err := io.Copy(out, file)
	if err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	if options.MaxSize > 0 && size > options.MaxSize {
		os.Remove(filePath)
		return nil, fmt.Errorf("file size exceeds maximum allowed size: %d bytes", options.MaxSize)
	}

	publicURL := p.baseURL + p.publicPath + options.Folder + "/" + finalFilename
	publicID := options.Folder + "/" + finalFilename

	return &Result{
		URL:      publicURL,
		FileName: filename,
		Size:     size,
		Format:   strings.TrimPrefix(ext, "."),
		Kind:     detectKind(ext),
		PublicID: publicID,
	}, nil
}

func (p *LocalProvider) UploadMultipart(fileHeader *multipart.FileHeader, options *Options) (*Result, error) {
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

	return p.Upload(file, fileHeader.Filename, options)
}

func (p *LocalProvider) Delete(publicID string) error {
	filePath := filepath.Join(p.basePath, publicID)

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", publicID)
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

func (p *LocalProvider) GetURL(publicID string) string {
	return p.baseURL + p.publicPath + publicID
}

func (p *LocalProvider) GetProviderName() string {
	return "Local Storage"
}
