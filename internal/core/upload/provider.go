package upload

import (
	"io"
	"mime/multipart"
	"strings"
)

// Result describes a stored attachment
type Result struct {
	URL      string `json:"url"`       // Public URL to access the file
	FileName string `json:"file_name"` // Original filename
	Size     int64  `json:"size"`      // File size in bytes
	Format   string `json:"format"`    // File extension without the dot
	Kind     string `json:"kind"`      // imagem, audio or arquivo
	PublicID string `json:"public_id"` // Provider-specific identifier
}

// Options configure a single upload
type Options struct {
	Folder       string   `json:"folder"`        // Folder/directory to upload to
	PublicID     string   `json:"public_id"`     // Custom public ID
	Overwrite    bool     `json:"overwrite"`     // Overwrite existing file
	AllowedTypes []string `json:"allowed_types"` // Allowed MIME types
	MaxSize      int64    `json:"max_size"`      // Max file size in bytes
}

// Provider defines the interface for attachment storage providers
type Provider interface {
	// Upload stores a file and returns the result
	Upload(file io.Reader, filename string, options *Options) (*Result, error)

	// UploadMultipart stores a file from a multipart form
	UploadMultipart(fileHeader *multipart.FileHeader, options *Options) (*Result, error)

	// Delete removes a file by public ID
	Delete(publicID string) error

	// GetURL returns the public URL for a file
	GetURL(publicID string) string

	// GetProviderName returns the provider name
	GetProviderName() string
}

// DefaultOptions returns the default upload options for patient attachments
func DefaultOptions() *Options {
	return &Options{
		Folder:    "anexos",
		Overwrite: false,
		AllowedTypes: []string{
			"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp",
			"audio/ogg", "audio/mpeg", "audio/mp4",
			"application/pdf",
		},
		MaxSize: 10 * 1024 * 1024, // 10MB
	}
}

// MergeOptions merges custom options with defaults
func MergeOptions(custom *Options) *Options {
	defaults := DefaultOptions()

	if custom == nil {
		return defaults
	}

	if custom.Folder != "" {
		defaults.Folder = custom.Folder
	}
	if custom.PublicID != "" {
		defaults.PublicID = custom.PublicID
	}
	if len(custom.AllowedTypes) > 0 {
		defaults.AllowedTypes = custom.AllowedTypes
	}
	if custom.MaxSize > 0 {
		defaults.MaxSize = custom.MaxSize
	}

	defaults.Overwrite = custom.Overwrite

	return defaults
}

// detectKind maps a file extension to the message kind stored with it
func detectKind(ext string) string {
	ext = strings.ToLower(ext)

	imageExts := map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
		".webp": true, ".bmp": true, ".svg": true,
	}

	audioExts := map[string]bool{
		".ogg": true, ".mp3": true, ".m4a": true, ".wav": true, ".opus": true,
	}

	if imageExts[ext] {
		return "imagem"
	}
	if audioExts[ext] {
		return "audio"
	}

	return "arquivo"
}

// detectContentType maps a file extension to its MIME type
func detectContentType(ext string) string {
	ext = strings.ToLower(ext)

	contentTypes := map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
		".webp": "image/webp",
		".ogg":  "audio/ogg",
		".mp3":  "audio/mpeg",
		".m4a":  "audio/mp4",
		".pdf":  "application/pdf",
		".doc":  "application/msword",
		".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}

	if contentType, ok := contentTypes[ext]; ok {
		return contentType
	}

	return "application/octet-stream"
}
