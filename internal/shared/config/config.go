package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL     string
	Port            string
	Env             string
	OpenAIKey       string
	ChannelProvider string
	ChannelStoreURL string
	ChannelAPIURL   string
	ChannelAPIKey   string
	ChannelTenantID string
	UploadProvider  string
	UploadBaseURL   string
	UploadDir       string
	S3Bucket        string
	S3Region        string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		Port:            os.Getenv("PORT"),
		Env:             os.Getenv("ENV"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		ChannelProvider: os.Getenv("CHANNEL_PROVIDER"),
		ChannelStoreURL: os.Getenv("CHANNEL_STORE_URL"),
		ChannelAPIURL:   os.Getenv("CHANNEL_API_URL"),
		ChannelAPIKey:   os.Getenv("CHANNEL_API_KEY"),
		ChannelTenantID: os.Getenv("CHANNEL_TENANT_ID"),
		UploadProvider:  os.Getenv("UPLOAD_PROVIDER"),
		UploadBaseURL:   os.Getenv("UPLOAD_BASE_URL"),
		UploadDir:       os.Getenv("UPLOAD_DIR"),
		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3Region:        os.Getenv("S3_REGION"),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.ChannelProvider == "" {
		cfg.ChannelProvider = "whatsmeow"
	}
	if cfg.ChannelStoreURL == "" {
		// Default to main database if not specified
		cfg.ChannelStoreURL = cfg.DatabaseURL
	}
	if cfg.UploadProvider == "" {
		cfg.UploadProvider = "local"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.UploadBaseURL == "" {
		cfg.UploadBaseURL = "http://localhost:" + cfg.Port
	}

	return cfg
}
