package channel

import (
	"context"
	"fmt"
	"os"
)

// InboundMessage is the provider-agnostic shape of a patient message
type InboundMessage struct {
	Phone      string
	SenderName string
	Body       string
	Kind       string
	MediaURL   string
}

// MessageHandler receives normalized inbound messages
type MessageHandler func(msg InboundMessage)

// Provider is the interface every messaging channel integration implements
type Provider interface {
	// Connect initializes the channel connection
	Connect() error

	// Disconnect closes the connection
	Disconnect()

	// SendText sends a text message to the destination phone
	SendText(phoneNumber, message string) error

	// SetMessageHandler registers the callback for inbound messages
	SetMessageHandler(handler MessageHandler) error

	// GenerateQR generates a pairing QR code (PNG bytes)
	GenerateQR() ([]byte, error)

	// IsConnected reports whether the session is active
	IsConnected() bool

	// StartKeepAlive maintains the session (optional for some providers)
	StartKeepAlive(ctx context.Context)

	// GetProviderName returns the provider name for logging
	GetProviderName() string
}

// ProviderType for the factory
type ProviderType string

const (
	ProviderWhatsmeow ProviderType = "whatsmeow"
	ProviderCloudAPI  ProviderType = "cloud_api"
)

// ProviderConfig holds provider creation settings
type ProviderConfig struct {
	Type ProviderType

	// Whatsmeow
	StoreURL string

	// Cloud API
	CloudAPIURL string
	CloudAPIKey string
}

// NewProvider factory for the configured channel provider
func NewProvider(cfg *ProviderConfig) (Provider, error) {
	switch cfg.Type {
	case ProviderWhatsmeow:
		return NewWhatsmeowProvider(cfg.StoreURL), nil

	case ProviderCloudAPI:
		if cfg.CloudAPIURL == "" {
			return nil, fmt.Errorf("CHANNEL_API_URL is required")
		}
		return NewCloudAPIProvider(cfg.CloudAPIURL, cfg.CloudAPIKey), nil

	default:
		return nil, fmt.Errorf("unknown channel provider type: %s", cfg.Type)
	}
}

// LoadProviderFromEnv loads config from environment variables
func LoadProviderFromEnv() (*ProviderConfig, error) {
	providerType := os.Getenv("CHANNEL_PROVIDER")
	if providerType == "" {
		providerType = "whatsmeow" // default
	}

	cfg := &ProviderConfig{
		Type:        ProviderType(providerType),
		StoreURL:    os.Getenv("CHANNEL_STORE_URL"),
		CloudAPIURL: os.Getenv("CHANNEL_API_URL"),
		CloudAPIKey: os.Getenv("CHANNEL_API_KEY"),
	}

	return cfg, nil
}
