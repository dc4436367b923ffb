package channel

import (
	"context"
	"log"
)

// Service wraps a channel provider. This is the layer the application uses.
type Service struct {
	provider Provider
}

// NewService creates the service with the provider from environment
func NewService(storeURL string) *Service {
	cfg, err := LoadProviderFromEnv()
	if err != nil {
		log.Fatalf("❌ Failed to load channel provider config: %v", err)
	}

	// Override storeURL when given
	if storeURL != "" {
		cfg.StoreURL = storeURL
	}

	provider, err := NewProvider(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to create channel provider: %v", err)
	}

	log.Printf("✅ Using channel provider: %s", provider.GetProviderName())

	return &Service{provider: provider}
}

// NewServiceWithProvider creates service with specific provider (for testing)
func NewServiceWithProvider(provider Provider) *Service {
	return &Service{provider: provider}
}

// Connect starts the channel connection
func (s *Service) Connect() error {
	return s.provider.Connect()
}

// Disconnect closes the connection
func (s *Service) Disconnect() {
	s.provider.Disconnect()
}

// SendText sends a text message to the phone number
func (s *Service) SendText(phoneNumber, message string) error {
	return s.provider.SendText(phoneNumber, message)
}

// SetMessageHandler registers the inbound message callback
func (s *Service) SetMessageHandler(handler MessageHandler) error {
	return s.provider.SetMessageHandler(handler)
}

// GenerateQR generates the pairing QR code
func (s *Service) GenerateQR() ([]byte, error) {
	return s.provider.GenerateQR()
}

// IsConnected reports session status
func (s *Service) IsConnected() bool {
	return s.provider.IsConnected()
}

// StartKeepAlive maintains the session
func (s *Service) StartKeepAlive(ctx context.Context) {
	s.provider.StartKeepAlive(ctx)
}

// GetProviderName returns the active provider name
func (s *Service) GetProviderName() string {
	return s.provider.GetProviderName()
}
