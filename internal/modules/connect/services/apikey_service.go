package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
	"github.com/grupovitalis/connect-api/internal/modules/connect/repositories"
)

var ErrInvalidAPIKey = errors.New("chave de API inválida")

// APIKeyService issues and validates tenant credentials. Only the SHA-256
// of a key is stored; the plaintext is shown once, at creation.
type APIKeyService struct {
	keys repositories.APIKeyRepo
}

func NewAPIKeyService(keys repositories.APIKeyRepo) *APIKeyService {
	return &APIKeyService{keys: keys}
}

// Generate creates a new key for the tenant and returns the plaintext.
// The caller must show it to the operator now; it cannot be recovered.
func (s *APIKeyService) Generate(tenantID uuid.UUID, name string) (*models.APIKey, string, error) {
	if name == "" {
		return nil, "", fmt.Errorf("nome da chave é obrigatório")
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, "", fmt.Errorf("failed to generate key material: %w", err)
	}
	plaintext := "cnk_" + hex.EncodeToString(raw)

	key := &models.APIKey{
		TenantID: tenantID,
		Name:     name,
		KeyHash:  HashKey(plaintext),
		Active:   true,
	}
	if err := s.keys.Create(key); err != nil {
		return nil, "", err
	}

	return key, plaintext, nil
}

// Validate resolves a plaintext key to its record, touching last_used_at.
// Returns ErrInvalidAPIKey for unknown, inactive or tenant-disabled keys.
func (s *APIKeyService) Validate(plaintext string) (*models.APIKey, error) {
	if plaintext == "" {
		return nil, ErrInvalidAPIKey
	}

	key, err := s.keys.FindActiveByHash(HashKey(plaintext))
	if err != nil {
		return nil, ErrInvalidAPIKey
	}

	// Best effort; a failed touch must not reject the request
	_ = s.keys.TouchLastUsed(key.ID)

	return key, nil
}

// List returns the tenant's keys (hashes only, never plaintext)
func (s *APIKeyService) List(tenantID uuid.UUID) ([]models.APIKey, error) {
	return s.keys.ListByTenant(tenantID)
}

// Revoke deactivates a key
func (s *APIKeyService) Revoke(id uuid.UUID) error {
	return s.keys.Deactivate(id)
}

// HashKey returns the hex SHA-256 of a plaintext key
func HashKey(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
