package services

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
	"github.com/grupovitalis/connect-api/internal/modules/connect/repositories"
)

type fakeAPIKeyRepo struct {
	keys    map[string]models.APIKey // by hash
	touched []uuid.UUID
}

func newFakeAPIKeyRepo() *fakeAPIKeyRepo {
	return &fakeAPIKeyRepo{keys: make(map[string]models.APIKey)}
}

func (r *fakeAPIKeyRepo) FindActiveByHash(keyHash string) (*models.APIKey, error) {
	key, ok := r.keys[keyHash]
	if !ok || !key.Active {
		return nil, sql.ErrNoRows
	}
	return &key, nil
}

func (r *fakeAPIKeyRepo) TouchLastUsed(id uuid.UUID) error {
	r.touched = append(r.touched, id)
	return nil
}

func (r *fakeAPIKeyRepo) Create(key *models.APIKey) error {
	if key.ID == uuid.Nil {
		key.ID = uuid.New()
	}
	r.keys[key.KeyHash] = *key
	return nil
}

func (r *fakeAPIKeyRepo) ListByTenant(tenantID uuid.UUID) ([]models.APIKey, error) {
	var out []models.APIKey
	for _, k := range r.keys {
		if k.TenantID == tenantID {
			out = append(out, k)
		}
	}
	return out, nil
}

func (r *fakeAPIKeyRepo) Deactivate(id uuid.UUID) error {
	for hash, k := range r.keys {
		if k.ID == id {
			k.Active = false
			r.keys[hash] = k
		}
	}
	return nil
}

var _ repositories.APIKeyRepo = (*fakeAPIKeyRepo)(nil)

func TestGenerateReturnsPlaintextOnce(t *testing.T) {
	repo := newFakeAPIKeyRepo()
	svc := NewAPIKeyService(repo)

	key, plaintext, err := svc.Generate(uuid.New(), "painel")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(plaintext, "cnk_"))
	assert.NotEqual(t, plaintext, key.KeyHash)
	assert.Equal(t, HashKey(plaintext), key.KeyHash)
}

func TestValidateAcceptsIssuedKey(t *testing.T) {
	repo := newFakeAPIKeyRepo()
	svc := NewAPIKeyService(repo)

	issued, plaintext, err := svc.Generate(uuid.New(), "painel")
	require.NoError(t, err)

	key, err := svc.Validate(plaintext)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, key.ID)
	assert.Contains(t, repo.touched, issued.ID)
}

func TestValidateRejectsUnknownAndRevoked(t *testing.T) {
	repo := newFakeAPIKeyRepo()
	svc := NewAPIKeyService(repo)

	_, err := svc.Validate("")
	assert.ErrorIs(t, err, ErrInvalidAPIKey)

	_, err = svc.Validate("cnk_deadbeef")
	assert.ErrorIs(t, err, ErrInvalidAPIKey)

	issued, plaintext, err := svc.Generate(uuid.New(), "painel")
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(issued.ID))

	_, err = svc.Validate(plaintext)
	assert.ErrorIs(t, err, ErrInvalidAPIKey)
}
