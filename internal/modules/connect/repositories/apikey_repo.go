package repositories

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
)

// APIKeyRepo runs on the raw sql.DB handle; key validation sits on every
// request and skips the ORM.
type APIKeyRepo interface {
	FindActiveByHash(keyHash string) (*models.APIKey, error)
	TouchLastUsed(id uuid.UUID) error
	Create(key *models.APIKey) error
	ListByTenant(tenantID uuid.UUID) ([]models.APIKey, error)
	Deactivate(id uuid.UUID) error
}

type apiKeyRepo struct {
	db *sql.DB
}

func NewAPIKeyRepo(db *sql.DB) APIKeyRepo {
	return &apiKeyRepo{db: db}
}

// FindActiveByHash returns the key only when both the key and its tenant
// are active.
func (r *apiKeyRepo) FindActiveByHash(keyHash string) (*models.APIKey, error) {
	query := `
		SELECT k.id, k.tenant_id, k.name, k.key_hash, k.active, k.last_used_at, k.created_at
		FROM connect_api_keys k
		JOIN connect_tenants t ON t.id = k.tenant_id
		WHERE k.key_hash = $1 AND k.active = true AND t.active = true
	`

	var key models.APIKey
	var lastUsed sql.NullTime
	var createdAt sql.NullTime

	err := r.db.QueryRow(query, keyHash).Scan(
		&key.ID, &key.TenantID, &key.Name, &key.KeyHash,
		&key.Active, &lastUsed, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if lastUsed.Valid {
		key.LastUsedAt = &lastUsed.Time
	}
	if createdAt.Valid {
		key.CreatedAt = createdAt.Time
	}

	return &key, nil
}

func (r *apiKeyRepo) TouchLastUsed(id uuid.UUID) error {
	_, err := r.db.Exec(
		`UPDATE connect_api_keys SET last_used_at = $1 WHERE id = $2`,
		time.Now(), id,
	)
	return err
}

func (r *apiKeyRepo) Create(key *models.APIKey) error {
	if key.ID == uuid.Nil {
		key.ID = uuid.New()
	}
	_, err := r.db.Exec(
		`INSERT INTO connect_api_keys (id, tenant_id, name, key_hash, active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		key.ID, key.TenantID, key.Name, key.KeyHash, true, time.Now(),
	)
	return err
}

func (r *apiKeyRepo) ListByTenant(tenantID uuid.UUID) ([]models.APIKey, error) {
	query := `
		SELECT id, tenant_id, name, key_hash, active, last_used_at, created_at
		FROM connect_api_keys
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.APIKey
	for rows.Next() {
		var key models.APIKey
		var lastUsed, createdAt sql.NullTime

		if err := rows.Scan(
			&key.ID, &key.TenantID, &key.Name, &key.KeyHash,
			&key.Active, &lastUsed, &createdAt,
		); err != nil {
			continue
		}

		if lastUsed.Valid {
			key.LastUsedAt = &lastUsed.Time
		}
		if createdAt.Valid {
			key.CreatedAt = createdAt.Time
		}

		list = append(list, key)
	}

	return list, rows.Err()
}

func (r *apiKeyRepo) Deactivate(id uuid.UUID) error {
	_, err := r.db.Exec(`UPDATE connect_api_keys SET active = false WHERE id = $1`, id)
	return err
}
