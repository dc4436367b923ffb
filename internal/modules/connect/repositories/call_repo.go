package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
)

type CallRepo interface {
	Create(call *models.Call) error
	GetByID(id uuid.UUID) (*models.Call, error)
	Save(call *models.Call) error
	SweepStale(olderThan time.Duration) (int64, error)
}

type callRepo struct {
	db *gorm.DB
}

func NewCallRepo(db *gorm.DB) CallRepo {
	return &callRepo{db: db}
}

func (r *callRepo) Create(call *models.Call) error {
	return r.db.Create(call).Error
}

func (r *callRepo) GetByID(id uuid.UUID) (*models.Call, error) {
	var call models.Call
	if err := r.db.First(&call, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &call, nil
}

func (r *callRepo) Save(call *models.Call) error {
	return r.db.Save(call).Error
}

// SweepStale force-ends calls stuck in a non-terminal status, e.g. after a
// client crashed mid-call and never sent the hangup.
func (r *callRepo) SweepStale(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	result := r.db.Model(&models.Call{}).
		Where("status <> ? AND created_at < ?", models.CallEnded, cutoff).
		Updates(map[string]interface{}{
			"status":   models.CallEnded,
			"ended_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}
