package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
)

type AttendantRepo interface {
	Create(attendant *models.Attendant) error
	GetByID(id uuid.UUID) (*models.Attendant, error)
	ListActive(tenantID uuid.UUID) ([]models.Attendant, error)
	Save(attendant *models.Attendant) error
	Deactivate(id uuid.UUID) error
}

type attendantRepo struct {
	db *gorm.DB
}

func NewAttendantRepo(db *gorm.DB) AttendantRepo {
	return &attendantRepo{db: db}
}

func (r *attendantRepo) Create(attendant *models.Attendant) error {
	return r.db.Create(attendant).Error
}

func (r *attendantRepo) GetByID(id uuid.UUID) (*models.Attendant, error) {
	var attendant models.Attendant
	if err := r.db.First(&attendant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attendant, nil
}

func (r *attendantRepo) ListActive(tenantID uuid.UUID) ([]models.Attendant, error) {
	var attendants []models.Attendant
	err := r.db.Where("tenant_id = ? AND active = true", tenantID).
		Order("name ASC").
		Find(&attendants).Error
	return attendants, err
}

func (r *attendantRepo) Save(attendant *models.Attendant) error {
	return r.db.Save(attendant).Error
}

// Deactivate soft-disables the attendant; conversations keep the reference.
func (r *attendantRepo) Deactivate(id uuid.UUID) error {
	return r.db.Model(&models.Attendant{}).Where("id = ?", id).Update("active", false).Error
}
