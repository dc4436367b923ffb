package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
)

// LeadFilter narrows List results
type LeadFilter struct {
	TenantID  uuid.UUID
	PatientID *uuid.UUID
	Stage     string
	Active    *bool
	Limit     int
}

type LeadRepo interface {
	Create(lead *models.Lead) error
	GetByID(id uuid.UUID) (*models.Lead, error)
	GetActiveByPatient(patientID uuid.UUID) (*models.Lead, error)
	List(filter LeadFilter) ([]models.Lead, error)
	Save(lead *models.Lead) error
}

type leadRepo struct {
	db *gorm.DB
}

func NewLeadRepo(db *gorm.DB) LeadRepo {
	return &leadRepo{db: db}
}

func (r *leadRepo) Create(lead *models.Lead) error {
	return r.db.Create(lead).Error
}

func (r *leadRepo) GetByID(id uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	if err := r.db.First(&lead, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

// GetActiveByPatient returns the patient's active lead, or nil when the
// patient has none.
func (r *leadRepo) GetActiveByPatient(patientID uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.Where("patient_id = ? AND active = true", patientID).First(&lead).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepo) List(filter LeadFilter) ([]models.Lead, error) {
	query := r.db.Model(&models.Lead{}).Where("tenant_id = ?", filter.TenantID)

	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.Stage != "" {
		query = query.Where("stage = ?", filter.Stage)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var leads []models.Lead
	err := query.Order("created_at DESC").Find(&leads).Error
	return leads, err
}

func (r *leadRepo) Save(lead *models.Lead) error {
	return r.db.Save(lead).Error
}
