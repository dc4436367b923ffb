package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
)

type PatientRepo interface {
	Create(patient *models.Patient) error
	GetByID(id uuid.UUID) (*models.Patient, error)
	GetByPhone(tenantID uuid.UUID, phone string) (*models.Patient, error)
	List(tenantID uuid.UUID, limit int) ([]models.Patient, error)
	Save(patient *models.Patient) error

	AddNote(note *models.PatientNote) error
	ListNotes(patientID uuid.UUID) ([]models.PatientNote, error)
	AddTag(tag *models.PatientTag) error
	ListTags(patientID uuid.UUID) ([]models.PatientTag, error)
	RemoveTag(id uuid.UUID) error
}

type patientRepo struct {
	db *gorm.DB
}

func NewPatientRepo(db *gorm.DB) PatientRepo {
	return &patientRepo{db: db}
}

func (r *patientRepo) Create(patient *models.Patient) error {
	return r.db.Create(patient).Error
}

func (r *patientRepo) GetByID(id uuid.UUID) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.First(&patient, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepo) GetByPhone(tenantID uuid.UUID, phone string) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.Where("tenant_id = ? AND phone = ?", tenantID, phone).First(&patient).Error
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepo) List(tenantID uuid.UUID, limit int) ([]models.Patient, error) {
	query := r.db.Where("tenant_id = ?", tenantID).Order("name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var patients []models.Patient
	err := query.Find(&patients).Error
	return patients, err
}

func (r *patientRepo) Save(patient *models.Patient) error {
	return r.db.Save(patient).Error
}

func (r *patientRepo) AddNote(note *models.PatientNote) error {
	return r.db.Create(note).Error
}

func (r *patientRepo) ListNotes(patientID uuid.UUID) ([]models.PatientNote, error) {
	var notes []models.PatientNote
	err := r.db.Where("patient_id = ?", patientID).Order("created_at DESC").Find(&notes).Error
	return notes, err
}

func (r *patientRepo) AddTag(tag *models.PatientTag) error {
	return r.db.Create(tag).Error
}

func (r *patientRepo) ListTags(patientID uuid.UUID) ([]models.PatientTag, error) {
	var tags []models.PatientTag
	err := r.db.Where("patient_id = ?", patientID).Order("created_at ASC").Find(&tags).Error
	return tags, err
}

func (r *patientRepo) RemoveTag(id uuid.UUID) error {
	return r.db.Delete(&models.PatientTag{}, "id = ?", id).Error
}
