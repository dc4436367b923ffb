package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
)

type ConversationRepo interface {
	LookupOrCreate(tenantID, patientID uuid.UUID) (*models.Conversation, error)
	GetByID(id uuid.UUID) (*models.Conversation, error)
	AssignAttendant(id, attendantID uuid.UUID) error
}

type conversationRepo struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepo {
	return &conversationRepo{db: db}
}

// LookupOrCreate returns the patient's single conversation, creating it on
// first contact.
func (r *conversationRepo) LookupOrCreate(tenantID, patientID uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.Where("patient_id = ?", patientID).First(&conversation).Error
	if err == nil {
		return &conversation, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conversation = models.Conversation{
		TenantID:  tenantID,
		PatientID: patientID,
	}
	if err := r.db.Create(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepo) GetByID(id uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := r.db.First(&conversation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepo) AssignAttendant(id, attendantID uuid.UUID) error {
	return r.db.Model(&models.Conversation{}).
		Where("id = ?", id).
		Update("attendant_id", attendantID).Error
}
