package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
)

type MessageRepo interface {
	Append(message *models.Message) error
	ListByConversation(conversationID uuid.UUID) ([]models.Message, error)
	GetByID(id uuid.UUID) (*models.Message, error)
}

type messageRepo struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) MessageRepo {
	return &messageRepo{db: db}
}

func (r *messageRepo) Append(message *models.Message) error {
	return r.db.Create(message).Error
}

// ListByConversation returns the full ordered sequence, oldest first.
// Callers re-read the whole list on every sync trigger; no paging.
func (r *messageRepo) ListByConversation(conversationID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *messageRepo) GetByID(id uuid.UUID) (*models.Message, error) {
	var message models.Message
	if err := r.db.First(&message, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}
