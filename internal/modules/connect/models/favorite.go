package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FavoriteMessage marks a message an attendant wants to find again
type FavoriteMessage struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	AttendantID uuid.UUID `gorm:"type:uuid;not null;index" json:"attendant_id"`
	MessageID   uuid.UUID `gorm:"type:uuid;not null" json:"message_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Message Message `gorm:"foreignKey:MessageID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (FavoriteMessage) TableName() string {
	return "connect_favorite_messages"
}

func (f *FavoriteMessage) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
