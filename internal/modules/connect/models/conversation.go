package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message author roles
const (
	AuthorPatient   = "paciente"
	AuthorAttendant = "atendente"
)

// Message kinds
const (
	KindText  = "texto"
	KindImage = "imagem"
	KindFile  = "arquivo"
	KindAudio = "audio"
)

// Conversation is the single active thread of a patient. Looked up or
// created on first contact, never hard-deleted.
type Conversation struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenantID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	PatientID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"patient_id"`
	AttendantID *uuid.UUID `gorm:"type:uuid" json:"attendant_id,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Patient Patient `gorm:"foreignKey:PatientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Conversation) TableName() string {
	return "connect_conversations"
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Message is append-only; ordering within a conversation is by created_at
// ascending and no editing is supported.
type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index" json:"conversation_id"`
	AuthorRole     string    `gorm:"type:text;not null" json:"author_role"`
	Kind           string    `gorm:"type:text;default:'texto'" json:"kind"`
	Body           string    `gorm:"type:text" json:"body"`
	MediaURL       string    `gorm:"type:text" json:"media_url,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	Conversation Conversation `gorm:"foreignKey:ConversationID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Message) TableName() string {
	return "connect_messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ValidKind reports whether k is an accepted message kind
func ValidKind(k string) bool {
	switch k {
	case KindText, KindImage, KindFile, KindAudio:
		return true
	}
	return false
}
