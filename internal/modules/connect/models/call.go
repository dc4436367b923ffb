package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Call statuses
const (
	CallDialing    = "discando"
	CallRinging    = "chamando"
	CallInProgress = "em_andamento"
	CallEnded      = "encerrada"
)

// Call is a voice call tied to a conversation. Elapsed time is never
// stored; it is derived from started_at against the wall clock.
type Call struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenantID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ConversationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"conversation_id"`
	PatientID      uuid.UUID  `gorm:"type:uuid;not null" json:"patient_id"`
	AttendantID    uuid.UUID  `gorm:"type:uuid;not null" json:"attendant_id"`
	Status         string     `gorm:"type:text;default:'discando'" json:"status"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Conversation Conversation `gorm:"foreignKey:ConversationID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Call) TableName() string {
	return "connect_calls"
}

func (c *Call) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ValidCallStatus reports whether s is a known call status
func ValidCallStatus(s string) bool {
	switch s {
	case CallDialing, CallRinging, CallInProgress, CallEnded:
		return true
	}
	return false
}
