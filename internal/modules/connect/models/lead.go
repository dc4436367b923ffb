package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lead stages
const (
	StageNegotiating = "negociando"
	StageWon         = "ganho"
	StageLost        = "perdido"
)

// Lead tracks a quoted service from negotiation to won/lost. At most one
// lead with active=true may exist per patient; the database enforces this
// with a partial unique index.
type Lead struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenantID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	PatientID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	AttendantID   uuid.UUID  `gorm:"type:uuid;not null" json:"attendant_id"`
	Service       string     `gorm:"type:text;not null" json:"servico"`
	QuotedValue   float64    `gorm:"type:numeric(12,2)" json:"valor_proposto"`
	Stage         string     `gorm:"type:text;default:'negociando'" json:"stage"`
	LossReason    string     `gorm:"type:text" json:"motivo_perda,omitempty"`
	FinalValue    *float64   `gorm:"type:numeric(12,2)" json:"valor_final,omitempty"`
	PaymentMethod string     `gorm:"type:text" json:"forma_pagamento,omitempty"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
	Active        bool       `gorm:"default:true" json:"active"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Patient Patient `gorm:"foreignKey:PatientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Lead) TableName() string {
	return "connect_leads"
}

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
