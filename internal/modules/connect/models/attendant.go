package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Attendant roles
const (
	RoleAttendant    = "atendente"
	RoleCoordination = "coordenacao"
	RoleManagement   = "gerencia"
)

// Attendant is a staff user handling patient conversations
type Attendant struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenantID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name            string     `gorm:"type:text;not null" json:"name"`
	Email           string     `gorm:"type:text;not null" json:"email"`
	Role            string     `gorm:"type:text;default:'atendente'" json:"role"`
	SectorID        *uuid.UUID `gorm:"type:uuid" json:"sector_id,omitempty"`
	UnitID          *uuid.UUID `gorm:"type:uuid" json:"unit_id,omitempty"`
	AccessProfileID *uuid.UUID `gorm:"type:uuid" json:"access_profile_id,omitempty"`
	AvatarURL       string     `gorm:"type:text" json:"avatar_url"`
	Active          bool       `gorm:"default:true" json:"active"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Tenant Tenant `gorm:"foreignKey:TenantID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Attendant) TableName() string {
	return "connect_attendants"
}

func (a *Attendant) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Sector groups attendants by specialty (triagem, agendamento, financeiro...)
type Sector struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Sector) TableName() string {
	return "connect_sectors"
}

func (s *Sector) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Unit is a physical location of the group (clinic, hospital wing)
type Unit struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Address   string    `gorm:"type:text" json:"address"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Unit) TableName() string {
	return "connect_units"
}

func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// AccessProfile carries a JSON permissions document assigned to attendants
type AccessProfile struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenantID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name        string         `gorm:"type:text;not null" json:"name"`
	Permissions datatypes.JSON `gorm:"type:jsonb" json:"permissions"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AccessProfile) TableName() string {
	return "connect_access_profiles"
}

func (p *AccessProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
