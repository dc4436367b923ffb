package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog represents a system audit log entry
type AuditLog struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	// Context
	AttendantID uuid.UUID `json:"attendant_id" gorm:"type:uuid;index"`
	TenantID    uuid.UUID `json:"tenant_id" gorm:"type:uuid;index"`

	// Action details
	Action   string `json:"action" gorm:"type:text;not null;index"` // create, update, delete, win, lose, reopen
	Entity   string `json:"entity" gorm:"type:text;not null;index"` // lead, patient, call, etc.
	EntityID string `json:"entity_id" gorm:"type:text;index"`

	// Change tracking
	OldValue datatypes.JSON `json:"old_value,omitempty" gorm:"type:jsonb"`
	NewValue datatypes.JSON `json:"new_value,omitempty" gorm:"type:jsonb"`

	// Request metadata
	IPAddress string `json:"ip_address,omitempty" gorm:"type:text"`
	Method    string `json:"method,omitempty" gorm:"type:text"`
	Endpoint  string `json:"endpoint,omitempty" gorm:"type:text"`

	Description string `json:"description,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// TableName specifies the table name
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Filter represents filters for querying audit logs
type Filter struct {
	TenantID    *uuid.UUID
	AttendantID *uuid.UUID
	Action      string
	Entity      string
	EntityID    string
	StartDate   *time.Time
	EndDate     *time.Time
	Page        int
	PageSize    int
}

// LogsResponse represents a paginated audit log response
type LogsResponse struct {
	Logs       []AuditLog `json:"logs"`
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}
