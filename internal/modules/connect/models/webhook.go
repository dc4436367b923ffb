package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Webhook event names
const (
	EventMessageCreated    = "message.created"
	EventCallStatusChanged = "call.status_changed"
	EventLeadStageChanged  = "lead.stage_changed"
)

// WebhookSubscription is a registered outbound endpoint for one event
type WebhookSubscription struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Event     string    `gorm:"type:text;not null;index" json:"evento"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	Secret    string    `gorm:"type:text;not null" json:"-"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Tenant Tenant `gorm:"foreignKey:TenantID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (WebhookSubscription) TableName() string {
	return "connect_webhook_subscriptions"
}

func (w *WebhookSubscription) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// WebhookDelivery records one best-effort delivery attempt. Delivery is
// at-most-once; this table exists for inspection, not for retries.
type WebhookDelivery struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SubscriptionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"subscription_id"`
	Event          string         `gorm:"type:text;not null" json:"evento"`
	Payload        datatypes.JSON `gorm:"type:jsonb" json:"payload"`
	StatusCode     int            `json:"status_code"`
	Error          string         `gorm:"type:text" json:"error,omitempty"`
	DeliveredAt    time.Time      `gorm:"autoCreateTime" json:"delivered_at"`

	Subscription WebhookSubscription `gorm:"foreignKey:SubscriptionID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (WebhookDelivery) TableName() string {
	return "connect_webhook_deliveries"
}

func (d *WebhookDelivery) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
