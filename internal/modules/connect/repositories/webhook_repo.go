package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
)

type WebhookRepo interface {
	ListActive(tenantID uuid.UUID, event string) ([]models.WebhookSubscription, error)
	ListByTenant(tenantID uuid.UUID) ([]models.WebhookSubscription, error)
	GetByID(id uuid.UUID) (*models.WebhookSubscription, error)
	Create(sub *models.WebhookSubscription) error
	Save(sub *models.WebhookSubscription) error
	Delete(id uuid.UUID) error
	LogDelivery(delivery *models.WebhookDelivery) error
	PurgeDeliveriesBefore(cutoff time.Time) (int64, error)
}

type webhookRepo struct {
	db *gorm.DB
}

func NewWebhookRepo(db *gorm.DB) WebhookRepo {
	return &webhookRepo{db: db}
}

// ListActive returns every active subscription for (tenant, event). An
// empty result is normal, not an error.
func (r *webhookRepo) ListActive(tenantID uuid.UUID, event string) ([]models.WebhookSubscription, error) {
	var subs []models.WebhookSubscription
	err := r.db.
		Where("tenant_id = ? AND event = ? AND active = true", tenantID, event).
		Find(&subs).Error
	return subs, err
}

func (r *webhookRepo) ListByTenant(tenantID uuid.UUID) ([]models.WebhookSubscription, error) {
	var subs []models.WebhookSubscription
	err := r.db.Where("tenant_id = ?", tenantID).Order("created_at DESC").Find(&subs).Error
	return subs, err
}

func (r *webhookRepo) GetByID(id uuid.UUID) (*models.WebhookSubscription, error) {
	var sub models.WebhookSubscription
	if err := r.db.First(&sub, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *webhookRepo) Create(sub *models.WebhookSubscription) error {
	return r.db.Create(sub).Error
}

func (r *webhookRepo) Save(sub *models.WebhookSubscription) error {
	return r.db.Save(sub).Error
}

func (r *webhookRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.WebhookSubscription{}, "id = ?", id).Error
}

func (r *webhookRepo) LogDelivery(delivery *models.WebhookDelivery) error {
	return r.db.Create(delivery).Error
}

func (r *webhookRepo) PurgeDeliveriesBefore(cutoff time.Time) (int64, error) {
	result := r.db.Where("delivered_at < ?", cutoff).Delete(&models.WebhookDelivery{})
	return result.RowsAffected, result.Error
}
