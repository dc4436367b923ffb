package services

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
	"github.com/grupovitalis/connect-api/internal/modules/connect/repositories"
)

// webhookEnvelope is the wire format posted to subscribers
type webhookEnvelope struct {
	Evento    string      `json:"evento"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// WebhookDispatcher fans events out to registered endpoints. Delivery is
// best-effort and at-most-once: one POST per subscriber, no retries, and a
// failed endpoint never affects the operation that produced the event.
type WebhookDispatcher struct {
	repo   repositories.WebhookRepo
	client *http.Client
	wg     sync.WaitGroup
}

func NewWebhookDispatcher(repo repositories.WebhookRepo) *WebhookDispatcher {
	return &WebhookDispatcher{
		repo: repo,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Dispatch sends the event to every active subscription of the tenant.
// Each endpoint gets its own goroutine so one slow subscriber cannot delay
// the others, but the call only returns after every attempt finished: the
// fan-out is bounded by the subscription count, nothing keeps running in
// the background afterwards.
func (d *WebhookDispatcher) Dispatch(tenantID uuid.UUID, event string, data interface{}) {
	subs, err := d.repo.ListActive(tenantID, event)
	if err != nil {
		log.Printf("⚠️ Failed to list webhook subscriptions for %s: %v", event, err)
		return
	}
	if len(subs) == 0 {
		return
	}

	envelope := webhookEnvelope{
		Evento:    event,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		log.Printf("⚠️ Failed to marshal webhook payload for %s: %v", event, err)
		return
	}

	var fanout sync.WaitGroup
	for _, sub := range subs {
		fanout.Add(1)
		d.wg.Add(1)
		go func(sub models.WebhookSubscription) {
			defer fanout.Done()
			defer d.wg.Done()
			d.deliver(sub, event, body)
		}(sub)
	}
	fanout.Wait()
}

// Wait blocks until in-flight deliveries finish. Used on shutdown.
func (d *WebhookDispatcher) Wait() {
	d.wg.Wait()
}

func (d *WebhookDispatcher) deliver(sub models.WebhookSubscription, event string, body []byte) {
	delivery := &models.WebhookDelivery{
		SubscriptionID: sub.ID,
		Event:          event,
		Payload:        datatypes.JSON(body),
	}

	req, err := http.NewRequest(http.MethodPost, sub.URL, bytes.NewReader(body))
	if err != nil {
		delivery.Error = err.Error()
		d.logDelivery(delivery)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Secret", sub.Secret)

	resp, err := d.client.Do(req)
	if err != nil {
		log.Printf("⚠️ Webhook delivery to %s failed: %v", sub.URL, err)
		delivery.Error = err.Error()
		d.logDelivery(delivery)
		return
	}
	defer resp.Body.Close()

	delivery.StatusCode = resp.StatusCode
	if resp.StatusCode >= 400 {
		log.Printf("⚠️ Webhook endpoint %s answered %d", sub.URL, resp.StatusCode)
	}
	d.logDelivery(delivery)
}

func (d *WebhookDispatcher) logDelivery(delivery *models.WebhookDelivery) {
	if err := d.repo.LogDelivery(delivery); err != nil {
		log.Printf("⚠️ Failed to record webhook delivery: %v", err)
	}
}
