package maintenance

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/grupovitalis/connect-api/internal/core/audit"
	"github.com/grupovitalis/connect-api/internal/modules/connect/repositories"
)

const (
	// Webhook delivery rows older than this are purged nightly
	deliveryRetentionDays = 30

	// Audit logs are kept for one year
	auditRetentionDays = 365

	// Calls stuck in a live state longer than this are force-ended
	staleCallAge = 6 * time.Hour
)

// Scheduler runs the periodic housekeeping jobs
type Scheduler struct {
	cron     *cron.Cron
	calls    repositories.CallRepo
	webhooks repositories.WebhookRepo
	audits   *audit.Service
}

// NewScheduler creates the maintenance scheduler
func NewScheduler(calls repositories.CallRepo, webhooks repositories.WebhookRepo, audits *audit.Service) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		calls:    calls,
		webhooks: webhooks,
		audits:   audits,
	}
}

// Start registers and starts the housekeeping jobs
func (s *Scheduler) Start() error {
	log.Println("⏰ Starting maintenance scheduler...")

	// Purge old webhook delivery logs daily at 03:00
	if _, err := s.cron.AddFunc("0 0 3 * * *", s.purgeDeliveries); err != nil {
		return err
	}

	// Sweep calls stuck in a live state every 10 minutes
	if _, err := s.cron.AddFunc("0 */10 * * * *", s.sweepStaleCalls); err != nil {
		return err
	}

	// Trim audit logs weekly, Sunday 04:00
	if _, err := s.cron.AddFunc("0 0 4 * * 0", s.trimAuditLogs); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Maintenance scheduler started")
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("🛑 Maintenance scheduler stopped")
}

func (s *Scheduler) purgeDeliveries() {
	cutoff := time.Now().AddDate(0, 0, -deliveryRetentionDays)
	deleted, err := s.webhooks.PurgeDeliveriesBefore(cutoff)
	if err != nil {
		log.Printf("⚠️ Failed to purge webhook deliveries: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("🧹 Purged %d webhook delivery logs older than %d days", deleted, deliveryRetentionDays)
	}
}

func (s *Scheduler) sweepStaleCalls() {
	swept, err := s.calls.SweepStale(staleCallAge)
	if err != nil {
		log.Printf("⚠️ Failed to sweep stale calls: %v", err)
		return
	}
	if swept > 0 {
		log.Printf("🧹 Force-ended %d stale calls", swept)
	}
}

func (s *Scheduler) trimAuditLogs() {
	if err := s.audits.DeleteOldLogs(auditRetentionDays); err != nil {
		log.Printf("⚠️ Failed to trim audit logs: %v", err)
	}
}
