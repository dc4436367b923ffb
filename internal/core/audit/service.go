package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service provides audit logging functionality
type Service struct {
	db *gorm.DB
}

// NewService creates a new audit service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Log creates a new audit log entry
func (s *Service) Log(ctx context.Context, entry *AuditLog) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

// LogAction creates an audit log with basic action information
func (s *Service) LogAction(ctx context.Context, attendantID, tenantID uuid.UUID, action, entity, entityID string) error {
	return s.Log(ctx, &AuditLog{
		AttendantID: attendantID,
		TenantID:    tenantID,
		Action:      action,
		Entity:      entity,
		EntityID:    entityID,
	})
}

// LogChange creates an audit log tracking a change (create, update, delete)
func (s *Service) LogChange(ctx context.Context, attendantID, tenantID uuid.UUID, action, entity, entityID string, oldValue, newValue interface{}) error {
	return s.LogChangeWithDescription(ctx, attendantID, tenantID, action, entity, entityID, oldValue, newValue, "")
}

// LogChangeWithDescription records a change together with a free-form
// justification, e.g. the note required when a closed negotiation is
// reopened.
func (s *Service) LogChangeWithDescription(ctx context.Context, attendantID, tenantID uuid.UUID, action, entity, entityID string, oldValue, newValue interface{}, description string) error {
	oldJSON, err := toJSON(oldValue)
	if err != nil {
		log.Printf("Warning: failed to serialize old value: %v", err)
	}

	newJSON, err := toJSON(newValue)
	if err != nil {
		log.Printf("Warning: failed to serialize new value: %v", err)
	}

	return s.Log(ctx, &AuditLog{
		AttendantID: attendantID,
		TenantID:    tenantID,
		Action:      action,
		Entity:      entity,
		EntityID:    entityID,
		OldValue:    oldJSON,
		NewValue:    newJSON,
		Description: description,
	})
}

// GetLogs retrieves audit logs with filtering
func (s *Service) GetLogs(filter Filter) (*LogsResponse, error) {
	query := s.db.Model(&AuditLog{})

	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.AttendantID != nil {
		query = query.Where("attendant_id = ?", *filter.AttendantID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.Entity != "" {
		query = query.Where("entity = ?", filter.Entity)
	}
	if filter.EntityID != "" {
		query = query.Where("entity_id = ?", filter.EntityID)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count audit logs: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}

	offset := (filter.Page - 1) * filter.PageSize

	var logs []AuditLog
	if err := query.
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to get audit logs: %w", err)
	}

	totalPages := int(totalCount) / filter.PageSize
	if int(totalCount)%filter.PageSize > 0 {
		totalPages++
	}

	return &LogsResponse{
		Logs:       logs,
		TotalCount: totalCount,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// GetEntityHistory retrieves all changes for a specific entity
func (s *Service) GetEntityHistory(tenantID uuid.UUID, entity, entityID string) ([]AuditLog, error) {
	var logs []AuditLog
	err := s.db.Where("tenant_id = ? AND entity = ? AND entity_id = ?", tenantID, entity, entityID).
		Order("created_at DESC").
		Find(&logs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get entity history: %w", err)
	}

	return logs, nil
}

// DeleteOldLogs deletes audit logs older than a certain number of days.
// Used by the retention cron.
func (s *Service) DeleteOldLogs(daysToKeep int) error {
	if daysToKeep < 1 {
		return fmt.Errorf("daysToKeep must be at least 1")
	}

	cutoffDate := s.db.NowFunc().AddDate(0, 0, -daysToKeep)

	result := s.db.Where("created_at < ?", cutoffDate).Delete(&AuditLog{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete old audit logs: %w", result.Error)
	}

	log.Printf("Deleted %d old audit logs (older than %d days)", result.RowsAffected, daysToKeep)
	return nil
}

func toJSON(value interface{}) (datatypes.JSON, error) {
	if value == nil {
		return nil, nil
	}

	bytes, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	return datatypes.JSON(bytes), nil
}
