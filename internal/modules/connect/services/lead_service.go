package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/grupovitalis/connect-api/internal/core/audit"
	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
	"github.com/grupovitalis/connect-api/internal/modules/connect/repositories"
)

var (
	ErrLeadAlreadyActive = errors.New("paciente já possui uma negociação em aberto")
	ErrLeadClosed        = errors.New("negociação já encerrada")
	ErrLeadNotClosed     = errors.New("negociação não está encerrada")
	ErrLossReasonMissing = errors.New("motivo da perda é obrigatório")
	ErrServiceMissing    = errors.New("serviço é obrigatório")
	ErrReopenNoteMissing = errors.New("justificativa da reabertura é obrigatória")
)

// LeadService drives the sales funnel: negociando → ganho | perdido, with
// reopen bringing a closed lead back to negociando. Every stage change is
// audited and announced via webhook.
type LeadService struct {
	leads      repositories.LeadRepo
	dispatcher *WebhookDispatcher
	audits     *audit.Service
	now        func() time.Time
}

func NewLeadService(leads repositories.LeadRepo, dispatcher *WebhookDispatcher, audits *audit.Service) *LeadService {
	return &LeadService{
		leads:      leads,
		dispatcher: dispatcher,
		audits:     audits,
		now:        time.Now,
	}
}

// Open starts a negotiation. A patient can only have one active lead; a
// second open attempt is rejected.
func (s *LeadService) Open(tenantID, patientID, attendantID uuid.UUID, service string, quotedValue float64) (*models.Lead, error) {
	if service == "" {
		return nil, ErrServiceMissing
	}

	existing, err := s.leads.GetActiveByPatient(patientID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrLeadAlreadyActive
	}

	lead := &models.Lead{
		TenantID:    tenantID,
		PatientID:   patientID,
		AttendantID: attendantID,
		Service:     service,
		QuotedValue: quotedValue,
		Stage:       models.StageNegotiating,
		Active:      true,
	}
	if err := s.leads.Create(lead); err != nil {
		return nil, err
	}

	s.announce(attendantID, "create", "", nil, lead)
	return lead, nil
}

// Win closes the lead as ganho, recording the final value and payment method
func (s *LeadService) Win(id, attendantID uuid.UUID, finalValue float64, paymentMethod string) (*models.Lead, error) {
	lead, err := s.leads.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lead.Stage != models.StageNegotiating {
		return nil, ErrLeadClosed
	}

	before := *lead
	now := s.now()

	lead.Stage = models.StageWon
	lead.FinalValue = &finalValue
	lead.PaymentMethod = paymentMethod
	lead.ClosedAt = &now
	lead.Active = false

	if err := s.leads.Save(lead); err != nil {
		return nil, err
	}

	s.announce(attendantID, "win", "", &before, lead)
	return lead, nil
}

// Lose closes the lead as perdido. The loss reason is mandatory.
func (s *LeadService) Lose(id, attendantID uuid.UUID, reason string) (*models.Lead, error) {
	if reason == "" {
		return nil, ErrLossReasonMissing
	}

	lead, err := s.leads.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lead.Stage != models.StageNegotiating {
		return nil, ErrLeadClosed
	}

	before := *lead
	now := s.now()

	lead.Stage = models.StageLost
	lead.LossReason = reason
	lead.ClosedAt = &now
	lead.Active = false

	if err := s.leads.Save(lead); err != nil {
		return nil, err
	}

	s.announce(attendantID, "lose", "", &before, lead)
	return lead, nil
}

// Reopen puts a closed lead back into negociando, clearing every closing
// field. The justification note is mandatory and lands in the audit trail.
// Rejected when the patient opened another active lead meanwhile.
func (s *LeadService) Reopen(id, attendantID uuid.UUID, note string) (*models.Lead, error) {
	if note == "" {
		return nil, ErrReopenNoteMissing
	}

	lead, err := s.leads.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lead.Stage == models.StageNegotiating {
		return nil, ErrLeadNotClosed
	}

	active, err := s.leads.GetActiveByPatient(lead.PatientID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrLeadAlreadyActive
	}

	before := *lead

	lead.Stage = models.StageNegotiating
	lead.LossReason = ""
	lead.FinalValue = nil
	lead.PaymentMethod = ""
	lead.ClosedAt = nil
	lead.Active = true

	if err := s.leads.Save(lead); err != nil {
		return nil, err
	}

	s.announce(attendantID, "reopen", note, &before, lead)
	return lead, nil
}

// Get returns a lead by ID
func (s *LeadService) Get(id uuid.UUID) (*models.Lead, error) {
	return s.leads.GetByID(id)
}

// List returns leads matching the filter
func (s *LeadService) List(filter repositories.LeadFilter) ([]models.Lead, error) {
	return s.leads.List(filter)
}

func (s *LeadService) announce(attendantID uuid.UUID, action, note string, before, after *models.Lead) {
	s.dispatcher.Dispatch(after.TenantID, models.EventLeadStageChanged, after)

	if s.audits == nil {
		return
	}
	var old interface{}
	if before != nil {
		old = before
	}
	if err := s.audits.LogChangeWithDescription(context.Background(), attendantID, after.TenantID, action, "lead", after.ID.String(), old, after, note); err != nil {
		// Audit failure never blocks the funnel operation
		return
	}
}
