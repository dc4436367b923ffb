package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/grupovitalis/connect-api/internal/core/call"
	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
	"github.com/grupovitalis/connect-api/internal/modules/connect/repositories"
)

var (
	ErrInvalidTransition = errors.New("transição de status de chamada inválida")
	ErrAttendantBusy     = errors.New("atendente já está em uma chamada ativa")
)

// validCallTransitions encodes the one-way life of a call. A call never
// moves backwards and never leaves encerrada.
var validCallTransitions = map[string][]string{
	models.CallDialing:    {models.CallRinging, models.CallInProgress, models.CallEnded},
	models.CallRinging:    {models.CallInProgress, models.CallEnded},
	models.CallInProgress: {models.CallEnded},
	models.CallEnded:      {},
}

// CallView is a call plus its derived elapsed seconds
type CallView struct {
	models.Call
	ElapsedSeconds int64 `json:"elapsed_seconds"`
}

// CallService owns the persisted call records. Elapsed time is always
// recomputed from started_at, never accumulated.
type CallService struct {
	calls         repositories.CallRepo
	conversations repositories.ConversationRepo
	dispatcher    *WebhookDispatcher
	sessions      *call.Registry
	now           func() time.Time
}

func NewCallService(calls repositories.CallRepo, conversations repositories.ConversationRepo, dispatcher *WebhookDispatcher, sessions *call.Registry) *CallService {
	return &CallService{
		calls:         calls,
		conversations: conversations,
		dispatcher:    dispatcher,
		sessions:      sessions,
		now:           time.Now,
	}
}

// Start creates a call in discando and announces it. The attendant's call
// slot is claimed first, so an attendant already on a call is refused
// before anything is written.
func (s *CallService) Start(tenantID, conversationID, attendantID uuid.UUID) (*models.Call, error) {
	conversation, err := s.conversations.GetByID(conversationID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Dial(attendantID.String()); err != nil {
		if errors.Is(err, call.ErrCallInProgress) {
			return nil, ErrAttendantBusy
		}
		return nil, err
	}

	rec := &models.Call{
		TenantID:       tenantID,
		ConversationID: conversationID,
		PatientID:      conversation.PatientID,
		AttendantID:    attendantID,
		Status:         models.CallDialing,
	}
	if err := s.calls.Create(rec); err != nil {
		s.sessions.Hangup(attendantID.String())
		return nil, err
	}

	s.dispatcher.Dispatch(tenantID, models.EventCallStatusChanged, rec)
	return rec, nil
}

// UpdateStatus applies a status transition. Entering em_andamento stamps
// started_at; entering encerrada stamps ended_at.
func (s *CallService) UpdateStatus(id uuid.UUID, newStatus string) (*models.Call, error) {
	if !models.ValidCallStatus(newStatus) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTransition, newStatus)
	}

	call, err := s.calls.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(call.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, call.Status, newStatus)
	}

	now := s.now()
	call.Status = newStatus
	switch newStatus {
	case models.CallInProgress:
		call.StartedAt = &now
	case models.CallEnded:
		call.EndedAt = &now
	}

	if err := s.calls.Save(call); err != nil {
		return nil, err
	}

	// Keep the attendant's in-memory session in step with the record:
	// answering stops the ringing indicator, hanging up frees the slot.
	switch newStatus {
	case models.CallInProgress:
		if err := s.sessions.Answer(call.AttendantID.String()); err != nil {
			log.Printf("⚠️ Call session out of step for attendant %s: %v", call.AttendantID, err)
		}
	case models.CallEnded:
		s.sessions.Hangup(call.AttendantID.String())
	}

	s.dispatcher.Dispatch(call.TenantID, models.EventCallStatusChanged, call)
	return call, nil
}

// Get returns the call with its derived elapsed time
func (s *CallService) Get(id uuid.UUID) (*CallView, error) {
	call, err := s.calls.GetByID(id)
	if err != nil {
		return nil, err
	}

	return &CallView{
		Call:           *call,
		ElapsedSeconds: s.Elapsed(call),
	}, nil
}

// Elapsed derives the call duration in whole seconds. Zero unless the call
// reached em_andamento; frozen at ended_at - started_at once encerrada.
func (s *CallService) Elapsed(call *models.Call) int64 {
	if call.StartedAt == nil {
		return 0
	}

	end := s.now()
	if call.Status == models.CallEnded {
		if call.EndedAt == nil {
			return 0
		}
		end = *call.EndedAt
	}

	elapsed := end.Sub(*call.StartedAt)
	if elapsed < 0 {
		return 0
	}
	return int64(elapsed / time.Second)
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range validCallTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
