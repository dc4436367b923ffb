package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grupovitalis/connect-api/internal/core/channel"
	"github.com/grupovitalis/connect-api/internal/core/sync"
	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
	"github.com/grupovitalis/connect-api/internal/modules/connect/repositories"
)

var (
	ErrInvalidKind  = errors.New("tipo de mensagem inválido")
	ErrEmptyMessage = errors.New("mensagem vazia")
)

// ConversationService owns the inbox: one conversation per patient, an
// append-only message sequence, and the change notifications that keep
// every open client converged.
type ConversationService struct {
	conversations repositories.ConversationRepo
	messages      repositories.MessageRepo
	patients      repositories.PatientRepo
	hub           *sync.Hub
	dispatcher    *WebhookDispatcher
	channel       *channel.Service
}

func NewConversationService(
	conversations repositories.ConversationRepo,
	messages repositories.MessageRepo,
	patients repositories.PatientRepo,
	hub *sync.Hub,
	dispatcher *WebhookDispatcher,
	channelSvc *channel.Service,
) *ConversationService {
	return &ConversationService{
		conversations: conversations,
		messages:      messages,
		patients:      patients,
		hub:           hub,
		dispatcher:    dispatcher,
		channel:       channelSvc,
	}
}

// LookupOrCreate returns the patient's single conversation, creating it on
// first contact.
func (s *ConversationService) LookupOrCreate(tenantID, patientID uuid.UUID) (*models.Conversation, error) {
	if _, err := s.patients.GetByID(patientID); err != nil {
		return nil, err
	}
	return s.conversations.LookupOrCreate(tenantID, patientID)
}

// Get returns a conversation by ID
func (s *ConversationService) Get(id uuid.UUID) (*models.Conversation, error) {
	return s.conversations.GetByID(id)
}

// ListMessages returns the full ordered message sequence, oldest first
func (s *ConversationService) ListMessages(conversationID uuid.UUID) ([]models.Message, error) {
	if _, err := s.conversations.GetByID(conversationID); err != nil {
		return nil, err
	}
	return s.messages.ListByConversation(conversationID)
}

// SendMessage appends a message, notifies sync subscribers and fires the
// message.created webhook. When the author is an attendant the text is also
// forwarded to the patient through the messaging channel.
func (s *ConversationService) SendMessage(conversationID uuid.UUID, authorRole, kind, body, mediaURL string) (*models.Message, error) {
	if kind == "" {
		kind = models.KindText
	}
	if !models.ValidKind(kind) {
		return nil, ErrInvalidKind
	}
	if body == "" && mediaURL == "" {
		return nil, ErrEmptyMessage
	}
	if authorRole != models.AuthorPatient && authorRole != models.AuthorAttendant {
		return nil, fmt.Errorf("papel de autor inválido: %s", authorRole)
	}

	conversation, err := s.conversations.GetByID(conversationID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ConversationID: conversationID,
		AuthorRole:     authorRole,
		Kind:           kind,
		Body:           body,
		MediaURL:       mediaURL,
	}
	if err := s.messages.Append(message); err != nil {
		return nil, err
	}

	s.hub.Publish(sync.MessagesTable, conversationID.String())
	s.dispatcher.Dispatch(conversation.TenantID, models.EventMessageCreated, message)

	if authorRole == models.AuthorAttendant && kind == models.KindText {
		s.forwardToPatient(conversation, body)
	}

	return message, nil
}

// HandleInbound receives a normalized channel message, resolves (or creates)
// the patient and their conversation, and appends the message.
func (s *ConversationService) HandleInbound(tenantID uuid.UUID, inbound channel.InboundMessage) error {
	patient, err := s.patients.GetByPhone(tenantID, inbound.Phone)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		name := inbound.SenderName
		if name == "" {
			name = inbound.Phone
		}
		patient = &models.Patient{
			TenantID: tenantID,
			Name:     name,
			Phone:    inbound.Phone,
		}
		if err := s.patients.Create(patient); err != nil {
			return fmt.Errorf("failed to create patient from inbound message: %w", err)
		}
		log.Printf("👤 New patient registered from channel: %s", name)
	} else if err != nil {
		return err
	}

	conversation, err := s.conversations.LookupOrCreate(tenantID, patient.ID)
	if err != nil {
		return err
	}

	_, err = s.SendMessage(conversation.ID, models.AuthorPatient, inbound.Kind, inbound.Body, inbound.MediaURL)
	return err
}

// SyncMessages long-polls the conversation through the push+poll
// reconciler: the current sequence is loaded up front, then a reconciler
// watch refetches on every change ping or poll tick until a genuinely
// newer sequence arrives or the window closes. changed reports whether the
// returned sequence differs from the initial one.
func (s *ConversationService) SyncMessages(ctx context.Context, conversationID uuid.UUID, window time.Duration) ([]models.Message, bool, error) {
	if _, err := s.conversations.GetByID(conversationID); err != nil {
		return nil, false, err
	}

	current, err := s.messages.ListByConversation(conversationID)
	if err != nil {
		return nil, false, err
	}

	snapshots := make(chan []models.Message, 8)
	source := sync.SourceFunc[[]models.Message](func(_ context.Context, id string) ([]models.Message, error) {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		return s.messages.ListByConversation(parsed)
	})
	reconciler := sync.NewReconciler(s.hub, source, sync.DefaultPollInterval,
		func(_ string, snapshot []models.Message) {
			select {
			case snapshots <- snapshot:
			default:
			}
		},
		func(id string, err error) {
			log.Printf("⚠️ Sync refetch failed for conversation %s: %v", id, err)
		},
	)

	watchCtx, cancel := context.WithTimeout(ctx, window)
	defer cancel()

	reconciler.Watch(watchCtx, conversationID.String())
	defer reconciler.Stop()

	for {
		select {
		case next := <-snapshots:
			// The watch primes with the unchanged sequence and the poll
			// tick refetches regardless of changes, so only a different
			// sequence ends the wait.
			if sequenceChanged(current, next) {
				return next, true, nil
			}
			current = next
		case <-watchCtx.Done():
			return current, false, nil
		}
	}
}

func sequenceChanged(before, after []models.Message) bool {
	if len(before) != len(after) {
		return true
	}
	if len(after) == 0 {
		return false
	}
	return before[len(before)-1].ID != after[len(after)-1].ID
}

// AssignAttendant sets the attendant responsible for the conversation
func (s *ConversationService) AssignAttendant(conversationID, attendantID uuid.UUID) error {
	if _, err := s.conversations.GetByID(conversationID); err != nil {
		return err
	}
	return s.conversations.AssignAttendant(conversationID, attendantID)
}

func (s *ConversationService) forwardToPatient(conversation *models.Conversation, body string) {
	if s.channel == nil || !s.channel.IsConnected() {
		return
	}

	patient, err := s.patients.GetByID(conversation.PatientID)
	if err != nil {
		log.Printf("⚠️ Failed to load patient for channel forward: %v", err)
		return
	}

	if err := s.channel.SendText(patient.Phone, body); err != nil {
		log.Printf("⚠️ Failed to forward message to %s: %v", patient.Phone, err)
	}
}
