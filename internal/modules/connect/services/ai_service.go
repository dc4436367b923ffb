package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/grupovitalis/connect-api/internal/core/llm"
	"github.com/grupovitalis/connect-api/internal/core/upload"
	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
	"github.com/grupovitalis/connect-api/internal/modules/connect/repositories"
)

// maxTranscriptMessages caps how much history is sent to the model
const maxTranscriptMessages = 40

// AIService backs the assist features: intent analysis, reply suggestions,
// funnel forecasts and image generation. All of it is advisory; failures
// here never touch conversation or funnel state.
type AIService struct {
	llm           *llm.Service
	messages      repositories.MessageRepo
	leads         repositories.LeadRepo
	conversations repositories.ConversationRepo
	uploads       *upload.Service
}

func NewAIService(llmSvc *llm.Service, messages repositories.MessageRepo, leads repositories.LeadRepo, conversations repositories.ConversationRepo, uploads *upload.Service) *AIService {
	return &AIService{
		llm:           llmSvc,
		messages:      messages,
		leads:         leads,
		conversations: conversations,
		uploads:       uploads,
	}
}

// AnalyzeIntent classifies what the patient wants from the conversation
func (s *AIService) AnalyzeIntent(ctx context.Context, conversationID uuid.UUID) (*llm.IntentResult, error) {
	transcript, err := s.loadTranscript(conversationID)
	if err != nil {
		return nil, err
	}

	system, user := llm.BuildIntentPrompt(transcript)

	var result llm.IntentResult
	if err := s.llm.GenerateStructured(ctx, system, user, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// SuggestReplies returns three candidate responses for the attendant
func (s *AIService) SuggestReplies(ctx context.Context, conversationID uuid.UUID) ([]string, error) {
	transcript, err := s.loadTranscript(conversationID)
	if err != nil {
		return nil, err
	}

	system, user := llm.BuildSuggestionsPrompt(transcript)

	var result llm.SuggestionsResult
	if err := s.llm.GenerateStructured(ctx, system, user, &result); err != nil {
		return nil, err
	}

	// The prompt asks for exactly three; trim in case the model rambles
	if len(result.Sugestoes) > 3 {
		result.Sugestoes = result.Sugestoes[:3]
	}

	return result.Sugestoes, nil
}

// ForecastLead estimates closing probability for an open negotiation
func (s *AIService) ForecastLead(ctx context.Context, leadID uuid.UUID) (*llm.ForecastResult, error) {
	lead, err := s.leads.GetByID(leadID)
	if err != nil {
		return nil, err
	}

	// The negotiation history lives in the patient's single conversation
	var transcript []llm.TranscriptEntry
	if conversation, err := s.conversations.LookupOrCreate(lead.TenantID, lead.PatientID); err == nil {
		if entries, err := s.loadTranscript(conversation.ID); err == nil {
			transcript = entries
		}
	}

	system, user := llm.BuildForecastPrompt(lead.Service, lead.QuotedValue, transcript)

	var result llm.ForecastResult
	if err := s.llm.GenerateStructured(ctx, system, user, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// GenerateImage renders an image, stores it as an attachment and appends
// it to the conversation as an attendant image message. The stored file is
// removed again when the append fails, so no orphan uploads remain.
func (s *AIService) GenerateImage(ctx context.Context, conversationID uuid.UUID, prompt string) (*models.Message, error) {
	if _, err := s.conversations.GetByID(conversationID); err != nil {
		return nil, err
	}

	data, err := s.llm.GenerateImage(ctx, prompt)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("ai_%d.png", time.Now().Unix())
	result, err := s.uploads.Upload(bytes.NewReader(data), filename, &upload.Options{
		Folder: "ai",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store generated image: %w", err)
	}

	message := &models.Message{
		ConversationID: conversationID,
		AuthorRole:     models.AuthorAttendant,
		Kind:           models.KindImage,
		MediaURL:       result.URL,
	}
	if err := s.messages.Append(message); err != nil {
		s.DiscardImage(result.PublicID)
		return nil, err
	}

	return message, nil
}

// DiscardImage removes a previously stored generated image (compensation
// path when the caller fails after upload)
func (s *AIService) DiscardImage(publicID string) {
	if err := s.uploads.Delete(publicID); err != nil {
		log.Printf("⚠️ Failed to discard generated image %s: %v", publicID, err)
	}
}

func (s *AIService) loadTranscript(conversationID uuid.UUID) ([]llm.TranscriptEntry, error) {
	messages, err := s.messages.ListByConversation(conversationID)
	if err != nil {
		return nil, err
	}
	if len(messages) > maxTranscriptMessages {
		messages = messages[len(messages)-maxTranscriptMessages:]
	}

	transcript := make([]llm.TranscriptEntry, 0, len(messages))
	for _, m := range messages {
		if m.Kind != models.KindText {
			continue
		}
		transcript = append(transcript, llm.TranscriptEntry{
			Author: m.AuthorRole,
			Body:   m.Body,
		})
	}
	return transcript, nil
}
