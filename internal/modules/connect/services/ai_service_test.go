package services

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/grupovitalis/connect-api/internal/core/llm"
	"github.com/grupovitalis/connect-api/internal/core/upload"
	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
)

type fakeLLMProvider struct {
	imageData []byte
	imageErr  error
}

func (f *fakeLLMProvider) GenerateResponse(context.Context, string, string) (string, error) {
	return "", nil
}

func (f *fakeLLMProvider) GenerateJSON(context.Context, string, string) (string, error) {
	return "{}", nil
}

func (f *fakeLLMProvider) GenerateImage(context.Context, string) ([]byte, error) {
	if f.imageErr != nil {
		return nil, f.imageErr
	}
	return f.imageData, nil
}

func (f *fakeLLMProvider) GetProviderName() string { return "fake" }

type fakeUploadProvider struct {
	uploaded []string
	deleted  []string
}

func (f *fakeUploadProvider) Upload(_ io.Reader, filename string, _ *upload.Options) (*upload.Result, error) {
	f.uploaded = append(f.uploaded, filename)
	return &upload.Result{
		URL:      "https://cdn.test/ai/" + filename,
		FileName: filename,
		Kind:     models.KindImage,
		PublicID: "ai/" + filename,
	}, nil
}

func (f *fakeUploadProvider) UploadMultipart(*multipart.FileHeader, *upload.Options) (*upload.Result, error) {
	return nil, errors.New("não utilizado")
}

func (f *fakeUploadProvider) Delete(publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

func (f *fakeUploadProvider) GetURL(publicID string) string { return "https://cdn.test/" + publicID }

func (f *fakeUploadProvider) GetProviderName() string { return "fake" }

func newAIServiceForTest(messages *fakeMessageRepo) (*AIService, *fakeConversationRepo, *fakeUploadProvider) {
	conversations := newFakeConversationRepo()
	uploads := &fakeUploadProvider{}
	svc := NewAIService(
		llm.NewServiceWithProvider(&fakeLLMProvider{imageData: []byte("png-bytes")}),
		messages,
		newFakeLeadRepo(),
		conversations,
		upload.NewServiceWithProvider(uploads),
	)
	return svc, conversations, uploads
}

func TestGenerateImageAppendsConversationMessage(t *testing.T) {
	messages := &fakeMessageRepo{}
	svc, conversations, uploads := newAIServiceForTest(messages)

	conv, err := conversations.LookupOrCreate(uuid.New(), uuid.New())
	require.NoError(t, err)

	message, err := svc.GenerateImage(context.Background(), conv.ID, "logo da clínica")
	require.NoError(t, err)

	assert.Equal(t, conv.ID, message.ConversationID)
	assert.Equal(t, models.AuthorAttendant, message.AuthorRole)
	assert.Equal(t, models.KindImage, message.Kind)
	assert.NotEmpty(t, message.MediaURL)

	stored, err := messages.ListByConversation(conv.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, message.MediaURL, stored[0].MediaURL)
	assert.Len(t, uploads.uploaded, 1)
	assert.Empty(t, uploads.deleted)
}

func TestGenerateImageDiscardsUploadWhenAppendFails(t *testing.T) {
	messages := &fakeMessageRepo{appendErr: errors.New("disco cheio")}
	svc, conversations, uploads := newAIServiceForTest(messages)

	conv, err := conversations.LookupOrCreate(uuid.New(), uuid.New())
	require.NoError(t, err)

	_, err = svc.GenerateImage(context.Background(), conv.ID, "logo da clínica")
	require.Error(t, err)

	// The stored file must not be orphaned after the failed append
	require.Len(t, uploads.uploaded, 1)
	require.Len(t, uploads.deleted, 1)
	assert.Contains(t, uploads.deleted[0], "ai/")
}

func TestGenerateImageUnknownConversation(t *testing.T) {
	svc, _, uploads := newAIServiceForTest(&fakeMessageRepo{})

	_, err := svc.GenerateImage(context.Background(), uuid.New(), "logo")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, uploads.uploaded)
}
