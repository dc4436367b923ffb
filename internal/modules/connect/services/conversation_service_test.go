package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupovitalis/connect-api/internal/core/channel"
	"github.com/grupovitalis/connect-api/internal/core/sync"
	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
)

func newConversationServiceForTest() (*ConversationService, *fakePatientRepo, *sync.Hub) {
	patients := newFakePatientRepo()
	hub := sync.NewHub()
	dispatcher := NewWebhookDispatcher(&fakeWebhookRepo{})
	svc := NewConversationService(
		newFakeConversationRepo(), &fakeMessageRepo{}, patients,
		hub, dispatcher, nil,
	)
	return svc, patients, hub
}

func seedPatient(t *testing.T, patients *fakePatientRepo, tenantID uuid.UUID) *models.Patient {
	t.Helper()
	patient := &models.Patient{TenantID: tenantID, Name: "Lúcia", Phone: "5511999990000"}
	require.NoError(t, patients.Create(patient))
	return patient
}

func TestLookupOrCreateIsIdempotentPerPatient(t *testing.T) {
	svc, patients, _ := newConversationServiceForTest()
	tenantID := uuid.New()
	patient := seedPatient(t, patients, tenantID)

	first, err := svc.LookupOrCreate(tenantID, patient.ID)
	require.NoError(t, err)

	second, err := svc.LookupOrCreate(tenantID, patient.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestSendMessageAppendsAndOrders(t *testing.T) {
	svc, patients, _ := newConversationServiceForTest()
	tenantID := uuid.New()
	patient := seedPatient(t, patients, tenantID)

	conv, err := svc.LookupOrCreate(tenantID, patient.ID)
	require.NoError(t, err)

	_, err = svc.SendMessage(conv.ID, models.AuthorPatient, models.KindText, "Oi, queria um orçamento", "")
	require.NoError(t, err)
	_, err = svc.SendMessage(conv.ID, models.AuthorAttendant, models.KindText, "Claro! Qual procedimento?", "")
	require.NoError(t, err)

	messages, err := svc.ListMessages(conv.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, models.AuthorPatient, messages[0].AuthorRole)
	assert.Equal(t, models.AuthorAttendant, messages[1].AuthorRole)
}

func TestSendMessageValidation(t *testing.T) {
	svc, patients, _ := newConversationServiceForTest()
	tenantID := uuid.New()
	patient := seedPatient(t, patients, tenantID)

	conv, err := svc.LookupOrCreate(tenantID, patient.ID)
	require.NoError(t, err)

	_, err = svc.SendMessage(conv.ID, models.AuthorPatient, "video", "oi", "")
	assert.ErrorIs(t, err, ErrInvalidKind)

	_, err = svc.SendMessage(conv.ID, models.AuthorPatient, models.KindText, "", "")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = svc.SendMessage(conv.ID, "medico", models.KindText, "oi", "")
	assert.Error(t, err)
}

func TestSendMessageNotifiesSyncSubscribers(t *testing.T) {
	svc, patients, hub := newConversationServiceForTest()
	tenantID := uuid.New()
	patient := seedPatient(t, patients, tenantID)

	conv, err := svc.LookupOrCreate(tenantID, patient.ID)
	require.NoError(t, err)

	notify, cancel := hub.Subscribe(sync.MessagesTable, conv.ID.String())
	defer cancel()

	_, err = svc.SendMessage(conv.ID, models.AuthorPatient, models.KindText, "oi", "")
	require.NoError(t, err)

	select {
	case <-notify:
	case <-time.After(time.Second):
		t.Fatal("expected a sync ping after message append")
	}
}

func TestSyncMessagesUnblocksOnNewMessage(t *testing.T) {
	svc, patients, _ := newConversationServiceForTest()
	tenantID := uuid.New()
	patient := seedPatient(t, patients, tenantID)

	conv, err := svc.LookupOrCreate(tenantID, patient.ID)
	require.NoError(t, err)

	_, err = svc.SendMessage(conv.ID, models.AuthorPatient, models.KindText, "primeira", "")
	require.NoError(t, err)

	type result struct {
		messages []models.Message
		changed  bool
		err      error
	}
	done := make(chan result, 1)
	go func() {
		messages, changed, err := svc.SyncMessages(context.Background(), conv.ID, 5*time.Second)
		done <- result{messages, changed, err}
	}()

	// Give the watcher time to subscribe before publishing
	time.Sleep(50 * time.Millisecond)
	_, err = svc.SendMessage(conv.ID, models.AuthorPatient, models.KindText, "segunda", "")
	require.NoError(t, err)

	select {
	case res := <-done:
		require.NoError(t, res.err)
		assert.True(t, res.changed)
		require.Len(t, res.messages, 2)
		assert.Equal(t, "segunda", res.messages[1].Body)
	case <-time.After(2 * time.Second):
		t.Fatal("SyncMessages did not unblock after message append")
	}
}

func TestSyncMessagesTimesOutWithCurrentSequence(t *testing.T) {
	svc, patients, _ := newConversationServiceForTest()
	tenantID := uuid.New()
	patient := seedPatient(t, patients, tenantID)

	conv, err := svc.LookupOrCreate(tenantID, patient.ID)
	require.NoError(t, err)

	_, err = svc.SendMessage(conv.ID, models.AuthorPatient, models.KindText, "oi", "")
	require.NoError(t, err)

	messages, changed, err := svc.SyncMessages(context.Background(), conv.ID, 20*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, changed)
	require.Len(t, messages, 1)
	assert.Equal(t, "oi", messages[0].Body)
}

func TestHandleInboundCreatesPatientAndConversation(t *testing.T) {
	svc, patients, _ := newConversationServiceForTest()
	tenantID := uuid.New()

	err := svc.HandleInbound(tenantID, channel.InboundMessage{
		Phone:      "5511988887777",
		SenderName: "Carlos",
		Body:       "Boa tarde, vocês atendem convênio?",
		Kind:       models.KindText,
	})
	require.NoError(t, err)

	patient, err := patients.GetByPhone(tenantID, "5511988887777")
	require.NoError(t, err)
	assert.Equal(t, "Carlos", patient.Name)

	conv, err := svc.LookupOrCreate(tenantID, patient.ID)
	require.NoError(t, err)

	messages, err := svc.ListMessages(conv.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, models.AuthorPatient, messages[0].AuthorRole)
	assert.Equal(t, "Boa tarde, vocês atendem convênio?", messages[0].Body)
}

func TestHandleInboundReusesExistingPatient(t *testing.T) {
	svc, patients, _ := newConversationServiceForTest()
	tenantID := uuid.New()
	patient := seedPatient(t, patients, tenantID)

	err := svc.HandleInbound(tenantID, channel.InboundMessage{
		Phone: patient.Phone,
		Body:  "Olá de novo",
		Kind:  models.KindText,
	})
	require.NoError(t, err)

	all, err := patients.List(tenantID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAssignAttendant(t *testing.T) {
	svc, patients, _ := newConversationServiceForTest()
	tenantID := uuid.New()
	patient := seedPatient(t, patients, tenantID)

	conv, err := svc.LookupOrCreate(tenantID, patient.ID)
	require.NoError(t, err)

	attendantID := uuid.New()
	require.NoError(t, svc.AssignAttendant(conv.ID, attendantID))

	updated, err := svc.Get(conv.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.AttendantID)
	assert.Equal(t, attendantID, *updated.AttendantID)
}
