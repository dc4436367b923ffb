package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupovitalis/connect-api/internal/core/call"
	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
)

func newCallSessionsForTest() *call.Registry {
	return call.NewRegistry(&call.RingerFactory{
		Fallback: func() call.Ringer { return call.NewTwoToneRinger(call.DiscardToneOutput{}) },
	})
}

func newCallServiceForTest() (*CallService, *fakeConversationRepo) {
	calls := newFakeCallRepo()
	conversations := newFakeConversationRepo()
	dispatcher := NewWebhookDispatcher(&fakeWebhookRepo{})
	return NewCallService(calls, conversations, dispatcher, newCallSessionsForTest()), conversations
}

func startTestCall(t *testing.T, svc *CallService, conversations *fakeConversationRepo) *models.Call {
	t.Helper()
	tenantID := uuid.New()
	conv, err := conversations.LookupOrCreate(tenantID, uuid.New())
	require.NoError(t, err)

	call, err := svc.Start(tenantID, conv.ID, uuid.New())
	require.NoError(t, err)
	return call
}

func TestStartCallBeginsDialing(t *testing.T) {
	svc, conversations := newCallServiceForTest()

	call := startTestCall(t, svc, conversations)

	assert.Equal(t, models.CallDialing, call.Status)
	assert.Nil(t, call.StartedAt)
	assert.Nil(t, call.EndedAt)
}

func TestCallFullLifecycle(t *testing.T) {
	svc, conversations := newCallServiceForTest()
	call := startTestCall(t, svc, conversations)

	call, err := svc.UpdateStatus(call.ID, models.CallRinging)
	require.NoError(t, err)
	assert.Equal(t, models.CallRinging, call.Status)
	assert.Nil(t, call.StartedAt)

	call, err = svc.UpdateStatus(call.ID, models.CallInProgress)
	require.NoError(t, err)
	assert.NotNil(t, call.StartedAt)

	call, err = svc.UpdateStatus(call.ID, models.CallEnded)
	require.NoError(t, err)
	assert.NotNil(t, call.EndedAt)
}

func TestStartRefusesBusyAttendant(t *testing.T) {
	svc, conversations := newCallServiceForTest()

	tenantID := uuid.New()
	attendantID := uuid.New()
	conv, err := conversations.LookupOrCreate(tenantID, uuid.New())
	require.NoError(t, err)

	_, err = svc.Start(tenantID, conv.ID, attendantID)
	require.NoError(t, err)

	// Same attendant, second conversation: the call slot is taken
	other, err := conversations.LookupOrCreate(tenantID, uuid.New())
	require.NoError(t, err)
	_, err = svc.Start(tenantID, other.ID, attendantID)
	assert.ErrorIs(t, err, ErrAttendantBusy)

	// A different attendant is unaffected
	_, err = svc.Start(tenantID, other.ID, uuid.New())
	assert.NoError(t, err)
}

func TestAttendantFreeAgainAfterHangup(t *testing.T) {
	svc, conversations := newCallServiceForTest()

	tenantID := uuid.New()
	attendantID := uuid.New()
	conv, err := conversations.LookupOrCreate(tenantID, uuid.New())
	require.NoError(t, err)

	first, err := svc.Start(tenantID, conv.ID, attendantID)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(first.ID, models.CallEnded)
	require.NoError(t, err)

	second, err := svc.Start(tenantID, conv.ID, attendantID)
	require.NoError(t, err)
	assert.Equal(t, models.CallDialing, second.Status)
}

func TestCallInvalidTransitions(t *testing.T) {
	svc, conversations := newCallServiceForTest()
	call := startTestCall(t, svc, conversations)

	_, err := svc.UpdateStatus(call.ID, models.CallEnded)
	require.NoError(t, err)

	// encerrada is terminal
	_, err = svc.UpdateStatus(call.ID, models.CallInProgress)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = svc.UpdateStatus(call.ID, models.CallDialing)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCallRejectsUnknownStatus(t *testing.T) {
	svc, conversations := newCallServiceForTest()
	call := startTestCall(t, svc, conversations)

	_, err := svc.UpdateStatus(call.ID, "pausada")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestElapsedDerivedFromStartedAt(t *testing.T) {
	svc, conversations := newCallServiceForTest()

	base := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	call := startTestCall(t, svc, conversations)
	assert.Zero(t, svc.Elapsed(call))

	call, err := svc.UpdateStatus(call.ID, models.CallInProgress)
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(5 * time.Second) }
	assert.Equal(t, int64(5), svc.Elapsed(call))

	// Time jitter: the value is recomputed, never accumulated
	svc.now = func() time.Time { return base.Add(3 * time.Second) }
	assert.Equal(t, int64(3), svc.Elapsed(call))

	svc.now = func() time.Time { return base.Add(90 * time.Second) }
	view, err := svc.Get(call.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(90), view.ElapsedSeconds)
}

func TestElapsedFrozenAfterHangup(t *testing.T) {
	svc, conversations := newCallServiceForTest()

	base := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	call := startTestCall(t, svc, conversations)
	call, err := svc.UpdateStatus(call.ID, models.CallInProgress)
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(42 * time.Second) }
	call, err = svc.UpdateStatus(call.ID, models.CallEnded)
	require.NoError(t, err)

	// The clock keeps moving but the call is over
	svc.now = func() time.Time { return base.Add(10 * time.Minute) }
	assert.Equal(t, int64(42), svc.Elapsed(call))
}

func TestElapsedZeroWhenNeverAnswered(t *testing.T) {
	svc, conversations := newCallServiceForTest()
	call := startTestCall(t, svc, conversations)

	call, err := svc.UpdateStatus(call.ID, models.CallRinging)
	require.NoError(t, err)
	call, err = svc.UpdateStatus(call.ID, models.CallEnded)
	require.NoError(t, err)

	assert.Zero(t, svc.Elapsed(call))
}

func TestCallStatusChangeFiresWebhook(t *testing.T) {
	calls := newFakeCallRepo()
	conversations := newFakeConversationRepo()
	webhookRepo := &fakeWebhookRepo{}
	dispatcher := NewWebhookDispatcher(webhookRepo)
	svc := NewCallService(calls, conversations, dispatcher, newCallSessionsForTest())

	tenantID := uuid.New()
	require.NoError(t, webhookRepo.Create(&models.WebhookSubscription{
		TenantID: tenantID, Event: models.EventCallStatusChanged,
		URL: "http://127.0.0.1:1", Secret: "x", Active: true,
	}))

	conv, err := conversations.LookupOrCreate(tenantID, uuid.New())
	require.NoError(t, err)

	call, err := svc.Start(tenantID, conv.ID, uuid.New())
	require.NoError(t, err)
	_, err = svc.UpdateStatus(call.ID, models.CallEnded)
	require.NoError(t, err)
	dispatcher.Wait()

	assert.Len(t, webhookRepo.loggedDeliveries(), 2)
}
