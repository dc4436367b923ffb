package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
)

func newLeadServiceForTest() (*LeadService, *fakeLeadRepo) {
	repo := newFakeLeadRepo()
	dispatcher := NewWebhookDispatcher(&fakeWebhookRepo{})
	svc := NewLeadService(repo, dispatcher, nil)
	return svc, repo
}

func TestOpenLead(t *testing.T) {
	svc, _ := newLeadServiceForTest()
	tenantID, patientID, attendantID := uuid.New(), uuid.New(), uuid.New()

	lead, err := svc.Open(tenantID, patientID, attendantID, "Rinoplastia", 12000)
	require.NoError(t, err)

	assert.Equal(t, models.StageNegotiating, lead.Stage)
	assert.True(t, lead.Active)
	assert.Equal(t, "Rinoplastia", lead.Service)
	assert.Equal(t, 12000.0, lead.QuotedValue)
	assert.Nil(t, lead.ClosedAt)
}

func TestOpenLeadRequiresService(t *testing.T) {
	svc, _ := newLeadServiceForTest()

	_, err := svc.Open(uuid.New(), uuid.New(), uuid.New(), "", 100)
	assert.ErrorIs(t, err, ErrServiceMissing)
}

func TestOpenSecondActiveLeadRejected(t *testing.T) {
	svc, _ := newLeadServiceForTest()
	tenantID, patientID := uuid.New(), uuid.New()

	_, err := svc.Open(tenantID, patientID, uuid.New(), "Botox", 800)
	require.NoError(t, err)

	_, err = svc.Open(tenantID, patientID, uuid.New(), "Preenchimento", 1500)
	assert.ErrorIs(t, err, ErrLeadAlreadyActive)
}

func TestWinLead(t *testing.T) {
	svc, _ := newLeadServiceForTest()
	attendantID := uuid.New()

	lead, err := svc.Open(uuid.New(), uuid.New(), attendantID, "Rinoplastia", 12000)
	require.NoError(t, err)

	won, err := svc.Win(lead.ID, attendantID, 11000, "pix")
	require.NoError(t, err)

	assert.Equal(t, models.StageWon, won.Stage)
	assert.False(t, won.Active)
	require.NotNil(t, won.FinalValue)
	assert.Equal(t, 11000.0, *won.FinalValue)
	assert.Equal(t, "pix", won.PaymentMethod)
	assert.NotNil(t, won.ClosedAt)
}

func TestLoseLeadRequiresReason(t *testing.T) {
	svc, _ := newLeadServiceForTest()
	attendantID := uuid.New()

	lead, err := svc.Open(uuid.New(), uuid.New(), attendantID, "Botox", 800)
	require.NoError(t, err)

	_, err = svc.Lose(lead.ID, attendantID, "")
	assert.ErrorIs(t, err, ErrLossReasonMissing)

	lost, err := svc.Lose(lead.ID, attendantID, "preço")
	require.NoError(t, err)
	assert.Equal(t, models.StageLost, lost.Stage)
	assert.Equal(t, "preço", lost.LossReason)
	assert.False(t, lost.Active)
	assert.NotNil(t, lost.ClosedAt)
}

func TestWinClosedLeadRejected(t *testing.T) {
	svc, _ := newLeadServiceForTest()
	attendantID := uuid.New()

	lead, err := svc.Open(uuid.New(), uuid.New(), attendantID, "Botox", 800)
	require.NoError(t, err)

	_, err = svc.Lose(lead.ID, attendantID, "desistiu")
	require.NoError(t, err)

	_, err = svc.Win(lead.ID, attendantID, 800, "pix")
	assert.ErrorIs(t, err, ErrLeadClosed)
}

func TestReopenClearsClosingFields(t *testing.T) {
	svc, _ := newLeadServiceForTest()
	attendantID := uuid.New()

	lead, err := svc.Open(uuid.New(), uuid.New(), attendantID, "Rinoplastia", 12000)
	require.NoError(t, err)

	_, err = svc.Win(lead.ID, attendantID, 11000, "cartão")
	require.NoError(t, err)

	reopened, err := svc.Reopen(lead.ID, attendantID, "paciente pediu novo orçamento")
	require.NoError(t, err)

	assert.Equal(t, models.StageNegotiating, reopened.Stage)
	assert.True(t, reopened.Active)
	assert.Nil(t, reopened.FinalValue)
	assert.Empty(t, reopened.PaymentMethod)
	assert.Empty(t, reopened.LossReason)
	assert.Nil(t, reopened.ClosedAt)
}

// A patient loses a negotiation, comes back later, and the attendant reopens
// the original lead instead of creating a duplicate.
func TestLostLeadCanBeReopenedAfterPatientReturns(t *testing.T) {
	svc, _ := newLeadServiceForTest()
	tenantID, patientID, attendantID := uuid.New(), uuid.New(), uuid.New()

	lead, err := svc.Open(tenantID, patientID, attendantID, "Mamoplastia", 18000)
	require.NoError(t, err)

	_, err = svc.Lose(lead.ID, attendantID, "vai pensar")
	require.NoError(t, err)

	// Months later the patient writes again
	svc.now = func() time.Time { return time.Now().AddDate(0, 2, 0) }

	reopened, err := svc.Reopen(lead.ID, attendantID, "paciente retornou o contato")
	require.NoError(t, err)
	assert.Equal(t, models.StageNegotiating, reopened.Stage)
	assert.Empty(t, reopened.LossReason)

	// And can now be won
	won, err := svc.Win(reopened.ID, attendantID, 17500, "pix")
	require.NoError(t, err)
	assert.Equal(t, models.StageWon, won.Stage)
}

func TestReopenRejectedWhileAnotherLeadActive(t *testing.T) {
	svc, _ := newLeadServiceForTest()
	tenantID, patientID, attendantID := uuid.New(), uuid.New(), uuid.New()

	first, err := svc.Open(tenantID, patientID, attendantID, "Botox", 800)
	require.NoError(t, err)
	_, err = svc.Lose(first.ID, attendantID, "preço")
	require.NoError(t, err)

	_, err = svc.Open(tenantID, patientID, attendantID, "Preenchimento", 1500)
	require.NoError(t, err)

	_, err = svc.Reopen(first.ID, attendantID, "tentar de novo")
	assert.ErrorIs(t, err, ErrLeadAlreadyActive)
}

func TestReopenNegotiatingLeadRejected(t *testing.T) {
	svc, _ := newLeadServiceForTest()
	attendantID := uuid.New()

	lead, err := svc.Open(uuid.New(), uuid.New(), attendantID, "Botox", 800)
	require.NoError(t, err)

	_, err = svc.Reopen(lead.ID, attendantID, "nota qualquer")
	assert.ErrorIs(t, err, ErrLeadNotClosed)
}

func TestReopenRequiresNote(t *testing.T) {
	svc, _ := newLeadServiceForTest()
	attendantID := uuid.New()

	lead, err := svc.Open(uuid.New(), uuid.New(), attendantID, "Botox", 800)
	require.NoError(t, err)
	_, err = svc.Lose(lead.ID, attendantID, "preço")
	require.NoError(t, err)

	_, err = svc.Reopen(lead.ID, attendantID, "")
	assert.ErrorIs(t, err, ErrReopenNoteMissing)

	// The lead stays closed
	current, err := svc.Get(lead.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StageLost, current.Stage)
}

func TestLeadStageChangeFiresWebhook(t *testing.T) {
	repo := newFakeLeadRepo()
	webhookRepo := &fakeWebhookRepo{}
	dispatcher := NewWebhookDispatcher(webhookRepo)
	svc := NewLeadService(repo, dispatcher, nil)

	tenantID, attendantID := uuid.New(), uuid.New()
	require.NoError(t, webhookRepo.Create(&models.WebhookSubscription{
		TenantID: tenantID, Event: models.EventLeadStageChanged,
		URL: "http://127.0.0.1:1", Secret: "x", Active: true,
	}))

	lead, err := svc.Open(tenantID, uuid.New(), attendantID, "Botox", 800)
	require.NoError(t, err)
	_, err = svc.Win(lead.ID, attendantID, 800, "pix")
	require.NoError(t, err)
	dispatcher.Wait()

	// Both the open and the win produced a delivery attempt
	assert.Len(t, webhookRepo.loggedDeliveries(), 2)
}
