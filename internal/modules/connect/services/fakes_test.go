package services

import (
	gosync "sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
	"github.com/grupovitalis/connect-api/internal/modules/connect/repositories"
)

// In-memory repository fakes shared by the service tests.

type fakeWebhookRepo struct {
	mu         gosync.Mutex
	subs       []models.WebhookSubscription
	deliveries []models.WebhookDelivery
}

func (r *fakeWebhookRepo) ListActive(tenantID uuid.UUID, event string) ([]models.WebhookSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.WebhookSubscription
	for _, s := range r.subs {
		if s.TenantID == tenantID && s.Event == event && s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeWebhookRepo) ListByTenant(tenantID uuid.UUID) ([]models.WebhookSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.WebhookSubscription(nil), r.subs...), nil
}

func (r *fakeWebhookRepo) GetByID(id uuid.UUID) (*models.WebhookSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.subs {
		if r.subs[i].ID == id {
			return &r.subs[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeWebhookRepo) Create(sub *models.WebhookSubscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	r.subs = append(r.subs, *sub)
	return nil
}

func (r *fakeWebhookRepo) Save(sub *models.WebhookSubscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.subs {
		if r.subs[i].ID == sub.ID {
			r.subs[i] = *sub
		}
	}
	return nil
}

func (r *fakeWebhookRepo) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.subs[:0]
	for _, s := range r.subs {
		if s.ID != id {
			out = append(out, s)
		}
	}
	r.subs = out
	return nil
}

func (r *fakeWebhookRepo) LogDelivery(delivery *models.WebhookDelivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = append(r.deliveries, *delivery)
	return nil
}

func (r *fakeWebhookRepo) PurgeDeliveriesBefore(cutoff time.Time) (int64, error) {
	return 0, nil
}

func (r *fakeWebhookRepo) loggedDeliveries() []models.WebhookDelivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.WebhookDelivery(nil), r.deliveries...)
}

var _ repositories.WebhookRepo = (*fakeWebhookRepo)(nil)

type fakeLeadRepo struct {
	mu    gosync.Mutex
	leads map[uuid.UUID]models.Lead
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: make(map[uuid.UUID]models.Lead)}
}

func (r *fakeLeadRepo) Create(lead *models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	r.leads[lead.ID] = *lead
	return nil
}

func (r *fakeLeadRepo) GetByID(id uuid.UUID) (*models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &lead, nil
}

func (r *fakeLeadRepo) GetActiveByPatient(patientID uuid.UUID) (*models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, lead := range r.leads {
		if lead.PatientID == patientID && lead.Active {
			l := lead
			return &l, nil
		}
	}
	return nil, nil
}

func (r *fakeLeadRepo) List(filter repositories.LeadFilter) ([]models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Lead
	for _, lead := range r.leads {
		if lead.TenantID != filter.TenantID {
			continue
		}
		if filter.Stage != "" && lead.Stage != filter.Stage {
			continue
		}
		out = append(out, lead)
	}
	return out, nil
}

func (r *fakeLeadRepo) Save(lead *models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads[lead.ID] = *lead
	return nil
}

var _ repositories.LeadRepo = (*fakeLeadRepo)(nil)

type fakeCallRepo struct {
	mu    gosync.Mutex
	calls map[uuid.UUID]models.Call
}

func newFakeCallRepo() *fakeCallRepo {
	return &fakeCallRepo{calls: make(map[uuid.UUID]models.Call)}
}

func (r *fakeCallRepo) Create(call *models.Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if call.ID == uuid.Nil {
		call.ID = uuid.New()
	}
	r.calls[call.ID] = *call
	return nil
}

func (r *fakeCallRepo) GetByID(id uuid.UUID) (*models.Call, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	call, ok := r.calls[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &call, nil
}

func (r *fakeCallRepo) Save(call *models.Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[call.ID] = *call
	return nil
}

func (r *fakeCallRepo) SweepStale(olderThan time.Duration) (int64, error) {
	return 0, nil
}

var _ repositories.CallRepo = (*fakeCallRepo)(nil)

type fakeConversationRepo struct {
	mu            gosync.Mutex
	conversations map[uuid.UUID]models.Conversation
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{conversations: make(map[uuid.UUID]models.Conversation)}
}

func (r *fakeConversationRepo) LookupOrCreate(tenantID, patientID uuid.UUID) (*models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.conversations {
		if c.PatientID == patientID {
			conv := c
			return &conv, nil
		}
	}
	conv := models.Conversation{
		ID:        uuid.New(),
		TenantID:  tenantID,
		PatientID: patientID,
	}
	r.conversations[conv.ID] = conv
	return &conv, nil
}

func (r *fakeConversationRepo) GetByID(id uuid.UUID) (*models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.conversations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &conv, nil
}

func (r *fakeConversationRepo) AssignAttendant(id, attendantID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.conversations[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	conv.AttendantID = &attendantID
	r.conversations[id] = conv
	return nil
}

var _ repositories.ConversationRepo = (*fakeConversationRepo)(nil)

type fakeMessageRepo struct {
	mu        gosync.Mutex
	messages  []models.Message
	appendErr error
}

func (r *fakeMessageRepo) Append(message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeMessageRepo) ListByConversation(conversationID uuid.UUID) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) GetByID(id uuid.UUID) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.messages {
		if r.messages[i].ID == id {
			return &r.messages[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

var _ repositories.MessageRepo = (*fakeMessageRepo)(nil)

type fakePatientRepo struct {
	mu       gosync.Mutex
	patients map[uuid.UUID]models.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uuid.UUID]models.Patient)}
}

func (r *fakePatientRepo) Create(patient *models.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	r.patients[patient.ID] = *patient
	return nil
}

func (r *fakePatientRepo) GetByID(id uuid.UUID) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.patients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *fakePatientRepo) GetByPhone(tenantID uuid.UUID, phone string) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.patients {
		if p.TenantID == tenantID && p.Phone == phone {
			patient := p
			return &patient, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePatientRepo) List(tenantID uuid.UUID, limit int) ([]models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Patient
	for _, p := range r.patients {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePatientRepo) Save(patient *models.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patients[patient.ID] = *patient
	return nil
}

func (r *fakePatientRepo) AddNote(note *models.PatientNote) error               { return nil }
func (r *fakePatientRepo) ListNotes(uuid.UUID) ([]models.PatientNote, error)    { return nil, nil }
func (r *fakePatientRepo) AddTag(tag *models.PatientTag) error                  { return nil }
func (r *fakePatientRepo) ListTags(uuid.UUID) ([]models.PatientTag, error)      { return nil, nil }
func (r *fakePatientRepo) RemoveTag(uuid.UUID) error                            { return nil }

var _ repositories.PatientRepo = (*fakePatientRepo)(nil)

type fakeFavoriteRepo struct {
	mu        gosync.Mutex
	favorites []models.FavoriteMessage
}

func (r *fakeFavoriteRepo) Create(favorite *models.FavoriteMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if favorite.ID == uuid.Nil {
		favorite.ID = uuid.New()
	}
	r.favorites = append(r.favorites, *favorite)
	return nil
}

func (r *fakeFavoriteRepo) Delete(attendantID, messageID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.favorites[:0]
	for _, f := range r.favorites {
		if !(f.AttendantID == attendantID && f.MessageID == messageID) {
			out = append(out, f)
		}
	}
	r.favorites = out
	return nil
}

func (r *fakeFavoriteRepo) ListByAttendant(attendantID uuid.UUID) ([]models.FavoriteMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.FavoriteMessage
	for _, f := range r.favorites {
		if f.AttendantID == attendantID {
			out = append(out, f)
		}
	}
	return out, nil
}

var _ repositories.FavoriteRepo = (*fakeFavoriteRepo)(nil)
