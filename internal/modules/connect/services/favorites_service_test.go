package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
)

func newFavoritesServiceForTest(t *testing.T) (*FavoritesService, *models.Message) {
	t.Helper()
	messages := &fakeMessageRepo{}
	message := &models.Message{
		ConversationID: uuid.New(),
		AuthorRole:     models.AuthorPatient,
		Kind:           models.KindText,
		Body:           "guarda essa informação",
	}
	require.NoError(t, messages.Append(message))

	return NewFavoritesService(&fakeFavoriteRepo{}, messages), message
}

func TestFavoriteAndList(t *testing.T) {
	svc, message := newFavoritesServiceForTest(t)
	tenantID, attendantID := uuid.New(), uuid.New()

	_, err := svc.Favorite(tenantID, attendantID, message.ID)
	require.NoError(t, err)

	list, err := svc.List(attendantID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, message.ID, list[0].MessageID)
}

func TestFavoriteUnknownMessageRejected(t *testing.T) {
	svc, _ := newFavoritesServiceForTest(t)

	_, err := svc.Favorite(uuid.New(), uuid.New(), uuid.New())
	assert.Error(t, err)
}

func TestUnfavoriteRemoves(t *testing.T) {
	svc, message := newFavoritesServiceForTest(t)
	tenantID, attendantID := uuid.New(), uuid.New()

	_, err := svc.Favorite(tenantID, attendantID, message.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Unfavorite(attendantID, message.ID))

	list, err := svc.List(attendantID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestObserversNotifiedOnChange(t *testing.T) {
	svc, message := newFavoritesServiceForTest(t)
	tenantID, attendantID := uuid.New(), uuid.New()

	var seen []uuid.UUID
	unsubscribe := svc.Subscribe(func(id uuid.UUID) {
		seen = append(seen, id)
	})

	_, err := svc.Favorite(tenantID, attendantID, message.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Unfavorite(attendantID, message.ID))

	require.Len(t, seen, 2)
	assert.Equal(t, attendantID, seen[0])
	assert.Equal(t, attendantID, seen[1])

	// After unsubscribing no further notifications arrive
	unsubscribe()
	_, err = svc.Favorite(tenantID, attendantID, message.ID)
	require.NoError(t, err)
	assert.Len(t, seen, 2)
}
