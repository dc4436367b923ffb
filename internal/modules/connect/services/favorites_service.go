package services

import (
	gosync "sync"

	"github.com/google/uuid"

	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
	"github.com/grupovitalis/connect-api/internal/modules/connect/repositories"
)

// FavoritesService manages an attendant's starred messages. Observers are
// notified with the attendant ID on every change so open views can refetch.
type FavoritesService struct {
	favorites repositories.FavoriteRepo
	messages  repositories.MessageRepo

	mu        gosync.Mutex
	observers map[int]func(attendantID uuid.UUID)
	next      int
}

func NewFavoritesService(favorites repositories.FavoriteRepo, messages repositories.MessageRepo) *FavoritesService {
	return &FavoritesService{
		favorites: favorites,
		messages:  messages,
		observers: make(map[int]func(attendantID uuid.UUID)),
	}
}

// Subscribe registers a change observer and returns its unsubscribe func
func (s *FavoritesService) Subscribe(fn func(attendantID uuid.UUID)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := s.next
	s.next++
	s.observers[token] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, token)
	}
}

// Favorite stars a message for the attendant
func (s *FavoritesService) Favorite(tenantID, attendantID, messageID uuid.UUID) (*models.FavoriteMessage, error) {
	if _, err := s.messages.GetByID(messageID); err != nil {
		return nil, err
	}

	favorite := &models.FavoriteMessage{
		TenantID:    tenantID,
		AttendantID: attendantID,
		MessageID:   messageID,
	}
	if err := s.favorites.Create(favorite); err != nil {
		return nil, err
	}

	s.notify(attendantID)
	return favorite, nil
}

// Unfavorite removes the star
func (s *FavoritesService) Unfavorite(attendantID, messageID uuid.UUID) error {
	if err := s.favorites.Delete(attendantID, messageID); err != nil {
		return err
	}
	s.notify(attendantID)
	return nil
}

// List returns the attendant's starred messages, newest first
func (s *FavoritesService) List(attendantID uuid.UUID) ([]models.FavoriteMessage, error) {
	return s.favorites.ListByAttendant(attendantID)
}

func (s *FavoritesService) notify(attendantID uuid.UUID) {
	s.mu.Lock()
	observers := make([]func(uuid.UUID), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(attendantID)
	}
}
