package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
)

type FavoriteRepo interface {
	Create(favorite *models.FavoriteMessage) error
	Delete(attendantID, messageID uuid.UUID) error
	ListByAttendant(attendantID uuid.UUID) ([]models.FavoriteMessage, error)
}

type favoriteRepo struct {
	db *gorm.DB
}

func NewFavoriteRepo(db *gorm.DB) FavoriteRepo {
	return &favoriteRepo{db: db}
}

func (r *favoriteRepo) Create(favorite *models.FavoriteMessage) error {
	return r.db.Create(favorite).Error
}

func (r *favoriteRepo) Delete(attendantID, messageID uuid.UUID) error {
	return r.db.
		Where("attendant_id = ? AND message_id = ?", attendantID, messageID).
		Delete(&models.FavoriteMessage{}).Error
}

func (r *favoriteRepo) ListByAttendant(attendantID uuid.UUID) ([]models.FavoriteMessage, error) {
	var favorites []models.FavoriteMessage
	err := r.db.Where("attendant_id = ?", attendantID).
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}
