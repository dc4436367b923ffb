package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
)

// SectorRepo, UnitRepo and AccessProfileRepo back the small admin CRUD
// screens. They share the same shape on purpose.

type SectorRepo interface {
	Create(sector *models.Sector) error
	GetByID(id uuid.UUID) (*models.Sector, error)
	List(tenantID uuid.UUID) ([]models.Sector, error)
	Save(sector *models.Sector) error
	Delete(id uuid.UUID) error
}

type sectorRepo struct {
	db *gorm.DB
}

func NewSectorRepo(db *gorm.DB) SectorRepo {
	return &sectorRepo{db: db}
}

func (r *sectorRepo) Create(sector *models.Sector) error {
	return r.db.Create(sector).Error
}

func (r *sectorRepo) GetByID(id uuid.UUID) (*models.Sector, error) {
	var sector models.Sector
	if err := r.db.First(&sector, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sector, nil
}

func (r *sectorRepo) List(tenantID uuid.UUID) ([]models.Sector, error) {
	var sectors []models.Sector
	err := r.db.Where("tenant_id = ?", tenantID).Order("name ASC").Find(&sectors).Error
	return sectors, err
}

func (r *sectorRepo) Save(sector *models.Sector) error {
	return r.db.Save(sector).Error
}

func (r *sectorRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Sector{}, "id = ?", id).Error
}

type UnitRepo interface {
	Create(unit *models.Unit) error
	GetByID(id uuid.UUID) (*models.Unit, error)
	List(tenantID uuid.UUID) ([]models.Unit, error)
	Save(unit *models.Unit) error
	Delete(id uuid.UUID) error
}

type unitRepo struct {
	db *gorm.DB
}

func NewUnitRepo(db *gorm.DB) UnitRepo {
	return &unitRepo{db: db}
}

func (r *unitRepo) Create(unit *models.Unit) error {
	return r.db.Create(unit).Error
}

func (r *unitRepo) GetByID(id uuid.UUID) (*models.Unit, error) {
	var unit models.Unit
	if err := r.db.First(&unit, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepo) List(tenantID uuid.UUID) ([]models.Unit, error) {
	var units []models.Unit
	err := r.db.Where("tenant_id = ?", tenantID).Order("name ASC").Find(&units).Error
	return units, err
}

func (r *unitRepo) Save(unit *models.Unit) error {
	return r.db.Save(unit).Error
}

func (r *unitRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Unit{}, "id = ?", id).Error
}

type AccessProfileRepo interface {
	Create(profile *models.AccessProfile) error
	GetByID(id uuid.UUID) (*models.AccessProfile, error)
	List(tenantID uuid.UUID) ([]models.AccessProfile, error)
	Save(profile *models.AccessProfile) error
	Delete(id uuid.UUID) error
}

type accessProfileRepo struct {
	db *gorm.DB
}

func NewAccessProfileRepo(db *gorm.DB) AccessProfileRepo {
	return &accessProfileRepo{db: db}
}

func (r *accessProfileRepo) Create(profile *models.AccessProfile) error {
	return r.db.Create(profile).Error
}

func (r *accessProfileRepo) GetByID(id uuid.UUID) (*models.AccessProfile, error) {
	var profile models.AccessProfile
	if err := r.db.First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *accessProfileRepo) List(tenantID uuid.UUID) ([]models.AccessProfile, error) {
	var profiles []models.AccessProfile
	err := r.db.Where("tenant_id = ?", tenantID).Order("name ASC").Find(&profiles).Error
	return profiles, err
}

func (r *accessProfileRepo) Save(profile *models.AccessProfile) error {
	return r.db.Save(profile).Error
}

func (r *accessProfileRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.AccessProfile{}, "id = ?", id).Error
}
