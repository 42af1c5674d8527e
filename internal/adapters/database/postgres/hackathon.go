package postgres

import (
	"context"

	"github.com/hackstage/hackstage/internal/domain/entity"
	"gorm.io/gorm"
)

type HackathonStorage struct {
	db *gorm.DB
}

func NewHackathonStorage(db *gorm.DB) *HackathonStorage {
	return &HackathonStorage{
		db: db,
	}
}

// Create is a function that creates a new hackathon in the database.
func (s *HackathonStorage) Create(ctx context.Context, hackathon *entity.Hackathon) (*entity.Hackathon, error) {
	err := s.db.WithContext(ctx).Create(&hackathon).Error
	return hackathon, err
}

// Get is a function that gets a hackathon from the database by id.
func (s *HackathonStorage) Get(ctx context.Context, id uint) (*entity.Hackathon, error) {
	var hackathon entity.Hackathon
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&hackathon).Error
	return &hackathon, err
}

// GetAll is a function that gets all hackathons from the database.
func (s *HackathonStorage) GetAll(ctx context.Context) ([]entity.Hackathon, error) {
	var hackathons []entity.Hackathon
	err := s.db.WithContext(ctx).Order("start_time").Find(&hackathons).Error
	return hackathons, err
}

// GetRegistrationsOpen is a function that gets hackathons currently accepting registrations.
func (s *HackathonStorage) GetRegistrationsOpen(ctx context.Context) ([]entity.Hackathon, error) {
	var hackathons []entity.Hackathon
	err := s.db.WithContext(ctx).
		Where("registrations_open = ? AND concluded = ?", true, false).
		Order("start_time").
		Find(&hackathons).Error
	return hackathons, err
}

// GetRunning is a function that gets hackathons that are started and not yet concluded.
func (s *HackathonStorage) GetRunning(ctx context.Context) ([]entity.Hackathon, error) {
	var hackathons []entity.Hackathon
	err := s.db.WithContext(ctx).
		Where("started = ? AND concluded = ?", true, false).
		Order("start_time").
		Find(&hackathons).Error
	return hackathons, err
}

// GetConcluded is a function that gets hackathons that have been concluded.
func (s *HackathonStorage) GetConcluded(ctx context.Context) ([]entity.Hackathon, error) {
	var hackathons []entity.Hackathon
	err := s.db.WithContext(ctx).
		Where("concluded = ?", true).
		Order("end_time DESC").
		Find(&hackathons).Error
	return hackathons, err
}

// GetByOrganizer is a function that gets hackathons created by the given organizer.
func (s *HackathonStorage) GetByOrganizer(ctx context.Context, organizerID uint) ([]entity.Hackathon, error) {
	var hackathons []entity.Hackathon
	err := s.db.WithContext(ctx).
		Where("organizer_id = ?", organizerID).
		Order("start_time").
		Find(&hackathons).Error
	return hackathons, err
}

// Update is a function that updates a hackathon in the database.
func (s *HackathonStorage) Update(ctx context.Context, hackathon *entity.Hackathon) (*entity.Hackathon, error) {
	err := s.db.WithContext(ctx).Save(&hackathon).Error
	return hackathon, err
}
