package postgres

import (
	"context"

	"github.com/hackstage/hackstage/internal/domain/common/errorz"
	"github.com/hackstage/hackstage/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RegistrationStorage struct {
	db *gorm.DB
}

func NewRegistrationStorage(db *gorm.DB) *RegistrationStorage {
	return &RegistrationStorage{
		db: db,
	}
}

// Create inserts a registration. For participants the hackathon row is locked
// and the confirmed-participant count is checked against maxParticipants inside
// the same transaction, so the cap holds under concurrent registration.
func (s *RegistrationStorage) Create(ctx context.Context, registration *entity.Registration, maxParticipants int) (*entity.Registration, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if registration.Role == entity.RoleParticipant {
			var hackathon entity.Hackathon
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ?", registration.HackathonID).
				First(&hackathon).Error; err != nil {
				return err
			}

			var confirmed int64
			if err := tx.Model(&entity.Registration{}).
				Where("hackathon_id = ? AND role = ? AND confirmed = ?",
					registration.HackathonID, entity.RoleParticipant, true).
				Count(&confirmed).Error; err != nil {
				return err
			}
			if confirmed >= int64(maxParticipants) {
				return errorz.ErrCapacityExceeded
			}
		}

		return tx.Create(&registration).Error
	})
	return registration, err
}

// Get is a function that gets a registration from the database by id.
func (s *RegistrationStorage) Get(ctx context.Context, id uint) (*entity.Registration, error) {
	var registration entity.Registration
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&registration).Error
	return &registration, err
}

// GetByUserAndHackathon is a function that gets a user's registration for a hackathon.
func (s *RegistrationStorage) GetByUserAndHackathon(ctx context.Context, userID, hackathonID uint) (*entity.Registration, error) {
	var registration entity.Registration
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND hackathon_id = ?", userID, hackathonID).
		First(&registration).Error
	return &registration, err
}

// GetByHackathonID is a function that gets all registrations for a hackathon.
func (s *RegistrationStorage) GetByHackathonID(ctx context.Context, hackathonID uint) ([]entity.Registration, error) {
	var registrations []entity.Registration
	err := s.db.WithContext(ctx).
		Where("hackathon_id = ?", hackathonID).
		Order("created_at").
		Find(&registrations).Error
	return registrations, err
}

// GetPendingByHackathonID is a function that gets unconfirmed registrations for a hackathon.
func (s *RegistrationStorage) GetPendingByHackathonID(ctx context.Context, hackathonID uint) ([]entity.Registration, error) {
	var registrations []entity.Registration
	err := s.db.WithContext(ctx).
		Where("hackathon_id = ? AND confirmed = ?", hackathonID, false).
		Order("created_at").
		Find(&registrations).Error
	return registrations, err
}

// CountConfirmedParticipants is a function that counts confirmed participant
// registrations for a hackathon.
func (s *RegistrationStorage) CountConfirmedParticipants(ctx context.Context, hackathonID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Registration{}).
		Where("hackathon_id = ? AND role = ? AND confirmed = ?", hackathonID, entity.RoleParticipant, true).
		Count(&count).Error
	return count, err
}

// Confirm flips a registration to confirmed, one way.
func (s *RegistrationStorage) Confirm(ctx context.Context, id uint) (*entity.Registration, error) {
	var registration entity.Registration
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&registration).Error; err != nil {
			return err
		}
		if registration.Confirmed {
			return nil
		}
		registration.Confirmed = true
		return tx.Save(&registration).Error
	})
	return &registration, err
}
