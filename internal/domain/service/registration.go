package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hackstage/hackstage/internal/domain/common/errorz"
	"github.com/hackstage/hackstage/internal/domain/entity"
	"github.com/hackstage/hackstage/pkg/logger/types"
)

type RegistrationStorage interface {
	Create(ctx context.Context, registration *entity.Registration, maxParticipants int) (*entity.Registration, error)
	Get(ctx context.Context, id uint) (*entity.Registration, error)
	GetByUserAndHackathon(ctx context.Context, userID, hackathonID uint) (*entity.Registration, error)
	GetByHackathonID(ctx context.Context, hackathonID uint) ([]entity.Registration, error)
	GetPendingByHackathonID(ctx context.Context, hackathonID uint) ([]entity.Registration, error)
	CountConfirmedParticipants(ctx context.Context, hackathonID uint) (int64, error)
	Confirm(ctx context.Context, id uint) (*entity.Registration, error)
}

type registrationHackathonStorage interface {
	Get(ctx context.Context, id uint) (*entity.Hackathon, error)
}

type registrationUserStorage interface {
	Get(ctx context.Context, id uint) (*entity.User, error)
}

type confirmationMailer interface {
	SendRegistrationConfirmed(to string, hackathonName string) error
}

type RegistrationService struct {
	logger *types.Logger

	storage          RegistrationStorage
	hackathonStorage registrationHackathonStorage
	userStorage      registrationUserStorage
	mailer           confirmationMailer
}

func NewRegistrationService(
	logger *types.Logger,
	storage RegistrationStorage,
	hackathonStorage registrationHackathonStorage,
	userStorage registrationUserStorage,
	mailer confirmationMailer,
) *RegistrationService {
	return &RegistrationService{
		logger:           logger,
		storage:          storage,
		hackathonStorage: hackathonStorage,
		userStorage:      userStorage,
		mailer:           mailer,
	}
}

// Register signs the acting user up for a hackathon in the given role. The
// registration starts unconfirmed; participants only count against the cap once
// an organizer confirms them, but the cap is already checked here so a full
// hackathon stops accepting participants.
func (s *RegistrationService) Register(ctx context.Context, actor *entity.User, hackathonID uint, role entity.Role) (*entity.Registration, error) {
	if actor == nil {
		return nil, errorz.ErrNotAuthenticated
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role", errorz.ErrInvalidArgument)
	}

	hackathon, err := s.hackathonStorage.Get(ctx, hackathonID)
	if err != nil {
		return nil, storageErr(err)
	}
	if !hackathon.RegistrationsOpen {
		return nil, fmt.Errorf("%w: registrations are closed", errorz.ErrInvalidArgument)
	}

	if _, err = s.storage.GetByUserAndHackathon(ctx, actor.ID, hackathonID); err == nil {
		return nil, fmt.Errorf("%w: already registered", errorz.ErrAlreadyExists)
	} else if mapped := storageErr(err); !errors.Is(mapped, errorz.ErrNotFound) {
		return nil, mapped
	}

	registration, err := s.storage.Create(ctx, &entity.Registration{
		UserID:      actor.ID,
		HackathonID: hackathonID,
		Role:        role,
	}, hackathon.MaxParticipants)
	if err != nil {
		return nil, storageErr(err)
	}
	return registration, nil
}

// Confirm approves a registration. Only the organizer of the registration's
// hackathon may confirm. Confirming an already confirmed registration is a
// no-op.
func (s *RegistrationService) Confirm(ctx context.Context, actor *entity.User, registrationID uint) (*entity.Registration, error) {
	if actor == nil {
		return nil, errorz.ErrNotAuthenticated
	}
	if !actor.IsOrganizer() {
		return nil, fmt.Errorf("%w: organizer role required", errorz.ErrPermissionDenied)
	}

	registration, err := s.storage.Get(ctx, registrationID)
	if err != nil {
		return nil, storageErr(err)
	}

	hackathon, err := s.hackathonStorage.Get(ctx, registration.HackathonID)
	if err != nil {
		return nil, storageErr(err)
	}
	if !hackathon.OwnedBy(actor.ID) {
		return nil, fmt.Errorf("%w: not the organizer of this hackathon", errorz.ErrPermissionDenied)
	}

	alreadyConfirmed := registration.Confirmed
	registration, err = s.storage.Confirm(ctx, registrationID)
	if err != nil {
		return nil, storageErr(err)
	}

	if s.mailer != nil && !alreadyConfirmed {
		go s.sendConfirmation(registration.UserID, hackathon.Name)
	}
	return registration, nil
}

func (s *RegistrationService) Get(ctx context.Context, id uint) (*entity.Registration, error) {
	registration, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	return registration, nil
}

func (s *RegistrationService) GetByHackathonID(ctx context.Context, hackathonID uint) ([]entity.Registration, error) {
	registrations, err := s.storage.GetByHackathonID(ctx, hackathonID)
	return registrations, storageErr(err)
}

func (s *RegistrationService) GetPendingByHackathonID(ctx context.Context, hackathonID uint) ([]entity.Registration, error) {
	registrations, err := s.storage.GetPendingByHackathonID(ctx, hackathonID)
	return registrations, storageErr(err)
}

func (s *RegistrationService) CountConfirmedParticipants(ctx context.Context, hackathonID uint) (int64, error) {
	count, err := s.storage.CountConfirmedParticipants(ctx, hackathonID)
	return count, storageErr(err)
}

func (s *RegistrationService) sendConfirmation(userID uint, hackathonName string) {
	user, err := s.userStorage.Get(context.Background(), userID)
	if err != nil {
		s.logger.Errorf("failed to load user %d for confirmation email: %v", userID, err)
		return
	}
	if err = s.mailer.SendRegistrationConfirmed(user.Email, hackathonName); err != nil {
		s.logger.Errorf("failed to send confirmation email to %s: %v", user.Email, err)
	}
}
