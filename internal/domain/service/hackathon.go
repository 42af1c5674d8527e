package service

import (
	"context"
	"fmt"

	"github.com/hackstage/hackstage/internal/domain/common/errorz"
	"github.com/hackstage/hackstage/internal/domain/entity"
	"github.com/hackstage/hackstage/internal/domain/utils/validator"
	"github.com/hackstage/hackstage/pkg/logger/types"
)

type HackathonStorage interface {
	Create(ctx context.Context, hackathon *entity.Hackathon) (*entity.Hackathon, error)
	Get(ctx context.Context, id uint) (*entity.Hackathon, error)
	GetAll(ctx context.Context) ([]entity.Hackathon, error)
	GetRegistrationsOpen(ctx context.Context) ([]entity.Hackathon, error)
	GetRunning(ctx context.Context) ([]entity.Hackathon, error)
	GetConcluded(ctx context.Context) ([]entity.Hackathon, error)
	GetByOrganizer(ctx context.Context, organizerID uint) ([]entity.Hackathon, error)
	Update(ctx context.Context, hackathon *entity.Hackathon) (*entity.Hackathon, error)
}

type resultsNotifier interface {
	SendResults(ctx context.Context, hackathon *entity.Hackathon) error
}

type HackathonService struct {
	logger *types.Logger

	storage  HackathonStorage
	notifier resultsNotifier
}

func NewHackathonService(logger *types.Logger, storage HackathonStorage, notifier resultsNotifier) *HackathonService {
	return &HackathonService{
		logger:   logger,
		storage:  storage,
		notifier: notifier,
	}
}

// Create creates a hackathon owned by the acting organizer. The organizer id is
// always the actor's, regardless of what the caller put in the request.
func (s *HackathonService) Create(ctx context.Context, actor *entity.User, hackathon entity.Hackathon) (*entity.Hackathon, error) {
	if actor == nil {
		return nil, errorz.ErrNotAuthenticated
	}
	if !actor.IsOrganizer() {
		return nil, fmt.Errorf("%w: only organizers can create hackathons", errorz.ErrPermissionDenied)
	}

	switch {
	case !validator.HackathonName(hackathon.Name):
		return nil, fmt.Errorf("%w: name", errorz.ErrInvalidArgument)
	case !validator.ParticipantLimit(hackathon.MaxParticipants):
		return nil, fmt.Errorf("%w: max participants", errorz.ErrInvalidArgument)
	case !validator.TeamLimit(hackathon.MaxTeams):
		return nil, fmt.Errorf("%w: max teams", errorz.ErrInvalidArgument)
	}

	hackathon.OrganizerID = actor.ID
	hackathon.RegistrationsOpen = false
	hackathon.Started = false
	hackathon.Concluded = false

	created, err := s.storage.Create(ctx, &hackathon)
	if err != nil {
		return nil, storageErr(err)
	}
	return created, nil
}

func (s *HackathonService) Get(ctx context.Context, id uint) (*entity.Hackathon, error) {
	hackathon, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	return hackathon, nil
}

func (s *HackathonService) GetAll(ctx context.Context) ([]entity.Hackathon, error) {
	hackathons, err := s.storage.GetAll(ctx)
	return hackathons, storageErr(err)
}

func (s *HackathonService) GetRegistrationsOpen(ctx context.Context) ([]entity.Hackathon, error) {
	hackathons, err := s.storage.GetRegistrationsOpen(ctx)
	return hackathons, storageErr(err)
}

func (s *HackathonService) GetRunning(ctx context.Context) ([]entity.Hackathon, error) {
	hackathons, err := s.storage.GetRunning(ctx)
	return hackathons, storageErr(err)
}

func (s *HackathonService) GetConcluded(ctx context.Context) ([]entity.Hackathon, error) {
	hackathons, err := s.storage.GetConcluded(ctx)
	return hackathons, storageErr(err)
}

func (s *HackathonService) GetByOrganizer(ctx context.Context, organizerID uint) ([]entity.Hackathon, error) {
	hackathons, err := s.storage.GetByOrganizer(ctx, organizerID)
	return hackathons, storageErr(err)
}

// OpenRegistrations opens registrations for an owned hackathon.
func (s *HackathonService) OpenRegistrations(ctx context.Context, actor *entity.User, hackathonID uint) error {
	return s.mutateOwned(ctx, actor, hackathonID, func(h *entity.Hackathon) error {
		if h.Concluded {
			return fmt.Errorf("%w: hackathon already concluded", errorz.ErrInvalidArgument)
		}
		h.RegistrationsOpen = true
		return nil
	})
}

// CloseRegistrations closes registrations for an owned hackathon.
func (s *HackathonService) CloseRegistrations(ctx context.Context, actor *entity.User, hackathonID uint) error {
	return s.mutateOwned(ctx, actor, hackathonID, func(h *entity.Hackathon) error {
		h.RegistrationsOpen = false
		return nil
	})
}

// Start publishes the problem and marks the hackathon as started. Registrations
// stay in whatever state they are in; the flags are independent. The problem is
// validated only after the permission checks, so outsiders always see
// ErrPermissionDenied.
func (s *HackathonService) Start(ctx context.Context, actor *entity.User, hackathonID uint, problem string) error {
	return s.mutateOwned(ctx, actor, hackathonID, func(h *entity.Hackathon) error {
		if !validator.ProblemDescription(problem) {
			return fmt.Errorf("%w: problem description", errorz.ErrInvalidArgument)
		}
		if h.Concluded {
			return fmt.Errorf("%w: hackathon already concluded", errorz.ErrInvalidArgument)
		}
		h.Started = true
		h.ProblemDescription = problem
		return nil
	})
}

// Conclude ends a started hackathon and, when a notifier is wired, mails the
// final leaderboard to the organizer in the background.
func (s *HackathonService) Conclude(ctx context.Context, actor *entity.User, hackathonID uint) error {
	var concluded *entity.Hackathon
	err := s.mutateOwned(ctx, actor, hackathonID, func(h *entity.Hackathon) error {
		if !h.Started {
			return fmt.Errorf("%w: hackathon not started", errorz.ErrInvalidArgument)
		}
		if h.Concluded {
			return fmt.Errorf("%w: hackathon already concluded", errorz.ErrInvalidArgument)
		}
		h.Concluded = true
		concluded = h
		return nil
	})
	if err != nil {
		return err
	}

	if s.notifier != nil {
		go func(h entity.Hackathon) {
			if sendErr := s.notifier.SendResults(context.Background(), &h); sendErr != nil {
				s.logger.Errorf("failed to send results for hackathon %d: %v", h.ID, sendErr)
			}
		}(*concluded)
	}
	return nil
}

func (s *HackathonService) mutateOwned(ctx context.Context, actor *entity.User, hackathonID uint, mutate func(*entity.Hackathon) error) error {
	if actor == nil {
		return errorz.ErrNotAuthenticated
	}
	if !actor.IsOrganizer() {
		return fmt.Errorf("%w: organizer role required", errorz.ErrPermissionDenied)
	}

	hackathon, err := s.storage.Get(ctx, hackathonID)
	if err != nil {
		return storageErr(err)
	}
	if !hackathon.OwnedBy(actor.ID) {
		return fmt.Errorf("%w: not the organizer of this hackathon", errorz.ErrPermissionDenied)
	}

	if err = mutate(hackathon); err != nil {
		return err
	}

	if _, err = s.storage.Update(ctx, hackathon); err != nil {
		return storageErr(err)
	}
	return nil
}
