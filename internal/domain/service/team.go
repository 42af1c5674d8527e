package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hackstage/hackstage/internal/domain/common/errorz"
	"github.com/hackstage/hackstage/internal/domain/dto"
	"github.com/hackstage/hackstage/internal/domain/entity"
	"github.com/hackstage/hackstage/internal/domain/utils/validator"
)

type TeamStorage interface {
	Create(ctx context.Context, team *entity.Team, maxTeams int) (*entity.Team, error)
	Get(ctx context.Context, id uint) (*entity.Team, error)
	GetByHackathonID(ctx context.Context, hackathonID uint) ([]entity.Team, error)
	GetByMember(ctx context.Context, userID uint) ([]entity.Team, error)
	IsMember(ctx context.Context, teamID, userID uint) (bool, error)
	CountMembers(ctx context.Context, teamID uint) (int64, error)
	GetMembers(ctx context.Context, teamID uint) ([]entity.User, error)
	CreateJoinRequest(ctx context.Context, request *entity.JoinRequest) (*entity.JoinRequest, error)
	GetJoinRequest(ctx context.Context, id uint) (*entity.JoinRequest, error)
	GetPendingJoinRequests(ctx context.Context, teamID uint) ([]entity.JoinRequest, error)
	HasPendingJoinRequest(ctx context.Context, teamID, userID uint) (bool, error)
	AcceptJoinRequest(ctx context.Context, id uint) (*entity.JoinRequest, error)
	RejectJoinRequest(ctx context.Context, id uint) (*entity.JoinRequest, error)
}

type teamRegistrationStorage interface {
	GetByUserAndHackathon(ctx context.Context, userID, hackathonID uint) (*entity.Registration, error)
}

type teamHackathonStorage interface {
	Get(ctx context.Context, id uint) (*entity.Hackathon, error)
}

type TeamService struct {
	storage             TeamStorage
	registrationStorage teamRegistrationStorage
	hackathonStorage    teamHackathonStorage
}

func NewTeamService(
	storage TeamStorage,
	registrationStorage teamRegistrationStorage,
	hackathonStorage teamHackathonStorage,
) *TeamService {
	return &TeamService{
		storage:             storage,
		registrationStorage: registrationStorage,
		hackathonStorage:    hackathonStorage,
	}
}

// Create founds a team led by the acting user. The actor needs a confirmed
// participant registration for the hackathon and must not already belong to a
// team there; the leader becomes the first member atomically.
func (s *TeamService) Create(ctx context.Context, actor *entity.User, hackathonID uint, name string, maxSize int) (*entity.Team, error) {
	if actor == nil {
		return nil, errorz.ErrNotAuthenticated
	}
	switch {
	case !validator.TeamName(name):
		return nil, fmt.Errorf("%w: name", errorz.ErrInvalidArgument)
	case !validator.TeamSize(maxSize):
		return nil, fmt.Errorf("%w: max size", errorz.ErrInvalidArgument)
	}

	hackathon, err := s.hackathonStorage.Get(ctx, hackathonID)
	if err != nil {
		return nil, storageErr(err)
	}

	if err = s.requireConfirmedParticipant(ctx, actor.ID, hackathonID); err != nil {
		return nil, err
	}
	if err = s.requireNoTeam(ctx, actor.ID, hackathonID); err != nil {
		return nil, err
	}

	team, err := s.storage.Create(ctx, &entity.Team{
		Name:        name,
		HackathonID: hackathonID,
		LeaderID:    actor.ID,
		MaxSize:     maxSize,
	}, hackathon.MaxTeams)
	if err != nil {
		return nil, storageErr(err)
	}
	return team, nil
}

func (s *TeamService) Get(ctx context.Context, id uint) (*entity.Team, error) {
	team, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	return team, nil
}

// GetInfo returns the team together with its current members.
func (s *TeamService) GetInfo(ctx context.Context, id uint) (*dto.TeamInfo, error) {
	team, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	members, err := s.storage.GetMembers(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	info := dto.NewTeamInfo(*team, members)
	return &info, nil
}

func (s *TeamService) GetByHackathonID(ctx context.Context, hackathonID uint) ([]entity.Team, error) {
	teams, err := s.storage.GetByHackathonID(ctx, hackathonID)
	return teams, storageErr(err)
}

func (s *TeamService) GetMembers(ctx context.Context, teamID uint) ([]entity.User, error) {
	members, err := s.storage.GetMembers(ctx, teamID)
	return members, storageErr(err)
}

func (s *TeamService) GetPendingJoinRequests(ctx context.Context, teamID uint) ([]entity.JoinRequest, error) {
	requests, err := s.storage.GetPendingJoinRequests(ctx, teamID)
	return requests, storageErr(err)
}

// SubmitJoinRequest files the acting user's application to join a team. The
// team must have room and the actor must be a confirmed participant of the
// team's hackathon who is not already a member and has no request pending.
func (s *TeamService) SubmitJoinRequest(ctx context.Context, actor *entity.User, teamID uint, motivation string) (*entity.JoinRequest, error) {
	if actor == nil {
		return nil, errorz.ErrNotAuthenticated
	}

	team, err := s.storage.Get(ctx, teamID)
	if err != nil {
		return nil, storageErr(err)
	}

	if err = s.requireConfirmedParticipant(ctx, actor.ID, team.HackathonID); err != nil {
		return nil, err
	}

	isMember, err := s.storage.IsMember(ctx, teamID, actor.ID)
	if err != nil {
		return nil, storageErr(err)
	}
	if isMember {
		return nil, fmt.Errorf("%w: already a member", errorz.ErrAlreadyExists)
	}

	members, err := s.storage.CountMembers(ctx, teamID)
	if err != nil {
		return nil, storageErr(err)
	}
	if members >= int64(team.MaxSize) {
		return nil, fmt.Errorf("%w: team is full", errorz.ErrCapacityExceeded)
	}

	pending, err := s.storage.HasPendingJoinRequest(ctx, teamID, actor.ID)
	if err != nil {
		return nil, storageErr(err)
	}
	if pending {
		return nil, fmt.Errorf("%w: request already pending", errorz.ErrAlreadyExists)
	}

	request, err := s.storage.CreateJoinRequest(ctx, &entity.JoinRequest{
		UserID:     actor.ID,
		TeamID:     teamID,
		Motivation: motivation,
		Status:     entity.JoinRequestPending,
	})
	if err != nil {
		return nil, storageErr(err)
	}
	return request, nil
}

// AcceptJoinRequest lets the team leader admit the requester. Capacity is
// re-checked under a row lock, so a full team rejects the accept.
func (s *TeamService) AcceptJoinRequest(ctx context.Context, actor *entity.User, requestID uint) (*entity.JoinRequest, error) {
	if err := s.requireLeader(ctx, actor, requestID); err != nil {
		return nil, err
	}

	request, err := s.storage.AcceptJoinRequest(ctx, requestID)
	if err != nil {
		return nil, storageErr(err)
	}
	return request, nil
}

// RejectJoinRequest lets the team leader turn the requester down.
func (s *TeamService) RejectJoinRequest(ctx context.Context, actor *entity.User, requestID uint) (*entity.JoinRequest, error) {
	if err := s.requireLeader(ctx, actor, requestID); err != nil {
		return nil, err
	}

	request, err := s.storage.RejectJoinRequest(ctx, requestID)
	if err != nil {
		return nil, storageErr(err)
	}
	return request, nil
}

func (s *TeamService) requireLeader(ctx context.Context, actor *entity.User, requestID uint) error {
	if actor == nil {
		return errorz.ErrNotAuthenticated
	}

	request, err := s.storage.GetJoinRequest(ctx, requestID)
	if err != nil {
		return storageErr(err)
	}
	team, err := s.storage.Get(ctx, request.TeamID)
	if err != nil {
		return storageErr(err)
	}
	if !team.LedBy(actor.ID) {
		return fmt.Errorf("%w: only the team leader can decide join requests", errorz.ErrPermissionDenied)
	}
	return nil
}

func (s *TeamService) requireConfirmedParticipant(ctx context.Context, userID, hackathonID uint) error {
	registration, err := s.registrationStorage.GetByUserAndHackathon(ctx, userID, hackathonID)
	if err != nil {
		if errors.Is(storageErr(err), errorz.ErrNotFound) {
			return fmt.Errorf("%w: not registered for this hackathon", errorz.ErrPermissionDenied)
		}
		return storageErr(err)
	}
	if registration.Role != entity.RoleParticipant || !registration.Confirmed {
		return fmt.Errorf("%w: confirmed participant registration required", errorz.ErrPermissionDenied)
	}
	return nil
}

func (s *TeamService) requireNoTeam(ctx context.Context, userID, hackathonID uint) error {
	teams, err := s.storage.GetByMember(ctx, userID)
	if err != nil {
		return storageErr(err)
	}
	for _, team := range teams {
		if team.HackathonID == hackathonID {
			return fmt.Errorf("%w: already in a team for this hackathon", errorz.ErrAlreadyExists)
		}
	}
	return nil
}
