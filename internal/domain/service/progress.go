package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/hackstage/hackstage/internal/domain/common/errorz"
	"github.com/hackstage/hackstage/internal/domain/entity"
	"github.com/hackstage/hackstage/internal/domain/utils/validator"
	"github.com/lib/pq"
)

type ProgressStorage interface {
	Create(ctx context.Context, progress *entity.Progress) (*entity.Progress, error)
	Get(ctx context.Context, id uint) (*entity.Progress, error)
	GetByTeamID(ctx context.Context, teamID uint) ([]entity.Progress, error)
	GetByHackathonID(ctx context.Context, hackathonID uint) ([]entity.Progress, error)
	CreateComment(ctx context.Context, comment *entity.JudgeComment) (*entity.JudgeComment, error)
	GetComments(ctx context.Context, progressID uint) ([]entity.JudgeComment, error)
}

type progressTeamStorage interface {
	Get(ctx context.Context, id uint) (*entity.Team, error)
	IsMember(ctx context.Context, teamID, userID uint) (bool, error)
}

type ProgressService struct {
	storage     ProgressStorage
	teamStorage progressTeamStorage
}

func NewProgressService(storage ProgressStorage, teamStorage progressTeamStorage) *ProgressService {
	return &ProgressService{
		storage:     storage,
		teamStorage: teamStorage,
	}
}

// Submit records a progress update for a team. Any member may submit.
func (s *ProgressService) Submit(ctx context.Context, actor *entity.User, teamID uint, title, description, documentPath string, attachments []string) (*entity.Progress, error) {
	if actor == nil {
		return nil, errorz.ErrNotAuthenticated
	}
	if !validator.ProgressTitle(title) {
		return nil, fmt.Errorf("%w: title", errorz.ErrInvalidArgument)
	}

	team, err := s.teamStorage.Get(ctx, teamID)
	if err != nil {
		return nil, storageErr(err)
	}

	isMember, err := s.teamStorage.IsMember(ctx, teamID, actor.ID)
	if err != nil {
		return nil, storageErr(err)
	}
	if !isMember {
		return nil, fmt.Errorf("%w: only team members can submit progress", errorz.ErrPermissionDenied)
	}

	progress, err := s.storage.Create(ctx, &entity.Progress{
		TeamID:       teamID,
		HackathonID:  team.HackathonID,
		Title:        title,
		Description:  description,
		DocumentPath: documentPath,
		Attachments:  pq.StringArray(attachments),
	})
	if err != nil {
		return nil, storageErr(err)
	}
	return progress, nil
}

// AddJudgeComment appends a judge's feedback to a progress submission.
func (s *ProgressService) AddJudgeComment(ctx context.Context, actor *entity.User, progressID uint, comment string) (*entity.JudgeComment, error) {
	if actor == nil {
		return nil, errorz.ErrNotAuthenticated
	}
	if !actor.IsJudge() {
		return nil, fmt.Errorf("%w: judge role required", errorz.ErrPermissionDenied)
	}
	if strings.TrimSpace(comment) == "" {
		return nil, fmt.Errorf("%w: comment", errorz.ErrInvalidArgument)
	}

	if _, err := s.storage.Get(ctx, progressID); err != nil {
		return nil, storageErr(err)
	}

	created, err := s.storage.CreateComment(ctx, &entity.JudgeComment{
		ProgressID: progressID,
		JudgeID:    actor.ID,
		Comment:    comment,
	})
	if err != nil {
		return nil, storageErr(err)
	}
	return created, nil
}

func (s *ProgressService) GetByTeamID(ctx context.Context, teamID uint) ([]entity.Progress, error) {
	progresses, err := s.storage.GetByTeamID(ctx, teamID)
	return progresses, storageErr(err)
}

func (s *ProgressService) GetByHackathonID(ctx context.Context, hackathonID uint) ([]entity.Progress, error) {
	progresses, err := s.storage.GetByHackathonID(ctx, hackathonID)
	return progresses, storageErr(err)
}

func (s *ProgressService) GetComments(ctx context.Context, progressID uint) ([]entity.JudgeComment, error) {
	comments, err := s.storage.GetComments(ctx, progressID)
	return comments, storageErr(err)
}
