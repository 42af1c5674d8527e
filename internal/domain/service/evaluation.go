package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/hackstage/hackstage/internal/domain/common/errorz"
	"github.com/hackstage/hackstage/internal/domain/dto"
	"github.com/hackstage/hackstage/internal/domain/entity"
)

type EvaluationStorage interface {
	Create(ctx context.Context, evaluation *entity.Evaluation) (*entity.Evaluation, error)
	GetByTeamID(ctx context.Context, teamID uint) ([]entity.Evaluation, error)
	GetByHackathonID(ctx context.Context, hackathonID uint) ([]entity.Evaluation, error)
	HasJudgeScored(ctx context.Context, judgeID, teamID uint) (bool, error)
}

type evaluationTeamStorage interface {
	Get(ctx context.Context, id uint) (*entity.Team, error)
	GetByHackathonID(ctx context.Context, hackathonID uint) ([]entity.Team, error)
}

type EvaluationService struct {
	storage     EvaluationStorage
	teamStorage evaluationTeamStorage
}

func NewEvaluationService(storage EvaluationStorage, teamStorage evaluationTeamStorage) *EvaluationService {
	return &EvaluationService{
		storage:     storage,
		teamStorage: teamStorage,
	}
}

// AssignScore records a judge's score for a team, 0 to 10 inclusive, at most
// once per judge and team. The evaluation is immutable once created.
func (s *EvaluationService) AssignScore(ctx context.Context, actor *entity.User, teamID uint, score int, comment string) (*entity.Evaluation, error) {
	if actor == nil {
		return nil, errorz.ErrNotAuthenticated
	}
	if !actor.IsJudge() {
		return nil, fmt.Errorf("%w: judge role required", errorz.ErrPermissionDenied)
	}
	if !entity.ValidScore(score) {
		return nil, fmt.Errorf("%w: score must be between %d and %d", errorz.ErrInvalidArgument, entity.MinScore, entity.MaxScore)
	}

	team, err := s.teamStorage.Get(ctx, teamID)
	if err != nil {
		return nil, storageErr(err)
	}

	scored, err := s.storage.HasJudgeScored(ctx, actor.ID, teamID)
	if err != nil {
		return nil, storageErr(err)
	}
	if scored {
		return nil, fmt.Errorf("%w: team already scored by this judge", errorz.ErrAlreadyExists)
	}

	evaluation, err := s.storage.Create(ctx, &entity.Evaluation{
		JudgeID:     actor.ID,
		TeamID:      teamID,
		HackathonID: team.HackathonID,
		Score:       score,
		Comment:     comment,
	})
	if err != nil {
		return nil, storageErr(err)
	}
	return evaluation, nil
}

// MeanScore returns the arithmetic mean of a team's scores and how many
// evaluations it is based on. A team nobody scored yet reports 0 over 0.
func (s *EvaluationService) MeanScore(ctx context.Context, teamID uint) (float64, int, error) {
	evaluations, err := s.storage.GetByTeamID(ctx, teamID)
	if err != nil {
		return 0, 0, storageErr(err)
	}
	return mean(evaluations), len(evaluations), nil
}

// Leaderboard ranks all teams of a hackathon by descending mean score, ties
// broken by ascending team id. Teams without evaluations rank below every
// evaluated team, even one whose scores are all zero, and report mean 0.
func (s *EvaluationService) Leaderboard(ctx context.Context, hackathonID uint) ([]dto.TeamScore, error) {
	teams, err := s.teamStorage.GetByHackathonID(ctx, hackathonID)
	if err != nil {
		return nil, storageErr(err)
	}
	evaluations, err := s.storage.GetByHackathonID(ctx, hackathonID)
	if err != nil {
		return nil, storageErr(err)
	}

	byTeam := make(map[uint][]entity.Evaluation, len(teams))
	for _, evaluation := range evaluations {
		byTeam[evaluation.TeamID] = append(byTeam[evaluation.TeamID], evaluation)
	}

	scores := make([]dto.TeamScore, 0, len(teams))
	for _, team := range teams {
		teamEvaluations := byTeam[team.ID]
		scores = append(scores, dto.TeamScore{
			TeamID:      team.ID,
			TeamName:    team.Name,
			Mean:        mean(teamEvaluations),
			Evaluations: len(teamEvaluations),
		})
	}

	sort.Slice(scores, func(i, j int) bool {
		if (scores[i].Evaluations > 0) != (scores[j].Evaluations > 0) {
			return scores[i].Evaluations > 0
		}
		if scores[i].Mean != scores[j].Mean {
			return scores[i].Mean > scores[j].Mean
		}
		return scores[i].TeamID < scores[j].TeamID
	})
	return scores, nil
}

// Winner returns the top-ranked team of a hackathon. When no team has any
// evaluation there is no winner and ErrNotFound is returned.
func (s *EvaluationService) Winner(ctx context.Context, hackathonID uint) (uint, error) {
	leaderboard, err := s.Leaderboard(ctx, hackathonID)
	if err != nil {
		return 0, err
	}
	if len(leaderboard) == 0 || leaderboard[0].Evaluations == 0 {
		return 0, fmt.Errorf("%w: no evaluations in this hackathon", errorz.ErrNotFound)
	}
	return leaderboard[0].TeamID, nil
}

func (s *EvaluationService) GetByTeamID(ctx context.Context, teamID uint) ([]entity.Evaluation, error) {
	evaluations, err := s.storage.GetByTeamID(ctx, teamID)
	return evaluations, storageErr(err)
}

func (s *EvaluationService) GetByHackathonID(ctx context.Context, hackathonID uint) ([]entity.Evaluation, error) {
	evaluations, err := s.storage.GetByHackathonID(ctx, hackathonID)
	return evaluations, storageErr(err)
}

func mean(evaluations []entity.Evaluation) float64 {
	if len(evaluations) == 0 {
		return 0
	}
	var sum int
	for _, evaluation := range evaluations {
		sum += evaluation.Score
	}
	return float64(sum) / float64(len(evaluations))
}
