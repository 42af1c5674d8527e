package postgres

import (
	"context"

	"github.com/hackstage/hackstage/internal/domain/entity"
	"gorm.io/gorm"
)

type EvaluationStorage struct {
	db *gorm.DB
}

func NewEvaluationStorage(db *gorm.DB) *EvaluationStorage {
	return &EvaluationStorage{
		db: db,
	}
}

// Create is a function that creates a new evaluation in the database. The
// unique (judge_id, team_id) index rejects a second score from the same judge.
func (s *EvaluationStorage) Create(ctx context.Context, evaluation *entity.Evaluation) (*entity.Evaluation, error) {
	err := s.db.WithContext(ctx).Create(&evaluation).Error
	return evaluation, err
}

// GetByTeamID is a function that gets all evaluations of a team.
func (s *EvaluationStorage) GetByTeamID(ctx context.Context, teamID uint) ([]entity.Evaluation, error) {
	var evaluations []entity.Evaluation
	err := s.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at").
		Find(&evaluations).Error
	return evaluations, err
}

// GetByHackathonID is a function that gets all evaluations of a hackathon.
func (s *EvaluationStorage) GetByHackathonID(ctx context.Context, hackathonID uint) ([]entity.Evaluation, error) {
	var evaluations []entity.Evaluation
	err := s.db.WithContext(ctx).
		Where("hackathon_id = ?", hackathonID).
		Order("created_at").
		Find(&evaluations).Error
	return evaluations, err
}

// HasJudgeScored is a function that reports whether a judge already scored a team.
func (s *EvaluationStorage) HasJudgeScored(ctx context.Context, judgeID, teamID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Evaluation{}).
		Where("judge_id = ? AND team_id = ?", judgeID, teamID).
		Count(&count).Error
	return count > 0, err
}
