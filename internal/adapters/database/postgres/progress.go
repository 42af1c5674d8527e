package postgres

import (
	"context"

	"github.com/hackstage/hackstage/internal/domain/entity"
	"gorm.io/gorm"
)

type ProgressStorage struct {
	db *gorm.DB
}

func NewProgressStorage(db *gorm.DB) *ProgressStorage {
	return &ProgressStorage{
		db: db,
	}
}

// Create is a function that creates a new progress submission in the database.
func (s *ProgressStorage) Create(ctx context.Context, progress *entity.Progress) (*entity.Progress, error) {
	err := s.db.WithContext(ctx).Create(&progress).Error
	return progress, err
}

// Get is a function that gets a progress submission from the database by id.
func (s *ProgressStorage) Get(ctx context.Context, id uint) (*entity.Progress, error) {
	var progress entity.Progress
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&progress).Error
	return &progress, err
}

// GetByTeamID is a function that gets all progress submissions of a team.
func (s *ProgressStorage) GetByTeamID(ctx context.Context, teamID uint) ([]entity.Progress, error) {
	var progresses []entity.Progress
	err := s.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at").
		Find(&progresses).Error
	return progresses, err
}

// GetByHackathonID is a function that gets all progress submissions of a hackathon.
func (s *ProgressStorage) GetByHackathonID(ctx context.Context, hackathonID uint) ([]entity.Progress, error) {
	var progresses []entity.Progress
	err := s.db.WithContext(ctx).
		Where("hackathon_id = ?", hackathonID).
		Order("created_at").
		Find(&progresses).Error
	return progresses, err
}

// CreateComment is a function that adds a judge comment to a progress submission.
func (s *ProgressStorage) CreateComment(ctx context.Context, comment *entity.JudgeComment) (*entity.JudgeComment, error) {
	err := s.db.WithContext(ctx).Create(&comment).Error
	return comment, err
}

// GetComments is a function that gets the judge comments of a progress submission.
func (s *ProgressStorage) GetComments(ctx context.Context, progressID uint) ([]entity.JudgeComment, error) {
	var comments []entity.JudgeComment
	err := s.db.WithContext(ctx).
		Where("progress_id = ?", progressID).
		Order("created_at").
		Find(&comments).Error
	return comments, err
}
