package entity

import "time"

const (
	MinScore = 0
	MaxScore = 10
)

// Evaluation is a judge's score for a team, one per (judge, team) pair,
// immutable once created.
type Evaluation struct {
	ID          uint      `gorm:"primaryKey"`
	JudgeID     uint      `gorm:"not null;uniqueIndex:idx_evaluation_judge_team"`
	TeamID      uint      `gorm:"not null;uniqueIndex:idx_evaluation_judge_team"`
	HackathonID uint      `gorm:"not null;index"`
	Judge       User      `gorm:"foreignKey:JudgeID"`
	Team        Team      `gorm:"foreignKey:TeamID"`
	Score       int       `gorm:"not null"`
	Comment     string
	CreatedAt   time.Time
}

func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}
