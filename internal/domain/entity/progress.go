package entity

import (
	"time"

	"github.com/lib/pq"
)

// Progress is a deliverable a team submits while the hackathon runs.
type Progress struct {
	ID           uint           `gorm:"primaryKey"`
	TeamID       uint           `gorm:"not null;index"`
	HackathonID  uint           `gorm:"not null;index"`
	Team         Team           `gorm:"foreignKey:TeamID"`
	Title        string         `gorm:"not null"`
	Description  string
	DocumentPath string
	Attachments  pq.StringArray `gorm:"type:text[]"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// JudgeComment is feedback a judge leaves on a progress submission.
type JudgeComment struct {
	ID         uint     `gorm:"primaryKey"`
	ProgressID uint     `gorm:"not null;index"`
	JudgeID    uint     `gorm:"not null"`
	Progress   Progress `gorm:"foreignKey:ProgressID"`
	Judge      User     `gorm:"foreignKey:JudgeID"`
	Comment    string   `gorm:"not null"`
	CreatedAt  time.Time
}
