package entity

import "time"

type Team struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"not null"`
	HackathonID uint      `gorm:"not null;index"`
	Hackathon   Hackathon `gorm:"foreignKey:HackathonID"`
	LeaderID    uint      `gorm:"not null"`
	Leader      User      `gorm:"foreignKey:LeaderID"`
	MaxSize     int       `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *Team) LedBy(userID uint) bool {
	return t.LeaderID == userID
}

// TeamMember is one row per team membership. The leader always has a row,
// inserted in the same transaction that creates the team.
type TeamMember struct {
	ID        uint `gorm:"primaryKey"`
	TeamID    uint `gorm:"not null;uniqueIndex:idx_team_member"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_team_member"`
	Team      Team `gorm:"foreignKey:TeamID"`
	User      User `gorm:"foreignKey:UserID"`
	CreatedAt time.Time
}
