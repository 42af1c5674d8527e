package entity

import "time"

type Role string

const (
	RoleOrganizer   Role = "organizer"
	RoleJudge       Role = "judge"
	RoleParticipant Role = "participant"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOrganizer, RoleJudge, RoleParticipant:
		return true
	}
	return false
}

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Login        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	Role         Role   `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) IsOrganizer() bool {
	return u.Role == RoleOrganizer
}

func (u *User) IsJudge() bool {
	return u.Role == RoleJudge
}

func (u *User) IsParticipant() bool {
	return u.Role == RoleParticipant
}
