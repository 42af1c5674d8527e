package entity

import "time"

type Hackathon struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"not null"`
	StartTime          time.Time
	EndTime            time.Time
	Venue              string
	Virtual            bool
	OrganizerID        uint `gorm:"not null;index"`
	Organizer          User `gorm:"foreignKey:OrganizerID"`
	MaxParticipants    int  `gorm:"not null"`
	MaxTeams           int  `gorm:"not null"`
	RegistrationsOpen  bool
	ProblemDescription string
	Started            bool
	Concluded          bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Running reports whether the event has started and is not yet concluded.
func (h *Hackathon) Running() bool {
	return h.Started && !h.Concluded
}

func (h *Hackathon) OwnedBy(userID uint) bool {
	return h.OrganizerID == userID
}
