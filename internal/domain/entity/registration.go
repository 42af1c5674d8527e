package entity

import "time"

// Registration ties a user to a hackathon with the role they will hold in it.
// Participant registrations count against the hackathon cap only once confirmed
// by the organizer.
type Registration struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_registration_user_hackathon"`
	HackathonID uint      `gorm:"not null;uniqueIndex:idx_registration_user_hackathon"`
	User        User      `gorm:"foreignKey:UserID"`
	Hackathon   Hackathon `gorm:"foreignKey:HackathonID"`
	Role        Role      `gorm:"not null"`
	Confirmed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
