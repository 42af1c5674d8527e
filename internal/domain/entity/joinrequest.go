package entity

import "time"

type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestAccepted JoinRequestStatus = "accepted"
	JoinRequestRejected JoinRequestStatus = "rejected"
)

// JoinRequest is a participant's application to enter a team. Status moves out
// of pending exactly once.
type JoinRequest struct {
	ID         uint              `gorm:"primaryKey"`
	UserID     uint              `gorm:"not null;index"`
	TeamID     uint              `gorm:"not null;index"`
	User       User              `gorm:"foreignKey:UserID"`
	Team       Team              `gorm:"foreignKey:TeamID"`
	Motivation string
	Status     JoinRequestStatus `gorm:"not null;default:pending"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (r *JoinRequest) Pending() bool {
	return r.Status == JoinRequestPending
}
