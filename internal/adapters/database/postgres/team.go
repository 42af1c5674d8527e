package postgres

import (
	"context"

	"github.com/hackstage/hackstage/internal/domain/common/errorz"
	"github.com/hackstage/hackstage/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TeamStorage struct {
	db *gorm.DB
}

func NewTeamStorage(db *gorm.DB) *TeamStorage {
	return &TeamStorage{
		db: db,
	}
}

// Create inserts the team and its leader's membership row in one transaction.
// The hackathon row is locked while the team count is checked against maxTeams.
func (s *TeamStorage) Create(ctx context.Context, team *entity.Team, maxTeams int) (*entity.Team, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var hackathon entity.Hackathon
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", team.HackathonID).
			First(&hackathon).Error; err != nil {
			return err
		}

		var teams int64
		if err := tx.Model(&entity.Team{}).
			Where("hackathon_id = ?", team.HackathonID).
			Count(&teams).Error; err != nil {
			return err
		}
		if teams >= int64(maxTeams) {
			return errorz.ErrCapacityExceeded
		}

		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		return tx.Create(&entity.TeamMember{
			TeamID: team.ID,
			UserID: team.LeaderID,
		}).Error
	})
	return team, err
}

// Get is a function that gets a team from the database by id.
func (s *TeamStorage) Get(ctx context.Context, id uint) (*entity.Team, error) {
	var team entity.Team
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&team).Error
	return &team, err
}

// GetByHackathonID is a function that gets all teams of a hackathon.
func (s *TeamStorage) GetByHackathonID(ctx context.Context, hackathonID uint) ([]entity.Team, error) {
	var teams []entity.Team
	err := s.db.WithContext(ctx).
		Where("hackathon_id = ?", hackathonID).
		Order("id").
		Find(&teams).Error
	return teams, err
}

// GetByMember is a function that gets all teams a user belongs to.
func (s *TeamStorage) GetByMember(ctx context.Context, userID uint) ([]entity.Team, error) {
	var teams []entity.Team
	err := s.db.WithContext(ctx).
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID).
		Find(&teams).Error
	return teams, err
}

// IsMember is a function that reports whether a user belongs to a team.
func (s *TeamStorage) IsMember(ctx context.Context, teamID, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	return count > 0, err
}

// CountMembers is a function that counts the members of a team.
func (s *TeamStorage) CountMembers(ctx context.Context, teamID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.TeamMember{}).
		Where("team_id = ?", teamID).
		Count(&count).Error
	return count, err
}

// GetMembers is a function that gets the users belonging to a team.
func (s *TeamStorage) GetMembers(ctx context.Context, teamID uint) ([]entity.User, error) {
	var users []entity.User
	err := s.db.WithContext(ctx).
		Joins("JOIN team_members ON team_members.user_id = users.id").
		Where("team_members.team_id = ?", teamID).
		Order("team_members.created_at").
		Find(&users).Error
	return users, err
}

// CreateJoinRequest is a function that creates a join request for a team.
func (s *TeamStorage) CreateJoinRequest(ctx context.Context, request *entity.JoinRequest) (*entity.JoinRequest, error) {
	err := s.db.WithContext(ctx).Create(&request).Error
	return request, err
}

// GetJoinRequest is a function that gets a join request from the database by id.
func (s *TeamStorage) GetJoinRequest(ctx context.Context, id uint) (*entity.JoinRequest, error) {
	var request entity.JoinRequest
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&request).Error
	return &request, err
}

// GetPendingJoinRequests is a function that gets a team's pending join requests.
func (s *TeamStorage) GetPendingJoinRequests(ctx context.Context, teamID uint) ([]entity.JoinRequest, error) {
	var requests []entity.JoinRequest
	err := s.db.WithContext(ctx).
		Where("team_id = ? AND status = ?", teamID, entity.JoinRequestPending).
		Order("created_at").
		Find(&requests).Error
	return requests, err
}

// HasPendingJoinRequest is a function that reports whether a user already has a
// pending request for a team.
func (s *TeamStorage) HasPendingJoinRequest(ctx context.Context, teamID, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.JoinRequest{}).
		Where("team_id = ? AND user_id = ? AND status = ?", teamID, userID, entity.JoinRequestPending).
		Count(&count).Error
	return count > 0, err
}

// AcceptJoinRequest flips a pending request to accepted and adds the requester
// to the team, re-checking capacity under a row lock so the team never grows
// past its max size.
func (s *TeamStorage) AcceptJoinRequest(ctx context.Context, id uint) (*entity.JoinRequest, error) {
	var request entity.JoinRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&request).Error; err != nil {
			return err
		}
		if !request.Pending() {
			return errorz.ErrInvalidArgument
		}

		var team entity.Team
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", request.TeamID).
			First(&team).Error; err != nil {
			return err
		}

		var members int64
		if err := tx.Model(&entity.TeamMember{}).
			Where("team_id = ?", team.ID).
			Count(&members).Error; err != nil {
			return err
		}
		if members >= int64(team.MaxSize) {
			return errorz.ErrCapacityExceeded
		}

		if err := tx.Create(&entity.TeamMember{
			TeamID: request.TeamID,
			UserID: request.UserID,
		}).Error; err != nil {
			return err
		}

		request.Status = entity.JoinRequestAccepted
		return tx.Save(&request).Error
	})
	return &request, err
}

// RejectJoinRequest flips a pending request to rejected.
func (s *TeamStorage) RejectJoinRequest(ctx context.Context, id uint) (*entity.JoinRequest, error) {
	var request entity.JoinRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&request).Error; err != nil {
			return err
		}
		if !request.Pending() {
			return errorz.ErrInvalidArgument
		}
		request.Status = entity.JoinRequestRejected
		return tx.Save(&request).Error
	})
	return &request, err
}
