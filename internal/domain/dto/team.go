package dto

import "github.com/hackstage/hackstage/internal/domain/entity"

// TeamInfo bundles a team with its current members for read paths.
type TeamInfo struct {
	Team    entity.Team
	Members []entity.User
}

func NewTeamInfo(team entity.Team, members []entity.User) TeamInfo {
	return TeamInfo{
		Team:    team,
		Members: members,
	}
}
