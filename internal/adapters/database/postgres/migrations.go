package postgres

import "github.com/hackstage/hackstage/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.User{},
	&entity.Hackathon{},
	&entity.Registration{},
	&entity.Team{},
	&entity.TeamMember{},
	&entity.JoinRequest{},
	&entity.Progress{},
	&entity.JudgeComment{},
	&entity.Evaluation{},
}
