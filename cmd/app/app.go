package app

import (
	"github.com/hackstage/hackstage/internal/adapters/config"
	postgresStorage "github.com/hackstage/hackstage/internal/adapters/database/postgres"
	"github.com/hackstage/hackstage/internal/adapters/database/redis"
	"github.com/hackstage/hackstage/internal/domain/service"
	"github.com/hackstage/hackstage/pkg/logger"
	"github.com/hackstage/hackstage/pkg/logger/types"
	"github.com/hackstage/hackstage/pkg/smtp"
	"gorm.io/gorm"
)

// App bundles the wired service layer; presentation layers consume it as their
// single entry point.
type App struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Logger *types.Logger

	Users         *service.UserService
	Auth          *service.AuthService
	Hackathons    *service.HackathonService
	Registrations *service.RegistrationService
	Teams         *service.TeamService
	Progress      *service.ProgressService
	Evaluations   *service.EvaluationService
	Reports       *service.ReportService
}

func New(cfg *config.Config) (*App, error) {
	appLogger, err := logger.Named("app")
	if err != nil {
		return nil, err
	}

	userStorage := postgresStorage.NewUserStorage(cfg.Database)
	hackathonStorage := postgresStorage.NewHackathonStorage(cfg.Database)
	registrationStorage := postgresStorage.NewRegistrationStorage(cfg.Database)
	teamStorage := postgresStorage.NewTeamStorage(cfg.Database)
	progressStorage := postgresStorage.NewProgressStorage(cfg.Database)
	evaluationStorage := postgresStorage.NewEvaluationStorage(cfg.Database)

	mailer := smtp.NewClient(cfg.SMTPDialer)

	users := service.NewUserService(userStorage)
	auth := service.NewAuthService(cfg.Redis.Sessions, userStorage, cfg.SessionTTL)
	evaluations := service.NewEvaluationService(evaluationStorage, teamStorage)

	reportLogger, err := logger.Named("reports")
	if err != nil {
		return nil, err
	}
	reports := service.NewReportService(reportLogger, evaluations, userStorage, hackathonStorage, mailer)

	hackathons := service.NewHackathonService(appLogger, hackathonStorage, reports)
	registrations := service.NewRegistrationService(appLogger, registrationStorage, hackathonStorage, userStorage, mailer)
	teams := service.NewTeamService(teamStorage, registrationStorage, hackathonStorage)
	progress := service.NewProgressService(progressStorage, teamStorage)

	return &App{
		DB:     cfg.Database,
		Redis:  cfg.Redis,
		Logger: appLogger,

		Users:         users,
		Auth:          auth,
		Hackathons:    hackathons,
		Registrations: registrations,
		Teams:         teams,
		Progress:      progress,
		Evaluations:   evaluations,
		Reports:       reports,
	}, nil
}
