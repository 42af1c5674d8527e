package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/hackstage/hackstage/internal/domain/common/errorz"
	"github.com/hackstage/hackstage/internal/domain/dto"
	"github.com/hackstage/hackstage/internal/domain/entity"
	"github.com/hackstage/hackstage/pkg/logger/types"
	"github.com/xuri/excelize/v2"
)

type leaderboardSource interface {
	Leaderboard(ctx context.Context, hackathonID uint) ([]dto.TeamScore, error)
}

type reportUserStorage interface {
	Get(ctx context.Context, id uint) (*entity.User, error)
}

type reportHackathonStorage interface {
	Get(ctx context.Context, id uint) (*entity.Hackathon, error)
}

type resultsMailer interface {
	SendResults(to string, hackathonName string, results *bytes.Buffer) error
}

// ReportService builds organizer-facing leaderboard exports and mails the
// final standings when a hackathon concludes.
type ReportService struct {
	logger *types.Logger

	leaderboards     leaderboardSource
	userStorage      reportUserStorage
	hackathonStorage reportHackathonStorage
	mailer           resultsMailer
}

func NewReportService(
	logger *types.Logger,
	leaderboards leaderboardSource,
	userStorage reportUserStorage,
	hackathonStorage reportHackathonStorage,
	mailer resultsMailer,
) *ReportService {
	return &ReportService{
		logger:           logger,
		leaderboards:     leaderboards,
		userStorage:      userStorage,
		hackathonStorage: hackathonStorage,
		mailer:           mailer,
	}
}

// LeaderboardXLSX renders the current standings of an owned hackathon as a
// spreadsheet.
func (s *ReportService) LeaderboardXLSX(ctx context.Context, actor *entity.User, hackathonID uint) (*bytes.Buffer, error) {
	if actor == nil {
		return nil, errorz.ErrNotAuthenticated
	}
	if !actor.IsOrganizer() {
		return nil, fmt.Errorf("%w: organizer role required", errorz.ErrPermissionDenied)
	}

	hackathon, err := s.hackathonStorage.Get(ctx, hackathonID)
	if err != nil {
		return nil, storageErr(err)
	}
	if !hackathon.OwnedBy(actor.ID) {
		return nil, fmt.Errorf("%w: not the organizer of this hackathon", errorz.ErrPermissionDenied)
	}

	leaderboard, err := s.leaderboards.Leaderboard(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	return leaderboardToXLSX(leaderboard)
}

// SendResults mails the final leaderboard workbook to the hackathon organizer.
func (s *ReportService) SendResults(ctx context.Context, hackathon *entity.Hackathon) error {
	leaderboard, err := s.leaderboards.Leaderboard(ctx, hackathon.ID)
	if err != nil {
		return err
	}

	buf, err := leaderboardToXLSX(leaderboard)
	if err != nil {
		return err
	}

	organizer, err := s.userStorage.Get(ctx, hackathon.OrganizerID)
	if err != nil {
		return storageErr(err)
	}

	if err = s.mailer.SendResults(organizer.Email, hackathon.Name, buf); err != nil {
		return err
	}
	s.logger.Infof("results for hackathon %d sent to %s", hackathon.ID, organizer.Email)
	return nil
}

func leaderboardToXLSX(leaderboard []dto.TeamScore) (*bytes.Buffer, error) {
	f := excelize.NewFile()

	sheet := "Sheet1"
	_ = f.SetCellValue(sheet, "A1", "Rank")
	_ = f.SetCellValue(sheet, "B1", "Team")
	_ = f.SetCellValue(sheet, "C1", "Mean score")
	_ = f.SetCellValue(sheet, "D1", "Evaluations")
	for i, score := range leaderboard {
		row := strconv.Itoa(i + 2)
		_ = f.SetCellValue(sheet, "A"+row, i+1)
		_ = f.SetCellValue(sheet, "B"+row, score.TeamName)
		_ = f.SetCellValue(sheet, "C"+row, score.Mean)
		_ = f.SetCellValue(sheet, "D"+row, score.Evaluations)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
