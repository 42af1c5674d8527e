package service

import (
	"context"
	"sync"
	"time"

	"github.com/hackstage/hackstage/internal/domain/common/errorz"
	"github.com/hackstage/hackstage/internal/domain/entity"
	"github.com/hackstage/hackstage/pkg/logger/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func testLogger() *types.Logger {
	return &types.Logger{SugaredLogger: zap.NewNop().Sugar(), Name: "test"}
}

// fakeUserStorage is a mutex-guarded in-memory stand-in for the postgres
// storage, mirroring its not-found and duplicate-key behavior.
type fakeUserStorage struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]entity.User
}

func newFakeUserStorage() *fakeUserStorage {
	return &fakeUserStorage{nextID: 1, users: map[uint]entity.User{}}
}

func (f *fakeUserStorage) Create(_ context.Context, user *entity.User) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Login == user.Login || existing.Email == user.Email {
			return nil, gorm.ErrDuplicatedKey
		}
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	f.users[user.ID] = *user
	return user, nil
}

func (f *fakeUserStorage) Get(_ context.Context, id uint) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (f *fakeUserStorage) GetByLogin(_ context.Context, login string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Login == login {
			u := user
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStorage) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStorage) GetAll(_ context.Context) ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]entity.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, nil
}

type fakeSessionStorage struct {
	mu       sync.Mutex
	sessions map[string]uint
}

func newFakeSessionStorage() *fakeSessionStorage {
	return &fakeSessionStorage{sessions: map[string]uint{}}
}

func (f *fakeSessionStorage) Get(_ context.Context, token string) (uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	userID, ok := f.sessions[token]
	if !ok {
		return 0, errorz.ErrNotAuthenticated
	}
	return userID, nil
}

func (f *fakeSessionStorage) Set(_ context.Context, token string, userID uint, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[token] = userID
	return nil
}

func (f *fakeSessionStorage) Delete(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, token)
	return nil
}

type fakeHackathonStorage struct {
	mu         sync.Mutex
	nextID     uint
	hackathons map[uint]entity.Hackathon
}

func newFakeHackathonStorage() *fakeHackathonStorage {
	return &fakeHackathonStorage{nextID: 1, hackathons: map[uint]entity.Hackathon{}}
}

func (f *fakeHackathonStorage) Create(_ context.Context, hackathon *entity.Hackathon) (*entity.Hackathon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	hackathon.ID = f.nextID
	f.nextID++
	f.hackathons[hackathon.ID] = *hackathon
	return hackathon, nil
}

func (f *fakeHackathonStorage) Get(_ context.Context, id uint) (*entity.Hackathon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	hackathon, ok := f.hackathons[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &hackathon, nil
}

func (f *fakeHackathonStorage) GetAll(_ context.Context) ([]entity.Hackathon, error) {
	return f.filter(func(entity.Hackathon) bool { return true }), nil
}

func (f *fakeHackathonStorage) GetRegistrationsOpen(_ context.Context) ([]entity.Hackathon, error) {
	return f.filter(func(h entity.Hackathon) bool { return h.RegistrationsOpen && !h.Concluded }), nil
}

func (f *fakeHackathonStorage) GetRunning(_ context.Context) ([]entity.Hackathon, error) {
	return f.filter(func(h entity.Hackathon) bool { return h.Running() }), nil
}

func (f *fakeHackathonStorage) GetConcluded(_ context.Context) ([]entity.Hackathon, error) {
	return f.filter(func(h entity.Hackathon) bool { return h.Concluded }), nil
}

func (f *fakeHackathonStorage) GetByOrganizer(_ context.Context, organizerID uint) ([]entity.Hackathon, error) {
	return f.filter(func(h entity.Hackathon) bool { return h.OrganizerID == organizerID }), nil
}

func (f *fakeHackathonStorage) Update(_ context.Context, hackathon *entity.Hackathon) (*entity.Hackathon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.hackathons[hackathon.ID]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	f.hackathons[hackathon.ID] = *hackathon
	return hackathon, nil
}

func (f *fakeHackathonStorage) filter(keep func(entity.Hackathon) bool) []entity.Hackathon {
	f.mu.Lock()
	defer f.mu.Unlock()
	var hackathons []entity.Hackathon
	for id := uint(1); id < f.nextID; id++ {
		if hackathon, ok := f.hackathons[id]; ok && keep(hackathon) {
			hackathons = append(hackathons, hackathon)
		}
	}
	return hackathons
}

type fakeRegistrationStorage struct {
	mu            sync.Mutex
	nextID        uint
	registrations map[uint]entity.Registration
}

func newFakeRegistrationStorage() *fakeRegistrationStorage {
	return &fakeRegistrationStorage{nextID: 1, registrations: map[uint]entity.Registration{}}
}

func (f *fakeRegistrationStorage) Create(_ context.Context, registration *entity.Registration, maxParticipants int) (*entity.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if registration.Role == entity.RoleParticipant {
		var confirmed int
		for _, existing := range f.registrations {
			if existing.HackathonID == registration.HackathonID &&
				existing.Role == entity.RoleParticipant && existing.Confirmed {
				confirmed++
			}
		}
		if confirmed >= maxParticipants {
			return nil, errorz.ErrCapacityExceeded
		}
	}
	for _, existing := range f.registrations {
		if existing.UserID == registration.UserID && existing.HackathonID == registration.HackathonID {
			return nil, gorm.ErrDuplicatedKey
		}
	}
	registration.ID = f.nextID
	f.nextID++
	registration.CreatedAt = time.Now()
	f.registrations[registration.ID] = *registration
	return registration, nil
}

func (f *fakeRegistrationStorage) Get(_ context.Context, id uint) (*entity.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	registration, ok := f.registrations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &registration, nil
}

func (f *fakeRegistrationStorage) GetByUserAndHackathon(_ context.Context, userID, hackathonID uint) (*entity.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, registration := range f.registrations {
		if registration.UserID == userID && registration.HackathonID == hackathonID {
			r := registration
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRegistrationStorage) GetByHackathonID(_ context.Context, hackathonID uint) ([]entity.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var registrations []entity.Registration
	for id := uint(1); id < f.nextID; id++ {
		if registration, ok := f.registrations[id]; ok && registration.HackathonID == hackathonID {
			registrations = append(registrations, registration)
		}
	}
	return registrations, nil
}

func (f *fakeRegistrationStorage) GetPendingByHackathonID(_ context.Context, hackathonID uint) ([]entity.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var registrations []entity.Registration
	for id := uint(1); id < f.nextID; id++ {
		if registration, ok := f.registrations[id]; ok && registration.HackathonID == hackathonID && !registration.Confirmed {
			registrations = append(registrations, registration)
		}
	}
	return registrations, nil
}

func (f *fakeRegistrationStorage) CountConfirmedParticipants(_ context.Context, hackathonID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, registration := range f.registrations {
		if registration.HackathonID == hackathonID &&
			registration.Role == entity.RoleParticipant && registration.Confirmed {
			count++
		}
	}
	return count, nil
}

func (f *fakeRegistrationStorage) Confirm(_ context.Context, id uint) (*entity.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	registration, ok := f.registrations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	registration.Confirmed = true
	f.registrations[id] = registration
	return &registration, nil
}

type fakeTeamStorage struct {
	mu       sync.Mutex
	nextID   uint
	reqID    uint
	teams    map[uint]entity.Team
	members  map[uint][]uint // teamID -> userIDs, insertion order
	requests map[uint]entity.JoinRequest
	users    *fakeUserStorage
}

func newFakeTeamStorage(users *fakeUserStorage) *fakeTeamStorage {
	return &fakeTeamStorage{
		nextID:   1,
		reqID:    1,
		teams:    map[uint]entity.Team{},
		members:  map[uint][]uint{},
		requests: map[uint]entity.JoinRequest{},
		users:    users,
	}
}

func (f *fakeTeamStorage) Create(_ context.Context, team *entity.Team, maxTeams int) (*entity.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int
	for _, existing := range f.teams {
		if existing.HackathonID == team.HackathonID {
			count++
		}
	}
	if count >= maxTeams {
		return nil, errorz.ErrCapacityExceeded
	}
	team.ID = f.nextID
	f.nextID++
	f.teams[team.ID] = *team
	f.members[team.ID] = []uint{team.LeaderID}
	return team, nil
}

func (f *fakeTeamStorage) Get(_ context.Context, id uint) (*entity.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	team, ok := f.teams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &team, nil
}

func (f *fakeTeamStorage) GetByHackathonID(_ context.Context, hackathonID uint) ([]entity.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var teams []entity.Team
	for id := uint(1); id < f.nextID; id++ {
		if team, ok := f.teams[id]; ok && team.HackathonID == hackathonID {
			teams = append(teams, team)
		}
	}
	return teams, nil
}

func (f *fakeTeamStorage) GetByMember(_ context.Context, userID uint) ([]entity.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var teams []entity.Team
	for teamID, userIDs := range f.members {
		for _, id := range userIDs {
			if id == userID {
				teams = append(teams, f.teams[teamID])
				break
			}
		}
	}
	return teams, nil
}

func (f *fakeTeamStorage) IsMember(_ context.Context, teamID, userID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range f.members[teamID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTeamStorage) CountMembers(_ context.Context, teamID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.members[teamID])), nil
}

func (f *fakeTeamStorage) GetMembers(ctx context.Context, teamID uint) ([]entity.User, error) {
	f.mu.Lock()
	memberIDs := append([]uint(nil), f.members[teamID]...)
	f.mu.Unlock()

	var users []entity.User
	for _, id := range memberIDs {
		user, err := f.users.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

func (f *fakeTeamStorage) CreateJoinRequest(_ context.Context, request *entity.JoinRequest) (*entity.JoinRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request.ID = f.reqID
	f.reqID++
	request.CreatedAt = time.Now()
	f.requests[request.ID] = *request
	return request, nil
}

func (f *fakeTeamStorage) GetJoinRequest(_ context.Context, id uint) (*entity.JoinRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &request, nil
}

func (f *fakeTeamStorage) GetPendingJoinRequests(_ context.Context, teamID uint) ([]entity.JoinRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var requests []entity.JoinRequest
	for id := uint(1); id < f.reqID; id++ {
		if request, ok := f.requests[id]; ok && request.TeamID == teamID && request.Pending() {
			requests = append(requests, request)
		}
	}
	return requests, nil
}

func (f *fakeTeamStorage) HasPendingJoinRequest(_ context.Context, teamID, userID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, request := range f.requests {
		if request.TeamID == teamID && request.UserID == userID && request.Pending() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTeamStorage) AcceptJoinRequest(_ context.Context, id uint) (*entity.JoinRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if !request.Pending() {
		return nil, errorz.ErrInvalidArgument
	}
	team := f.teams[request.TeamID]
	if len(f.members[team.ID]) >= team.MaxSize {
		return nil, errorz.ErrCapacityExceeded
	}
	f.members[team.ID] = append(f.members[team.ID], request.UserID)
	request.Status = entity.JoinRequestAccepted
	f.requests[id] = request
	return &request, nil
}

func (f *fakeTeamStorage) RejectJoinRequest(_ context.Context, id uint) (*entity.JoinRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if !request.Pending() {
		return nil, errorz.ErrInvalidArgument
	}
	request.Status = entity.JoinRequestRejected
	f.requests[id] = request
	return &request, nil
}

type fakeProgressStorage struct {
	mu         sync.Mutex
	nextID     uint
	commentID  uint
	progresses map[uint]entity.Progress
	comments   map[uint][]entity.JudgeComment
}

func newFakeProgressStorage() *fakeProgressStorage {
	return &fakeProgressStorage{
		nextID:     1,
		commentID:  1,
		progresses: map[uint]entity.Progress{},
		comments:   map[uint][]entity.JudgeComment{},
	}
}

func (f *fakeProgressStorage) Create(_ context.Context, progress *entity.Progress) (*entity.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	progress.ID = f.nextID
	f.nextID++
	progress.CreatedAt = time.Now()
	f.progresses[progress.ID] = *progress
	return progress, nil
}

func (f *fakeProgressStorage) Get(_ context.Context, id uint) (*entity.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	progress, ok := f.progresses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &progress, nil
}

func (f *fakeProgressStorage) GetByTeamID(_ context.Context, teamID uint) ([]entity.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var progresses []entity.Progress
	for id := uint(1); id < f.nextID; id++ {
		if progress, ok := f.progresses[id]; ok && progress.TeamID == teamID {
			progresses = append(progresses, progress)
		}
	}
	return progresses, nil
}

func (f *fakeProgressStorage) GetByHackathonID(_ context.Context, hackathonID uint) ([]entity.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var progresses []entity.Progress
	for id := uint(1); id < f.nextID; id++ {
		if progress, ok := f.progresses[id]; ok && progress.HackathonID == hackathonID {
			progresses = append(progresses, progress)
		}
	}
	return progresses, nil
}

func (f *fakeProgressStorage) CreateComment(_ context.Context, comment *entity.JudgeComment) (*entity.JudgeComment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment.ID = f.commentID
	f.commentID++
	comment.CreatedAt = time.Now()
	f.comments[comment.ProgressID] = append(f.comments[comment.ProgressID], *comment)
	return comment, nil
}

func (f *fakeProgressStorage) GetComments(_ context.Context, progressID uint) ([]entity.JudgeComment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.JudgeComment(nil), f.comments[progressID]...), nil
}

type fakeEvaluationStorage struct {
	mu          sync.Mutex
	nextID      uint
	evaluations map[uint]entity.Evaluation
}

func newFakeEvaluationStorage() *fakeEvaluationStorage {
	return &fakeEvaluationStorage{nextID: 1, evaluations: map[uint]entity.Evaluation{}}
}

func (f *fakeEvaluationStorage) Create(_ context.Context, evaluation *entity.Evaluation) (*entity.Evaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.evaluations {
		if existing.JudgeID == evaluation.JudgeID && existing.TeamID == evaluation.TeamID {
			return nil, gorm.ErrDuplicatedKey
		}
	}
	evaluation.ID = f.nextID
	f.nextID++
	evaluation.CreatedAt = time.Now()
	f.evaluations[evaluation.ID] = *evaluation
	return evaluation, nil
}

func (f *fakeEvaluationStorage) GetByTeamID(_ context.Context, teamID uint) ([]entity.Evaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var evaluations []entity.Evaluation
	for id := uint(1); id < f.nextID; id++ {
		if evaluation, ok := f.evaluations[id]; ok && evaluation.TeamID == teamID {
			evaluations = append(evaluations, evaluation)
		}
	}
	return evaluations, nil
}

func (f *fakeEvaluationStorage) GetByHackathonID(_ context.Context, hackathonID uint) ([]entity.Evaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var evaluations []entity.Evaluation
	for id := uint(1); id < f.nextID; id++ {
		if evaluation, ok := f.evaluations[id]; ok && evaluation.HackathonID == hackathonID {
			evaluations = append(evaluations, evaluation)
		}
	}
	return evaluations, nil
}

func (f *fakeEvaluationStorage) HasJudgeScored(_ context.Context, judgeID, teamID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, evaluation := range f.evaluations {
		if evaluation.JudgeID == judgeID && evaluation.TeamID == teamID {
			return true, nil
		}
	}
	return false, nil
}

type fakeMailer struct {
	mu        sync.Mutex
	confirmed []string
}

func (f *fakeMailer) SendRegistrationConfirmed(to string, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmed = append(f.confirmed, to)
	return nil
}

// env wires the full service graph over the in-memory fakes; tests seed it
// through the services themselves so every path crosses the permission checks.
type env struct {
	users         *fakeUserStorage
	hackathons    *fakeHackathonStorage
	registrations *fakeRegistrationStorage
	teams         *fakeTeamStorage
	progresses    *fakeProgressStorage
	evaluations   *fakeEvaluationStorage
	mailer        *fakeMailer

	userService         *UserService
	hackathonService    *HackathonService
	registrationService *RegistrationService
	teamService         *TeamService
	progressService     *ProgressService
	evaluationService   *EvaluationService
}

func newEnv() *env {
	users := newFakeUserStorage()
	hackathons := newFakeHackathonStorage()
	registrations := newFakeRegistrationStorage()
	teams := newFakeTeamStorage(users)
	progresses := newFakeProgressStorage()
	evaluations := newFakeEvaluationStorage()
	mailer := &fakeMailer{}

	return &env{
		users:         users,
		hackathons:    hackathons,
		registrations: registrations,
		teams:         teams,
		progresses:    progresses,
		evaluations:   evaluations,
		mailer:        mailer,

		userService:         NewUserService(users),
		hackathonService:    NewHackathonService(testLogger(), hackathons, nil),
		registrationService: NewRegistrationService(testLogger(), registrations, hackathons, users, mailer),
		teamService:         NewTeamService(teams, registrations, hackathons),
		progressService:     NewProgressService(progresses, teams),
		evaluationService:   NewEvaluationService(evaluations, teams),
	}
}

// user registers a user directly through the storage fake with a known id.
func (e *env) user(t testingT, login string, role entity.Role) *entity.User {
	user, err := e.users.Create(context.Background(), &entity.User{
		Login:        login,
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "User",
		Email:        login + "@example.com",
		Role:         role,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", login, err)
	}
	return user
}

// confirmedParticipant seeds a user with a confirmed participant registration.
func (e *env) confirmedParticipant(t testingT, login string, hackathonID uint) *entity.User {
	user := e.user(t, login, entity.RoleParticipant)
	registration, err := e.registrations.Create(context.Background(), &entity.Registration{
		UserID:      user.ID,
		HackathonID: hackathonID,
		Role:        entity.RoleParticipant,
	}, 1<<30)
	if err != nil {
		t.Fatalf("seed registration for %s: %v", login, err)
	}
	if _, err = e.registrations.Confirm(context.Background(), registration.ID); err != nil {
		t.Fatalf("confirm registration for %s: %v", login, err)
	}
	return user
}

// openHackathon seeds an organizer-owned hackathon with open registrations.
func (e *env) openHackathon(t testingT, organizer *entity.User, maxParticipants, maxTeams int) *entity.Hackathon {
	hackathon, err := e.hackathonService.Create(context.Background(), organizer, entity.Hackathon{
		Name:            "Spring Hack",
		Venue:           "Main hall",
		MaxParticipants: maxParticipants,
		MaxTeams:        maxTeams,
	})
	if err != nil {
		t.Fatalf("seed hackathon: %v", err)
	}
	if err = e.hackathonService.OpenRegistrations(context.Background(), organizer, hackathon.ID); err != nil {
		t.Fatalf("open registrations: %v", err)
	}
	hackathon.RegistrationsOpen = true
	return hackathon
}

type testingT interface {
	Fatalf(format string, args ...any)
}
