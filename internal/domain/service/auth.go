package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hackstage/hackstage/internal/domain/common/errorz"
	"github.com/hackstage/hackstage/internal/domain/entity"
	"golang.org/x/crypto/bcrypt"
)

type SessionStorage interface {
	Get(ctx context.Context, token string) (uint, error)
	Set(ctx context.Context, token string, userID uint, expiration time.Duration) error
	Delete(ctx context.Context, token string) error
}

type authUserStorage interface {
	Get(ctx context.Context, id uint) (*entity.User, error)
	GetByLogin(ctx context.Context, login string) (*entity.User, error)
}

// AuthService mints and resolves session tokens. The acting identity is always
// looked up per request, there is no process-wide current user.
type AuthService struct {
	sessions   SessionStorage
	users      authUserStorage
	sessionTTL time.Duration
}

func NewAuthService(sessions SessionStorage, users authUserStorage, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		sessions:   sessions,
		users:      users,
		sessionTTL: sessionTTL,
	}
}

// Login checks the credentials and returns a fresh session token. A failed
// attempt mints nothing and leaves existing sessions untouched.
func (s *AuthService) Login(ctx context.Context, login, password string) (string, error) {
	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(storageErr(err), errorz.ErrNotFound) {
			return "", errorz.ErrNotAuthenticated
		}
		return "", storageErr(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", errorz.ErrNotAuthenticated
	}

	token := uuid.New().String()
	if err = s.sessions.Set(ctx, token, user.ID, s.sessionTTL); err != nil {
		return "", storageErr(err)
	}
	return token, nil
}

// Identity resolves a session token to the user it belongs to.
func (s *AuthService) Identity(ctx context.Context, token string) (*entity.User, error) {
	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, storageErr(err)
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, storageErr(err)
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return storageErr(s.sessions.Delete(ctx, token))
}
