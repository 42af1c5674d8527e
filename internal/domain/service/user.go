package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hackstage/hackstage/internal/domain/common/errorz"
	"github.com/hackstage/hackstage/internal/domain/entity"
	"github.com/hackstage/hackstage/internal/domain/utils/validator"
	"golang.org/x/crypto/bcrypt"
)

type UserStorage interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Get(ctx context.Context, id uint) (*entity.User, error)
	GetByLogin(ctx context.Context, login string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)
}

type UserService struct {
	storage UserStorage
}

func NewUserService(storage UserStorage) *UserService {
	return &UserService{
		storage: storage,
	}
}

// Register creates a new user. Login and email must be unused; the password is
// stored as a bcrypt hash, never in plain text.
func (s *UserService) Register(ctx context.Context, login, password, firstName, lastName, email string, role entity.Role) (*entity.User, error) {
	switch {
	case !validator.Login(login):
		return nil, fmt.Errorf("%w: login", errorz.ErrInvalidArgument)
	case !validator.Password(password):
		return nil, fmt.Errorf("%w: password", errorz.ErrInvalidArgument)
	case !validator.PersonName(firstName) || !validator.PersonName(lastName):
		return nil, fmt.Errorf("%w: name", errorz.ErrInvalidArgument)
	case !validator.Email(email):
		return nil, fmt.Errorf("%w: email", errorz.ErrInvalidArgument)
	case !role.Valid():
		return nil, fmt.Errorf("%w: role", errorz.ErrInvalidArgument)
	}

	if err := s.checkUnused(ctx, login, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errorz.ErrStorage, err)
	}

	user, err := s.storage.Create(ctx, &entity.User{
		Login:        login,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Role:         role,
	})
	if err != nil {
		return nil, storageErr(err)
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*entity.User, error) {
	user, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	return user, nil
}

func (s *UserService) GetByLogin(ctx context.Context, login string) (*entity.User, error) {
	user, err := s.storage.GetByLogin(ctx, login)
	if err != nil {
		return nil, storageErr(err)
	}
	return user, nil
}

func (s *UserService) GetAll(ctx context.Context) ([]entity.User, error) {
	users, err := s.storage.GetAll(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return users, nil
}

func (s *UserService) checkUnused(ctx context.Context, login, email string) error {
	if _, err := s.storage.GetByLogin(ctx, login); err == nil {
		return fmt.Errorf("%w: login already in use", errorz.ErrAlreadyExists)
	} else if mapped := storageErr(err); !errors.Is(mapped, errorz.ErrNotFound) {
		return mapped
	}

	if _, err := s.storage.GetByEmail(ctx, email); err == nil {
		return fmt.Errorf("%w: email already in use", errorz.ErrAlreadyExists)
	} else if mapped := storageErr(err); !errors.Is(mapped, errorz.ErrNotFound) {
		return mapped
	}
	return nil
}
