package service

import (
	"errors"
	"fmt"

	"github.com/hackstage/hackstage/internal/domain/common/errorz"
	"gorm.io/gorm"
)

// storageErr maps persistence errors onto the domain taxonomy. Errors already
// carrying a domain kind pass through unchanged; anything unrecognized is a
// storage failure.
func storageErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errorz.ErrNotAuthenticated),
		errors.Is(err, errorz.ErrPermissionDenied),
		errors.Is(err, errorz.ErrNotFound),
		errors.Is(err, errorz.ErrAlreadyExists),
		errors.Is(err, errorz.ErrCapacityExceeded),
		errors.Is(err, errorz.ErrInvalidArgument):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errorz.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errorz.ErrAlreadyExists
	default:
		return fmt.Errorf("%w: %v", errorz.ErrStorage, err)
	}
}
