package repository

import (
	"errors"

	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

// translateErr maps gorm errors (TranslateError is on) to repository errors.
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repo.ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return repo.ErrReferenced
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repo.ErrDuplicate
	}
	return err
}

// page/limit to offset; page starts at 1
func offsetOf(page int, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
