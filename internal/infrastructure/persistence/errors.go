package persistence

import (
	"errors"

	"github.com/intercel/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps driver errors onto the domain taxonomy.
// Requires gorm.Config.TranslateError so drivers report ErrDuplicatedKey and ErrForeignKeyViolated.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewFieldError("categoryId", "category not found")
	default:
		return err
	}
}
