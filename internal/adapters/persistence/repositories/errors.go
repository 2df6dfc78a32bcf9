package repositories

import (
	"errors"

	"gorm.io/gorm"

	"gcbp-mortgage/internal/core/domain"
)

// translate maps gorm errors onto domain errors. notFound is returned for
// gorm.ErrRecordNotFound so each repository can report its own entity.
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicateEntry
	}
	return err
}
