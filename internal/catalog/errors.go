package catalog

import (
	"errors"
	"fmt"

	"cinelog/internal/services"
)

var (
	// ErrDuplicateTitle reports an add rejected because the title already
	// exists. This is a normal negative result, not a failure; it carries
	// the services.ErrDuplicate marker.
	ErrDuplicateTitle = fmt.Errorf("%w: title already in catalog", services.ErrDuplicate)

	// ErrRatingRange reports a rating outside [0.0, 10.0]. The record is
	// left untouched. Carries the services.ErrValidation marker.
	ErrRatingRange = fmt.Errorf("%w: rating must be between 0.0 and 10.0", services.ErrValidation)

	// ErrMovieNotFound reports an operation against a record that does not
	// exist. Carries the services.ErrNotFound marker.
	ErrMovieNotFound = fmt.Errorf("%w: movie not found", services.ErrNotFound)

	// ErrCatalogLocked reports that another cinelog process holds the
	// catalog lock.
	ErrCatalogLocked = errors.New("catalog is locked by another cinelog process")
)
