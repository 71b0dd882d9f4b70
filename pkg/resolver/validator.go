package resolver

import (
	"errors"
	"fmt"
	"math"

	"github.com/Ware71/CIAGA-sub002/pkg/common/models"
)

var (
	errMissingSourceID = errors.New("osm_id is required")
	errBadCoordinates  = errors.New("invalid coordinates")
)

type ValidationError struct {
	reason error
}

func (e ValidationError) Error() string {
	return e.reason.Error()
}

func (e ValidationError) Unwrap() error {
	return e.reason
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// ValidateRequest rejects malformed resolution requests before any side
// effect. An empty name is allowed; it classifies as unnamed downstream.
func ValidateRequest(req models.ResolveRequest) error {
	if req.OSMID == "" {
		return ValidationError{reason: errMissingSourceID}
	}
	if !isFinite(req.Lat) || !isFinite(req.Lng) {
		return ValidationError{reason: errBadCoordinates}
	}
	if req.Lat < -90 || req.Lat > 90 || req.Lng < -180 || req.Lng > 180 {
		return ValidationError{reason: fmt.Errorf("coordinates out of range: %w", errBadCoordinates)}
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
