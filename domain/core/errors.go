package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Ingestion errors
	ErrResolution = errors.New("sphere resolution violation")
	ErrSchema     = errors.New("catalog schema not recognized")
	ErrMapFormat  = errors.New("malformed map file")

	// Capacity errors
	ErrCapacity = errors.New("input exceeds configured capacity")

	// Ensemble errors
	ErrIncompleteEnsemble = errors.New("null ensemble incomplete")
	ErrInvalidState       = errors.New("invalid estimator state transition")
	ErrEstimatorSpent     = errors.New("estimator already reported")

	// Degenerate input (recovered locally with a neutral value, surfaced
	// only when a caller asks for strict diagnostics)
	ErrDegenerateInput = errors.New("degenerate input yields undefined statistic")

	// Determinism errors
	ErrSeedMismatch = errors.New("seed mismatch")
)

// Error constructors with context
func NewResolutionError(nsideIn, nsideTarget int) error {
	return fmt.Errorf("%w: input nside %d below pipeline nside %d (upsampling not permitted)", ErrResolution, nsideIn, nsideTarget)
}

func NewPixelCountError(npix int) error {
	return fmt.Errorf("%w: %d pixels does not correspond to a valid nside", ErrResolution, npix)
}

func NewSchemaError(kind string, accepted []string) error {
	return fmt.Errorf("%w: no %s column found among accepted aliases %v", ErrSchema, kind, accepted)
}

func NewCapacityError(count, limit int) error {
	return fmt.Errorf("%w: %d objects exceeds pairwise limit %d (downsample first)", ErrCapacity, count, limit)
}

func NewStateError(from, to string) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidState, from, to)
}

// Error checking helpers
func IsResolutionError(err error) bool {
	return errors.Is(err, ErrResolution)
}

func IsSchemaError(err error) bool {
	return errors.Is(err, ErrSchema)
}

func IsCapacityError(err error) bool {
	return errors.Is(err, ErrCapacity)
}

func IsFatalIngestionError(err error) bool {
	return errors.Is(err, ErrResolution) ||
		errors.Is(err, ErrSchema) ||
		errors.Is(err, ErrMapFormat)
}
