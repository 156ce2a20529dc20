package foam

import "errors"

// Sentinel errors. Callers match them with errors.Is; operations wrap them
// with the offending index or shape.
var (
	// ErrInvalidIndex is returned for an empty multi-index or one with a
	// negative component.
	ErrInvalidIndex = errors.New("foam: invalid multi-index")

	// ErrDuplicateIndex is returned when a hierarchy is built with the same
	// multi-index twice.
	ErrDuplicateIndex = errors.New("foam: duplicate multi-index")

	// ErrMissingState is returned when a hierarchy is queried for an index it
	// does not hold.
	ErrMissingState = errors.New("foam: no state for multi-index")

	// ErrMissingGoal is returned when neither an index-specific projector nor a
	// level default exists for a queried index.
	ErrMissingGoal = errors.New("foam: no goal projector for multi-index")

	// ErrDimensionMismatch is returned when vectors or matrices of
	// incompatible shapes are combined.
	ErrDimensionMismatch = errors.New("foam: dimension mismatch")

	// ErrNotSquare is returned when a square matrix is required.
	ErrNotSquare = errors.New("foam: matrix is not square")

	// ErrDegenerateNormalization is returned when a zero vector would have to
	// be scaled to unit norm.
	ErrDegenerateNormalization = errors.New("foam: cannot normalize zero vector")

	// ErrUnknownScenario is returned by LookupScenario.
	ErrUnknownScenario = errors.New("foam: unknown scenario")

	// ErrInvalidConfig is returned for unusable optimizer or run settings.
	ErrInvalidConfig = errors.New("foam: invalid config")
)
