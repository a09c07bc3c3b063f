package layout

import (
	"math"

	apperrors "github.com/matzehuels/arrange/pkg/errors"
)

// Defaults for [DefaultParams]. These are the classic spring-model constants:
// with DefaultRestLength two connected nodes settle roughly ten units apart.
// Diagrams measured in pixels set a per-edge [Edge.Length] (the connection
// "length" field) or raise RestLength to get readable spacing.
const (
	DefaultStiffness    = 81.76
	DefaultRepulsion    = 40000.0
	DefaultDamping      = 0.5
	DefaultRestLength   = 1.0
	DefaultMinDistance  = 0.1
	DefaultPerturbation = 0.01
	DefaultExtent       = 5.0
	DefaultSeed         = uint64(42)
)

// Params holds the simulation tunables.
type Params struct {
	// Stiffness is the default spring constant (> 0).
	Stiffness float64 `json:"stiffness" toml:"stiffness"`

	// Repulsion scales the inverse-square pairwise force (>= 0).
	Repulsion float64 `json:"repulsion" toml:"repulsion"`

	// Damping multiplies velocities every step, in (0, 1].
	Damping float64 `json:"damping" toml:"damping"`

	// RestLength is the default spring rest length (>= 0).
	RestLength float64 `json:"rest_length" toml:"rest_length"`

	// MinDistance bounds the repulsion distance from below (> 0).
	MinDistance float64 `json:"min_distance" toml:"min_distance"`

	// Perturbation is the force magnitude used to separate the endpoints
	// of a zero-length spring.
	Perturbation float64 `json:"perturbation" toml:"perturbation"`

	// Extent bounds random initial positions to [-Extent, Extent] per axis.
	Extent float64 `json:"extent" toml:"extent"`

	// CenterAttraction pulls every node toward the origin with force
	// -position×CenterAttraction. Zero disables it.
	CenterAttraction float64 `json:"center_attraction" toml:"center_attraction"`

	// Seed drives initial placement and perturbation directions.
	Seed uint64 `json:"seed" toml:"seed"`
}

// DefaultParams returns the standard tunables.
func DefaultParams() Params {
	return Params{
		Stiffness:    DefaultStiffness,
		Repulsion:    DefaultRepulsion,
		Damping:      DefaultDamping,
		RestLength:   DefaultRestLength,
		MinDistance:  DefaultMinDistance,
		Perturbation: DefaultPerturbation,
		Extent:       DefaultExtent,
		Seed:         DefaultSeed,
	}
}

// Validate reports the first out-of-range tunable as an INVALID_PARAMS error.
func (p Params) Validate() error {
	switch {
	case !(p.Stiffness > 0) || math.IsInf(p.Stiffness, 0):
		return invalidParams("stiffness must be positive, got %v", p.Stiffness)
	case !(p.Repulsion >= 0) || math.IsInf(p.Repulsion, 0):
		return invalidParams("repulsion must not be negative, got %v", p.Repulsion)
	case !(p.Damping > 0 && p.Damping <= 1):
		return invalidParams("damping must be in (0, 1], got %v", p.Damping)
	case !(p.RestLength >= 0):
		return invalidParams("rest length must not be negative, got %v", p.RestLength)
	case !(p.MinDistance > 0):
		return invalidParams("minimum distance must be positive, got %v", p.MinDistance)
	case !(p.Perturbation >= 0):
		return invalidParams("perturbation must not be negative, got %v", p.Perturbation)
	case !(p.Extent >= 0):
		return invalidParams("extent must not be negative, got %v", p.Extent)
	case !(p.CenterAttraction >= 0):
		return invalidParams("center attraction must not be negative, got %v", p.CenterAttraction)
	}
	return nil
}

func invalidParams(format string, args ...any) error {
	return apperrors.New(apperrors.ErrCodeInvalidParams, format, args...)
}
