package layout

import (
	"context"

	apperrors "github.com/matzehuels/arrange/pkg/errors"
)

// Defaults for [DefaultBounds].
const (
	DefaultMaxIterations = 10000
	DefaultThreshold     = 0.01
	DefaultTimeStep      = 0.01
	DefaultReportEvery   = 50
)

// Bounds limits a [Run].
type Bounds struct {
	// MaxIterations is the step ceiling (> 0).
	MaxIterations int `json:"max_iterations" toml:"max_iterations"`

	// Threshold is the energy below which the layout counts as settled.
	Threshold float64 `json:"threshold" toml:"threshold"`

	// TimeStep is the dt passed to every [Engine.Step] (> 0).
	TimeStep float64 `json:"time_step" toml:"time_step"`

	// ReportEvery sets how often the observer is called, in steps.
	// Zero means every step.
	ReportEvery int `json:"report_every,omitempty" toml:"report_every"`
}

// DefaultBounds returns the standard loop bounds.
func DefaultBounds() Bounds {
	return Bounds{
		MaxIterations: DefaultMaxIterations,
		Threshold:     DefaultThreshold,
		TimeStep:      DefaultTimeStep,
		ReportEvery:   DefaultReportEvery,
	}
}

// Validate reports out-of-range bounds as an INVALID_PARAMS error.
func (b Bounds) Validate() error {
	switch {
	case b.MaxIterations <= 0:
		return invalidParams("max iterations must be positive, got %d", b.MaxIterations)
	case !(b.Threshold >= 0):
		return invalidParams("energy threshold must not be negative, got %v", b.Threshold)
	case !(b.TimeStep > 0):
		return invalidParams("time step must be positive, got %v", b.TimeStep)
	case b.ReportEvery < 0:
		return invalidParams("report interval must not be negative, got %d", b.ReportEvery)
	}
	return nil
}

// Progress is reported to a [Run] observer.
type Progress struct {
	Iteration int
	Energy    float64
	Max       int
	Threshold float64
}

// Result summarises a finished [Run].
type Result struct {
	Iterations int     `json:"iterations"`
	Energy     float64 `json:"energy"`
	Converged  bool    `json:"converged"`
}

// Run steps e until its energy falls below b.Threshold or b.MaxIterations
// steps have been taken. ctx is checked between steps; on cancellation Run
// returns the partial result together with ctx.Err(). Hitting the iteration
// ceiling is not an error.
//
// observe, if non-nil, is called every b.ReportEvery steps and once more
// after the final step.
func Run(ctx context.Context, e *Engine, b Bounds, observe func(Progress)) (Result, error) {
	if err := b.Validate(); err != nil {
		return Result{}, err
	}
	every := b.ReportEvery
	if every == 0 {
		every = 1
	}

	report := func(i int, energy float64) {
		if observe != nil {
			observe(Progress{Iteration: i, Energy: energy, Max: b.MaxIterations, Threshold: b.Threshold})
		}
	}

	var res Result
	for i := 1; i <= b.MaxIterations; i++ {
		if err := ctx.Err(); err != nil {
			report(res.Iterations, res.Energy)
			return res, err
		}
		e.Step(b.TimeStep)
		res.Iterations = i
		res.Energy = e.TotalEnergy()
		if res.Energy < b.Threshold {
			res.Converged = true
			break
		}
		if i%every == 0 && i != b.MaxIterations {
			report(i, res.Energy)
		}
	}
	report(res.Iterations, res.Energy)
	return res, nil
}

// IsInvalid reports whether err rejects a graph or its parameters, as
// opposed to a cancellation.
func IsInvalid(err error) bool {
	return apperrors.Is(err, apperrors.ErrCodeInvalidGraph) || apperrors.Is(err, apperrors.ErrCodeInvalidParams)
}
