package sim

import "fmt"

// ConfigError reports one or more invalid or missing configuration values.
// Validation is aggregated: every violated constraint is collected before
// the error is returned, not just the first one found.
type ConfigError struct {
	Violations []string
}

func (e *ConfigError) Error() string {
	if len(e.Violations) == 1 {
		return fmt.Sprintf("invalid configuration: %s", e.Violations[0])
	}
	msg := fmt.Sprintf("invalid configuration (%d problems):", len(e.Violations))
	for _, v := range e.Violations {
		msg += fmt.Sprintf("\n  - %s", v)
	}
	return msg
}

// PlacementError reports that the external placement policy cannot seat
// every ball in a distinct cell.
type PlacementError struct {
	NumBalls  int
	NumCells  int
	BallRadio float64
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("too many balls (%d) for domain (%d cells available)", e.NumBalls, e.NumCells)
}

// OverlapError reports a fatal violation of the no-overlap invariant,
// detected at export time. It is never expected from a correct
// implementation; its presence indicates a predictor or resolver bug.
type OverlapError struct {
	Time     float64
	BallI    int
	BallJ    int
	Distance float64
	MinDist  float64
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("overlap invariant violated at t=%.9f: balls %d and %d are %.12f apart, minimum is %.12f",
		e.Time, e.BallI, e.BallJ, e.Distance, e.MinDist)
}
