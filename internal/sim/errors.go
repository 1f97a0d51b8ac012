package sim

import "errors"

// Domain errors for simulation runs.
var (
	// ErrInvalidTimestep indicates a zero or negative dt.
	ErrInvalidTimestep = errors.New("sim: dt must be positive")

	// ErrInvalidSteps indicates a zero or negative step count.
	ErrInvalidSteps = errors.New("sim: step count must be positive")

	// ErrDiverged indicates positions became NaN or Inf during a run.
	ErrDiverged = errors.New("sim: positions diverged (NaN or Inf)")
)
