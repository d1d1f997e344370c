package domain

// ExitCode is the process exit status derived from a run's outcomes.
type ExitCode int

const (
	ExitOK      ExitCode = 0
	ExitFailure ExitCode = 2
)
