package errors

type ExitCode int

const (
	// The scenario ran and every check passed.
	SuccessExitCode ExitCode = 0

	// Anything not classified below.
	GenericFailureExitCode ExitCode = 1

	// The gRPC connection or the REST readiness probe could not be established.
	// Nothing was created on the target.
	ConnectFailureExitCode ExitCode = 70

	// At least one check failed. Checks themselves never abort the run.
	ChecksFailedExitCode ExitCode = 71

	// Bad flags, unreadable config file or a missing fixture.
	ConfigFailureExitCode ExitCode = 72
)
