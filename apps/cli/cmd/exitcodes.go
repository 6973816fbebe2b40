package cmd

// Exit codes for the objkit CLI
const (
	// ExitSuccess indicates the call returned a data result
	ExitSuccess = 0

	// ExitCallFailure indicates the call returned an error result or a
	// schema validation failure
	ExitCallFailure = 1

	// ExitConfigError indicates a configuration or local I/O error
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
