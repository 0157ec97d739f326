package repositories

// OutputRepository publishes the outcome of a run to the invoking environment.
type OutputRepository interface {
	// SetOutput publishes a named output value.
	SetOutput(name, value string) error

	// Fail reports the single failure message of a run.
	Fail(message string)
}
