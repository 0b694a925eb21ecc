package resolve

// Step identifies which resolution failed.
type Step string

const (
	StepInstalled Step = "installed"
	StepLatest    Step = "latest"
)

// Error wraps a failed resolution. Its message is the cause's message,
// unchanged, so callers can show or match the original text.
type Error struct {
	Step  Step
	Cause error
}

func (e *Error) Error() string { return e.Cause.Error() }

func (e *Error) Unwrap() error { return e.Cause }

func installedFailed(err error) error { return &Error{Step: StepInstalled, Cause: err} }

func latestFailed(err error) error { return &Error{Step: StepLatest, Cause: err} }
