package schema

import "fmt"

// ValidationError represents a single argument violation. Path addresses the
// offending value inside the argument object, e.g. "ipAccessList[0].source".
type ValidationError struct {
	Path   string // Location of the violation
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation, when its type is relevant
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("argument %q: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("argument %q: %s (got %T)", e.Path, e.Reason, e.Value)
}

// AggregateError collects every violation found in one validation pass.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// ValidationErrors returns all violations if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}
