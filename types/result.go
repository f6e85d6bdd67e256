package types

// Result is the outcome of an allocation, rejection or capacity mutation.
//
// Expected business conditions (a refused allocation, a duplicate rejection)
// are reported here instead of as a returned error. Message and Warning are
// meant to be shown to the user verbatim.
type Result struct {
	// Success is true when the mutation was applied or was already in effect.
	Success bool

	// Message is a human-readable outcome.
	Message string

	// Warning is set when the mutation succeeded with a side effect the user
	// should know about, such as switching a team away from another project.
	Warning string

	// Err wraps ErrValidation or ErrStateConflict when Success is false.
	Err error
}

// Ok returns a successful result.
func Ok(message string) Result {
	return Result{Success: true, Message: message}
}

// OkWithWarning returns a successful result carrying a warning.
func OkWithWarning(message, warning string) Result {
	return Result{Success: true, Message: message, Warning: warning}
}

// Fail returns a refused result.
func Fail(message string, err error) Result {
	return Result{Success: false, Message: message, Err: err}
}
