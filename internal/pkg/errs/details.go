package errs

import "errors"

// withDetails carries a payload the HTTP layer returns in the `details` field.
type withDetails struct {
	cause   error
	details any
}

func (w *withDetails) Error() string { return w.cause.Error() }
func (w *withDetails) Unwrap() error { return w.cause }

func WithDetails(err error, details any) error {
	if err == nil {
		return nil
	}
	return &withDetails{cause: err, details: details}
}

// Details returns the outermost payload attached with WithDetails.
func Details(err error) (any, bool) {
	var w *withDetails
	if errors.As(err, &w) {
		return w.details, true
	}
	return nil, false
}

// Failure builds a public error marked with kind, for outcomes that have no
// underlying Go error (e.g. a provider reporting Success=false).
func Failure(kind error, msg string, details any) error {
	err := Public(Mark(New(msg), kind), msg)
	if details != nil {
		err = WithDetails(err, details)
	}
	return err
}
