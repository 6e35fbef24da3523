package infra

import (
	"errors"
	"log/slog"

	"jaac-backend/internal/pkg/errs"
)

type GatewayErrorKind string

// GatewayError is returned by the adapters for external services.
type GatewayError struct {
	Kind     GatewayErrorKind
	Code     string
	provider string
	msg      string
	err      error // wrapped low-level error
}

func (e GatewayError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e GatewayError) Unwrap() error {
	return e.err
}

// Message is the provider's message, falling back to the adapter's own.
func (e GatewayError) Message() string {
	if e.provider != "" {
		return e.provider
	}
	return e.msg
}

func WrapGatewayErr(slogger *slog.Logger, kind GatewayErrorKind, msg string, err error, attrs ...any) GatewayError {
	logArgs := append([]any{slog.String("kind", string(kind))}, attrs...)
	if err != nil {
		logArgs = append(logArgs, slog.String("error", err.Error()))
	}

	slogger.Error("Gateway error: "+msg, logArgs...)

	ge := GatewayError{Kind: kind, msg: msg}
	if err != nil {
		ge.provider = err.Error()
		ge.err = errs.Wrap(err, msg)
	}
	return ge
}

func IsKind(err error, kind GatewayErrorKind) bool {
	var e GatewayError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// AsGatewayError unwraps err to a GatewayError if there is one.
func AsGatewayError(err error) (GatewayError, bool) {
	var e GatewayError
	ok := errors.As(err, &e)
	return e, ok
}

// WithCode attaches the provider's error code.
func (e GatewayError) WithCode(code string) GatewayError {
	e.Code = code
	return e
}

// Infrastructure-specific error kinds
const (
	KindNotFound       GatewayErrorKind = "NOT_FOUND"
	KindInvalidRequest GatewayErrorKind = "INVALID_REQUEST"
	KindUnavailable    GatewayErrorKind = "UNAVAILABLE"
	KindStorage        GatewayErrorKind = "STORAGE_FAILURE"
)
