package httperr

import (
	"errors"
	"net/http"

	"jaac-backend/internal/pkg/errs"
	"jaac-backend/internal/pkg/ptr"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status   int    `json:"-"`
	Success  *bool  `json:"success,omitempty"`
	Verified *bool  `json:"verified,omitempty"`
	Error    string `json:"error"`
	Details  any    `json:"details,omitempty"`
}

type Option func(*Response)

// WithVerifiedFlag adds `verified:false` so payment checks read as a negative result.
func WithVerifiedFlag() Option {
	return func(r *Response) { r.Verified = ptr.Of(false) }
}

// WithSuccessFlag adds `success:false` for routes whose contract carries it.
func WithSuccessFlag() Option {
	return func(r *Response) { r.Success = ptr.Of(false) }
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, details any, opts ...Option) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status, Error: msg, Details: details}
	for _, opt := range opts {
		opt(&resp)
	}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort derives status, message and details from the error taxonomy.
func Abort(c *gin.Context, err error, fallback string, opts ...Option) {
	AbortWithError(c, StatusOf(err), err, errs.PublicMessage(err, fallback), DetailsOf(err), opts...)
}

func StatusOf(err error) int {
	switch {
	case errs.Is(err, errs.ErrValidation), errs.Is(err, errs.ErrNotPaid):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func DetailsOf(err error) any {
	if d, ok := errs.Details(err); ok {
		return d
	}
	var fe errs.FieldErrors
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}
