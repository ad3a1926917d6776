package gin

import (
	"context"
	"errors"
	"net/http"

	"github.com/fwojciec/emoscope"
	ginlib "github.com/gin-gonic/gin"
)

// Error codes returned in ErrorInfo.Code.
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeModelUnavailable     = "MODEL_UNAVAILABLE"
	CodeClassificationFailed = "CLASSIFICATION_FAILED"
	CodePayloadTooLarge      = "PAYLOAD_TOO_LARGE"
	CodeTimeout              = "TIMEOUT"
	CodeClientClosed         = "CLIENT_CLOSED_REQUEST"
	CodeInternal             = "INTERNAL_ERROR"
)

// StatusClientClosedRequest is the nginx status for a request the client
// abandoned before the response was written.
const StatusClientClosedRequest = 499

// ErrorResponse is the HTTP rendering of an error.
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// MapError maps analysis errors to HTTP error responses. Client
// cancellation wins over the error type that carries it.
func MapError(err error) ErrorResponse {
	switch {
	case errors.Is(err, context.Canceled):
		return ErrorResponse{
			StatusCode: StatusClientClosedRequest,
			Code:       CodeClientClosed,
			Message:    "request canceled by client",
		}
	case emoscope.IsModelLoadError(err):
		return ErrorResponse{
			StatusCode: http.StatusServiceUnavailable,
			Code:       CodeModelUnavailable,
			Message:    "emotion model is unavailable",
		}
	case emoscope.IsClassificationError(err):
		return ErrorResponse{
			StatusCode: http.StatusBadGateway,
			Code:       CodeClassificationFailed,
			Message:    "classification failed, try again",
		}
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorResponse{
			StatusCode: http.StatusGatewayTimeout,
			Code:       CodeTimeout,
			Message:    "request timed out",
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       CodeInternal,
			Message:    "internal server error",
		}
	}
}

// HandleError sends the mapped error response.
func HandleError(c *ginlib.Context, err error) {
	errResp := MapError(err)
	respondError(c, errResp.StatusCode, errResp.Code, errResp.Message)
}

// HandlePayloadTooLarge sends a 413 for a body over MaxBodyBytes.
func HandlePayloadTooLarge(c *ginlib.Context) {
	respondError(c, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "request body is too large")
}

// HandleInvalidRequest sends a 400 with message.
func HandleInvalidRequest(c *ginlib.Context, message string) {
	respondError(c, http.StatusBadRequest, CodeInvalidRequest, message)
}
