package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrUnknownKind indicates an endpoint name outside the catalog
	ErrUnknownKind = errors.New("unknown resource kind")

	// ErrInvalidID indicates a resource id that the catalog never issues
	ErrInvalidID = errors.New("invalid resource id")
)

// ErrorCode classifies a failed catalog request.
type ErrorCode string

const (
	// CodeAPI means the server answered with a non-2xx status
	CodeAPI ErrorCode = "API_ERROR"
	// CodeNetwork means the request never got an answer
	CodeNetwork ErrorCode = "NETWORK_ERROR"
	// CodeUnknown covers everything else (decoding, request building, ...)
	CodeUnknown ErrorCode = "UNKNOWN_ERROR"
)

// Default messages used when a failure carries no text of its own.
const (
	MsgAPIFallback     = "An error occurred while fetching data"
	MsgNetwork         = "Network error. Please check your internet connection."
	MsgUnknownFallback = "An unexpected error occurred"
)

// FetchError is the single error shape produced by the fetch client.
type FetchError struct {
	Code    ErrorCode
	Message string
	Status  int // HTTP status, API_ERROR only
	Err     error

	// UpstreamCode is the "code" field of an API error body, if any
	UpstreamCode string
}

func (e *FetchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *FetchError) Unwrap() error { return e.Err }

// ErrorMessage returns the user-facing text of err: a FetchError's Message,
// else the error's own text, else fallback.
func ErrorMessage(err error, fallback string) string {
	var fe *FetchError
	if errors.As(err, &fe) {
		if fe.Message != "" {
			return fe.Message
		}
		return fallback
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
