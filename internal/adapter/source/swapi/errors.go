package swapi

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mmcdole/holonet/internal/domain"
)

// ResponseError is a non-2xx answer from the catalog.
type ResponseError struct {
	StatusCode int
	Body       []byte
	Detail     string // "detail" field of a JSON error body
	Code       string // "code" field of a JSON error body
}

func (e *ResponseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}

// RequestError is a request that was sent but never answered
// (DNS, refused connection, timeout, cancellation).
type RequestError struct {
	Method string
	URL    string
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// errorBody is the JSON shape the catalog uses for failures
type errorBody struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

func newResponseError(status int, body []byte) *ResponseError {
	re := &ResponseError{StatusCode: status, Body: body}
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil {
		re.Detail = eb.Detail
		re.Code = eb.Code
	}
	return re
}

// classify converts any failure of a catalog call into a *domain.FetchError,
// judging by its shape: an answered request is an API error, an unanswered
// one a network error, anything else unknown.
func classify(err error) *domain.FetchError {
	if err == nil {
		return nil
	}

	var fe *domain.FetchError
	if errors.As(err, &fe) {
		return fe
	}

	var re *ResponseError
	if errors.As(err, &re) {
		msg := re.Detail
		if msg == "" {
			msg = domain.MsgAPIFallback
		}
		return &domain.FetchError{
			Code:         domain.CodeAPI,
			Message:      msg,
			Status:       re.StatusCode,
			UpstreamCode: re.Code,
			Err:          err,
		}
	}

	var rq *RequestError
	if errors.As(err, &rq) {
		return &domain.FetchError{Code: domain.CodeNetwork, Message: domain.MsgNetwork, Err: err}
	}

	msg := err.Error()
	if msg == "" {
		msg = domain.MsgUnknownFallback
	}
	return &domain.FetchError{Code: domain.CodeUnknown, Message: msg, Err: err}
}
