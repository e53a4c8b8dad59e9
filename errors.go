package stars

import (
	"fmt"
	"net/http"
)

// RequestError is recorded when the request never produced a response:
// connection failures, timeouts, cancellation.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return "Request Error: " + e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// HTTPError is recorded for any response outside the 2xx range. A missing
// repository is not distinguished from other statuses.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return "HTTP Error: " + status
}

// ParseError is recorded when a successful response does not carry an
// unsigned integer stargazers_count.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "Error parsing JSON: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
