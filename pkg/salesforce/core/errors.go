package sfcore

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// AuthError reports a failed token exchange. Auth failures are terminal for
// the run; the caller exits rather than retrying.
type AuthError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *AuthError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("authentication failed: %s: %s", e.Code, e.Description)
	}
	return fmt.Sprintf("authentication failed: %s", e.Description)
}

// ErrorKind classifies record API failures for the shell's error reporting.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindValidation
	KindRateLimited
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	case KindRateLimited:
		return "rate limited"
	default:
		return "unknown"
	}
}

// APIError is a non-2xx response from a record API call. Code and Message
// carry the platform-provided detail when the body could be parsed.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error (%s): %s: %s", e.Kind, e.Code, e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("api error (%s): %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("api error (%s): status %d", e.Kind, e.StatusCode)
}

// apiErrorFromResponse maps a failed record API response onto the error
// taxonomy. The REST API reports errors as a JSON array of
// {message, errorCode} objects; an unparseable body still yields a usable
// error with the raw status.
func apiErrorFromResponse(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		Kind:       kindForStatus(statusCode),
		StatusCode: statusCode,
	}

	var restErrs []restError
	if err := json.Unmarshal(body, &restErrs); err == nil && len(restErrs) > 0 {
		apiErr.Code = restErrs[0].ErrorCode
		apiErr.Message = restErrs[0].Message
	} else {
		apiErr.Message = string(body)
	}

	return apiErr
}

func kindForStatus(statusCode int) ErrorKind {
	switch statusCode {
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusTooManyRequests:
		return KindRateLimited
	default:
		return KindUnknown
	}
}
