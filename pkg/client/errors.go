package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsStatus reports whether err is an *APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// IsNotFound reports a 404 from the server.
func IsNotFound(err error) bool { return IsStatus(err, http.StatusNotFound) }

// IsUnauthorized reports a 401 from the server.
func IsUnauthorized(err error) bool { return IsStatus(err, http.StatusUnauthorized) }

// newAPIError extracts the message from error.message, a string error, message, then the raw
// body, in that order.
func newAPIError(status int, payload []byte) *APIError {
	apiErr := &APIError{Status: status}
	var body struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err == nil {
		if len(body.Error) > 0 {
			var text string
			var envelope struct {
				Code    string         `json:"code"`
				Message string         `json:"message"`
				Details map[string]any `json:"details"`
			}
			if json.Unmarshal(body.Error, &text) == nil {
				apiErr.Message = text
			} else if json.Unmarshal(body.Error, &envelope) == nil {
				apiErr.Code = envelope.Code
				apiErr.Message = envelope.Message
				apiErr.Details = envelope.Details
			}
		}
		if apiErr.Message == "" {
			apiErr.Message = body.Message
		}
	} else if text := strings.TrimSpace(string(payload)); text != "" {
		apiErr.Message = text
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
