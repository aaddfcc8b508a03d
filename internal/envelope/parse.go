package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Parse extracts both paths with a full JSON parse of the body.
type Parse struct{}

// Text implements Extractor.
func (Parse) Text(body []byte) (string, error) {
	return text(body)
}

// Binary implements Extractor.
func (Parse) Binary(body []byte) ([]byte, error) {
	raw, err := Value(body)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		if rerr, ok := RemoteErrorValue(raw); ok {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, rerr)
		}
		return nil, fmt.Errorf("%w: value is not a string", ErrNotFound)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJSON, err)
	}
	return decodeBase64([]byte(s))
}

// RemoteError is a W3C WebDriver error delivered inside a normal envelope.
type RemoteError struct {
	Code       string `json:"error"`
	Message    string `json:"message"`
	Stacktrace string `json:"stacktrace,omitempty"`
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("webdriver error: %s: %s", e.Code, e.Message)
	}
	return "webdriver error: " + e.Code
}

// AsRemoteError returns the error object carried by body, if any.
func AsRemoteError(body []byte) (*RemoteError, bool) {
	raw, err := Value(body)
	if err != nil {
		return nil, false
	}
	return RemoteErrorValue(raw)
}

// RemoteErrorValue recognises an error object in an already extracted value,
// such as the text returned by Extractor.Text.
func RemoteErrorValue(value []byte) (*RemoteError, bool) {
	value = bytes.TrimSpace(value)
	if len(value) == 0 || value[0] != '{' {
		return nil, false
	}
	var e RemoteError
	if err := json.Unmarshal(value, &e); err != nil || e.Code == "" {
		return nil, false
	}
	return &e, true
}
