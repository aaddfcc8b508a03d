// Package envelope extracts the "value" payload from WebDriver response bodies.
package envelope

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Errors returned by extractors.
var (
	ErrNotFound = errors.New("envelope value not found")
	ErrBase64   = errors.New("base64 decode error")
	ErrJSON     = errors.New("json decode error")

	// ErrTruncated means the body ended before the closing quote of a
	// base64 value. It matches ErrBase64.
	ErrTruncated = fmt.Errorf("%w: value not terminated", ErrBase64)
)

// NullBody is the canonical "succeeded, nothing returned" body.
const NullBody = `{"value":null}`

// Extractor pulls the envelope value out of a framed body.
type Extractor interface {
	// Text returns a string value unquoted, any other value as compact JSON.
	Text(body []byte) (string, error)
	// Binary returns the base64-decoded artifact held in the value.
	Binary(body []byte) ([]byte, error)
}

// Extractor names accepted by ByName.
const (
	NameScan  = "scan"
	NameParse = "parse"
)

// ByName returns the named extractor.
func ByName(name string) (Extractor, error) {
	switch name {
	case "", NameScan:
		return Scan{}, nil
	case NameParse:
		return Parse{}, nil
	default:
		return nil, fmt.Errorf("unknown envelope extractor %q", name)
	}
}

// Value returns the raw JSON of the top-level "value" entry.
func Value(body []byte) (json.RawMessage, error) {
	var env map[string]json.RawMessage
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJSON, err)
	}
	raw, ok := env["value"]
	if !ok {
		return nil, ErrNotFound
	}
	return raw, nil
}

// IsNull reports whether body is the no-content success marker: exactly
// {"value":null}, or any envelope whose value is JSON null.
func IsNull(body []byte) bool {
	if string(body) == NullBody {
		return true
	}
	raw, err := Value(body)
	if err != nil {
		return false
	}
	return string(bytes.TrimSpace(raw)) == "null"
}

// Decode unmarshals the envelope value into v.
func Decode(body []byte, v any) error {
	raw, err := Value(body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %w", ErrJSON, err)
	}
	return nil
}

func text(body []byte) (string, error) {
	raw, err := Value(body)
	if err != nil {
		return "", err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("%w: %w", ErrJSON, err)
		}
		return s, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", fmt.Errorf("%w: %w", ErrJSON, err)
	}
	return buf.String(), nil
}
