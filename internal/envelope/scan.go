package envelope

import (
	"bytes"
	"encoding/base64"
	"fmt"
)

// TrailerLen is the number of bytes dropped from the end of a body before
// the base64 payload is decoded. It pairs with wire.LengthOffset.
const TrailerLen = 2

// ScanWindow bounds how far into the body the value prefix is searched.
const ScanWindow = 512

var valuePrefix = []byte(`{"value":"`)

// payloadCutset holds the closing quote, brace and whitespace that may
// remain after the trailer cut. None of them is a base64 character.
const payloadCutset = "\"} \t\r\n"

// Scan extracts binary payloads with a bounded byte-pattern scan instead of a
// JSON parse. Its text path is the same as Parse.
type Scan struct{}

// Text implements Extractor.
func (Scan) Text(body []byte) (string, error) {
	return text(body)
}

// Binary implements Extractor.
func (Scan) Binary(body []byte) ([]byte, error) {
	window := body
	if len(window) > ScanWindow {
		window = window[:ScanWindow]
	}
	idx := bytes.Index(window, valuePrefix)
	if idx < 0 {
		if rerr, ok := AsRemoteError(body); ok {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, rerr)
		}
		return nil, ErrNotFound
	}

	start := idx + len(valuePrefix)
	end := len(body) - TrailerLen
	if end < start {
		return nil, fmt.Errorf("%w: payload shorter than trailer", ErrBase64)
	}
	payload := bytes.TrimRight(body[start:end], payloadCutset)
	if bytes.IndexByte(body[start+len(payload):], '"') < 0 {
		return nil, ErrTruncated
	}
	return decodeBase64(payload)
}

func decodeBase64(payload []byte) ([]byte, error) {
	out := make([]byte, base64.StdEncoding.DecodedLen(len(payload)))
	n, err := base64.StdEncoding.Decode(out, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBase64, err)
	}
	return out[:n], nil
}
