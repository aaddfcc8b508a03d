// Package frame splits a drained HTTP response into metadata and body.
package frame

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
)

// ErrMalformed is returned when a response holds no header terminator.
var ErrMalformed = errors.New("malformed response: no header terminator")

// Separator ends the metadata block.
var Separator = []byte("\r\n\r\n")

// Response is a framed response. Metadata is informational only.
type Response struct {
	Metadata string
	Body     []byte
}

// Split locates the first CRLFCRLF in raw. Everything before it is metadata,
// everything after it is the body, verbatim. The body is never re-scanned.
func Split(raw []byte) (Response, error) {
	idx := bytes.Index(raw, Separator)
	if idx < 0 {
		return Response{}, ErrMalformed
	}
	return Response{
		Metadata: string(raw[:idx]),
		Body:     raw[idx+len(Separator):],
	}, nil
}

// HeaderEnd returns the offset of the first body byte in raw, or -1 while the
// metadata block is still incomplete.
func HeaderEnd(raw []byte) int {
	idx := bytes.Index(raw, Separator)
	if idx < 0 {
		return -1
	}
	return idx + len(Separator)
}

// StatusLine returns the first metadata line.
func (r Response) StatusLine() string {
	line, _, _ := strings.Cut(r.Metadata, "\r\n")
	return line
}

// StatusCode parses the code from the status line, or returns 0.
func (r Response) StatusCode() int {
	return statusCode(r.StatusLine())
}

// Header returns the first value of the named header, case-insensitively.
func (r Response) Header(name string) (string, bool) {
	return lookup(r.Metadata, name)
}

// ContentLength returns the declared Content-Length of a metadata block.
func ContentLength(metadata string) (int, bool) {
	v, ok := lookup(metadata, "Content-Length")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func statusCode(line string) int {
	// HTTP/1.1 200 OK
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		return 0
	}
	code, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return code
}

func lookup(metadata, name string) (string, bool) {
	lines := strings.Split(metadata, "\r\n")
	if len(lines) < 2 {
		return "", false
	}
	for _, line := range lines[1:] {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), name) {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}
