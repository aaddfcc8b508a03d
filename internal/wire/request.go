// Package wire serializes WebDriver commands into HTTP/1.1 request bytes.
package wire

import (
	"strconv"
)

// Method is the HTTP verb of a WebDriver command.
type Method string

// Supported methods.
const (
	GET    Method = "GET"
	POST   Method = "POST"
	DELETE Method = "DELETE"
)

// LengthOffset is added to the body length when declaring Content-Length.
// The request terminator emits one CRLF more than the blank line needs, and
// the server counts those two bytes as part of the body.
const LengthOffset = 2

// Request is one command ready to be written to the wire.
type Request struct {
	Method  Method
	Path    string   // relative to the server root, without leading slash
	Headers []string // raw "Name: value" lines
	Body    []byte
}

// ContentLength returns the Content-Length header line for body under the
// server's length convention.
func ContentLength(body []byte) string {
	return "Content-Length:" + strconv.Itoa(len(body)+LengthOffset)
}

// NewRequest returns a request without headers or body.
func NewRequest(method Method, path string) Request {
	return Request{Method: method, Path: path}
}

// JSONRequest returns a request carrying body with its length header attached.
func JSONRequest(method Method, path string, body []byte) Request {
	return Request{
		Method:  method,
		Path:    path,
		Headers: []string{ContentLength(body)},
		Body:    body,
	}
}

// Build formats req into wire bytes addressed to host.
// Header lines are written as supplied. Only POST requests carry the body.
func Build(host string, req Request) []byte {
	size := len(req.Method) + len(req.Path) + len(host) + 32
	for _, h := range req.Headers {
		size += len(h) + 2
	}
	if req.Method == POST {
		size += len(req.Body)
	}

	buf := make([]byte, 0, size)
	buf = append(buf, req.Method...)
	buf = append(buf, " /"...)
	buf = append(buf, req.Path...)
	buf = append(buf, " HTTP/1.1\r\n"...)
	buf = append(buf, "Host: "...)
	buf = append(buf, host...)
	buf = append(buf, "\r\n"...)
	for _, h := range req.Headers {
		buf = append(buf, h...)
		buf = append(buf, "\r\n"...)
	}
	buf = append(buf, "\r\n\r\n"...)
	if req.Method == POST {
		buf = append(buf, req.Body...)
	}
	return buf
}

// String returns the request line without headers, for logging.
func (r Request) String() string {
	return string(r.Method) + " /" + r.Path
}
