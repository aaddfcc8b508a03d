// Package webdriver is a thin W3C WebDriver command layer. Each command
// builds a wire request, hands it to an executor and maps the envelope it
// gets back to a Go value or error.
package webdriver

import (
	"context"
	"encoding/json"
	"errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/grantcarthew/wdctl/internal/envelope"
	"github.com/grantcarthew/wdctl/internal/executor"
	"github.com/grantcarthew/wdctl/internal/wire"
)

// Root is the path prefix of every command.
const Root = "wd/hub"

// ErrUnexpected is returned when a no-content command gets anything other
// than the null marker or a W3C error back.
var ErrUnexpected = errors.New("unexpected response")

// Client issues commands that are not bound to a session.
type Client struct {
	exec executor.Executor
}

// New returns a client that executes through exec.
func New(exec executor.Executor) *Client {
	return &Client{exec: exec}
}

// ServerStatus is the value of the status command.
type ServerStatus struct {
	Ready   bool   `json:"ready"`
	Message string `json:"message"`
}

// Status reports whether the server can create new sessions.
func (c *Client) Status(ctx context.Context) (ServerStatus, error) {
	var st ServerStatus
	err := c.decode(ctx, wire.NewRequest(wire.GET, Root+"/status"), &st)
	return st, err
}

// NewSession starts a browser session with the given capabilities.
func (c *Client) NewSession(ctx context.Context, caps Capabilities) (*Session, error) {
	body, err := json.Marshal(caps)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "encode capabilities")
	}

	var v struct {
		SessionID    string          `json:"sessionId"`
		Capabilities json.RawMessage `json:"capabilities"`
	}
	if err := c.decode(ctx, wire.JSONRequest(wire.POST, Root+"/session", body), &v); err != nil {
		return nil, err
	}
	if v.SessionID == "" {
		return nil, pkgerrors.Wrap(ErrUnexpected, "new session: no session id")
	}
	return &Session{ID: v.SessionID, Capabilities: v.Capabilities, c: c}, nil
}

// Session returns a handle for an existing session.
func (c *Client) Session(id string) *Session {
	return &Session{ID: id, c: c}
}

// text runs a command whose value is a string.
func (c *Client) text(ctx context.Context, req wire.Request) (string, error) {
	s, err := c.exec.Text(ctx, req)
	if err != nil {
		return "", err
	}
	if rerr, ok := envelope.RemoteErrorValue([]byte(s)); ok {
		return "", rerr
	}
	return s, nil
}

// body runs a command and rejects W3C error envelopes.
func (c *Client) body(ctx context.Context, req wire.Request) ([]byte, error) {
	body, err := c.exec.Body(ctx, req)
	if err != nil {
		return nil, err
	}
	if rerr, ok := envelope.AsRemoteError(body); ok {
		return nil, rerr
	}
	return body, nil
}

// decode runs a command and unmarshals its value into v.
func (c *Client) decode(ctx context.Context, req wire.Request, v any) error {
	body, err := c.body(ctx, req)
	if err != nil {
		return err
	}
	if err := envelope.Decode(body, v); err != nil {
		return pkgerrors.Wrapf(err, "%s", req)
	}
	return nil
}

// null runs a command that returns no content on success.
func (c *Client) null(ctx context.Context, req wire.Request) error {
	body, err := c.body(ctx, req)
	if err != nil {
		return err
	}
	if !envelope.IsNull(body) {
		return pkgerrors.Wrapf(ErrUnexpected, "%s: %s", req, clip(body))
	}
	return nil
}

// binary runs a command whose value is a base64 artifact.
func (c *Client) binary(ctx context.Context, req wire.Request) ([]byte, error) {
	blob, err := c.exec.Binary(ctx, req)
	if err != nil {
		var rerr *envelope.RemoteError
		if errors.As(err, &rerr) {
			return nil, rerr
		}
		return nil, err
	}
	return blob, nil
}

// post returns a POST request carrying v as JSON. A nil v sends {}.
func post(path string, v any) (wire.Request, error) {
	if v == nil {
		return wire.JSONRequest(wire.POST, path, []byte("{}")), nil
	}
	body, err := json.Marshal(v)
	if err != nil {
		return wire.Request{}, pkgerrors.Wrapf(err, "encode %s", path)
	}
	return wire.JSONRequest(wire.POST, path, body), nil
}

func clip(b []byte) string {
	const limit = 200
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
