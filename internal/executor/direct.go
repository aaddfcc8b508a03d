package executor

import (
	"context"

	"github.com/grantcarthew/wdctl/internal/envelope"
	"github.com/grantcarthew/wdctl/internal/wire"
)

// Handler answers a request with a response body.
type Handler func(req wire.Request) ([]byte, error)

// DirectExecutor executes commands by calling the handler directly.
// Used by tests and dry runs to avoid a server round-trip.
type DirectExecutor struct {
	handler   Handler
	extractor envelope.Extractor
}

// NewDirectExecutor creates a new direct executor with the given handler.
// Bodies are extracted with the scan extractor.
func NewDirectExecutor(handler Handler) *DirectExecutor {
	return &DirectExecutor{handler: handler, extractor: envelope.Scan{}}
}

// WithExtractor returns a copy of e that extracts with x.
func (e *DirectExecutor) WithExtractor(x envelope.Extractor) *DirectExecutor {
	return &DirectExecutor{handler: e.handler, extractor: x}
}

// Body calls the handler and returns its body.
func (e *DirectExecutor) Body(ctx context.Context, req wire.Request) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.handler(req)
}

// Text calls the handler and extracts the value as text.
func (e *DirectExecutor) Text(ctx context.Context, req wire.Request) (string, error) {
	body, err := e.Body(ctx, req)
	if err != nil {
		return "", err
	}
	return e.extractor.Text(body)
}

// Binary calls the handler and decodes the value.
func (e *DirectExecutor) Binary(ctx context.Context, req wire.Request) ([]byte, error) {
	body, err := e.Body(ctx, req)
	if err != nil {
		return nil, err
	}
	return e.extractor.Binary(body)
}
