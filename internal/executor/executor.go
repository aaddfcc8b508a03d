// Package executor runs WebDriver commands against a server or an in-process
// handler.
package executor

import (
	"context"

	"github.com/grantcarthew/wdctl/internal/wire"
)

// Executor executes commands and returns the envelope in the shape the
// caller asks for. Implementations handle the transport mechanism (TCP,
// direct call).
type Executor interface {
	// Body returns the framed response body.
	Body(ctx context.Context, req wire.Request) ([]byte, error)
	// Text returns the envelope value as text.
	Text(ctx context.Context, req wire.Request) (string, error)
	// Binary returns the decoded base64 artifact held in the envelope.
	Binary(ctx context.Context, req wire.Request) ([]byte, error)
}
