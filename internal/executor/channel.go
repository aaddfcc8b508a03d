package executor

import (
	"context"

	"github.com/grantcarthew/wdctl/internal/transport"
	"github.com/grantcarthew/wdctl/internal/wire"
)

// ChannelExecutor executes commands over a transport channel, one TCP
// connection per call.
type ChannelExecutor struct {
	ch *transport.Channel
}

// NewChannelExecutor creates an executor that sends through ch.
func NewChannelExecutor(ch *transport.Channel) *ChannelExecutor {
	return &ChannelExecutor{ch: ch}
}

// Channel returns the underlying channel.
func (e *ChannelExecutor) Channel() *transport.Channel {
	return e.ch
}

// Body implements Executor.
func (e *ChannelExecutor) Body(ctx context.Context, req wire.Request) ([]byte, error) {
	return e.ch.SendAndAwaitBody(ctx, req)
}

// Text implements Executor.
func (e *ChannelExecutor) Text(ctx context.Context, req wire.Request) (string, error) {
	return e.ch.SendAndAwaitText(ctx, req)
}

// Binary implements Executor.
func (e *ChannelExecutor) Binary(ctx context.Context, req wire.Request) ([]byte, error) {
	return e.ch.SendAndAwaitBinary(ctx, req)
}
