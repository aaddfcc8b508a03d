// Package drain reads one complete HTTP response from a socket that offers
// no trustworthy end-of-message signal.
package drain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Errors returned by Drain.
var (
	// ErrTimeout is returned when no complete response arrived in time,
	// including the case where no byte arrived at all.
	ErrTimeout = errors.New("drain timeout")
	// ErrConnection is returned when the peer fails or hangs up before a
	// complete response was read.
	ErrConnection = errors.New("connection error")
)

// Default tuning values.
const (
	DefaultPollInterval = 20 * time.Millisecond
	DefaultThreshold    = 5
	DefaultTimeout      = 30 * time.Second
	DefaultReadSize     = 16384
)

// Conn is the part of a net.Conn the drainer needs.
type Conn interface {
	Read(p []byte) (int, error)
	SetReadDeadline(t time.Time) error
}

// Options configures a Drainer. Zero fields take defaults.
type Options struct {
	PollInterval time.Duration
	Timeout      time.Duration
	ReadSize     int
	Strategy     Strategy
	Logger       zerolog.Logger
}

// Drainer reads whole responses. It holds no per-response state and is safe
// for concurrent use; each Drain call owns its buffer and reader goroutine.
type Drainer struct {
	opts Options
}

// New returns a Drainer with defaults applied to opts.
func New(opts Options) *Drainer {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ReadSize <= 0 {
		opts.ReadSize = DefaultReadSize
	}
	if opts.Strategy == nil {
		opts.Strategy = Quiescence{Threshold: DefaultThreshold}
	}
	return &Drainer{opts: opts}
}

// Options returns the effective options.
func (d *Drainer) Options() Options {
	return d.opts
}

// Drain reads conn until the strategy reports completion and returns the raw
// response bytes in delivery order. The background reader is stopped and
// joined before Drain returns.
func (d *Drainer) Drain(ctx context.Context, conn Conn) ([]byte, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	q := newQueue()
	group, child := errgroup.WithContext(ctx)
	group.Go(func() error {
		d.readLoop(child, conn, q)
		return nil
	})

	start := time.Now()
	raw, reason, err := d.consume(ctx, q)

	// Stop the reader: cancel, then force a pending read to return.
	cancel()
	_ = conn.SetReadDeadline(time.Now())
	_ = group.Wait()

	log := d.opts.Logger.With().
		Str("strategy", d.opts.Strategy.Name()).
		Int("bytes", len(raw)).
		Dur("elapsed", time.Since(start)).
		Logger()
	if err != nil {
		log.Debug().Err(err).Msg("drain failed")
		return nil, err
	}
	log.Debug().Str("reason", reason).Msg("drain complete")
	return raw, nil
}

// consume pulls chunks until completion, timeout or cancellation. Idle
// polls are counted from the most recent arrival: the ticker restarts
// whenever data comes in, so the n-th tick lands n poll intervals after it.
func (d *Drainer) consume(ctx context.Context, q *queue) ([]byte, string, error) {
	ticker := time.NewTicker(d.opts.PollInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(d.opts.Timeout)
	defer deadline.Stop()

	var (
		raw  []byte
		idle int
	)

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, "", fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
			}
			return nil, "", ctx.Err()

		case <-deadline.C:
			if len(raw) == 0 {
				return nil, "", fmt.Errorf("%w: no data after %s", ErrTimeout, d.opts.Timeout)
			}
			return nil, "", fmt.Errorf("%w: incomplete after %s (%d bytes)", ErrTimeout, d.opts.Timeout, len(raw))

		case <-q.ready:
		case <-ticker.C:
			idle++
		}

		// A tick that raced with queued data does not count as idle.
		chunks, rerr := q.take()
		if len(chunks) > 0 {
			for _, c := range chunks {
				raw = append(raw, c...)
			}
			idle = 0
			ticker.Reset(d.opts.PollInterval)
		}
		if rerr != nil {
			if !errors.Is(rerr, io.EOF) {
				return nil, "", fmt.Errorf("%w: read: %w", ErrConnection, rerr)
			}
			if len(raw) == 0 {
				return nil, "", fmt.Errorf("%w: closed before any data", ErrConnection)
			}
			if !d.opts.Strategy.Complete(raw, Closed) {
				return nil, "", fmt.Errorf("%w: closed mid-response (%d bytes)", ErrConnection, len(raw))
			}
			return raw, "eof", nil
		}
		if d.opts.Strategy.Complete(raw, idle) {
			if idle == 0 {
				return raw, "complete", nil
			}
			return raw, "quiescent", nil
		}
	}
}

// readLoop polls conn and queues every non-empty read. It exits when ctx is
// cancelled or the connection reports anything other than a poll timeout.
func (d *Drainer) readLoop(ctx context.Context, conn Conn, q *queue) {
	buf := make([]byte, d.opts.ReadSize)
	for {
		if ctx.Err() != nil {
			return
		}
		if err := conn.SetReadDeadline(time.Now().Add(d.opts.PollInterval)); err != nil {
			q.fail(err)
			return
		}
		n, err := conn.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			q.push(chunk)
		}
		if err != nil {
			if isPollTimeout(err) {
				continue
			}
			if ctx.Err() == nil {
				q.fail(err)
			}
			return
		}
	}
}

func isPollTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
