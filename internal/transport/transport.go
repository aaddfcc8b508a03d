// Package transport sends WebDriver commands over one short-lived TCP
// connection per call and returns the extracted envelope value.
package transport

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/grantcarthew/wdctl/internal/config"
	"github.com/grantcarthew/wdctl/internal/drain"
	"github.com/grantcarthew/wdctl/internal/envelope"
	"github.com/grantcarthew/wdctl/internal/frame"
	"github.com/grantcarthew/wdctl/internal/wire"
)

// DefaultDialTimeout bounds connection setup.
const DefaultDialTimeout = 5 * time.Second

// Channel addresses one WebDriver server. It keeps no connection state
// between calls and is safe for concurrent use.
type Channel struct {
	host        string
	port        int
	dialTimeout time.Duration
	drainer     *drain.Drainer
	extractor   envelope.Extractor
	log         zerolog.Logger
}

// Option configures a Channel.
type Option func(*Channel)

// WithDrainer sets the response drainer.
func WithDrainer(d *drain.Drainer) Option {
	return func(c *Channel) { c.drainer = d }
}

// WithExtractor sets the envelope extractor.
func WithExtractor(e envelope.Extractor) Option {
	return func(c *Channel) { c.extractor = e }
}

// WithDialTimeout sets the connect timeout.
func WithDialTimeout(d time.Duration) Option {
	return func(c *Channel) { c.dialTimeout = d }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Channel) { c.log = l }
}

// New returns a Channel for host:port.
func New(host string, port int, opts ...Option) *Channel {
	c := &Channel{
		host:        host,
		port:        port,
		dialTimeout: DefaultDialTimeout,
		extractor:   envelope.Scan{},
		log:         zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.drainer == nil {
		c.drainer = drain.New(drain.Options{Logger: c.log})
	}
	return c
}

// FromConfig builds a Channel from the effective configuration.
func FromConfig(cfg config.Config, log zerolog.Logger) (*Channel, error) {
	strategy, err := drain.ByName(cfg.Drain.Strategy, cfg.Drain.Threshold)
	if err != nil {
		return nil, err
	}
	extractor, err := envelope.ByName(cfg.Extractor)
	if err != nil {
		return nil, err
	}
	d := drain.New(drain.Options{
		PollInterval: cfg.Drain.PollInterval,
		Timeout:      cfg.Drain.Timeout,
		ReadSize:     cfg.Drain.ReadSize,
		Strategy:     strategy,
		Logger:       log,
	})
	return New(cfg.Host, cfg.Port,
		WithDrainer(d),
		WithExtractor(extractor),
		WithDialTimeout(cfg.DialTimeout),
		WithLogger(log),
	), nil
}

// Addr returns host:port.
func (c *Channel) Addr() string {
	return net.JoinHostPort(c.host, strconv.Itoa(c.port))
}

// Host returns the value sent in the Host header.
func (c *Channel) Host() string {
	return c.host
}

// Send dials the server and writes data in full. The caller owns the
// returned connection.
func (c *Channel) Send(ctx context.Context, data []byte) (net.Conn, error) {
	d := net.Dialer{Timeout: c.dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", c.Addr())
	if err != nil {
		return nil, &Error{Stage: StageConnect, Kind: ErrConnection, Err: pkgerrors.Wrapf(err, "dial %s", c.Addr())}
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	}
	n, err := conn.Write(data)
	if err == nil && n < len(data) {
		err = pkgerrors.Errorf("short write: %d of %d bytes", n, len(data))
	}
	if err != nil {
		conn.Close()
		return nil, &Error{Stage: StageWrite, Kind: ErrConnection, Err: pkgerrors.Wrap(err, "write request")}
	}
	_ = conn.SetWriteDeadline(time.Time{})
	return conn, nil
}

// SendAndAwaitBody runs one full cycle and returns the framed body bytes.
func (c *Channel) SendAndAwaitBody(ctx context.Context, req wire.Request) ([]byte, error) {
	start := time.Now()
	log := c.log.With().Str("addr", c.Addr()).Str("request", req.String()).Logger()

	data := wire.Build(c.host, req)
	conn, err := c.Send(ctx, data)
	if err != nil {
		return nil, c.fail(log, req, err)
	}
	defer conn.Close()
	log.Debug().Int("bytes", len(data)).Msg("request sent")

	raw, err := c.drainer.Drain(ctx, conn)
	if err != nil {
		return nil, c.fail(log, req, &Error{Stage: StageDrain, Kind: kindOf(err), Err: err})
	}

	resp, err := frame.Split(raw)
	if err != nil {
		return nil, c.fail(log, req, &Error{
			Stage: StageFrame,
			Kind:  ErrMalformedResponse,
			Err:   pkgerrors.Wrapf(err, "%d bytes", len(raw)),
		})
	}

	log.Debug().
		Int("status", resp.StatusCode()).
		Int("body", len(resp.Body)).
		Dur("elapsed", time.Since(start)).
		Msg("response framed")
	return resp.Body, nil
}

// SendAndAwaitText runs one cycle and returns the envelope value as text.
func (c *Channel) SendAndAwaitText(ctx context.Context, req wire.Request) (string, error) {
	body, err := c.SendAndAwaitBody(ctx, req)
	if err != nil {
		return "", err
	}
	text, err := c.extractor.Text(body)
	if err != nil {
		return "", c.fail(c.log, req, &Error{Stage: StageExtract, Kind: kindOf(err), Err: err})
	}
	return text, nil
}

// SendAndAwaitBinary runs one cycle and returns the decoded binary artifact.
func (c *Channel) SendAndAwaitBinary(ctx context.Context, req wire.Request) ([]byte, error) {
	body, err := c.SendAndAwaitBody(ctx, req)
	if err != nil {
		return nil, err
	}
	blob, err := c.extractor.Binary(body)
	if err != nil {
		return nil, c.fail(c.log, req, &Error{Stage: StageExtract, Kind: kindOf(err), Err: err})
	}
	return blob, nil
}

func (c *Channel) fail(log zerolog.Logger, req wire.Request, err error) error {
	var terr *Error
	if errors.As(err, &terr) && terr.Request == "" {
		terr.Request = req.String()
	}
	log.Debug().Err(err).Msg("request failed")
	return err
}

func kindOf(err error) error {
	for _, kind := range []error{
		ErrDrainTimeout,
		ErrConnection,
		ErrMalformedResponse,
		ErrEnvelopeNotFound,
		ErrBase64Decode,
		ErrJSONDecode,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	if errors.Is(err, context.Canceled) {
		return context.Canceled
	}
	return ErrConnection
}
