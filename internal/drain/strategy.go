package drain

import (
	"fmt"

	"github.com/grantcarthew/wdctl/internal/frame"
)

// Strategy decides when a drained buffer holds a complete response.
type Strategy interface {
	// Complete reports whether raw is a whole response after idle
	// consecutive empty polls. idle is Closed once the peer has hung up.
	Complete(raw []byte, idle int) bool
	Name() string
}

// Closed is the idle count passed to Complete after the peer closed the
// connection; no more bytes can arrive.
const Closed = int(^uint(0) >> 1)

// Strategy names accepted by ByName.
const (
	NameQuiescence    = "quiescence"
	NameContentLength = "content-length"
)

// Quiescence treats the response as complete after Threshold consecutive
// empty polls, provided at least one byte has arrived.
type Quiescence struct {
	Threshold int
}

// Complete implements Strategy.
func (q Quiescence) Complete(raw []byte, idle int) bool {
	return len(raw) > 0 && idle >= q.Threshold
}

// Name implements Strategy.
func (q Quiescence) Name() string { return NameQuiescence }

// ContentLength completes as soon as the body holds the declared
// Content-Length. Without a usable header it defers to Fallback.
// A declared length that never arrives is never completed early.
type ContentLength struct {
	Fallback Strategy
}

// Complete implements Strategy.
func (c ContentLength) Complete(raw []byte, idle int) bool {
	if end := frame.HeaderEnd(raw); end >= 0 {
		metadata := string(raw[:end-len(frame.Separator)])
		if n, ok := frame.ContentLength(metadata); ok {
			return len(raw)-end >= n
		}
	}
	if c.Fallback == nil {
		return false
	}
	return c.Fallback.Complete(raw, idle)
}

// Name implements Strategy.
func (c ContentLength) Name() string { return NameContentLength }

// ByName returns the named strategy. threshold configures quiescence,
// directly or as the content-length fallback.
func ByName(name string, threshold int) (Strategy, error) {
	q := Quiescence{Threshold: threshold}
	switch name {
	case "", NameQuiescence:
		return q, nil
	case NameContentLength:
		return ContentLength{Fallback: q}, nil
	default:
		return nil, fmt.Errorf("unknown drain strategy %q", name)
	}
}
