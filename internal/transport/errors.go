package transport

import (
	"fmt"

	"github.com/grantcarthew/wdctl/internal/drain"
	"github.com/grantcarthew/wdctl/internal/envelope"
	"github.com/grantcarthew/wdctl/internal/frame"
)

// Error kinds. A failed cycle matches one of these with errors.Is, except
// when the caller's context was cancelled.
var (
	ErrConnection        = drain.ErrConnection
	ErrDrainTimeout      = drain.ErrTimeout
	ErrMalformedResponse = frame.ErrMalformed
	ErrEnvelopeNotFound  = envelope.ErrNotFound
	ErrBase64Decode      = envelope.ErrBase64
	ErrJSONDecode        = envelope.ErrJSON
)

// Stage is the step of a request/response cycle that failed.
type Stage string

// Cycle stages.
const (
	StageConnect Stage = "connect"
	StageWrite   Stage = "write"
	StageDrain   Stage = "drain"
	StageFrame   Stage = "frame"
	StageExtract Stage = "extract"
)

// Error reports a failed cycle.
type Error struct {
	Stage   Stage
	Request string
	Kind    error
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Request, e.Err)
}

// Unwrap exposes both the kind and the underlying cause.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Format prints the cause with its stack trace under %+v.
func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s %s: %+v", e.Stage, e.Request, e.Err)
		return
	}
	fmt.Fprint(s, e.Error())
}
