package webdriver

import (
	"context"
	"encoding/json"
	"strconv"
	"time"
)

// Keys maps key names to the code points WebDriver uses for non-printing
// keys. Printable characters are sent as themselves.
var Keys = map[string]string{
	"Backspace":  "\uE003",
	"Tab":        "\uE004",
	"Return":     "\uE006",
	"Enter":      "\uE007",
	"Shift":      "\uE008",
	"Control":    "\uE009",
	"Alt":        "\uE00A",
	"Escape":     "\uE00C",
	"Space":      "\uE00D",
	"PageUp":     "\uE00E",
	"PageDown":   "\uE00F",
	"End":        "\uE010",
	"Home":       "\uE011",
	"ArrowLeft":  "\uE012",
	"ArrowUp":    "\uE013",
	"ArrowRight": "\uE014",
	"ArrowDown":  "\uE015",
	"Insert":     "\uE016",
	"Delete":     "\uE017",
	"Meta":       "\uE03D",
}

// Button is a pointer button number.
type Button int

// Mouse buttons.
const (
	LeftButton   Button = 0
	MiddleButton Button = 1
	RightButton  Button = 2
)

type inputSource struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Parameters map[string]string `json:"parameters,omitempty"`
	Actions    []map[string]any  `json:"actions"`
}

func (src *inputSource) add(a map[string]any) {
	src.Actions = append(src.Actions, a)
}

func pause(d time.Duration) map[string]any {
	return map[string]any{"type": "pause", "duration": d.Milliseconds()}
}

// Actions is a set of input sources whose actions the browser performs
// together, one tick per index across all sources.
type Actions struct {
	sources []*inputSource
}

func (a *Actions) source(typ string, params map[string]string) *inputSource {
	src := &inputSource{
		Type:       typ,
		ID:         typ + strconv.Itoa(len(a.sources)+1),
		Parameters: params,
		Actions:    []map[string]any{},
	}
	a.sources = append(a.sources, src)
	return src
}

// Keyboard adds a key input source.
func (a *Actions) Keyboard() *KeyInput {
	return &KeyInput{src: a.source("key", nil)}
}

// Mouse adds a mouse pointer input source.
func (a *Actions) Mouse() *PointerInput {
	return &PointerInput{src: a.source("pointer", map[string]string{"pointerType": "mouse"})}
}

// Wheel adds a scroll wheel input source.
func (a *Actions) Wheel() *WheelInput {
	return &WheelInput{src: a.source("wheel", nil)}
}

// Len returns the number of input sources.
func (a *Actions) Len() int { return len(a.sources) }

// MarshalJSON encodes the perform-actions request body.
func (a *Actions) MarshalJSON() ([]byte, error) {
	sources := a.sources
	if sources == nil {
		sources = []*inputSource{}
	}
	return json.Marshal(map[string]any{"actions": sources})
}

// KeyInput records keyboard actions.
type KeyInput struct {
	src *inputSource
}

// Down presses key and holds it.
func (k *KeyInput) Down(key string) *KeyInput {
	k.src.add(map[string]any{"type": "keyDown", "value": key})
	return k
}

// Up releases key.
func (k *KeyInput) Up(key string) *KeyInput {
	k.src.add(map[string]any{"type": "keyUp", "value": key})
	return k
}

// Press presses and releases key.
func (k *KeyInput) Press(key string) *KeyInput {
	return k.Down(key).Up(key)
}

// Type presses each character of text in turn.
func (k *KeyInput) Type(text string) *KeyInput {
	for _, r := range text {
		k.Press(string(r))
	}
	return k
}

// Chord holds modifiers, presses key, then releases the modifiers in
// reverse order.
func (k *KeyInput) Chord(key string, modifiers ...string) *KeyInput {
	for _, m := range modifiers {
		k.Down(m)
	}
	k.Press(key)
	for i := len(modifiers) - 1; i >= 0; i-- {
		k.Up(modifiers[i])
	}
	return k
}

// Pause idles the source for d.
func (k *KeyInput) Pause(d time.Duration) *KeyInput {
	k.src.add(pause(d))
	return k
}

// PointerInput records pointer actions.
type PointerInput struct {
	src *inputSource
}

// Down presses button.
func (p *PointerInput) Down(b Button) *PointerInput {
	p.src.add(map[string]any{"type": "pointerDown", "button": int(b)})
	return p
}

// Up releases button.
func (p *PointerInput) Up(b Button) *PointerInput {
	p.src.add(map[string]any{"type": "pointerUp", "button": int(b)})
	return p
}

// Click presses and releases button at the current position.
func (p *PointerInput) Click(b Button) *PointerInput {
	return p.Down(b).Up(b)
}

// MoveTo moves the pointer to viewport coordinates x, y.
func (p *PointerInput) MoveTo(x, y int) *PointerInput {
	p.src.add(map[string]any{"type": "pointerMove", "duration": 0, "origin": "viewport", "x": x, "y": y})
	return p
}

// MoveToElement moves the pointer to offset x, y from the centre of e.
func (p *PointerInput) MoveToElement(e *Element, x, y int) *PointerInput {
	p.src.add(map[string]any{"type": "pointerMove", "duration": 0, "origin": e, "x": x, "y": y})
	return p
}

// DragAndDrop drags from the centre of from and drops on the centre of to.
func (p *PointerInput) DragAndDrop(from, to *Element) *PointerInput {
	return p.MoveToElement(from, 0, 0).Down(LeftButton).MoveToElement(to, 0, 0).Up(LeftButton)
}

// Pause idles the source for d.
func (p *PointerInput) Pause(d time.Duration) *PointerInput {
	p.src.add(pause(d))
	return p
}

// WheelInput records scroll wheel actions.
type WheelInput struct {
	src *inputSource
}

// Scroll scrolls by dx, dy with the wheel positioned at viewport x, y.
func (w *WheelInput) Scroll(x, y, dx, dy int) *WheelInput {
	w.src.add(map[string]any{
		"type":     "scroll",
		"duration": 0,
		"origin":   "viewport",
		"x":        x,
		"y":        y,
		"deltaX":   dx,
		"deltaY":   dy,
	})
	return w
}

// Pause idles the source for d.
func (w *WheelInput) Pause(d time.Duration) *WheelInput {
	w.src.add(pause(d))
	return w
}

// PerformActions runs the action sequences and waits for them to finish.
// Keys or buttons left pressed stay pressed until ReleaseActions.
func (s *Session) PerformActions(ctx context.Context, a *Actions) error {
	return s.nullPost(ctx, a, "actions")
}

// ReleaseActions releases every key and button still held and clears the
// session's input state.
func (s *Session) ReleaseActions(ctx context.Context) error {
	return s.c.null(ctx, s.del("actions"))
}
