package webdriver

import (
	"context"
	"encoding/json"
	"net/url"

	pkgerrors "github.com/pkg/errors"

	"github.com/grantcarthew/wdctl/internal/wire"
)

// ElementKey is the W3C web element identifier key.
const ElementKey = "element-6066-11e4-a52e-4f735466cecf"

// legacyElementKey is used by servers that predate the W3C protocol.
const legacyElementKey = "ELEMENT"

// Element is a reference to a DOM element in a session.
type Element struct {
	ID string
	s  *Session
}

func (e *Element) reference() map[string]string {
	return map[string]string{ElementKey: e.ID}
}

// MarshalJSON encodes e as a web element reference, so elements can be
// passed as script arguments.
func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.reference())
}

func (s *Session) element(ref map[string]string) (*Element, error) {
	if id, ok := ref[ElementKey]; ok {
		return &Element{ID: id, s: s}, nil
	}
	if id, ok := ref[legacyElementKey]; ok {
		return &Element{ID: id, s: s}, nil
	}
	return nil, pkgerrors.Wrapf(ErrUnexpected, "element reference %v", ref)
}

// FindElement returns the first element matching by.
func (s *Session) FindElement(ctx context.Context, by By) (*Element, error) {
	req, err := post(s.path("element"), by)
	if err != nil {
		return nil, err
	}
	var ref map[string]string
	if err := s.c.decode(ctx, req, &ref); err != nil {
		return nil, err
	}
	return s.element(ref)
}

// FindElements returns every element matching by, in document order.
func (s *Session) FindElements(ctx context.Context, by By) ([]*Element, error) {
	req, err := post(s.path("elements"), by)
	if err != nil {
		return nil, err
	}
	var refs []map[string]string
	if err := s.c.decode(ctx, req, &refs); err != nil {
		return nil, err
	}
	elements := make([]*Element, 0, len(refs))
	for _, ref := range refs {
		e, err := s.element(ref)
		if err != nil {
			return nil, err
		}
		elements = append(elements, e)
	}
	return elements, nil
}

// ActiveElement returns the element that has focus.
func (s *Session) ActiveElement(ctx context.Context) (*Element, error) {
	var ref map[string]string
	if err := s.c.decode(ctx, s.get("element", "active"), &ref); err != nil {
		return nil, err
	}
	return s.element(ref)
}

func (e *Element) path(parts ...string) string {
	return e.s.path(append([]string{"element", url.PathEscape(e.ID)}, parts...)...)
}

// Text returns the rendered text of the element.
func (e *Element) Text(ctx context.Context) (string, error) {
	return e.s.c.text(ctx, wire.NewRequest(wire.GET, e.path("text")))
}

// Attribute returns the named attribute. A missing attribute reads as
// "null".
func (e *Element) Attribute(ctx context.Context, name string) (string, error) {
	return e.s.c.text(ctx, wire.NewRequest(wire.GET, e.path("attribute", url.PathEscape(name))))
}

func (e *Element) Click(ctx context.Context) error {
	req, err := post(e.path("click"), nil)
	if err != nil {
		return err
	}
	return e.s.c.null(ctx, req)
}

func (e *Element) Clear(ctx context.Context) error {
	req, err := post(e.path("clear"), nil)
	if err != nil {
		return err
	}
	return e.s.c.null(ctx, req)
}

// SendKeys types text into the element.
func (e *Element) SendKeys(ctx context.Context, text string) error {
	req, err := post(e.path("value"), map[string]string{"text": text})
	if err != nil {
		return err
	}
	return e.s.c.null(ctx, req)
}

// Screenshot returns a PNG of the element.
func (e *Element) Screenshot(ctx context.Context) ([]byte, error) {
	return e.s.ElementScreenshot(ctx, e)
}
