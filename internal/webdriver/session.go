package webdriver

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/grantcarthew/wdctl/internal/wire"
)

// Session is a live browser session.
type Session struct {
	ID string
	// Capabilities holds what the server granted, when known.
	Capabilities json.RawMessage

	c *Client
}

func (s *Session) path(parts ...string) string {
	p := Root + "/session/" + url.PathEscape(s.ID)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

func (s *Session) get(parts ...string) wire.Request {
	return wire.NewRequest(wire.GET, s.path(parts...))
}

func (s *Session) del(parts ...string) wire.Request {
	return wire.NewRequest(wire.DELETE, s.path(parts...))
}

// nullPost sends v and expects no content back.
func (s *Session) nullPost(ctx context.Context, v any, parts ...string) error {
	req, err := post(s.path(parts...), v)
	if err != nil {
		return err
	}
	return s.c.null(ctx, req)
}

// Delete ends the session and closes its windows.
func (s *Session) Delete(ctx context.Context) error {
	return s.c.null(ctx, s.del())
}

// Navigate opens rawURL in the current browsing context.
func (s *Session) Navigate(ctx context.Context, rawURL string) error {
	return s.nullPost(ctx, map[string]string{"url": rawURL}, "url")
}

// CurrentURL returns the URL of the current page.
func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	return s.c.text(ctx, s.get("url"))
}

func (s *Session) Back(ctx context.Context) error {
	return s.nullPost(ctx, nil, "back")
}

func (s *Session) Forward(ctx context.Context) error {
	return s.nullPost(ctx, nil, "forward")
}

func (s *Session) Refresh(ctx context.Context) error {
	return s.nullPost(ctx, nil, "refresh")
}

// Title returns the document title.
func (s *Session) Title(ctx context.Context) (string, error) {
	return s.c.text(ctx, s.get("title"))
}

// Source returns the serialized DOM of the current page.
func (s *Session) Source(ctx context.Context) (string, error) {
	return s.c.text(ctx, s.get("source"))
}

func (s *Session) Timeouts(ctx context.Context) (Timeouts, error) {
	var t Timeouts
	err := s.c.decode(ctx, s.get("timeouts"), &t)
	return t, err
}

func (s *Session) SetTimeouts(ctx context.Context, t Timeouts) error {
	return s.nullPost(ctx, t, "timeouts")
}

// WindowHandle returns the handle of the current window.
func (s *Session) WindowHandle(ctx context.Context) (string, error) {
	return s.c.text(ctx, s.get("window"))
}

// WindowHandles returns the handles of every open window and tab.
func (s *Session) WindowHandles(ctx context.Context) ([]string, error) {
	var handles []string
	err := s.c.decode(ctx, s.get("window", "handles"), &handles)
	return handles, err
}

// SwitchToWindow makes handle the current window.
func (s *Session) SwitchToWindow(ctx context.Context, handle string) error {
	return s.nullPost(ctx, map[string]string{"handle": handle}, "window")
}

// NewWindow opens a tab or window and returns its handle and actual type.
func (s *Session) NewWindow(ctx context.Context, typ WindowType) (string, WindowType, error) {
	req, err := post(s.path("window", "new"), map[string]WindowType{"type": typ})
	if err != nil {
		return "", "", err
	}
	var v struct {
		Handle string     `json:"handle"`
		Type   WindowType `json:"type"`
	}
	if err := s.c.decode(ctx, req, &v); err != nil {
		return "", "", err
	}
	return v.Handle, v.Type, nil
}

// CloseWindow closes the current window and returns the remaining handles.
func (s *Session) CloseWindow(ctx context.Context) ([]string, error) {
	var handles []string
	err := s.c.decode(ctx, s.del("window"), &handles)
	return handles, err
}

// SwitchToFrame selects the frame at index in the current context.
func (s *Session) SwitchToFrame(ctx context.Context, index int) error {
	return s.nullPost(ctx, map[string]int{"id": index}, "frame")
}

// SwitchToFrameElement selects the frame held by e.
func (s *Session) SwitchToFrameElement(ctx context.Context, e *Element) error {
	return s.nullPost(ctx, map[string]any{"id": e.reference()}, "frame")
}

func (s *Session) SwitchToParentFrame(ctx context.Context) error {
	return s.nullPost(ctx, nil, "frame", "parent")
}

func (s *Session) WindowRect(ctx context.Context) (WindowRect, error) {
	var r WindowRect
	err := s.c.decode(ctx, s.get("window", "rect"), &r)
	return r, err
}

// SetWindowRect moves and resizes the window and returns the result.
func (s *Session) SetWindowRect(ctx context.Context, r WindowRect) (WindowRect, error) {
	return s.rectPost(ctx, r, "window", "rect")
}

func (s *Session) Maximize(ctx context.Context) (WindowRect, error) {
	return s.rectPost(ctx, nil, "window", "maximize")
}

func (s *Session) Minimize(ctx context.Context) (WindowRect, error) {
	return s.rectPost(ctx, nil, "window", "minimize")
}

func (s *Session) Fullscreen(ctx context.Context) (WindowRect, error) {
	return s.rectPost(ctx, nil, "window", "fullscreen")
}

func (s *Session) rectPost(ctx context.Context, v any, parts ...string) (WindowRect, error) {
	var r WindowRect
	req, err := post(s.path(parts...), v)
	if err != nil {
		return r, err
	}
	err = s.c.decode(ctx, req, &r)
	return r, err
}

// ExecuteSync runs script in the page and returns its JSON result.
func (s *Session) ExecuteSync(ctx context.Context, script string, args ...any) (json.RawMessage, error) {
	return s.execute(ctx, "sync", script, args)
}

// ExecuteAsync runs script in the page and waits for it to invoke its
// callback, which the server passes as the last argument.
func (s *Session) ExecuteAsync(ctx context.Context, script string, args ...any) (json.RawMessage, error) {
	return s.execute(ctx, "async", script, args)
}

func (s *Session) execute(ctx context.Context, mode, script string, args []any) (json.RawMessage, error) {
	if args == nil {
		args = []any{}
	}
	req, err := post(s.path("execute", mode), map[string]any{"script": script, "args": args})
	if err != nil {
		return nil, err
	}
	var v json.RawMessage
	if err := s.c.decode(ctx, req, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Session) AcceptAlert(ctx context.Context) error {
	return s.nullPost(ctx, nil, "alert", "accept")
}

func (s *Session) DismissAlert(ctx context.Context) error {
	return s.nullPost(ctx, nil, "alert", "dismiss")
}

// AlertText returns the message of the open user prompt.
func (s *Session) AlertText(ctx context.Context) (string, error) {
	return s.c.text(ctx, s.get("alert", "text"))
}

// SendAlertText types text into the open prompt.
func (s *Session) SendAlertText(ctx context.Context, text string) error {
	return s.nullPost(ctx, map[string]string{"text": text}, "alert", "text")
}

// Screenshot returns a PNG of the current viewport.
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	return s.c.binary(ctx, s.get("screenshot"))
}

// ElementScreenshot returns a PNG of the area covered by e.
func (s *Session) ElementScreenshot(ctx context.Context, e *Element) ([]byte, error) {
	return s.c.binary(ctx, s.get("element", url.PathEscape(e.ID), "screenshot"))
}

// Print renders the page to PDF.
func (s *Session) Print(ctx context.Context, settings PrintSettings) ([]byte, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	req, err := post(s.path("print"), settings)
	if err != nil {
		return nil, err
	}
	return s.c.binary(ctx, req)
}

// Cookies returns every cookie visible to the current page.
func (s *Session) Cookies(ctx context.Context) ([]Cookie, error) {
	var cookies []Cookie
	err := s.c.decode(ctx, s.get("cookie"), &cookies)
	return cookies, err
}

// Cookie returns the named cookie.
func (s *Session) Cookie(ctx context.Context, name string) (Cookie, error) {
	var c Cookie
	err := s.c.decode(ctx, s.get("cookie", url.PathEscape(name)), &c)
	return c, err
}

func (s *Session) AddCookie(ctx context.Context, c Cookie) error {
	return s.nullPost(ctx, map[string]Cookie{"cookie": c}, "cookie")
}

func (s *Session) DeleteCookie(ctx context.Context, name string) error {
	return s.c.null(ctx, s.del("cookie", url.PathEscape(name)))
}

func (s *Session) DeleteAllCookies(ctx context.Context) error {
	return s.c.null(ctx, s.del("cookie"))
}
