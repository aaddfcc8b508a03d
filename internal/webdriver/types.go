package webdriver

import (
	"encoding/json"
	"fmt"
)

// Browser names understood by Capabilities.
const (
	Chrome  = "chrome"
	Firefox = "firefox"
	Safari  = "safari"
)

// Capabilities describes the session to create. Every field is sent under
// alwaysMatch, so the server fails the request if any cannot be met.
type Capabilities struct {
	BrowserName         string
	BrowserVersion      string
	PlatformName        string
	AcceptInsecureCerts bool
	PageLoadStrategy    string
	// Args are passed to the browser binary. They are ignored for Safari.
	Args     []string
	Timeouts *Timeouts
	Proxy    *Proxy
}

// MarshalJSON encodes the new-session request body.
func (c Capabilities) MarshalJSON() ([]byte, error) {
	match := map[string]any{}
	if c.BrowserName != "" {
		match["browserName"] = c.BrowserName
	}
	if c.BrowserVersion != "" {
		match["browserVersion"] = c.BrowserVersion
	}
	if c.PlatformName != "" {
		match["platformName"] = c.PlatformName
	}
	if c.AcceptInsecureCerts {
		match["acceptInsecureCerts"] = true
	}
	if c.PageLoadStrategy != "" {
		match["pageLoadStrategy"] = c.PageLoadStrategy
	}
	if c.Timeouts != nil {
		match["timeouts"] = c.Timeouts
	}
	if c.Proxy != nil {
		match["proxy"] = c.Proxy
	}
	if len(c.Args) > 0 {
		switch c.BrowserName {
		case Chrome:
			match["goog:chromeOptions"] = map[string]any{"args": c.Args}
		case Firefox:
			match["moz:firefoxOptions"] = map[string]any{"args": c.Args}
		}
	}
	return json.Marshal(map[string]any{
		"capabilities": map[string]any{"alwaysMatch": match},
	})
}

// ProxyType is how the browser finds its proxy.
type ProxyType string

const (
	ProxyPAC        ProxyType = "pac"
	ProxyDirect     ProxyType = "direct"
	ProxyAutodetect ProxyType = "autodetect"
	ProxySystem     ProxyType = "system"
	ProxyManual     ProxyType = "manual"
)

// Proxy is the proxy capability. The host fields take host[:port] and only
// apply when Type is ProxyManual; AutoconfigURL only applies to ProxyPAC.
type Proxy struct {
	Type          ProxyType `json:"proxyType"`
	AutoconfigURL string    `json:"proxyAutoconfigUrl,omitempty"`
	FTPProxy      string    `json:"ftpProxy,omitempty"`
	HTTPProxy     string    `json:"httpProxy,omitempty"`
	SSLProxy      string    `json:"sslProxy,omitempty"`
	SocksProxy    string    `json:"socksProxy,omitempty"`
	SocksVersion  int       `json:"socksVersion,omitempty"`
	NoProxy       []string  `json:"noProxy,omitempty"`
}

// ManualProxy routes HTTP and TLS traffic through hostPort.
func ManualProxy(hostPort string, bypass ...string) *Proxy {
	return &Proxy{Type: ProxyManual, HTTPProxy: hostPort, SSLProxy: hostPort, NoProxy: bypass}
}

// Timeouts are the session timeouts in milliseconds.
type Timeouts struct {
	Implicit int `json:"implicit"`
	PageLoad int `json:"pageLoad"`
	Script   int `json:"script"`
}

// DefaultTimeouts returns the timeouts a fresh Chrome session starts with.
func DefaultTimeouts() Timeouts {
	return Timeouts{Implicit: 0, PageLoad: 300000, Script: 30000}
}

// WindowRect is the position and size of a window.
type WindowRect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// WindowType selects what NewWindow opens.
type WindowType string

const (
	Tab    WindowType = "tab"
	Window WindowType = "window"
)

// Cookie is a browser cookie. Expiry is in seconds since the epoch; zero
// means a session cookie.
type Cookie struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Path     string `json:"path,omitempty"`
	Domain   string `json:"domain,omitempty"`
	Secure   bool   `json:"secure,omitempty"`
	HTTPOnly bool   `json:"httpOnly,omitempty"`
	Expiry   int64  `json:"expiry,omitempty"`
	SameSite string `json:"sameSite,omitempty"`
}

// Orientation of a printed page.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Page is the paper size in centimetres.
type Page struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Margin sizes in centimetres.
type Margin struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// PrintSettings is the print-to-PDF request body.
type PrintSettings struct {
	Orientation Orientation `json:"orientation"`
	Scale       float64     `json:"scale"`
	Background  bool        `json:"background"`
	Page        Page        `json:"page"`
	Margin      Margin      `json:"margin"`
	ShrinkToFit bool        `json:"shrinkToFit"`
	PageRanges  []string    `json:"pageRanges,omitempty"`
}

// DefaultPrintSettings returns US Letter, portrait, 1cm margins.
func DefaultPrintSettings() PrintSettings {
	return PrintSettings{
		Orientation: Portrait,
		Scale:       1.0,
		Page:        Page{Width: 21.59, Height: 27.94},
		Margin:      Margin{Top: 1, Bottom: 1, Left: 1, Right: 1},
		ShrinkToFit: true,
	}
}

// Validate checks the ranges the server enforces.
func (p PrintSettings) Validate() error {
	if p.Orientation != Portrait && p.Orientation != Landscape {
		return fmt.Errorf("invalid orientation %q", p.Orientation)
	}
	if p.Scale < 0.1 || p.Scale > 2.0 {
		return fmt.Errorf("scale %.2f out of range [0.1, 2.0]", p.Scale)
	}
	if p.Page.Width < 0 || p.Page.Height < 0 {
		return fmt.Errorf("negative page size %.2fx%.2f", p.Page.Width, p.Page.Height)
	}
	if p.Margin.Top < 0 || p.Margin.Bottom < 0 || p.Margin.Left < 0 || p.Margin.Right < 0 {
		return fmt.Errorf("negative margin")
	}
	return nil
}

// By is an element locator.
type By struct {
	Using string `json:"using"`
	Value string `json:"value"`
}

// CSS locates elements by CSS selector.
func CSS(selector string) By { return By{Using: "css selector", Value: selector} }

// XPath locates elements by XPath expression.
func XPath(expr string) By { return By{Using: "xpath", Value: expr} }

// LinkText locates anchors by their exact visible text.
func LinkText(text string) By { return By{Using: "link text", Value: text} }

// PartialLinkText locates anchors whose visible text contains text.
func PartialLinkText(text string) By { return By{Using: "partial link text", Value: text} }

// TagName locates elements by tag.
func TagName(name string) By { return By{Using: "tag name", Value: name} }
