package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/grantcarthew/wdctl/internal/webdriver"
)

func colorFprint(w io.Writer, c color.Attribute, s string) {
	color.New(c).Fprint(w, s)
}

func colorFprintf(w io.Writer, c color.Attribute, format string, args ...any) {
	color.New(c).Fprintf(w, format, args...)
}

// OutputOptions controls text formatting behavior.
type OutputOptions struct {
	UseColor bool // Enable ANSI color codes
}

// NewOutputOptions returns output options based on flags and environment.
// Priority: jsonOutput > noColorFlag > NO_COLOR env > TTY detection.
func NewOutputOptions(jsonOutput bool, noColorFlag bool) OutputOptions {
	if jsonOutput || noColorFlag {
		return OutputOptions{UseColor: false}
	}
	if os.Getenv("NO_COLOR") != "" {
		return OutputOptions{UseColor: false}
	}
	return OutputOptions{
		UseColor: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// ActionSuccess outputs "OK" for successful action commands.
func ActionSuccess(w io.Writer) error {
	_, err := fmt.Fprintln(w, "OK")
	return err
}

// ActionError outputs "Error: <message>" for failed action commands.
func ActionError(w io.Writer, msg string, opts OutputOptions) error {
	if opts.UseColor {
		colorFprint(w, color.FgRed, "Error:")
		fmt.Fprintf(w, " %s\n", msg)
	} else {
		fmt.Fprintf(w, "Error: %s\n", msg)
	}
	return nil
}

// Status outputs server readiness in text format.
func Status(w io.Writer, addr string, st webdriver.ServerStatus, opts OutputOptions) error {
	state, c := "Ready", color.FgGreen
	if !st.Ready {
		state, c = "Not ready", color.FgYellow
	}
	if opts.UseColor {
		colorFprint(w, c, state)
		fmt.Fprintln(w)
	} else {
		fmt.Fprintln(w, state)
	}
	fmt.Fprintf(w, "server: %s\n", addr)
	if st.Message != "" {
		fmt.Fprintf(w, "message: %s\n", st.Message)
	}
	return nil
}

// Page outputs the URL and title of the current page.
func Page(w io.Writer, url, title string, opts OutputOptions) error {
	if opts.UseColor {
		colorFprint(w, color.FgCyan, url)
	} else {
		fmt.Fprint(w, url)
	}
	if title != "" {
		fmt.Fprintf(w, " %s", title)
	}
	_, err := fmt.Fprintln(w)
	return err
}

// Session outputs a new session ID and the browser it runs.
func Session(w io.Writer, id, browser string, opts OutputOptions) error {
	if opts.UseColor {
		colorFprint(w, color.FgGreen, id)
	} else {
		fmt.Fprint(w, id)
	}
	if browser != "" {
		fmt.Fprintf(w, " (%s)", browser)
	}
	_, err := fmt.Fprintln(w)
	return err
}

// Cookies outputs cookies in text format, one per line.
func Cookies(w io.Writer, cookies []webdriver.Cookie, opts OutputOptions) error {
	for _, c := range cookies {
		var attrs []string
		if c.Domain != "" {
			attrs = append(attrs, "domain="+c.Domain)
		}
		if c.Path != "" {
			attrs = append(attrs, "path="+c.Path)
		}
		if c.Secure {
			attrs = append(attrs, "secure")
		}
		if c.HTTPOnly {
			attrs = append(attrs, "httponly")
		}
		if c.Expiry > 0 {
			attrs = append(attrs, "expires="+time.Unix(c.Expiry, 0).UTC().Format("2006-01-02"))
		}
		if c.SameSite != "" {
			attrs = append(attrs, "samesite="+c.SameSite)
		}

		if opts.UseColor {
			colorFprint(w, color.FgCyan, c.Name)
			fmt.Fprint(w, "=", c.Value)
			for _, a := range attrs {
				fmt.Fprint(w, "; ")
				colorFprint(w, color.Faint, a)
			}
			fmt.Fprintln(w)
			continue
		}
		parts := append([]string{c.Name + "=" + c.Value}, attrs...)
		fmt.Fprintln(w, strings.Join(parts, "; "))
	}
	return nil
}

// FilePath outputs a file path (for screenshot, print commands).
func FilePath(w io.Writer, path string) error {
	_, err := fmt.Fprintln(w, path)
	return err
}

// EvalResult outputs a script's return value: strings raw, everything else
// as compact JSON.
func EvalResult(w io.Writer, value json.RawMessage) error {
	value = bytes.TrimSpace(value)
	if len(value) == 0 {
		_, err := fmt.Fprintln(w, "null")
		return err
	}
	if value[0] == '"' {
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, s)
		return err
	}
	var out bytes.Buffer
	if err := json.Compact(&out, value); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, out.String())
	return err
}

// Size outputs a byte count with a binary unit, for binary artifacts.
func Size(w io.Writer, path string, n int, opts OutputOptions) error {
	size := fmt.Sprintf("%d B", n)
	switch {
	case n >= 1<<20:
		size = fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		size = fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	}
	fmt.Fprint(w, path, " ")
	if opts.UseColor {
		colorFprintf(w, color.Faint, "(%s)", size)
	} else {
		fmt.Fprintf(w, "(%s)", size)
	}
	_, err := fmt.Fprintln(w)
	return err
}
