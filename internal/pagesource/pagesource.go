// Package pagesource re-indents the serialized DOM returned by the browser so
// that it can be read and diffed.
package pagesource

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

const indentUnit = "  "

// Indent rewrites src with one tag or text run per line, indented two spaces
// per open element. Content of pre, textarea, script and style elements is
// copied verbatim. Runs of whitespace in other text collapse to one space.
func Indent(src string) (string, error) {
	p := &printer{fresh: true}
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != io.EOF {
				return p.b.String(), err
			}
			return p.b.String(), nil
		}
		p.token(tt, z)
	}
}

type printer struct {
	b     strings.Builder
	depth int
	raw   []string // open verbatim elements, innermost last
	fresh bool     // next write starts a line
}

func (p *printer) token(tt html.TokenType, z *html.Tokenizer) {
	raw := string(z.Raw())

	if len(p.raw) > 0 {
		p.verbatim(tt, z, raw)
		return
	}

	switch tt {
	case html.StartTagToken:
		name := tagName(z)
		if preserves(name) {
			p.indent()
			p.b.WriteString(raw)
			p.fresh = false
			p.raw = append(p.raw, name)
			return
		}
		p.line(raw)
		if !void(name) {
			p.depth++
		}
	case html.EndTagToken:
		if p.depth > 0 {
			p.depth--
		}
		p.line(raw)
	case html.TextToken:
		if text := collapse(raw); text != "" {
			p.line(text)
		}
	default:
		p.line(raw)
	}
}

// verbatim copies a token found inside a whitespace-preserving element.
func (p *printer) verbatim(tt html.TokenType, z *html.Tokenizer, raw string) {
	p.b.WriteString(raw)
	p.fresh = false

	switch tt {
	case html.StartTagToken:
		if name := tagName(z); preserves(name) {
			p.raw = append(p.raw, name)
		}
	case html.EndTagToken:
		if tagName(z) == p.raw[len(p.raw)-1] {
			p.raw = p.raw[:len(p.raw)-1]
			if len(p.raw) == 0 {
				p.b.WriteByte('\n')
				p.fresh = true
			}
		}
	}
}

func (p *printer) indent() {
	if p.fresh {
		p.b.WriteString(strings.Repeat(indentUnit, p.depth))
	}
}

func (p *printer) line(s string) {
	p.indent()
	p.b.WriteString(s)
	p.b.WriteByte('\n')
	p.fresh = true
}

func tagName(z *html.Tokenizer) string {
	name, _ := z.TagName()
	return string(name)
}

func preserves(name string) bool {
	switch name {
	case "pre", "textarea", "script", "style":
		return true
	}
	return false
}

// void reports whether name is an HTML element that never has a closing tag.
func void(name string) bool {
	switch name {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

// collapse trims s and folds each run of ASCII whitespace into one space.
// Non-breaking spaces are content and are kept.
func collapse(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
	})
	return strings.Join(fields, " ")
}
