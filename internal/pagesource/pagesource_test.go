package pagesource

import (
	"strings"
	"testing"
)

func TestIndent_Document(t *testing.T) {
	input := `<!DOCTYPE html><html><head><title>Test</title></head><body><div><p>Hello   world</p></div></body></html>`
	result, err := Indent(input)
	if err != nil {
		t.Fatalf("Indent() error = %v", err)
	}

	expected := []string{
		"<!DOCTYPE html>",
		"<html>",
		"  <head>",
		"    <title>",
		"      Test",
		"    </title>",
		"  </head>",
		"  <body>",
		"    <div>",
		"      <p>",
		"        Hello world",
		"      </p>",
		"    </div>",
		"  </body>",
		"</html>",
	}
	lines := strings.Split(strings.TrimSuffix(result, "\n"), "\n")
	if len(lines) != len(expected) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(expected), result)
	}
	for i, exp := range expected {
		if lines[i] != exp {
			t.Errorf("line %d: got %q, want %q", i, lines[i], exp)
		}
	}
}

func TestIndent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "pre kept verbatim",
			input: "<div><pre>  a\n    b</pre></div>",
			want:  "<div>\n  <pre>  a\n    b</pre>\n</div>\n",
		},
		{
			name:  "nested pre",
			input: "<pre>x<pre>y</pre>z</pre><p>after</p>",
			want:  "<pre>x<pre>y</pre>z</pre>\n<p>\n  after\n</p>\n",
		},
		{
			name:  "script kept verbatim",
			input: "<body><script>if (a < b) {\n  go();\n}</script></body>",
			want:  "<body>\n  <script>if (a < b) {\n  go();\n}</script>\n</body>\n",
		},
		{
			name:  "textarea and style",
			input: "<textarea> keep  this </textarea><style>p { color: red; }</style>",
			want:  "<textarea> keep  this </textarea>\n<style>p { color: red; }</style>\n",
		},
		{
			name:  "void elements do not nest",
			input: `<div><br><img src="x.png"><input type="text"></div>`,
			want:  "<div>\n  <br>\n  <img src=\"x.png\">\n  <input type=\"text\">\n</div>\n",
		},
		{
			name:  "self-closing",
			input: `<div><br/><svg><path d="M0"/></svg></div>`,
			want:  "<div>\n  <br/>\n  <svg>\n    <path d=\"M0\"/>\n  </svg>\n</div>\n",
		},
		{
			name:  "comment",
			input: "<ul><!-- items --><li>one</li></ul>",
			want:  "<ul>\n  <!-- items -->\n  <li>\n    one\n  </li>\n</ul>\n",
		},
		{
			name:  "entities kept",
			input: "<p>&lt;tag&gt; &amp; more</p>",
			want:  "<p>\n  &lt;tag&gt; &amp; more\n</p>\n",
		},
		{
			name:  "non-breaking space kept",
			input: "<p>a\u00a0 \n b</p>",
			want:  "<p>\n  a\u00a0 b\n</p>\n",
		},
		{
			name:  "whitespace-only text dropped",
			input: "<div>\n   \n<span>x</span>\n</div>",
			want:  "<div>\n  <span>\n    x\n  </span>\n</div>\n",
		},
		{
			name:  "stray end tag",
			input: "</div><p>x</p>",
			want:  "</div>\n<p>\n  x\n</p>\n",
		},
		{
			name:  "unicode",
			input: "<p>日本語 🎉</p>",
			want:  "<p>\n  日本語 🎉\n</p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Indent(tt.input)
			if err != nil {
				t.Fatalf("Indent() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Indent() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestIndent_Unclosed(t *testing.T) {
	// Unclosed tags leave the indent where it is; nothing is dropped.
	got, err := Indent("<div><p>one<p>two</div>")
	if err != nil {
		t.Fatalf("Indent() error = %v", err)
	}
	for _, want := range []string{"<div>", "one", "two", "</div>"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}
