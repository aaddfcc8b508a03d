package wire

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  Request
		want string
	}{
		{
			name: "delete drops body",
			req: Request{
				Method:  DELETE,
				Path:    "hello/you",
				Headers: []string{"Content-Length: 130"},
				Body:    []byte("{dsd}"),
			},
			want: "DELETE /hello/you HTTP/1.1\r\nHost: 127.0.0.1\r\nContent-Length: 130\r\n\r\n\r\n",
		},
		{
			name: "get drops body",
			req: Request{
				Method:  GET,
				Path:    "hello/you",
				Headers: []string{"Content-Length: 130"},
				Body:    []byte("{dsd}"),
			},
			want: "GET /hello/you HTTP/1.1\r\nHost: 127.0.0.1\r\nContent-Length: 130\r\n\r\n\r\n",
		},
		{
			name: "post appends body",
			req: Request{
				Method:  POST,
				Path:    "wd/hub/session",
				Headers: []string{"Content-Length:9"},
				Body:    []byte(`{"a":"b"}`),
			},
			want: "POST /wd/hub/session HTTP/1.1\r\nHost: 127.0.0.1\r\nContent-Length:9\r\n\r\n\r\n{\"a\":\"b\"}",
		},
		{
			name: "no headers",
			req:  NewRequest(GET, "wd/hub/status"),
			want: "GET /wd/hub/status HTTP/1.1\r\nHost: 127.0.0.1\r\n\r\n\r\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := string(Build("127.0.0.1", tc.req))
			if got != tc.want {
				t.Errorf("Build() =\n%q\nwant\n%q", got, tc.want)
			}
		})
	}
}

func TestBuild_BodyPlacement(t *testing.T) {
	t.Parallel()

	bodies := [][]byte{
		[]byte(`{"url":"https://vk.com/"}`),
		[]byte("x"),
		bytes.Repeat([]byte{0xff, 0x00, '\r', '\n'}, 64),
		[]byte(`{"script":"return 1","args":[]}`),
	}

	for i, body := range bodies {
		post := Build("localhost", Request{Method: POST, Path: "p", Body: body})
		if !bytes.HasSuffix(post, body) {
			t.Errorf("case %d: POST request does not end with body", i)
		}
		for _, m := range []Method{GET, DELETE} {
			got := Build("localhost", Request{Method: m, Path: "p", Body: body})
			if bytes.Contains(got, body) {
				t.Errorf("case %d: %s request contains body", i, m)
			}
		}
	}
}

func TestBuild_HeadersPassThrough(t *testing.T) {
	t.Parallel()

	// The builder never recomputes a caller-supplied length.
	req := Request{Method: POST, Path: "p", Headers: []string{"Content-Length:999"}, Body: []byte("ab")}
	got := string(Build("h", req))
	if !strings.Contains(got, "\r\nContent-Length:999\r\n") {
		t.Errorf("length header rewritten: %q", got)
	}
}

func TestContentLength_PinnedOffset(t *testing.T) {
	t.Parallel()

	// The +2 convention is observed server behaviour. Changing it needs
	// confirmation against a real server first.
	if LengthOffset != 2 {
		t.Fatalf("LengthOffset = %d, want 2", LengthOffset)
	}

	body := []byte(`{"capabilities":{}}`)
	want := "Content-Length:" + strconv.Itoa(len(body)+2)
	if got := ContentLength(body); got != want {
		t.Errorf("ContentLength() = %q, want %q", got, want)
	}

	// The declared length covers the extra CRLF plus the body.
	raw := Build("localhost", JSONRequest(POST, "p", body))
	idx := bytes.Index(raw, []byte("\r\n\r\n"))
	if idx < 0 {
		t.Fatal("no header terminator")
	}
	if n := len(raw) - (idx + 4); n != len(body)+2 {
		t.Errorf("bytes after blank line = %d, want %d", n, len(body)+2)
	}
}

func TestJSONRequest(t *testing.T) {
	t.Parallel()

	req := JSONRequest(POST, "wd/hub/session/abc/url", []byte(`{"url":"x"}`))
	if len(req.Headers) != 1 || req.Headers[0] != "Content-Length:13" {
		t.Errorf("Headers = %v, want [Content-Length:13]", req.Headers)
	}
	if req.String() != "POST /wd/hub/session/abc/url" {
		t.Errorf("String() = %q", req.String())
	}
}
