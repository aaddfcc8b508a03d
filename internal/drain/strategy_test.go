package drain

import (
	"errors"
	"testing"
)

func TestQuiescence_Complete(t *testing.T) {
	t.Parallel()

	q := Quiescence{Threshold: 3}
	tests := []struct {
		name string
		raw  []byte
		idle int
		want bool
	}{
		{"no data never completes", nil, 100, false},
		{"no data after close", nil, Closed, false},
		{"below threshold", []byte("x"), 2, false},
		{"at threshold", []byte("x"), 3, true},
		{"closed with data", []byte("x"), Closed, true},
	}
	for _, tc := range tests {
		if got := q.Complete(tc.raw, tc.idle); got != tc.want {
			t.Errorf("%s: Complete() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestContentLength_Complete(t *testing.T) {
	t.Parallel()

	c := ContentLength{Fallback: Quiescence{Threshold: 3}}
	tests := []struct {
		name string
		raw  string
		idle int
		want bool
	}{
		{"headers incomplete", "HTTP/1.1 200 OK\r\nContent-Len", 0, false},
		{"body short", "HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nabc", 0, false},
		{"body short stays short when idle", "HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nabc", 50, false},
		{"body short after close", "HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nabc", Closed, false},
		{"body exact", "HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nabcde", 0, true},
		{"zero length", "HTTP/1.1 204 No Content\r\ncontent-length: 0\r\n\r\n", 0, true},
		{"no header falls back", "HTTP/1.1 200 OK\r\n\r\nabc", 0, false},
		{"no header falls back quiescent", "HTTP/1.1 200 OK\r\n\r\nabc", 3, true},
		{"bad header falls back", "HTTP/1.1 200 OK\r\nContent-Length: x\r\n\r\nabc", 3, true},
	}
	for _, tc := range tests {
		if got := c.Complete([]byte(tc.raw), tc.idle); got != tc.want {
			t.Errorf("%s: Complete() = %v, want %v", tc.name, got, tc.want)
		}
	}

	if (ContentLength{}).Complete([]byte("HTTP/1.1 200 OK\r\n\r\nabc"), Closed) {
		t.Error("ContentLength without fallback completed a headerless body")
	}
}

func TestByName(t *testing.T) {
	t.Parallel()

	s, err := ByName("", 4)
	if err != nil || s.Name() != NameQuiescence {
		t.Errorf("ByName(\"\") = %v, %v", s, err)
	}
	s, err = ByName("content-length", 4)
	if err != nil {
		t.Fatalf("ByName(content-length) error = %v", err)
	}
	cl, ok := s.(ContentLength)
	if !ok {
		t.Fatalf("ByName(content-length) = %T", s)
	}
	if q, ok := cl.Fallback.(Quiescence); !ok || q.Threshold != 4 {
		t.Errorf("fallback = %#v", cl.Fallback)
	}
	if _, err := ByName("chunked", 4); err == nil {
		t.Error("ByName(chunked) succeeded")
	}
}

func TestQueue(t *testing.T) {
	t.Parallel()

	q := newQueue()
	q.push([]byte("a"))
	q.push([]byte("b"))
	q.fail(errors.New("first"))
	q.fail(errors.New("second"))

	<-q.ready
	chunks, err := q.take()
	if len(chunks) != 2 || string(chunks[0]) != "a" || string(chunks[1]) != "b" {
		t.Errorf("take() chunks = %q", chunks)
	}
	if err == nil || err.Error() != "first" {
		t.Errorf("take() err = %v, want first", err)
	}

	chunks, _ = q.take()
	if len(chunks) != 0 {
		t.Errorf("second take() = %q, want empty", chunks)
	}
}
