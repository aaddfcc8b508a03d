package executor

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/grantcarthew/wdctl/internal/drain"
	"github.com/grantcarthew/wdctl/internal/envelope"
	"github.com/grantcarthew/wdctl/internal/transport"
	"github.com/grantcarthew/wdctl/internal/wire"
)

var (
	_ Executor = (*DirectExecutor)(nil)
	_ Executor = (*ChannelExecutor)(nil)
)

func TestDirectExecutor_Text(t *testing.T) {
	tests := []struct {
		name    string
		request wire.Request
		body    string
		want    string
		wantErr error
	}{
		{
			name:    "string value",
			request: wire.NewRequest(wire.GET, "wd/hub/session/abc/title"),
			body:    `{"value":"Example Domain"}`,
			want:    "Example Domain",
		},
		{
			name:    "null value",
			request: wire.NewRequest(wire.POST, "wd/hub/session/abc/back"),
			body:    envelope.NullBody,
			want:    "null",
		},
		{
			name:    "object value",
			request: wire.NewRequest(wire.GET, "wd/hub/status"),
			body:    `{"value": {"ready": true}}`,
			want:    `{"ready":true}`,
		},
		{
			name:    "no value",
			request: wire.NewRequest(wire.GET, "wd/hub/status"),
			body:    `{"status":0}`,
			wantErr: envelope.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := func(req wire.Request) ([]byte, error) {
				if req.Method != tt.request.Method {
					t.Errorf("handler received method %q, want %q", req.Method, tt.request.Method)
				}
				if req.Path != tt.request.Path {
					t.Errorf("handler received path %q, want %q", req.Path, tt.request.Path)
				}
				return []byte(tt.body), nil
			}

			exec := NewDirectExecutor(handler)
			got, err := exec.Text(context.Background(), tt.request)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Text() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Text() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDirectExecutor_Binary(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}
	body := []byte(`{"value":"` + base64.StdEncoding.EncodeToString(data) + `"}`)
	exec := NewDirectExecutor(func(wire.Request) ([]byte, error) { return body, nil })

	for _, x := range []envelope.Extractor{envelope.Scan{}, envelope.Parse{}} {
		got, err := exec.WithExtractor(x).Binary(context.Background(), wire.NewRequest(wire.GET, "wd/hub/session/abc/screenshot"))
		if err != nil {
			t.Fatalf("%T: Binary() error = %v", x, err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("%T: Binary() = %x, want %x", x, got, data)
		}
	}
}

func TestDirectExecutor_HandlerReceivesBody(t *testing.T) {
	body := []byte(`{"url":"https://example.com"}`)

	var received wire.Request
	exec := NewDirectExecutor(func(req wire.Request) ([]byte, error) {
		received = req
		return []byte(envelope.NullBody), nil
	})

	req := wire.JSONRequest(wire.POST, "wd/hub/session/abc/url", body)
	got, err := exec.Body(context.Background(), req)
	if err != nil {
		t.Fatalf("Body() error = %v", err)
	}
	if !envelope.IsNull(got) {
		t.Errorf("Body() = %s, want null marker", got)
	}
	if string(received.Body) != string(body) {
		t.Errorf("handler received body %s, want %s", received.Body, body)
	}
	if len(received.Headers) != 1 || received.Headers[0] != wire.ContentLength(body) {
		t.Errorf("handler received headers %v", received.Headers)
	}
}

func TestDirectExecutor_HandlerError(t *testing.T) {
	boom := errors.New("boom")
	exec := NewDirectExecutor(func(wire.Request) ([]byte, error) { return nil, boom })

	if _, err := exec.Text(context.Background(), wire.NewRequest(wire.GET, "wd/hub/status")); !errors.Is(err, boom) {
		t.Errorf("Text() error = %v, want %v", err, boom)
	}
	if _, err := exec.Binary(context.Background(), wire.NewRequest(wire.GET, "wd/hub/status")); !errors.Is(err, boom) {
		t.Errorf("Binary() error = %v, want %v", err, boom)
	}
}

func TestDirectExecutor_CancelledContext(t *testing.T) {
	called := false
	exec := NewDirectExecutor(func(wire.Request) ([]byte, error) {
		called = true
		return nil, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := exec.Body(ctx, wire.NewRequest(wire.GET, "wd/hub/status")); !errors.Is(err, context.Canceled) {
		t.Errorf("Body() error = %v, want context.Canceled", err)
	}
	if called {
		t.Error("handler called with cancelled context")
	}
}

func TestChannelExecutor(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 1024)
		conn.Read(buf)
		conn.Write([]byte("HTTP/1.1 200 OK\r\n\r\n{\"value\":\"ready\"}"))
		// Hold the connection until the client hangs up.
		conn.Read(buf)
	}()

	port := ln.Addr().(*net.TCPAddr).Port
	d := drain.New(drain.Options{PollInterval: 5 * time.Millisecond, Timeout: 2 * time.Second})
	exec := NewChannelExecutor(transport.New("127.0.0.1", port, transport.WithDrainer(d)))

	got, err := exec.Text(context.Background(), wire.NewRequest(wire.GET, "wd/hub/status"))
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if got != "ready" {
		t.Errorf("Text() = %q, want ready", got)
	}
	if exec.Channel().Addr() != ln.Addr().String() {
		t.Errorf("Channel().Addr() = %q, want %q", exec.Channel().Addr(), ln.Addr())
	}
	<-done
}
