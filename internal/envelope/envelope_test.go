package envelope

import (
	"bytes"
	"encoding/base64"
	"errors"
	"math/rand"
	"strings"
	"testing"
)

// extractors run against the same fixtures.
var extractors = map[string]Extractor{
	NameScan:  Scan{},
	NameParse: Parse{},
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0x00, 0x00, 0x00, 0x0d, 'I', 'H', 'D', 'R', 0xff, 0xfe}

func binaryBody(payload []byte, trailer string) []byte {
	return []byte(`{"value":"` + base64.StdEncoding.EncodeToString(payload) + `"}` + trailer)
}

func TestText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"string", `{"value":"https://vk.com/"}`, "https://vk.com/"},
		{"escaped string", `{"value":"say \"hi\"\n"}`, "say \"hi\"\n"},
		{"empty string", `{"value":""}`, ""},
		{"number", `{"value":42}`, "42"},
		{"bool", `{"value":true}`, "true"},
		{"null", `{"value":null}`, "null"},
		{"array", `{"value":[ "a", "b" ]}`, `["a","b"]`},
		{
			"nested object with whitespace",
			"{\n       \"value\": {\n       \"dftg43rert34tert-34trte-243f-4\":\n       {\n        \"id\": 333\n        }\n      }\n     }",
			`{"dftg43rert34tert-34trte-243f-4":{"id":333}}`,
		},
		{"trailing bytes ignored", "{\"value\":\"x\"}\r\n", "x"},
	}

	for name, ex := range extractors {
		for _, tc := range tests {
			t.Run(name+"/"+tc.name, func(t *testing.T) {
				t.Parallel()
				got, err := ex.Text([]byte(tc.body))
				if err != nil {
					t.Fatalf("Text() error = %v", err)
				}
				if got != tc.want {
					t.Errorf("Text() = %q, want %q", got, tc.want)
				}
			})
		}
	}
}

func TestText_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want error
	}{
		{"not json", `<html>oops</html>`, ErrJSON},
		{"truncated", `{"value":"abc`, ErrJSON},
		{"empty", ``, ErrJSON},
		{"not an object", `["value"]`, ErrJSON},
		{"missing value", `{"sessionId":"abc"}`, ErrNotFound},
	}

	for name, ex := range extractors {
		for _, tc := range tests {
			_, err := ex.Text([]byte(tc.body))
			if !errors.Is(err, tc.want) {
				t.Errorf("%s/%s: Text() error = %v, want %v", name, tc.name, err, tc.want)
			}
		}
	}
}

func TestBinary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload []byte
		trailer string
	}{
		{"exact body", pngHeader, ""},
		{"crlf trailer", pngHeader, "\r\n"},
		{"two trailing bytes", pngHeader, "XY"},
		{"padded payload", []byte("ab"), "\r\n"},
		{"empty payload", []byte{}, ""},
	}

	for name, ex := range extractors {
		for _, tc := range tests {
			t.Run(name+"/"+tc.name, func(t *testing.T) {
				t.Parallel()
				got, err := ex.Binary(binaryBody(tc.payload, tc.trailer))
				if err != nil {
					t.Fatalf("Binary() error = %v", err)
				}
				if !bytes.Equal(got, tc.payload) {
					t.Errorf("Binary() = %x, want %x", got, tc.payload)
				}
			})
		}
	}
}

func TestBinary_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want error
	}{
		{"no value", `{"sessionId":"abc"}`, ErrNotFound},
		{"null value", `{"value":null}`, ErrNotFound},
		{"bad base64", `{"value":"!!not*base64"}`, ErrBase64},
		{"error object", `{"value":{"error":"no such window","message":"gone"}}`, ErrNotFound},
	}

	for name, ex := range extractors {
		for _, tc := range tests {
			_, err := ex.Binary([]byte(tc.body))
			if !errors.Is(err, tc.want) {
				t.Errorf("%s/%s: Binary() error = %v, want %v", name, tc.name, err, tc.want)
			}
		}
	}
}

func TestBinary_RoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	for name, ex := range extractors {
		for size := 0; size < 2048; size += 97 {
			payload := make([]byte, size)
			rng.Read(payload)
			encoded := base64.StdEncoding.EncodeToString(payload)

			got, err := ex.Binary([]byte(`{"value":"` + encoded + `"}` + "\r\n"))
			if err != nil {
				t.Fatalf("%s: size %d: Binary() error = %v", name, size, err)
			}
			if re := base64.StdEncoding.EncodeToString(got); re != encoded {
				t.Fatalf("%s: size %d: re-encoded payload differs", name, size)
			}
		}
	}
}

func TestScanBinary_PinnedTrailer(t *testing.T) {
	t.Parallel()

	// The 2-byte trailer mirrors the +2 request length convention. Changing
	// it needs confirmation against a real server first.
	if TrailerLen != 2 {
		t.Fatalf("TrailerLen = %d, want 2", TrailerLen)
	}

	// Trailing bytes from the base64 alphabet are only removed by the cut.
	got, err := Scan{}.Binary(binaryBody([]byte("hello"), "=="))
	if err != nil {
		t.Fatalf("Binary() error = %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("Binary() = %q, want hello", got)
	}
}

func TestScanBinary_Window(t *testing.T) {
	t.Parallel()

	// A value past the scan window is invisible to Scan but not to Parse.
	body := []byte(`{"padding":"` + strings.Repeat("p", ScanWindow) + `","value":"aGk="}`)

	if _, err := (Scan{}).Binary(body); !errors.Is(err, ErrNotFound) {
		t.Errorf("Scan.Binary() error = %v, want ErrNotFound", err)
	}
	got, err := Parse{}.Binary(body)
	if err != nil || string(got) != "hi" {
		t.Errorf("Parse.Binary() = %q, %v, want hi", got, err)
	}
}

func TestScanBinary_TooShort(t *testing.T) {
	t.Parallel()

	_, err := Scan{}.Binary([]byte(`{"value":"`))
	if !errors.Is(err, ErrBase64) {
		t.Errorf("Binary() error = %v, want ErrBase64", err)
	}
}

func TestBinary_Truncated(t *testing.T) {
	t.Parallel()

	// A body cut anywhere inside the value never decodes, even when the
	// remaining base64 length is a multiple of four.
	encoded := base64.StdEncoding.EncodeToString([]byte("0123456789ABCDEFGHIJKLMN"))
	for n := 0; n < len(encoded); n++ {
		body := []byte(`{"value":"` + encoded[:n])

		got, err := Scan{}.Binary(body)
		if !errors.Is(err, ErrBase64) || got != nil {
			t.Errorf("Scan: cut at %d: Binary() = %q, %v, want ErrBase64", n, got, err)
		}
		if n >= TrailerLen && !errors.Is(err, ErrTruncated) {
			t.Errorf("Scan: cut at %d: Binary() error = %v, want ErrTruncated", n, err)
		}

		if got, err := (Parse{}).Binary(body); err == nil || got != nil {
			t.Errorf("Parse: cut at %d: Binary() = %q, %v, want error", n, got, err)
		}
	}
}

func TestIsNull(t *testing.T) {
	t.Parallel()

	tests := []struct {
		body string
		want bool
	}{
		{`{"value":null}`, true},
		{`{ "value" : null }`, true},
		{"{\"value\":null}\r\n", true},
		{`{"value":"null"}`, false},
		{`{"value":{}}`, false},
		{`{"value":0}`, false},
		{`{"other":null}`, false},
		{`garbage`, false},
		{``, false},
	}
	for _, tc := range tests {
		if got := IsNull([]byte(tc.body)); got != tc.want {
			t.Errorf("IsNull(%q) = %v, want %v", tc.body, got, tc.want)
		}
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	var rect struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	if err := Decode([]byte(`{"value":{"width":800,"height":600,"x":0,"y":0}}`), &rect); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if rect.Width != 800 || rect.Height != 600 {
		t.Errorf("Decode() = %+v", rect)
	}

	var n int
	if err := Decode([]byte(`{"value":"x"}`), &n); !errors.Is(err, ErrJSON) {
		t.Errorf("Decode() type mismatch error = %v, want ErrJSON", err)
	}
}

func TestAsRemoteError(t *testing.T) {
	t.Parallel()

	body := []byte(`{"value":{"error":"no such element","message":"Unable to locate element","stacktrace":"at ..."}}`)
	rerr, ok := AsRemoteError(body)
	if !ok {
		t.Fatal("AsRemoteError() = false")
	}
	if rerr.Code != "no such element" {
		t.Errorf("Code = %q", rerr.Code)
	}
	if got := rerr.Error(); got != "webdriver error: no such element: Unable to locate element" {
		t.Errorf("Error() = %q", got)
	}

	for _, b := range []string{`{"value":null}`, `{"value":{"sessionId":"x"}}`, `{"value":"error"}`, `nope`} {
		if _, ok := AsRemoteError([]byte(b)); ok {
			t.Errorf("AsRemoteError(%q) = true", b)
		}
	}
}

func TestByName(t *testing.T) {
	t.Parallel()

	if ex, err := ByName(""); err != nil || ex != (Scan{}) {
		t.Errorf("ByName(\"\") = %v, %v", ex, err)
	}
	if ex, err := ByName("parse"); err != nil || ex != (Parse{}) {
		t.Errorf("ByName(parse) = %v, %v", ex, err)
	}
	if _, err := ByName("regex"); err == nil {
		t.Error("ByName(regex) succeeded")
	}
}

func TestBinary_CarriesRemoteError(t *testing.T) {
	t.Parallel()

	body := []byte(`{"value":{"error":"no such element","message":"stale"}}`)
	for name, ex := range extractors {
		_, err := ex.Binary(body)
		var rerr *RemoteError
		if !errors.As(err, &rerr) {
			t.Errorf("%s: Binary() error = %v, want *RemoteError", name, err)
			continue
		}
		if rerr.Code != "no such element" {
			t.Errorf("%s: Code = %q", name, rerr.Code)
		}
	}
}

func TestRemoteErrorValue(t *testing.T) {
	t.Parallel()

	text, err := Parse{}.Text([]byte(`{"value":{"error":"no such alert","message":"none open"}}`))
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	rerr, ok := RemoteErrorValue([]byte(text))
	if !ok || rerr.Code != "no such alert" || rerr.Message != "none open" {
		t.Errorf("RemoteErrorValue(%s) = %+v, %v", text, rerr, ok)
	}
	for _, v := range []string{"null", `"error"`, `{"ready":true}`, ``} {
		if _, ok := RemoteErrorValue([]byte(v)); ok {
			t.Errorf("RemoteErrorValue(%q) = true", v)
		}
	}
}
