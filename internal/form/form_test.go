package form

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestNum(t *testing.T) {
	f := FromMap(map[string]string{
		"plain":    "1000",
		"spaced":   "  6.5 ",
		"prefix":   "24ft",
		"exp":      "1e3",
		"dot":      ".5",
		"negative": "-3",
		"word":     "abc",
		"blank":    "",
		"huge":     "1e400",
	})

	tests := []struct {
		id   string
		want float64
	}{
		{"plain", 1000},
		{"spaced", 6.5},
		{"prefix", 24},
		{"exp", 1000},
		{"dot", 0.5},
		{"negative", -3},
		{"word", 0},
		{"blank", 0},
		{"huge", 0},
		{"missing", 0},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			if got := f.Num(tc.id); got != tc.want {
				t.Fatalf("Num(%q) = %v, want %v", tc.id, got, tc.want)
			}
		})
	}
}

func TestNumOrKeepsExplicitZero(t *testing.T) {
	f := FromMap(map[string]string{"sfPitchMult": "0", "bad": "x"})

	if got := f.NumOr("sfPitchMult", 1); got != 0 {
		t.Fatalf("expected explicit 0, got %v", got)
	}
	if got := f.NumOr("bad", 1); got != 1 {
		t.Fatalf("expected default 1, got %v", got)
	}
	if got := f.NumOr("missing", 1); got != 1 {
		t.Fatalf("expected default 1, got %v", got)
	}
}

func TestStrSelectChecked(t *testing.T) {
	f := FromMap(map[string]string{
		"refTech":          "  Dana ",
		"refLeakSuspected": "",
		"ccFilter":         "on",
		"ccDrain":          "false",
	})

	if got := f.Str("refTech"); got != "Dana" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if got := f.Str("missing"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
	if got := f.Select("refLeakSuspected", "No"); got != "No" {
		t.Fatalf("expected default, got %q", got)
	}
	if !f.Checked("ccFilter") {
		t.Fatal("expected ccFilter checked")
	}
	if f.Checked("ccDrain") || f.Checked("ccPhotos") {
		t.Fatal("expected unchecked boxes")
	}
}

func TestInt(t *testing.T) {
	f := FromMap(map[string]string{"a": "3", "b": "2.5", "c": ""})

	if n, ok := f.Int("a"); !ok || n != 3 {
		t.Fatalf("expected 3, got %d (%t)", n, ok)
	}
	if _, ok := f.Int("b"); ok {
		t.Fatal("expected fractional count to be rejected")
	}
	if _, ok := f.Int("c"); ok {
		t.Fatal("expected blank count to be rejected")
	}
}

func TestParse(t *testing.T) {
	f, err := Parse([]string{"areaSqft=1000", "notes=a=b"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Num("areaSqft") != 1000 {
		t.Fatalf("expected 1000, got %v", f.Num("areaSqft"))
	}
	if f.Str("notes") != "a=b" {
		t.Fatalf("expected value with '=', got %q", f.Str("notes"))
	}

	if _, err := Parse([]string{"novalue"}); err == nil {
		t.Fatal("expected error for pair without '='")
	}
}

func TestFromRequest(t *testing.T) {
	t.Run("urlencoded", func(t *testing.T) {
		body := url.Values{"setCost": {"2400"}}.Encode()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		f, err := FromRequest(r)
		if err != nil {
			t.Fatalf("FromRequest: %v", err)
		}
		if f.Num("setCost") != 2400 {
			t.Fatalf("expected 2400, got %v", f.Num("setCost"))
		}
	})

	t.Run("json", func(t *testing.T) {
		body := `{"setCost":2400,"refTech":"Dana","ccFilter":true,"ccDrain":false,"x":null}`
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json; charset=utf-8")

		f, err := FromRequest(r)
		if err != nil {
			t.Fatalf("FromRequest: %v", err)
		}
		if f.Num("setCost") != 2400 || f.Str("refTech") != "Dana" {
			t.Fatalf("unexpected values: %v %q", f.Num("setCost"), f.Str("refTech"))
		}
		if !f.Checked("ccFilter") || f.Checked("ccDrain") {
			t.Fatal("unexpected checkbox states")
		}
	})

	t.Run("json nested value", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":[1]}`))
		r.Header.Set("Content-Type", "application/json")

		if _, err := FromRequest(r); err == nil {
			t.Fatal("expected error for nested value")
		}
	})
}

func TestFromRequestRejectsOversizedBody(t *testing.T) {
	big := strings.Repeat("9", MaxBodyBytes)

	t.Run("urlencoded", func(t *testing.T) {
		body := url.Values{"setCost": {big}}.Encode()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		if _, err := FromRequest(r); err == nil {
			t.Fatal("expected error for oversized form body")
		}
	})

	t.Run("json", func(t *testing.T) {
		body := `{"setCost":"` + big + `"}`
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")

		if _, err := FromRequest(r); err == nil {
			t.Fatal("expected error for oversized JSON body")
		}
	})
}
