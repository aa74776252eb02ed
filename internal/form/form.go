// Package form reads named field values submitted by the field pages. Readers never
// fail: a missing or malformed field reads as zero, empty or the supplied default.
package form

import (
	"encoding/json"
	"fmt"
	"math"
	"mime"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// numericPrefix matches the leading decimal literal a browser's parseFloat accepts.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// MaxBodyBytes caps a submitted form body. Every calculator form is a few KB.
const MaxBodyBytes = 1 << 20

// Form is an immutable snapshot of field values keyed by element id.
type Form struct {
	values url.Values
}

// New wraps values. The caller must not mutate values afterwards.
func New(values url.Values) Form {
	if values == nil {
		values = url.Values{}
	}
	return Form{values: values}
}

// FromMap builds a Form from single-valued fields.
func FromMap(m map[string]string) Form {
	values := make(url.Values, len(m))
	for k, v := range m {
		values.Set(k, v)
	}
	return New(values)
}

// Parse builds a Form from "id=value" pairs, as given on a command line.
func Parse(pairs []string) (Form, error) {
	values := url.Values{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return Form{}, fmt.Errorf("field %q: expected id=value", p)
		}
		values.Add(strings.TrimSpace(k), v)
	}
	return New(values), nil
}

// FromRequest decodes the request body as a flat JSON object when the content type
// says so, and as an HTML form otherwise.
func FromRequest(r *http.Request) (Form, error) {
	if r.Body != nil {
		r.Body = http.MaxBytesReader(nil, r.Body, MaxBodyBytes)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		if err := r.ParseForm(); err != nil {
			return Form{}, fmt.Errorf("parse form: %w", err)
		}
		return New(r.Form), nil
	}

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return Form{}, fmt.Errorf("decode json form: %w", err)
	}

	values := url.Values{}
	for k, v := range raw {
		switch tv := v.(type) {
		case string:
			values.Set(k, tv)
		case float64:
			values.Set(k, strconv.FormatFloat(tv, 'f', -1, 64))
		case bool:
			// Unchecked boxes are simply absent from a submitted form.
			if tv {
				values.Set(k, "on")
			}
		case nil:
		default:
			return Form{}, fmt.Errorf("field %q: unsupported value type %T", k, v)
		}
	}
	return New(values), nil
}

// Has reports whether the field was submitted at all.
func (f Form) Has(id string) bool {
	_, ok := f.values[id]
	return ok
}

// Raw returns the first submitted value for id, untrimmed.
func (f Form) Raw(id string) string {
	return f.values.Get(id)
}

// Num returns the field as a finite number, or 0.
func (f Form) Num(id string) float64 {
	return f.NumOr(id, 0)
}

// NumOr returns the field as a finite number, or def when it is missing, blank,
// unparsable or non-finite.
func (f Form) NumOr(id string, def float64) float64 {
	v, ok := parseNumber(f.values.Get(id))
	if !ok {
		return def
	}
	return v
}

// Int parses the field as a whole number. ok is false for blank, fractional or
// malformed input.
func (f Form) Int(id string) (n int, ok bool) {
	n, err := strconv.Atoi(strings.TrimSpace(f.values.Get(id)))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Str returns the trimmed field value or "".
func (f Form) Str(id string) string {
	return strings.TrimSpace(f.values.Get(id))
}

// Select returns the selected option, or def when nothing is selected.
func (f Form) Select(id, def string) string {
	if v := f.values.Get(id); v != "" {
		return v
	}
	return def
}

// Checked reports a checkbox state.
func (f Form) Checked(id string) bool {
	if !f.Has(id) {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(f.values.Get(id))) {
	case "", "false", "0", "off":
		return false
	}
	return true
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	lit := numericPrefix.FindString(s)
	if lit == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
