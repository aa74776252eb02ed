// Package walls models the variable-length list of wall dimensions entered for a
// spray foam take-off.
package walls

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mmcdani2/field-cheat-sheets/internal/form"
)

// Form field ids. Per-wall ids are suffixed with the 1-based wall index.
const (
	CountField  = "sfWallCount"
	lengthField = "sfWallLen_"
	heightField = "sfWallHgt_"
)

// MaxCount is the most walls one take-off accepts; larger counts read as invalid.
const MaxCount = 200

const (
	NoticeEnterCount   = "Enter wall count to generate L × H inputs."
	NoticeInvalidCount = "Enter a valid wall count first."
)

// Wall is one wall's dimensions in feet.
type Wall struct {
	Length float64 `json:"length"`
	Height float64 `json:"height"`
}

// Sqft returns the wall face area, treating non-finite dimensions as zero.
func (w Wall) Sqft() float64 {
	return finite(w.Length) * finite(w.Height)
}

// List is an ordered set of walls; index 0 is wall 1.
type List []Wall

// GrossSqft sums the face area of every wall before openings are removed.
func (l List) GrossSqft() float64 {
	var total float64
	for _, w := range l {
		total += w.Sqft()
	}
	return total
}

// LengthField returns the length input id for wall i (1-based).
func LengthField(i int) string { return lengthField + strconv.Itoa(i) }

// HeightField returns the height input id for wall i (1-based).
func HeightField(i int) string { return heightField + strconv.Itoa(i) }

// FromForm reads the wall count and every wall's dimensions. An invalid count, or one
// above MaxCount, reads as no walls.
func FromForm(f form.Form) List {
	n, ok := f.Int(CountField)
	if !ok || n <= 0 || n > MaxCount {
		return nil
	}

	l := make(List, n)
	for i := 1; i <= n; i++ {
		l[i-1] = Wall{Length: f.Num(LengthField(i)), Height: f.Num(HeightField(i))}
	}
	return l
}

// Field describes one generated input.
type Field struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Layout is what the page renders for the current wall count: either a notice or a
// length/height input pair per wall.
type Layout struct {
	Count  int     `json:"count"`
	Notice string  `json:"notice,omitempty"`
	Fields []Field `json:"fields,omitempty"`
}

// Text renders the layout as plain text, one input label per line.
func (l Layout) Text() string {
	if l.Notice != "" {
		return l.Notice
	}
	labels := make([]string, len(l.Fields))
	for i, f := range l.Fields {
		labels[i] = fmt.Sprintf("%s [%s]", f.Label, f.ID)
	}
	return strings.Join(labels, "\n")
}

// Model owns the wall list behind the dynamic inputs. Changing the count discards
// every entered value and starts over with empty walls.
type Model struct {
	walls     List
	notice    string
	listeners []func(Layout)
}

// NewModel returns an empty model prompting for a wall count.
func NewModel() *Model {
	return &Model{notice: NoticeEnterCount}
}

// Subscribe registers fn to receive the layout after every rebuild.
func (m *Model) Subscribe(fn func(Layout)) {
	m.listeners = append(m.listeners, fn)
}

// SetCount rebuilds the model from the raw count field value.
func (m *Model) SetCount(raw string) Layout {
	raw = strings.TrimSpace(raw)
	m.walls = nil

	switch n, err := strconv.Atoi(raw); {
	case raw == "":
		m.notice = NoticeEnterCount
	case err != nil || n <= 0 || n > MaxCount:
		m.notice = NoticeInvalidCount
	default:
		m.notice = ""
		m.walls = make(List, n)
	}

	layout := m.Layout()
	for _, fn := range m.listeners {
		fn(layout)
	}
	return layout
}

// Set records wall i's dimensions (1-based).
func (m *Model) Set(i int, length, height float64) error {
	if i < 1 || i > len(m.walls) {
		return fmt.Errorf("wall %d out of range 1..%d", i, len(m.walls))
	}
	m.walls[i-1] = Wall{Length: length, Height: height}
	return nil
}

// Count returns the number of walls.
func (m *Model) Count() int { return len(m.walls) }

// Walls returns a copy of the current list.
func (m *Model) Walls() List {
	return append(List(nil), m.walls...)
}

// Layout returns the render description of the current state.
func (m *Model) Layout() Layout {
	if m.notice != "" {
		return Layout{Notice: m.notice}
	}

	fields := make([]Field, 0, 2*len(m.walls))
	for i := 1; i <= len(m.walls); i++ {
		fields = append(fields,
			Field{ID: LengthField(i), Label: fmt.Sprintf("Wall %d Length (ft)", i)},
			Field{ID: HeightField(i), Label: fmt.Sprintf("Wall %d Height (ft)", i)},
		)
	}
	return Layout{Count: len(m.walls), Fields: fields}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
