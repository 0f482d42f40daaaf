// Package textobject is an example DataObject: a plain in-memory
// string that exposes both a row-iteration view and a flat-text view,
// grounded on the source test suite's TextObject collaborator.
package textobject

// TextObject wraps a string, offering it as either a "rows" stream
// (one row per rune) or flat "text".
type TextObject struct {
	s string
}

// New wraps s as a TextObject.
func New(s string) *TextObject {
	return &TextObject{s: s}
}

// Representations reports this object's preference order: iterate
// before reading the whole string at once.
func (t *TextObject) Representations() []string {
	return []string{"rows", "text"}
}

// Rows returns the string's runes in order, the "rows" representation.
func (t *TextObject) Rows() []rune {
	return []rune(t.s)
}

// Text returns the string whole, the "text" representation.
func (t *TextObject) Text() string {
	return t.s
}
