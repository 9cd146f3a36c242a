package sketch

// None is the "nothing selected" sentinel.
const None = -1

// Selection is an index into a display list, or None.
type Selection struct {
	index int
}

// NewSelection returns an empty selection.
func NewSelection() Selection { return Selection{index: None} }

// Set selects i. Negative values clear the selection.
func (s *Selection) Set(i int) {
	if i < 0 {
		i = None
	}
	s.index = i
}

// Toggle selects i, or clears the selection when i is already selected.
func (s *Selection) Toggle(i int) {
	if s.index == i {
		s.index = None
		return
	}
	s.Set(i)
}

// Clear deselects.
func (s *Selection) Clear() { s.index = None }

// Index returns the raw index, which may be stale.
func (s Selection) Index() int { return s.index }

// Valid reports whether the selection points into a list of length n.
func (s Selection) Valid(n int) bool { return s.index >= 0 && s.index < n }

// Get returns the index if it is valid for a list of length n, otherwise None.
func (s Selection) Get(n int) int {
	if s.Valid(n) {
		return s.index
	}
	return None
}

// Is reports whether i is the selected index.
func (s Selection) Is(i int) bool { return i >= 0 && s.index == i }
