package ui

// FocusRing tracks which of a fixed set of targets has focus and rotates
// through them in order, wrapping at both ends.
type FocusRing struct {
	Order    []string // tab order of target IDs
	current  int
	OnChange func(from, to string)
}

// NewFocusRing creates a ring focused on the first ID.
func NewFocusRing(ids ...string) *FocusRing {
	return &FocusRing{Order: ids}
}

// Current returns the focused ID, or "" for an empty ring.
func (f *FocusRing) Current() string {
	if len(f.Order) == 0 {
		return ""
	}
	return f.Order[f.current]
}

// Next moves focus forward and returns the new ID.
func (f *FocusRing) Next() string {
	return f.move(1)
}

// Prev moves focus backward and returns the new ID.
func (f *FocusRing) Prev() string {
	return f.move(-1)
}

// SetFocus focuses id. Returns false if id is not in the ring.
func (f *FocusRing) SetFocus(id string) bool {
	for i, o := range f.Order {
		if o == id {
			f.jump(i)
			return true
		}
	}
	return false
}

func (f *FocusRing) move(delta int) string {
	n := len(f.Order)
	if n == 0 {
		return ""
	}
	f.jump(((f.current+delta)%n + n) % n)
	return f.Current()
}

func (f *FocusRing) jump(i int) {
	from := f.Current()
	f.current = i
	if f.OnChange != nil && from != f.Order[i] {
		f.OnChange(from, f.Order[i])
	}
}
