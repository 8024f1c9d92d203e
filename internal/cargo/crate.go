package cargo

// Crate is the single-character label of one crate.
type Crate rune

// String returns the label as a one-character string.
func (c Crate) String() string {
	return string(c)
}

// Slot is one column position of a diagram row, or the top of a stack.
// The zero Slot holds no crate; use Occupied to build a filled one.
type Slot struct {
	crate    Crate
	occupied bool
}

// Occupied returns a Slot holding c.
func Occupied(c Crate) Slot {
	return Slot{crate: c, occupied: true}
}

// Crate returns the crate in the slot and whether there is one.
func (s Slot) Crate() (Crate, bool) {
	return s.crate, s.occupied
}

// IsEmpty reports whether the slot holds no crate.
func (s Slot) IsEmpty() bool {
	return !s.occupied
}

// Label returns the crate label, or placeholder when the slot is empty.
func (s Slot) Label(placeholder rune) string {
	if !s.occupied {
		return string(placeholder)
	}
	return s.crate.String()
}

// Row is one parsed diagram line: one Slot per stack column, left to right.
type Row []Slot

// Occupied counts the slots in the row that hold a crate.
func (r Row) Occupied() int {
	n := 0
	for _, s := range r {
		if !s.IsEmpty() {
			n++
		}
	}
	return n
}
