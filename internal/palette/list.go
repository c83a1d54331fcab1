package palette

import "math/rand"

// Shuffle permutes s in place with the Fisher-Yates algorithm. A nil r uses
// the package-level source.
func Shuffle[T any](r *rand.Rand, s []T) {
	intn := rand.Intn
	if r != nil {
		intn = r.Intn
	}
	for i := len(s) - 1; i > 0; i-- {
		j := intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// List is a session's shuffled palette list with a cursor on the active
// palette.
type List struct {
	palettes []Palette
	current  int
}

// NewList copies palettes and shuffles the copy once.
func NewList(r *rand.Rand, palettes []Palette) *List {
	l := &List{palettes: append([]Palette(nil), palettes...)}
	Shuffle(r, l.palettes)
	return l
}

// Len returns the number of palettes in the list.
func (l *List) Len() int { return len(l.palettes) }

// Index returns the cursor position.
func (l *List) Index() int { return l.current }

// Palettes returns a copy of the list in its shuffled order.
func (l *List) Palettes() []Palette { return append([]Palette(nil), l.palettes...) }

// Current returns the active palette, or the zero palette for an empty list.
func (l *List) Current() Palette {
	if len(l.palettes) == 0 {
		return Palette{}
	}
	return l.palettes[l.current]
}

// Next advances the cursor, wrapping to the start.
func (l *List) Next() Palette { return l.iter(1) }

// Previous moves the cursor back, wrapping to the end.
func (l *List) Previous() Palette { return l.iter(-1) }

// Select moves the cursor to i (taken modulo the list length, negative
// indexes count from the end).
func (l *List) Select(i int) Palette {
	n := len(l.palettes)
	if n == 0 {
		return Palette{}
	}
	l.current = ((i % n) + n) % n
	return l.palettes[l.current]
}

func (l *List) iter(direction int) Palette {
	n := len(l.palettes)
	if n == 0 {
		l.current = 0
		return Palette{}
	}
	l.current = (l.current + direction + n) % n
	return l.palettes[l.current]
}
