// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fontatlas

// shelfAllocator packs rectangles into horizontal shelves. Each shelf
// takes the height of its tallest item; new items go left to right
// until a shelf is full, then a new shelf opens below. Simple and fast
// for glyph-sized rectangles.
type shelfAllocator struct {
	width   int
	height  int
	padding int
	shelves []shelf

	usedArea int
}

type shelf struct {
	y      int // top of the shelf
	height int // tallest item so far
	x      int // next free slot
}

func newShelfAllocator(width, height, padding int) *shelfAllocator {
	return &shelfAllocator{
		width:   width,
		height:  height,
		padding: padding,
		shelves: make([]shelf, 0, 16),
	}
}

// allocate finds space for a w x h rectangle. Returns the position and
// whether space was found.
func (a *shelfAllocator) allocate(w, h int) (x, y int, ok bool) {
	paddedW := w + a.padding
	paddedH := h + a.padding

	for i := range a.shelves {
		s := &a.shelves[i]
		if s.x+paddedW > a.width {
			continue
		}
		if h > s.height {
			// Taller than the shelf; the last shelf may grow if
			// there is room below.
			if i == len(a.shelves)-1 && s.y+paddedH <= a.height {
				s.height = h
				x, y = s.x, s.y
				s.x += paddedW
				a.usedArea += w * h
				return x, y, true
			}
			continue
		}
		x, y = s.x, s.y
		s.x += paddedW
		a.usedArea += w * h
		return x, y, true
	}

	newY := 0
	if len(a.shelves) > 0 {
		last := a.shelves[len(a.shelves)-1]
		newY = last.y + last.height + a.padding
	}
	if newY+paddedH > a.height {
		return -1, -1, false
	}
	a.shelves = append(a.shelves, shelf{y: newY, height: h, x: paddedW})
	a.usedArea += w * h
	return 0, newY, true
}

// reset drops all allocations, keeping capacity.
func (a *shelfAllocator) reset() {
	a.shelves = a.shelves[:0]
	a.usedArea = 0
}

// utilization reports the fraction of atlas area in use.
func (a *shelfAllocator) utilization() float64 {
	if a.width <= 0 || a.height <= 0 {
		return 0
	}
	return float64(a.usedArea) / float64(a.width*a.height)
}
