package canvas

import "fmt"

// HasPair reports whether the pair starting at (y, x) with orientation o
// lies on the canvas.
func (c *Canvas) HasPair(o Orientation, y, x int) bool {
	dy, dx := o.Step()
	return c.InBounds(y, x) && c.InBounds(y+dy, x+dx)
}

func (c *Canvas) seamSlot(o Orientation, y, x int) *SeamRecord {
	if o == Vertical {
		return &c.vertical[y*c.Width+x]
	}
	return &c.horizontal[y*(c.Width-1)+x]
}

// Seam returns the record for the pair starting at (y, x).
// Pairs off the canvas return the zero record.
func (c *Canvas) Seam(o Orientation, y, x int) SeamRecord {
	if !c.HasPair(o, y, x) {
		return SeamRecord{}
	}
	return *c.seamSlot(o, y, x)
}

// SetSeam overwrites the record for the pair starting at (y, x).
// Pairs off the canvas are ignored.
func (c *Canvas) SetSeam(o Orientation, y, x int, r SeamRecord) {
	if !c.HasPair(o, y, x) {
		return
	}
	*c.seamSlot(o, y, x) = r
}

// ClearSeam forgets the seam between the pair starting at (y, x).
func (c *Canvas) ClearSeam(o Orientation, y, x int) {
	c.SetSeam(o, y, x, SeamRecord{})
}

// SeamCount returns the number of active records in memory o.
func (c *Canvas) SeamCount(o Orientation) int {
	cells := c.horizontal
	if o == Vertical {
		cells = c.vertical
	}
	n := 0
	for _, r := range cells {
		if r.Active() {
			n++
		}
	}
	return n
}

// CheckSeams verifies that every active record links two filled pixels.
// Returns ErrDanglingSeam with the first offending pair.
//
// Complexity: O(W×H).
func (c *Canvas) CheckSeams() error {
	for _, o := range Forward {
		dy, dx := o.Step()
		for y := 0; y+dy < c.Height; y++ {
			for x := 0; x+dx < c.Width; x++ {
				if !c.seamSlot(o, y, x).Active() {
					continue
				}
				if !c.Filled(y, x) || !c.Filled(y+dy, x+dx) {
					return fmt.Errorf("%w: %s pair at (%d,%d)", ErrDanglingSeam, o, y, x)
				}
			}
		}
	}
	return nil
}
