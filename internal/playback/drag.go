package playback

import "math"

// Drag is a resizable split between two panels, expressed as the ratio of
// the first panel's size to the container size.
type Drag struct {
	Ratio  float64
	Min    float64
	Max    float64
	Active bool

	originX     float64
	originRatio float64
	width       float64
}

// NewDrag creates a split at ratio, clamped to [lo, hi].
func NewDrag(ratio, lo, hi float64) Drag {
	if lo > hi {
		lo, hi = hi, lo
	}
	d := Drag{Min: lo, Max: hi}
	d.Ratio = d.clamp(ratio)
	return d
}

// Begin starts a drag at pointer position x in a container of the given
// width. A non-positive width is ignored.
func (d Drag) Begin(x, width float64) Drag {
	if width <= 0 {
		return d
	}
	d.Active = true
	d.originX = x
	d.originRatio = d.Ratio
	d.width = width
	return d
}

// Move updates the ratio for pointer position x while a drag is active.
func (d Drag) Move(x float64) Drag {
	if !d.Active {
		return d
	}
	d.Ratio = d.clamp(d.originRatio + (x-d.originX)/d.width)
	return d
}

// End finishes the drag, keeping the current ratio.
func (d Drag) End() Drag {
	d.Active = false
	d.originX, d.originRatio, d.width = 0, 0, 0
	return d
}

func (d Drag) clamp(r float64) float64 {
	if math.IsNaN(r) {
		return d.Min
	}
	return math.Min(math.Max(r, d.Min), d.Max)
}
