// Package playback models per-session playback state as immutable values.
// Each transition returns a new value; nothing here owns a timer or a
// goroutine, so callers drive transitions from their own clock.
package playback

import (
	"math"

	"segment-aligner/internal/aligner"
)

// Seek asks the player to jump to To. OK is false when no jump is needed.
type Seek struct {
	To float64
	OK bool
}

// Loop is an A-B repeat region.
type Loop struct {
	Enabled bool
	Region  aligner.Span
}

// Set enables the loop over [a, b] in either order. A zero-length or
// non-finite region disables the loop.
func (l Loop) Set(a, b float64) Loop {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return Loop{}
	}
	start, end := math.Min(a, b), math.Max(a, b)
	start = math.Max(start, 0)
	if end <= start {
		return Loop{}
	}
	return Loop{Enabled: true, Region: aligner.Span{Start: start, End: end}}
}

// FromChunk loops over a timed chunk widened by pad seconds on both sides.
// An untimed chunk leaves the loop unchanged.
func (l Loop) FromChunk(c aligner.Chunk, pad float64) Loop {
	span, ok := c.Span()
	if !ok {
		return l
	}
	pad = math.Max(pad, 0)
	return l.Set(span.Start-pad, span.End+pad)
}

// Clear disables the loop.
func (l Loop) Clear() Loop {
	return Loop{}
}

// Tick reports the seek needed at playback time t: back to the region start
// once t reaches the region end, or forward when t is before the region.
func (l Loop) Tick(t float64) (Loop, Seek) {
	if !l.Enabled {
		return l, Seek{}
	}
	if t >= l.Region.End || t < l.Region.Start {
		return l, Seek{To: l.Region.Start, OK: true}
	}
	return l, Seek{}
}
