package aligner

import "math"

// Locate finds the segment containing currentTime and, for word-timed
// segments, the word containing it. Intervals are half-open and the first
// match in slice order wins. NaN and negative times are treated as 0.
//
// Segments are expected to be time-ordered and non-overlapping; this is not
// checked.
func Locate(segments []Segment, currentTime float64) ActiveLocation {
	t := clampTime(currentTime)

	for i, seg := range segments {
		if seg == nil || !seg.Span().Contains(t) {
			continue
		}
		loc := ActiveLocation{Segment: i, Word: -1}
		if s, ok := seg.(WordTimedSegment); ok {
			loc.Word, loc.InGap = LocateWord(s.Words, t)
		}
		return loc
	}
	return NoLocation
}

// LocateWord finds the word containing t. When none does, inGap reports
// whether t is past the last word's end. An empty slice yields (-1, false).
func LocateWord(words []TimedWord, t float64) (index int, inGap bool) {
	t = clampTime(t)
	for i, w := range words {
		if t >= w.Start && t < w.End {
			return i, false
		}
	}
	if len(words) == 0 {
		return -1, false
	}
	return -1, t > words[len(words)-1].End
}

func clampTime(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	return t
}

// ActiveWords returns the words of the active segment, or nil when no
// word-timed segment is active.
func ActiveWords(segments []Segment, loc ActiveLocation) []TimedWord {
	if !loc.HasSegment() || loc.Segment >= len(segments) {
		return nil
	}
	if s, ok := segments[loc.Segment].(WordTimedSegment); ok {
		return s.Words
	}
	return nil
}
