// Package aligner partitions timed transcripts into practice chunks and
// resolves playback time to the active segment and word.
//
// Chunking and locating are pure functions over immutable input and never
// fail: malformed input degrades to empty or default results.
package aligner

// TimedWord is a single word with its playback interval in seconds.
type TimedWord struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Span is a playback interval in seconds. Containment is half-open: [Start, End).
type Span struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Contains reports whether t lies in [Start, End).
func (s Span) Contains(t float64) bool {
	return t >= s.Start && t < s.End
}

// Duration returns End-Start. It is negative for malformed spans.
func (s Span) Duration() float64 {
	return s.End - s.Start
}

// SegmentKind discriminates the Segment variants.
type SegmentKind int

const (
	// KindPlain is a segment carrying only sentence-level timing.
	KindPlain SegmentKind = iota
	// KindWordTimed is a segment carrying per-word timestamps.
	KindWordTimed
)

func (k SegmentKind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindWordTimed:
		return "word_timed"
	default:
		return "unknown"
	}
}

// Segment is a transcript-level time span, usually one sentence.
// The only implementations are PlainSegment and WordTimedSegment.
type Segment interface {
	Kind() SegmentKind
	Span() Span
	Transcript() string
	segment()
}

// PlainSegment is a segment without word-level timing.
type PlainSegment struct {
	Text  string
	Start float64
	End   float64
}

func (PlainSegment) Kind() SegmentKind { return KindPlain }
func (s PlainSegment) Span() Span { return Span{Start: s.Start, End: s.End} }
func (s PlainSegment) Transcript() string { return s.Text }
func (PlainSegment) segment() {}

// WordTimedSegment is a segment whose words carry their own timestamps.
// Words are time-ordered, non-overlapping, and fall within [Start, End].
type WordTimedSegment struct {
	Text  string
	Start float64
	End   float64
	Words []TimedWord
}

func (WordTimedSegment) Kind() SegmentKind { return KindWordTimed }
func (s WordTimedSegment) Span() Span { return Span{Start: s.Start, End: s.End} }
func (s WordTimedSegment) Transcript() string { return s.Text }
func (WordTimedSegment) segment() {}

// NewSegment builds the matching Segment variant: WordTimedSegment when words
// is non-empty, PlainSegment otherwise.
func NewSegment(text string, start, end float64, words []TimedWord) Segment {
	if len(words) > 0 {
		return WordTimedSegment{Text: text, Start: start, End: end, Words: words}
	}
	return PlainSegment{Text: text, Start: start, End: end}
}

// Chunk is a bounded slice of words for a practice prompt.
// Start and End are nil when the source carried no timing.
type Chunk struct {
	Text  string   `json:"text"`
	Start *float64 `json:"start,omitempty"`
	End   *float64 `json:"end,omitempty"`
	Words int      `json:"words"`
}

// Timed reports whether the chunk carries timestamps.
func (c Chunk) Timed() bool {
	return c.Start != nil && c.End != nil
}

// Span returns the chunk interval. ok is false for untimed chunks.
func (c Chunk) Span() (span Span, ok bool) {
	if !c.Timed() {
		return Span{}, false
	}
	return Span{Start: *c.Start, End: *c.End}, true
}

// WordState classifies a word for the highlight sweep.
type WordState int

const (
	WordUpcoming WordState = iota
	WordActive
	WordPast
)

func (s WordState) String() string {
	switch s {
	case WordActive:
		return "active"
	case WordPast:
		return "past"
	default:
		return "upcoming"
	}
}

// ActiveLocation is the result of Locate. Segment and Word are -1 when nothing
// is active. InGap is set when playback is past the last word of the active
// segment but still inside the segment.
type ActiveLocation struct {
	Segment int  `json:"segment"`
	Word    int  `json:"word"`
	InGap   bool `json:"in_gap"`
}

// NoLocation is the location reported when no segment is active.
var NoLocation = ActiveLocation{Segment: -1, Word: -1}

func (l ActiveLocation) HasSegment() bool { return l.Segment >= 0 }

func (l ActiveLocation) HasWord() bool { return l.Word >= 0 }

// IsPast reports whether word i of the active segment has already been spoken.
func (l ActiveLocation) IsPast(i int) bool {
	if !l.HasSegment() || i < 0 {
		return false
	}
	if l.InGap {
		return true
	}
	return l.HasWord() && i < l.Word
}

// WordState classifies word i of the active segment.
func (l ActiveLocation) WordState(i int) WordState {
	switch {
	case l.IsPast(i):
		return WordPast
	case l.HasWord() && i == l.Word:
		return WordActive
	default:
		return WordUpcoming
	}
}

// PastCount returns how many of the first n words are past.
func (l ActiveLocation) PastCount(n int) int {
	if !l.HasSegment() || n <= 0 {
		return 0
	}
	if l.InGap {
		return n
	}
	if !l.HasWord() {
		return 0
	}
	return min(l.Word, n)
}
