package aligner

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MinChunkWords is the smallest chunk emitted, except for the final chunk
	// of a sentence.
	MinChunkWords = 3
	// MaxChunkWords is the largest chunk emitted.
	MaxChunkWords = 10
)

// chunkPunctuation ends a chunk early when it terminates a word inside the
// search window.
const chunkPunctuation = ".,;:!?"

// Chunker partitions word sequences into chunks of MinWords..MaxWords words,
// preferring to end each chunk on punctuation.
type Chunker struct {
	MinWords int
	MaxWords int
}

// DefaultChunker returns a Chunker using MinChunkWords and MaxChunkWords.
func DefaultChunker() Chunker {
	return Chunker{MinWords: MinChunkWords, MaxWords: MaxChunkWords}
}

// Validate reports whether the bounds are usable.
func (c Chunker) Validate() error {
	if c.MinWords < 1 {
		return fmt.Errorf("min words must be at least 1, got %d", c.MinWords)
	}
	if c.MaxWords < c.MinWords {
		return fmt.Errorf("max words (%d) must not be less than min words (%d)", c.MaxWords, c.MinWords)
	}
	return nil
}

// normalized falls back to the default bounds when c is invalid, so a zero
// Chunker behaves like DefaultChunker.
func (c Chunker) normalized() Chunker {
	if c.Validate() != nil {
		return DefaultChunker()
	}
	return c
}

// wordRange is an inclusive index range into a token slice.
type wordRange struct {
	first int
	last  int
}

func (r wordRange) count() int {
	return r.last - r.first + 1
}

// partition computes chunk boundaries over tokens.
//
// Inputs of at most MaxWords tokens form a single chunk. Otherwise, starting at
// i, the first token in [i+MinWords-1, i+MaxWords) whose text ends in
// punctuation closes the chunk; without one the chunk is filled to MaxWords or
// to the end of input. The window upper bound is exclusive for every caller.
func (c Chunker) partition(tokens []string) []wordRange {
	n := len(tokens)
	if n == 0 {
		return nil
	}
	if n <= c.MaxWords {
		return []wordRange{{first: 0, last: n - 1}}
	}

	ranges := make([]wordRange, 0, (n+c.MinWords-1)/c.MinWords)
	for i := 0; i < n; {
		end := min(i+c.MaxWords-1, n-1)
		for j, hi := i+c.MinWords-1, min(i+c.MaxWords, n); j < hi; j++ {
			if endsWithPunctuation(tokens[j]) {
				end = j
				break
			}
		}
		ranges = append(ranges, wordRange{first: i, last: end})
		i = end + 1
	}
	return ranges
}

func endsWithPunctuation(word string) bool {
	if word == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(word)
	return strings.ContainsRune(chunkPunctuation, r)
}

// ChunkWords chunks word-timed input. Each chunk spans from its first word's
// start to its last word's end. Empty input yields an empty slice.
func (c Chunker) ChunkWords(words []TimedWord) []Chunk {
	c = c.normalized()

	tokens := make([]string, len(words))
	for i, w := range words {
		tokens[i] = w.Text
	}

	chunks := []Chunk{}
	for _, r := range c.partition(tokens) {
		start, end := words[r.first].Start, words[r.last].End
		chunks = append(chunks, Chunk{
			Text:  strings.Join(tokens[r.first:r.last+1], " "),
			Start: &start,
			End:   &end,
			Words: r.count(),
		})
	}
	return chunks
}

// ChunkText chunks the whitespace-separated tokens of text. The chunks carry
// no timestamps.
func (c Chunker) ChunkText(text string) []Chunk {
	return c.chunkText(text, nil)
}

// ChunkTimedText chunks text known to span [start, end] and estimates each
// chunk's timestamps by linear interpolation over token positions.
func (c Chunker) ChunkTimedText(text string, start, end float64) []Chunk {
	return c.chunkText(text, &Span{Start: start, End: end})
}

func (c Chunker) chunkText(text string, bounds *Span) []Chunk {
	c = c.normalized()

	tokens := strings.Fields(text)
	total := float64(len(tokens))

	chunks := []Chunk{}
	for _, r := range c.partition(tokens) {
		chunk := Chunk{
			Text:  strings.Join(tokens[r.first:r.last+1], " "),
			Words: r.count(),
		}
		if bounds != nil {
			d := bounds.Duration()
			start := bounds.Start + d*(float64(r.first)/total)
			end := bounds.Start + d*(float64(r.last+1)/total)
			chunk.Start, chunk.End = &start, &end
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

// ChunkSegment chunks one segment, using word timings when the segment has
// them and interpolating over the segment span otherwise.
func (c Chunker) ChunkSegment(seg Segment) []Chunk {
	switch s := seg.(type) {
	case WordTimedSegment:
		if len(s.Words) > 0 {
			return c.ChunkWords(s.Words)
		}
		return c.ChunkTimedText(s.Text, s.Start, s.End)
	case PlainSegment:
		return c.ChunkTimedText(s.Text, s.Start, s.End)
	default:
		return []Chunk{}
	}
}

// ChunkSegments chunks each segment independently and concatenates the results
// in segment order.
func (c Chunker) ChunkSegments(segs []Segment) []Chunk {
	chunks := []Chunk{}
	for _, seg := range segs {
		chunks = append(chunks, c.ChunkSegment(seg)...)
	}
	return chunks
}

// ChunkWords chunks words with the default bounds.
func ChunkWords(words []TimedWord) []Chunk {
	return DefaultChunker().ChunkWords(words)
}

// ChunkText chunks untimed text with the default bounds.
func ChunkText(text string) []Chunk {
	return DefaultChunker().ChunkText(text)
}

// ChunkTimedText chunks text spanning [start, end] with the default bounds.
func ChunkTimedText(text string, start, end float64) []Chunk {
	return DefaultChunker().ChunkTimedText(text, start, end)
}

// ChunkSegment chunks seg with the default bounds.
func ChunkSegment(seg Segment) []Chunk {
	return DefaultChunker().ChunkSegment(seg)
}

// ChunkSegments chunks segs with the default bounds.
func ChunkSegments(segs []Segment) []Chunk {
	return DefaultChunker().ChunkSegments(segs)
}
