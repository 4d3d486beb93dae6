package transcript

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"segment-aligner/internal/aligner"
)

const utf8BOM = "\ufeff"

// cue is a caption block being assembled.
type cue struct {
	span  aligner.Span
	lines []string
}

// ParseSRT parses SubRip captions. Each cue becomes a PlainSegment; cues whose
// text is empty after markup removal are dropped.
func ParseSRT(r io.Reader) ([]aligner.Segment, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var segments []aligner.Segment
	var current *cue
	flush := func() {
		if current == nil {
			return
		}
		if text := cleanText(strings.Join(current.lines, " ")); text != "" {
			segments = append(segments, aligner.PlainSegment{
				Text:  text,
				Start: current.span.Start,
				End:   current.span.End,
			})
		}
		current = nil
	}

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if lineNo == 1 {
			line = strings.TrimPrefix(line, utf8BOM)
		}

		switch {
		case line == "":
			flush()
		case current == nil && strings.Contains(line, "-->"):
			span, err := parseTiming(line)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Msg: err.Error()}
			}
			current = &cue{span: span}
		case current == nil && isDigits(line):
			// cue index
		case current == nil:
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("expected cue timing, got %q", line)}
		default:
			current.lines = append(current.lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read srt: %w", err)
	}
	flush()

	if len(segments) == 0 {
		return nil, ErrEmptyTranscript
	}
	return segments, nil
}
