package transcript

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"segment-aligner/internal/aligner"
)

// inlineTimestampRe matches karaoke-style timestamp tags inside cue text,
// e.g. "<00:00:01.200>".
var inlineTimestampRe = regexp.MustCompile(`<((?:\d+:)?\d{1,2}:\d{2}\.\d{1,3})>`)

// ParseVTT parses WebVTT captions. Cues with inline timestamp tags become
// WordTimedSegments; all other cues become PlainSegments. NOTE, STYLE and
// REGION blocks are skipped.
func ParseVTT(r io.Reader) ([]aligner.Segment, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		segments   []aligner.Segment
		block      []string
		blockStart int
		lineNo     int
		sawHeader  bool
	)

	handleBlock := func() error {
		defer func() { block = block[:0] }()
		if len(block) == 0 {
			return nil
		}
		if !sawHeader {
			if !strings.HasPrefix(block[0], "WEBVTT") {
				return &ParseError{Line: blockStart, Msg: "missing WEBVTT header"}
			}
			sawHeader = true
			return nil
		}
		switch first := block[0]; {
		case strings.HasPrefix(first, "NOTE"), strings.HasPrefix(first, "STYLE"), strings.HasPrefix(first, "REGION"):
			return nil
		}

		timing := -1
		for i, line := range block {
			if strings.Contains(line, "-->") {
				timing = i
				break
			}
		}
		if timing < 0 || timing > 1 {
			return &ParseError{Line: blockStart, Msg: "cue has no timing line"}
		}
		span, err := parseTiming(block[timing])
		if err != nil {
			return &ParseError{Line: blockStart + timing, Msg: err.Error()}
		}
		if seg, ok := buildVTTSegment(span, strings.Join(block[timing+1:], " ")); ok {
			segments = append(segments, seg)
		}
		return nil
	}

	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), " \t\r")
		if lineNo == 1 {
			line = strings.TrimPrefix(line, utf8BOM)
		}
		if strings.TrimSpace(line) == "" {
			if err := handleBlock(); err != nil {
				return nil, err
			}
			continue
		}
		if len(block) == 0 {
			blockStart = lineNo
		}
		block = append(block, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vtt: %w", err)
	}
	if err := handleBlock(); err != nil {
		return nil, err
	}
	if !sawHeader {
		return nil, &ParseError{Line: 1, Msg: "missing WEBVTT header"}
	}

	if len(segments) == 0 {
		return nil, ErrEmptyTranscript
	}
	return segments, nil
}

// buildVTTSegment turns raw cue text into a segment. ok is false when the cue
// has no text.
func buildVTTSegment(span aligner.Span, raw string) (aligner.Segment, bool) {
	text := cleanText(inlineTimestampRe.ReplaceAllString(raw, ""))
	if text == "" {
		return nil, false
	}
	words := inlineWords(span, raw)
	return aligner.NewSegment(text, span.Start, span.End, words), true
}

// inlineWords derives word timings from inline timestamp tags. Text before the
// first tag starts at the cue start; each run of text lasts until the next tag
// (or the cue end) and is split evenly among its tokens. It returns nil when
// the cue has no inline timestamps.
func inlineWords(span aligner.Span, raw string) []aligner.TimedWord {
	tags := inlineTimestampRe.FindAllStringSubmatchIndex(raw, -1)
	if len(tags) == 0 {
		return nil
	}

	type run struct {
		start float64
		text  string
	}
	runs := make([]run, 0, len(tags)+1)
	cursor, at := 0, span.Start
	for _, tag := range tags {
		runs = append(runs, run{start: at, text: raw[cursor:tag[0]]})
		ts, err := parseTimestamp(raw[tag[2]:tag[3]])
		if err == nil {
			at = ts
		}
		cursor = tag[1]
	}
	runs = append(runs, run{start: at, text: raw[cursor:]})

	var words []aligner.TimedWord
	for i, r := range runs {
		tokens := strings.Fields(cleanText(r.text))
		if len(tokens) == 0 {
			continue
		}
		end := span.End
		if i+1 < len(runs) {
			end = runs[i+1].start
		}
		step := (end - r.start) / float64(len(tokens))
		for j, tok := range tokens {
			words = append(words, aligner.TimedWord{
				Text:  tok,
				Start: r.start + step*float64(j),
				End:   r.start + step*float64(j+1),
			})
		}
	}
	return words
}
