package transcript

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"segment-aligner/internal/aligner"
)

// jsonTranscript is the whisper-style transcription payload.
type jsonTranscript struct {
	Segments []jsonSegment `json:"segments"`
}

type jsonSegment struct {
	Text  string     `json:"text"`
	Start float64    `json:"start"`
	End   float64    `json:"end"`
	Words []jsonWord `json:"words"`
}

// jsonWord accepts both "word" (whisper) and "text" keys.
type jsonWord struct {
	Word  string  `json:"word"`
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// ParseJSON parses a JSON transcript: either {"segments": [...]} or a bare
// array of segments. Segments with words become WordTimedSegments. A segment
// without text takes the joined text of its words; a segment without timing
// takes the bounds of its words.
func ParseJSON(r io.Reader) ([]aligner.Segment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read json: %w", err)
	}

	var raw []jsonSegment
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &raw)
	} else {
		var doc jsonTranscript
		err = json.Unmarshal(trimmed, &doc)
		raw = doc.Segments
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode json transcript: %w", err)
	}

	segments := make([]aligner.Segment, 0, len(raw))
	for _, s := range raw {
		words := make([]aligner.TimedWord, 0, len(s.Words))
		for _, w := range s.Words {
			text := strings.TrimSpace(w.Word)
			if text == "" {
				text = strings.TrimSpace(w.Text)
			}
			if text == "" {
				continue
			}
			words = append(words, aligner.TimedWord{Text: text, Start: w.Start, End: w.End})
		}

		text := strings.Join(strings.Fields(s.Text), " ")
		if text == "" && len(words) > 0 {
			parts := make([]string, len(words))
			for i, w := range words {
				parts[i] = w.Text
			}
			text = strings.Join(parts, " ")
		}
		if text == "" {
			continue
		}

		start, end := s.Start, s.End
		if start == 0 && end == 0 && len(words) > 0 {
			start, end = words[0].Start, words[len(words)-1].End
		}
		segments = append(segments, aligner.NewSegment(text, start, end, words))
	}

	if len(segments) == 0 {
		return nil, ErrEmptyTranscript
	}
	return segments, nil
}
