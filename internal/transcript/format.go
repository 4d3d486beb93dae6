// Package transcript parses caption and transcription files into aligner
// segments.
package transcript

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"segment-aligner/internal/aligner"
)

// Format identifies a transcript encoding.
type Format string

const (
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatJSON Format = "json"
)

var (
	// ErrUnknownFormat is returned for unsupported formats or file extensions.
	ErrUnknownFormat = errors.New("unknown transcript format")
	// ErrEmptyTranscript is returned when the input holds no usable cues.
	ErrEmptyTranscript = errors.New("transcript contains no segments")
)

// ParseError reports a malformed line in a line-based transcript.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// ParseFormat validates a format name such as "srt" or ".VTT".
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	switch f {
	case FormatSRT, FormatVTT, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Parse decodes r according to format.
func Parse(format Format, r io.Reader) ([]aligner.Segment, error) {
	switch format {
	case FormatSRT:
		return ParseSRT(r)
	case FormatVTT:
		return ParseVTT(r)
	case FormatJSON:
		return ParseJSON(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// timestampRe matches HH:MM:SS.mmm, HH:MM:SS,mmm and MM:SS.mmm.
var timestampRe = regexp.MustCompile(`^(?:(\d+):)?(\d{1,2}):(\d{2})[.,](\d{1,3})$`)

// markupRe matches HTML-style tags and ASS override blocks such as {\an8}.
var markupRe = regexp.MustCompile(`<[^>]*>|\{\\[^}]*\}`)

// parseTimestamp converts a caption timestamp into seconds.
func parseTimestamp(s string) (float64, error) {
	m := timestampRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}
	var h int
	if m[1] != "" {
		h, _ = strconv.Atoi(m[1])
	}
	mins, _ := strconv.Atoi(m[2])
	secs, _ := strconv.Atoi(m[3])
	frac := m[4] + strings.Repeat("0", 3-len(m[4]))
	ms, _ := strconv.Atoi(frac)
	return float64(h*3600+mins*60+secs) + float64(ms)/1000, nil
}

// parseTiming parses "start --> end [settings]".
func parseTiming(line string) (aligner.Span, error) {
	left, right, ok := strings.Cut(line, "-->")
	if !ok {
		return aligner.Span{}, fmt.Errorf("missing --> in timing line %q", line)
	}
	start, err := parseTimestamp(left)
	if err != nil {
		return aligner.Span{}, err
	}
	fields := strings.Fields(right)
	if len(fields) == 0 {
		return aligner.Span{}, fmt.Errorf("missing end time in %q", line)
	}
	end, err := parseTimestamp(fields[0])
	if err != nil {
		return aligner.Span{}, err
	}
	return aligner.Span{Start: start, End: end}, nil
}

// cleanText strips markup and collapses whitespace.
func cleanText(s string) string {
	return strings.Join(strings.Fields(markupRe.ReplaceAllString(s, "")), " ")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
