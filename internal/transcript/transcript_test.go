package transcript

import (
	"errors"
	"math"
	"strings"
	"testing"

	"segment-aligner/internal/aligner"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "srt", want: FormatSRT},
		{in: ".VTT", want: FormatVTT},
		{in: " json ", want: FormatJSON},
		{in: "ass", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Errorf("ParseFormat(%q) error = %v, want ErrUnknownFormat", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	if got, err := FormatFromPath("/media/ep01.en.srt"); err != nil || got != FormatSRT {
		t.Errorf("FormatFromPath() = %q, %v", got, err)
	}
	if _, err := FormatFromPath("/media/README"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("FormatFromPath() without extension error = %v", err)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "00:00:01,500", want: 1.5},
		{in: "01:02:03.004", want: 3723.004},
		{in: "02:03.5", want: 123.5},
		{in: "1:00:00.000", want: 3600},
		{in: "00:00:01", wantErr: true},
		{in: "garbage", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTimestamp(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTimestamp(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !approx(got, tt.want) {
				t.Errorf("parseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

const sampleSRT = "\ufeff1\r\n00:00:00,000 --> 00:00:02,500\r\nHello, <i>welcome</i>\r\nto the show.\r\n\r\n" +
	"2\n00:00:03,000 --> 00:00:05,000\n{\\an8}Let's begin.\n\n" +
	"3\n00:00:05,000 --> 00:00:06,000\n<b></b>\n"

func TestParseSRT(t *testing.T) {
	segs, err := ParseSRT(strings.NewReader(sampleSRT))
	if err != nil {
		t.Fatalf("ParseSRT() error = %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("ParseSRT() returned %d segments, want 2", len(segs))
	}

	first, ok := segs[0].(aligner.PlainSegment)
	if !ok {
		t.Fatalf("segment 0 is %T, want PlainSegment", segs[0])
	}
	if first.Text != "Hello, welcome to the show." {
		t.Errorf("segment 0 text = %q", first.Text)
	}
	if !approx(first.Start, 0) || !approx(first.End, 2.5) {
		t.Errorf("segment 0 span = [%v, %v]", first.Start, first.End)
	}
	if segs[1].Transcript() != "Let's begin." {
		t.Errorf("segment 1 text = %q", segs[1].Transcript())
	}
}

func TestParseSRT_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "empty", input: "", wantErr: ErrEmptyTranscript},
		{name: "text without timing", input: "1\nhello\n", wantErr: &ParseError{}},
		{name: "bad timestamp", input: "1\n00:00:xx,000 --> 00:00:01,000\nhi\n", wantErr: &ParseError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSRT(strings.NewReader(tt.input))
			var parseErr *ParseError
			switch tt.wantErr.(type) {
			case *ParseError:
				if !errors.As(err, &parseErr) {
					t.Errorf("ParseSRT() error = %v, want *ParseError", err)
				}
			default:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseSRT() error = %v, want %v", err, tt.wantErr)
				}
			}
		})
	}
}

const sampleVTT = `WEBVTT
Kind: captions
Language: en

NOTE this block is ignored

STYLE
::cue { color: yellow }

intro
00:00:01.000 --> 00:00:03.000 align:start position:0%
Good <b>morning</b>

00:00:04.000 --> 00:00:06.000
Hi<00:00:04.500><c> there</c><00:00:05.000><c> my friend</c>
`

func TestParseVTT(t *testing.T) {
	segs, err := ParseVTT(strings.NewReader(sampleVTT))
	if err != nil {
		t.Fatalf("ParseVTT() error = %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("ParseVTT() returned %d segments, want 2", len(segs))
	}

	if segs[0].Kind() != aligner.KindPlain {
		t.Errorf("segment 0 kind = %v, want plain", segs[0].Kind())
	}
	if segs[0].Transcript() != "Good morning" {
		t.Errorf("segment 0 text = %q", segs[0].Transcript())
	}
	if span := segs[0].Span(); !approx(span.Start, 1) || !approx(span.End, 3) {
		t.Errorf("segment 0 span = %+v", span)
	}

	timed, ok := segs[1].(aligner.WordTimedSegment)
	if !ok {
		t.Fatalf("segment 1 is %T, want WordTimedSegment", segs[1])
	}
	if timed.Text != "Hi there my friend" {
		t.Errorf("segment 1 text = %q", timed.Text)
	}

	want := []aligner.TimedWord{
		{Text: "Hi", Start: 4, End: 4.5},
		{Text: "there", Start: 4.5, End: 5},
		{Text: "my", Start: 5, End: 5.5},
		{Text: "friend", Start: 5.5, End: 6},
	}
	if len(timed.Words) != len(want) {
		t.Fatalf("segment 1 has %d words, want %d", len(timed.Words), len(want))
	}
	for i, w := range want {
		got := timed.Words[i]
		if got.Text != w.Text || !approx(got.Start, w.Start) || !approx(got.End, w.End) {
			t.Errorf("word %d = %+v, want %+v", i, got, w)
		}
	}
}

func TestParseVTT_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "missing header", input: "00:00:01.000 --> 00:00:02.000\nhi\n"},
		{name: "cue without timing", input: "WEBVTT\n\njust text\n"},
		{name: "bad timing", input: "WEBVTT\n\n00:00:01.000 --> soon\nhi\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseVTT(strings.NewReader(tt.input))
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("ParseVTT() error = %v, want *ParseError", err)
			}
		})
	}

	if _, err := ParseVTT(strings.NewReader("WEBVTT\n")); !errors.Is(err, ErrEmptyTranscript) {
		t.Errorf("ParseVTT() header only error = %v, want ErrEmptyTranscript", err)
	}
}

func TestParseJSON(t *testing.T) {
	input := `{"segments": [
		{"text": " Hi there ", "start": 0, "end": 10, "words": [
			{"word": " Hi", "start": 0, "end": 1},
			{"word": " there", "start": 1, "end": 2}
		]},
		{"text": "No words here.", "start": 10, "end": 12},
		{"words": [{"text": "derived", "start": 12.5, "end": 13}]},
		{"text": "   "}
	]}`

	segs, err := ParseJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if len(segs) != 3 {
		t.Fatalf("ParseJSON() returned %d segments, want 3", len(segs))
	}

	first, ok := segs[0].(aligner.WordTimedSegment)
	if !ok {
		t.Fatalf("segment 0 is %T, want WordTimedSegment", segs[0])
	}
	if first.Text != "Hi there" || first.Words[0].Text != "Hi" {
		t.Errorf("segment 0 = %+v", first)
	}
	if segs[1].Kind() != aligner.KindPlain {
		t.Errorf("segment 1 kind = %v, want plain", segs[1].Kind())
	}
	if span := segs[2].Span(); span.Start != 12.5 || span.End != 13 || segs[2].Transcript() != "derived" {
		t.Errorf("segment 2 = %q %+v", segs[2].Transcript(), span)
	}
}

func TestParseJSON_BareArray(t *testing.T) {
	segs, err := ParseJSON(strings.NewReader(`[{"text": "one", "start": 1, "end": 2}]`))
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if len(segs) != 1 || segs[0].Transcript() != "one" {
		t.Errorf("ParseJSON() = %+v", segs)
	}
}

func TestParseJSON_Errors(t *testing.T) {
	if _, err := ParseJSON(strings.NewReader(`{"segments": [`)); err == nil {
		t.Error("ParseJSON() with truncated input should fail")
	}
	if _, err := ParseJSON(strings.NewReader(`{"segments": []}`)); !errors.Is(err, ErrEmptyTranscript) {
		t.Errorf("ParseJSON() with no segments error = %v, want ErrEmptyTranscript", err)
	}
}

func TestParse_Dispatch(t *testing.T) {
	segs, err := Parse(FormatSRT, strings.NewReader(sampleSRT))
	if err != nil || len(segs) != 2 {
		t.Errorf("Parse(srt) = %d segments, %v", len(segs), err)
	}
	if _, err := Parse(Format("ass"), strings.NewReader("")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Parse(ass) error = %v, want ErrUnknownFormat", err)
	}
}
