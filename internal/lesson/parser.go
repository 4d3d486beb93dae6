// Package lesson turns markdown lesson documents into sentences for the
// sentence-by-sentence writing practice tool.
package lesson

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"segment-aligner/internal/aligner"
)

// ErrInvalidEncoding is returned for content that is not valid UTF-8.
var ErrInvalidEncoding = errors.New("lesson content is not valid UTF-8")

// Lesson is a parsed lesson document.
type Lesson struct {
	Title     string
	Sentences []string
}

// Sentence is one practice sentence with its chunks.
type Sentence struct {
	Index  int             `json:"index"`
	Text   string          `json:"text"`
	Chunks []aligner.Chunk `json:"chunks"`
}

// Practice chunks every sentence independently. Lesson sentences carry no
// timing, so the chunks are untimed.
func (l Lesson) Practice(c aligner.Chunker) []Sentence {
	out := make([]Sentence, 0, len(l.Sentences))
	for i, s := range l.Sentences {
		out = append(out, Sentence{Index: i, Text: s, Chunks: c.ChunkText(s)})
	}
	return out
}

// Parser parses markdown lessons using goldmark.
type Parser struct {
	md goldmark.Markdown
}

// NewParser creates a Parser with table support enabled.
func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
	}
}

// Parse extracts the title and practice sentences from markdown content.
// Body text comes from paragraphs, list items and table cells; headings, code
// and raw HTML are not practiced.
func (p *Parser) Parse(content []byte, filename string) (Lesson, error) {
	if !utf8.Valid(content) {
		return Lesson{}, ErrInvalidEncoding
	}
	if len(strings.TrimSpace(string(content))) == 0 {
		return Lesson{Title: titleFromFilename(filename), Sentences: []string{}}, nil
	}

	doc := p.md.Parser().Parse(text.NewReader(content))

	lesson := Lesson{
		Title:     extractTitle(doc, content, filename),
		Sentences: []string{},
	}
	for _, block := range collectBlocks(doc, content) {
		lesson.Sentences = append(lesson.Sentences, SplitSentences(block)...)
	}
	return lesson, nil
}

// extractTitle returns the first level-1 heading, else the first level-2
// heading, else a title derived from the filename.
func extractTitle(doc ast.Node, content []byte, filename string) string {
	var firstH1, firstH2 string

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		switch {
		case heading.Level == 1 && firstH1 == "":
			firstH1 = extractTextFromNode(heading, content)
			return ast.WalkStop, nil
		case heading.Level == 2 && firstH2 == "":
			firstH2 = extractTextFromNode(heading, content)
		}
		return ast.WalkSkipChildren, nil
	})

	if firstH1 != "" {
		return firstH1
	}
	if firstH2 != "" {
		return firstH2
	}
	return titleFromFilename(filename)
}

// titleFromFilename drops the extension, treats - and _ as spaces and
// capitalizes each word.
func titleFromFilename(filename string) string {
	name := filepath.Base(filename)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)

	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// collectBlocks returns the plain text of each practicable block in document
// order.
func collectBlocks(doc ast.Node, content []byte) []string {
	var blocks []string

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.Heading, *ast.CodeBlock, *ast.FencedCodeBlock, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.TextBlock, *east.TableCell:
			if t := extractTextFromNode(n, content); t != "" {
				blocks = append(blocks, t)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return blocks
}

// extractTextFromNode concatenates the inline text below n. Soft and hard line
// breaks become spaces.
func extractTextFromNode(n ast.Node, content []byte) string {
	var b strings.Builder

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(content))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(b.String()), " ")
}

// sentenceEnd terminates a sentence; closers may trail a terminator.
const (
	sentenceEnd     = ".!?"
	sentenceClosers = "\"')]”’»"
)

// SplitSentences splits text after ., ! or ? when followed by whitespace or
// the end of text. Runs of terminators and trailing closing quotes stay with
// the sentence.
func SplitSentences(s string) []string {
	runes := []rune(strings.Join(strings.Fields(s), " "))

	var sentences []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if !strings.ContainsRune(sentenceEnd, runes[i]) {
			continue
		}
		j := i + 1
		for j < len(runes) && (strings.ContainsRune(sentenceEnd, runes[j]) || strings.ContainsRune(sentenceClosers, runes[j])) {
			j++
		}
		if j < len(runes) && runes[j] != ' ' {
			i = j - 1
			continue
		}
		if sentence := strings.TrimSpace(string(runes[start:j])); sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = j
		i = j - 1
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}
