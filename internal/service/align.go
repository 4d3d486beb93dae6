package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_align_service.go -package=mocks segment-aligner/internal/service AlignService

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"segment-aligner/internal/aligner"
	"segment-aligner/internal/catalog"
	"segment-aligner/internal/contextutil"
	"segment-aligner/internal/lesson"
	"segment-aligner/internal/transcript"
)

// ChunkWordsRequest asks for chunks over word-timed input.
type ChunkWordsRequest struct {
	Words []aligner.TimedWord
}

// ChunkTextRequest asks for chunks over plain text. Start and End are both
// set for a timed sentence or both nil for untimed text.
type ChunkTextRequest struct {
	Text  string
	Start *float64
	End   *float64
}

// LessonRequest carries a markdown lesson document.
type LessonRequest struct {
	Filename string
	Content  string
}

// LessonResult is a chunked lesson.
type LessonResult struct {
	Title     string
	Sentences []lesson.Sentence
}

// ImportRequest carries an uploaded or watched transcript. Format may be
// empty when Name has a recognized extension.
type ImportRequest struct {
	Name    string
	Format  string
	Source  string
	Content []byte
}

// LocateResult is the active location at a playback time.
type LocateResult struct {
	aligner.ActiveLocation
	PastWords int
	Active    *aligner.TimedWord
}

// AlignService chunks input and manages imported transcripts.
type AlignService interface {
	// ChunkWords chunks word-timed input.
	ChunkWords(ctx context.Context, req ChunkWordsRequest) ([]aligner.Chunk, error)
	// ChunkText chunks plain text, interpolating timestamps when bounds are given.
	ChunkText(ctx context.Context, req ChunkTextRequest) ([]aligner.Chunk, error)
	// ChunkLesson parses a markdown lesson and chunks each sentence.
	ChunkLesson(ctx context.Context, req LessonRequest) (LessonResult, error)
	// Import parses, chunks and stores a transcript.
	Import(ctx context.Context, req ImportRequest) (*catalog.Transcript, error)
	// ImportFile imports the transcript at path, keyed by path.
	ImportFile(ctx context.Context, path string) error
	// RemoveSource drops the transcript imported from path, if any.
	RemoveSource(ctx context.Context, path string) error
	// RemoveSourceDir drops every transcript imported from under dir.
	RemoveSourceDir(ctx context.Context, dir string) error
	// Get returns a stored transcript.
	Get(ctx context.Context, id string) (*catalog.Transcript, error)
	// List returns summaries of all stored transcripts.
	List(ctx context.Context) ([]catalog.Summary, error)
	// Delete removes a stored transcript.
	Delete(ctx context.Context, id string) error
	// Chunks returns the cached chunks of a stored transcript.
	Chunks(ctx context.Context, id string) ([]aligner.Chunk, error)
	// Stats returns chunking statistics for a stored transcript.
	Stats(ctx context.Context, id string) (catalog.Stats, error)
	// Locate resolves playback time t within a stored transcript.
	Locate(ctx context.Context, id string, t float64) (LocateResult, error)
}

// alignService implements AlignService.
type alignService struct {
	store   catalog.Store
	chunker aligner.Chunker
	lessons *lesson.Parser
}

// NewAlignService creates a new AlignService. An invalid chunker falls back
// to the default bounds.
func NewAlignService(store catalog.Store, chunker aligner.Chunker) AlignService {
	if chunker.Validate() != nil {
		chunker = aligner.DefaultChunker()
	}
	return &alignService{
		store:   store,
		chunker: chunker,
		lessons: lesson.NewParser(),
	}
}

// ChunkWords chunks word-timed input.
func (s *alignService) ChunkWords(ctx context.Context, req ChunkWordsRequest) ([]aligner.Chunk, error) {
	chunks := s.chunker.ChunkWords(req.Words)
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "chunked words", "words", len(req.Words), "chunks", len(chunks))
	return chunks, nil
}

// ChunkText chunks plain text.
func (s *alignService) ChunkText(ctx context.Context, req ChunkTextRequest) ([]aligner.Chunk, error) {
	logger := contextutil.LoggerFromContext(ctx)

	switch {
	case req.Start != nil && req.End == nil:
		logger.WarnContext(ctx, "chunk text request has start without end")
		return nil, invalidField("end", "required when start is set")
	case req.Start == nil && req.End != nil:
		logger.WarnContext(ctx, "chunk text request has end without start")
		return nil, invalidField("start", "required when end is set")
	}

	var chunks []aligner.Chunk
	if req.Start != nil {
		chunks = s.chunker.ChunkTimedText(req.Text, *req.Start, *req.End)
	} else {
		chunks = s.chunker.ChunkText(req.Text)
	}

	logger.DebugContext(ctx, "chunked text", "length", len(req.Text), "chunks", len(chunks), "timed", req.Start != nil)
	return chunks, nil
}

// ChunkLesson parses a markdown lesson and chunks each sentence.
func (s *alignService) ChunkLesson(ctx context.Context, req LessonRequest) (LessonResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Content) == "" {
		logger.WarnContext(ctx, "empty lesson content")
		return LessonResult{}, invalidField("content", "cannot be empty")
	}

	l, err := s.lessons.Parse([]byte(req.Content), req.Filename)
	if err != nil {
		logger.WarnContext(ctx, "failed to parse lesson", "filename", req.Filename, "error", err)
		return LessonResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	sentences := l.Practice(s.chunker)
	logger.InfoContext(ctx, "lesson chunked", "title", l.Title, "sentences", len(sentences))
	return LessonResult{Title: l.Title, Sentences: sentences}, nil
}

// parsedTranscript is the output of the parse stage.
type parsedTranscript struct {
	name     string
	source   string
	format   transcript.Format
	hash     string
	segments []aligner.Segment
}

// chunkedTranscript is the output of the chunk stage.
type chunkedTranscript struct {
	parsedTranscript
	chunks []aligner.Chunk
}

// Import runs the parse, chunk and store stages in order. The context is
// checked before each stage.
func (s *alignService) Import(ctx context.Context, req ImportRequest) (*catalog.Transcript, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Name) == "" {
		logger.WarnContext(ctx, "import request without name")
		return nil, invalidField("name", "cannot be empty")
	}
	if len(bytes.TrimSpace(req.Content)) == 0 {
		logger.WarnContext(ctx, "import request without content", "name", req.Name)
		return nil, invalidField("content", "cannot be empty")
	}

	parsed, err := s.parseStage(ctx, req)
	if err != nil {
		return nil, err
	}
	chunked, err := s.chunkStage(ctx, parsed)
	if err != nil {
		return nil, err
	}
	stored, err := s.storeStage(ctx, chunked)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "transcript imported",
		"id", stored.ID,
		"name", stored.Name,
		"format", stored.Format,
		"segments", len(stored.Segments),
		"chunks", len(stored.Chunks),
	)
	return stored, nil
}

func (s *alignService) parseStage(ctx context.Context, req ImportRequest) (parsedTranscript, error) {
	if err := ctx.Err(); err != nil {
		return parsedTranscript{}, err
	}

	var (
		format transcript.Format
		err    error
	)
	if req.Format != "" {
		format, err = transcript.ParseFormat(req.Format)
	} else {
		format, err = transcript.FormatFromPath(req.Name)
	}
	if err != nil {
		return parsedTranscript{}, invalidField("format", err.Error())
	}

	segments, err := transcript.Parse(format, bytes.NewReader(req.Content))
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to parse transcript", "name", req.Name, "format", format, "error", err)
		return parsedTranscript{}, fmt.Errorf("%w: parse %s: %w", ErrInvalidInput, req.Name, err)
	}

	return parsedTranscript{
		name:     req.Name,
		source:   req.Source,
		format:   format,
		hash:     catalog.ContentHash(req.Content),
		segments: segments,
	}, nil
}

func (s *alignService) chunkStage(ctx context.Context, p parsedTranscript) (chunkedTranscript, error) {
	if err := ctx.Err(); err != nil {
		return chunkedTranscript{}, err
	}
	return chunkedTranscript{
		parsedTranscript: p,
		chunks:           s.chunker.ChunkSegments(p.segments),
	}, nil
}

func (s *alignService) storeStage(ctx context.Context, c chunkedTranscript) (*catalog.Transcript, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stored, err := s.store.Put(ctx, &catalog.Transcript{
		Name:     c.name,
		Source:   c.source,
		Format:   string(c.format),
		Hash:     c.hash,
		Segments: c.segments,
		Chunks:   c.chunks,
	})
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to store transcript", "name", c.name, "error", err)
		return nil, WrapError(err, "failed to store transcript")
	}
	return stored, nil
}

// ImportFile imports the transcript at path. Re-importing a path replaces the
// previous version; a file whose content is unchanged is skipped.
func (s *alignService) ImportFile(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return WrapError(err, "failed to read transcript file")
	}

	prev, err := s.store.GetBySource(ctx, path)
	switch {
	case err == nil && prev.Hash == catalog.ContentHash(content):
		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "transcript unchanged", "id", prev.ID, "source", path)
		return nil
	case err != nil && !errors.Is(err, catalog.ErrNotFound):
		return WrapError(err, "failed to look up transcript")
	}

	_, err = s.Import(ctx, ImportRequest{
		Name:    filepath.Base(path),
		Source:  path,
		Content: content,
	})
	return err
}

// RemoveSource drops the transcript imported from path. Unknown paths are
// ignored.
func (s *alignService) RemoveSource(ctx context.Context, path string) error {
	err := s.store.DeleteBySource(ctx, path)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil
	}
	if err != nil {
		return WrapError(err, "failed to remove transcript")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "transcript removed", "source", path)
	return nil
}

// RemoveSourceDir drops every transcript whose source lies under dir.
func (s *alignService) RemoveSourceDir(ctx context.Context, dir string) error {
	if strings.TrimSpace(dir) == "" {
		return invalidField("dir", "cannot be empty")
	}

	prefix := filepath.Clean(dir) + string(filepath.Separator)
	removed, err := s.store.DeleteBySourcePrefix(ctx, prefix)
	if err != nil {
		return WrapError(err, "failed to remove transcripts")
	}
	if removed > 0 {
		contextutil.LoggerFromContext(ctx).InfoContext(ctx, "transcripts removed", "dir", dir, "count", removed)
	}
	return nil
}

// Get returns a stored transcript.
func (s *alignService) Get(ctx context.Context, id string) (*catalog.Transcript, error) {
	if id == "" {
		return nil, invalidField("id", "cannot be empty")
	}

	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.storeError(err, id)
	}
	return t, nil
}

// List returns summaries of all stored transcripts.
func (s *alignService) List(ctx context.Context) ([]catalog.Summary, error) {
	summaries, err := s.store.List(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list transcripts")
	}
	return summaries, nil
}

// Delete removes a stored transcript.
func (s *alignService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return invalidField("id", "cannot be empty")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return s.storeError(err, id)
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "transcript deleted", "id", id)
	return nil
}

// Chunks returns the chunks computed when the transcript was imported.
func (s *alignService) Chunks(ctx context.Context, id string) ([]aligner.Chunk, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return t.Chunks, nil
}

// Stats returns chunking statistics for a stored transcript.
func (s *alignService) Stats(ctx context.Context, id string) (catalog.Stats, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return catalog.Stats{}, err
	}
	return catalog.ComputeStats(t), nil
}

// Locate resolves playback time t within a stored transcript.
func (s *alignService) Locate(ctx context.Context, id string, t float64) (LocateResult, error) {
	tr, err := s.Get(ctx, id)
	if err != nil {
		return LocateResult{}, err
	}
	return LocateIn(tr.Segments, t), nil
}

// LocateIn resolves playback time t over segments, adding the past-word count
// and the active word when there is one.
func LocateIn(segments []aligner.Segment, t float64) LocateResult {
	loc := aligner.Locate(segments, t)
	words := aligner.ActiveWords(segments, loc)

	res := LocateResult{
		ActiveLocation: loc,
		PastWords:      loc.PastCount(len(words)),
	}
	if loc.HasWord() && loc.Word < len(words) {
		w := words[loc.Word]
		res.Active = &w
	}
	return res
}

func (s *alignService) storeError(err error, id string) error {
	if errors.Is(err, catalog.ErrNotFound) {
		return fmt.Errorf("transcript %s: %w", id, ErrNotFound)
	}
	return WrapError(err, "failed to load transcript")
}
