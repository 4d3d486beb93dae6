package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"segment-aligner/internal/aligner"
	"segment-aligner/internal/catalog"
	"segment-aligner/internal/contextutil"
	"segment-aligner/internal/service"
)

// TranscriptHandler handles HTTP requests for imported transcripts.
type TranscriptHandler struct {
	alignService service.AlignService
}

// NewTranscriptHandler creates a new TranscriptHandler.
func NewTranscriptHandler(alignService service.AlignService) *TranscriptHandler {
	return &TranscriptHandler{alignService: alignService}
}

// CreateTranscriptRequest represents the JSON request payload for an upload.
// Format may be omitted when Name carries the file extension.
type CreateTranscriptRequest struct {
	Name    string `json:"name"`
	Format  string `json:"format,omitempty"`
	Content string `json:"content"`
}

// TranscriptSummary is the listing view of a transcript.
type TranscriptSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source,omitempty"`
	Format    string    `json:"format"`
	Segments  int       `json:"segments"`
	Chunks    int       `json:"chunks"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListTranscriptsResponse represents the HTTP response payload for listing.
type ListTranscriptsResponse struct {
	Transcripts []TranscriptSummary `json:"transcripts"`
}

// SegmentResponse is the wire form of a segment. Words is present only for
// word-timed segments.
type SegmentResponse struct {
	Kind  string              `json:"kind"`
	Text  string              `json:"text"`
	Start float64             `json:"start"`
	End   float64             `json:"end"`
	Words []aligner.TimedWord `json:"words,omitempty"`
}

// TranscriptResponse represents a full transcript.
type TranscriptResponse struct {
	TranscriptSummary
	CreatedAt time.Time         `json:"created_at"`
	Segments  []SegmentResponse `json:"segments"`
}

// StatsResponse represents chunking statistics.
type StatsResponse struct {
	Segments          int     `json:"segments"`
	WordTimedSegments int     `json:"word_timed_segments"`
	Words             int     `json:"words"`
	Chunks            int     `json:"chunks"`
	TimedChunks       int     `json:"timed_chunks"`
	ChunkWordsMin     int     `json:"chunk_words_min"`
	ChunkWordsMax     int     `json:"chunk_words_max"`
	ChunkWordsMean    float64 `json:"chunk_words_mean"`
	ChunkWordsP95     int     `json:"chunk_words_p95"`
	ChunkerVersion    string  `json:"chunker_version"`
	ChunkHash         string  `json:"chunk_hash"`
}

// LocateResponse represents the active location at a playback time.
type LocateResponse struct {
	Time      float64            `json:"time"`
	Segment   int                `json:"segment"`
	Word      int                `json:"word"`
	InGap     bool               `json:"in_gap"`
	PastWords int                `json:"past_words"`
	Active    *aligner.TimedWord `json:"active,omitempty"`
}

// Create handles POST /api/transcripts. The body is either a JSON
// CreateTranscriptRequest or the raw transcript, with name and format in the
// query string.
func (h *TranscriptHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateTranscriptRequest
	if isJSON(r) {
		if err := decodeJSON(r, &req); err != nil {
			writeBodyError(w, ctx, err)
			return
		}
	} else {
		body, err := readBody(r)
		if err != nil {
			writeBodyError(w, ctx, err)
			return
		}
		q := r.URL.Query()
		req = CreateTranscriptRequest{Name: q.Get("name"), Format: q.Get("format"), Content: string(body)}
	}

	t, err := h.alignService.Import(ctx, service.ImportRequest{
		Name:    req.Name,
		Format:  req.Format,
		Content: []byte(req.Content),
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to import transcript")
		return
	}

	w.Header().Set("Location", "/api/transcripts/"+t.ID)
	writeJSON(w, ctx, http.StatusCreated, toTranscriptResponse(t))
}

// List handles GET /api/transcripts.
func (h *TranscriptHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summaries, err := h.alignService.List(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list transcripts")
		return
	}

	resp := ListTranscriptsResponse{Transcripts: make([]TranscriptSummary, 0, len(summaries))}
	for _, s := range summaries {
		resp.Transcripts = append(resp.Transcripts, toSummary(s))
	}
	writeJSON(w, ctx, http.StatusOK, resp)
}

// Get handles GET /api/transcripts/{id}.
func (h *TranscriptHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	t, err := h.alignService.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load transcript")
		return
	}

	writeJSON(w, ctx, http.StatusOK, toTranscriptResponse(t))
}

// Delete handles DELETE /api/transcripts/{id}.
func (h *TranscriptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.alignService.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, ctx, err, "Failed to delete transcript")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Chunks handles GET /api/transcripts/{id}/chunks.
func (h *TranscriptHandler) Chunks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	chunks, err := h.alignService.Chunks(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load chunks")
		return
	}

	writeJSON(w, ctx, http.StatusOK, ChunkResponse{Chunks: chunks})
}

// Stats handles GET /api/transcripts/{id}/stats.
func (h *TranscriptHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.alignService.Stats(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to compute stats")
		return
	}

	writeJSON(w, ctx, http.StatusOK, StatsResponse{
		Segments:          stats.Segments,
		WordTimedSegments: stats.WordTimedSegments,
		Words:             stats.Words,
		Chunks:            stats.Chunks,
		TimedChunks:       stats.TimedChunks,
		ChunkWordsMin:     stats.ChunkWords.Min,
		ChunkWordsMax:     stats.ChunkWords.Max,
		ChunkWordsMean:    stats.ChunkWords.Mean,
		ChunkWordsP95:     stats.ChunkWords.P95,
		ChunkerVersion:    stats.ChunkerVersion,
		ChunkHash:         stats.ChunkHash,
	})
}

// Locate handles GET /api/transcripts/{id}/locate?t=seconds.
func (h *TranscriptHandler) Locate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw := r.URL.Query().Get("t")
	if raw == "" {
		handleServiceError(w, ctx, &service.ValidationError{Field: "t", Message: "is required"}, "")
		return
	}
	t, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(t, 0) {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid locate time", "t", raw, "error", err)
		handleServiceError(w, ctx, &service.ValidationError{Field: "t", Message: "must be a number of seconds"}, "")
		return
	}

	res, err := h.alignService.Locate(ctx, chi.URLParam(r, "id"), t)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to locate time")
		return
	}

	writeJSON(w, ctx, http.StatusOK, toLocateResponse(t, res))
}

func toSummary(s catalog.Summary) TranscriptSummary {
	return TranscriptSummary{
		ID:        s.ID,
		Name:      s.Name,
		Source:    s.Source,
		Format:    s.Format,
		Segments:  s.Segments,
		Chunks:    s.Chunks,
		UpdatedAt: s.UpdatedAt,
	}
}

func toTranscriptResponse(t *catalog.Transcript) TranscriptResponse {
	segments := make([]SegmentResponse, 0, len(t.Segments))
	for _, seg := range t.Segments {
		segments = append(segments, toSegmentResponse(seg))
	}
	return TranscriptResponse{
		TranscriptSummary: toSummary(t.Summarize()),
		CreatedAt:         t.CreatedAt,
		Segments:          segments,
	}
}

func toSegmentResponse(seg aligner.Segment) SegmentResponse {
	span := seg.Span()
	resp := SegmentResponse{
		Kind:  seg.Kind().String(),
		Text:  seg.Transcript(),
		Start: span.Start,
		End:   span.End,
	}
	if s, ok := seg.(aligner.WordTimedSegment); ok {
		resp.Words = s.Words
	}
	return resp
}

// toLocateResponse echoes the requested time, clamped the same way Locate
// clamps it so the response always encodes.
func toLocateResponse(t float64, res service.LocateResult) LocateResponse {
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	return LocateResponse{
		Time:      t,
		Segment:   res.Segment,
		Word:      res.Word,
		InGap:     res.InGap,
		PastWords: res.PastWords,
		Active:    res.Active,
	}
}
