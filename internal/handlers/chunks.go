package handlers

import (
	"net/http"

	"segment-aligner/internal/aligner"
	"segment-aligner/internal/service"
)

// ChunkHandler handles stateless chunking requests.
type ChunkHandler struct {
	alignService service.AlignService
}

// NewChunkHandler creates a new ChunkHandler.
func NewChunkHandler(alignService service.AlignService) *ChunkHandler {
	return &ChunkHandler{alignService: alignService}
}

// ChunkWordsRequest represents the HTTP request payload for word-timed chunking.
type ChunkWordsRequest struct {
	Words []aligner.TimedWord `json:"words"`
}

// ChunkTextRequest represents the HTTP request payload for text chunking.
// Start and End are optional but must be given together.
type ChunkTextRequest struct {
	Text  string   `json:"text"`
	Start *float64 `json:"start,omitempty"`
	End   *float64 `json:"end,omitempty"`
}

// ChunkResponse represents the HTTP response payload for chunking.
type ChunkResponse struct {
	Chunks []aligner.Chunk `json:"chunks"`
}

// Words handles POST /api/chunks/words.
func (h *ChunkHandler) Words(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ChunkWordsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBodyError(w, ctx, err)
		return
	}

	chunks, err := h.alignService.ChunkWords(ctx, service.ChunkWordsRequest{Words: req.Words})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to chunk words")
		return
	}

	writeJSON(w, ctx, http.StatusOK, ChunkResponse{Chunks: chunks})
}

// Text handles POST /api/chunks/text.
func (h *ChunkHandler) Text(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ChunkTextRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBodyError(w, ctx, err)
		return
	}

	chunks, err := h.alignService.ChunkText(ctx, service.ChunkTextRequest{
		Text:  req.Text,
		Start: req.Start,
		End:   req.End,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to chunk text")
		return
	}

	writeJSON(w, ctx, http.StatusOK, ChunkResponse{Chunks: chunks})
}
