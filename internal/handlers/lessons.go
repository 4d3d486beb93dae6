package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"segment-aligner/internal/lesson"
	"segment-aligner/internal/service"
)

// LessonHandler handles HTTP requests for lesson chunking.
type LessonHandler struct {
	alignService service.AlignService
}

// NewLessonHandler creates a new LessonHandler.
func NewLessonHandler(alignService service.AlignService) *LessonHandler {
	return &LessonHandler{alignService: alignService}
}

// LessonRequest represents the JSON request payload for lesson chunking.
type LessonRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// LessonResponse represents the HTTP response payload for lesson chunking.
type LessonResponse struct {
	Title     string            `json:"title"`
	Sentences []lesson.Sentence `json:"sentences"`
}

// ServeHTTP handles POST /api/lessons/chunks. The body is either a JSON
// LessonRequest or raw markdown, with the filename in the query string.
func (h *LessonHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LessonRequest
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
		req = LessonRequest{Filename: r.URL.Query().Get("filename"), Content: string(body)}
	}

	res, err := h.alignService.ChunkLesson(ctx, service.LessonRequest{
		Filename: req.Filename,
		Content:  req.Content,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to chunk lesson")
		return
	}

	writeJSON(w, ctx, http.StatusOK, LessonResponse{
		Title:     res.Title,
		Sentences: res.Sentences,
	})
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// readBody reads a raw request body, mapping the body-size limit to
// errBodyTooLarge.
func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errBodyTooLarge
		}
		return nil, err
	}
	return body, nil
}
