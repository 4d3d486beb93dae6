package http

import (
	"bytes"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"segment-aligner/internal/aligner"
	"segment-aligner/internal/catalog"
	"segment-aligner/internal/service"
	"segment-aligner/internal/service/mocks"

	"go.uber.org/mock/gomock"
)

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockAlignService(ctrl)

	router := NewRouter(&Deps{AlignService: mockService})

	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockAlignService(ctrl)
	mockService.EXPECT().List(gomock.Any()).Return([]catalog.Summary{}, nil).AnyTimes()
	mockService.EXPECT().Get(gomock.Any(), "missing").Return(nil, service.ErrNotFound).AnyTimes()
	mockService.EXPECT().Delete(gomock.Any(), "abc").Return(nil).AnyTimes()
	mockService.EXPECT().ChunkLesson(gomock.Any(), gomock.Any()).
		Return(service.LessonResult{}, &service.ValidationError{Field: "content", Message: "is required"}).AnyTimes()

	router := NewRouter(&Deps{AlignService: mockService, MaxBodyBytes: 1 << 20})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{
			name:       "GET /api/health",
			method:     http.MethodGet,
			path:       "/api/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "POST /api/chunks/words exists",
			method:     http.MethodPost,
			path:       "/api/chunks/words",
			wantStatus: http.StatusBadRequest, // Bad request due to invalid body, but route exists
		},
		{
			name:       "GET /api/chunks/words method not allowed",
			method:     http.MethodGet,
			path:       "/api/chunks/words",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "POST /api/chunks/text exists",
			method:     http.MethodPost,
			path:       "/api/chunks/text",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "POST /api/lessons/chunks exists",
			method:     http.MethodPost,
			path:       "/api/lessons/chunks",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "GET /api/transcripts",
			method:     http.MethodGet,
			path:       "/api/transcripts",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET unknown transcript",
			method:     http.MethodGet,
			path:       "/api/transcripts/missing",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "DELETE transcript",
			method:     http.MethodDelete,
			path:       "/api/transcripts/abc",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "locate without time",
			method:     http.MethodGet,
			path:       "/api/transcripts/abc/locate",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "follow of unknown transcript",
			method:     http.MethodGet,
			path:       "/api/transcripts/missing/follow",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/chat",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_BodyLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockAlignService(ctrl)

	router := NewRouter(&Deps{AlignService: mockService, MaxBodyBytes: 32})

	body := `{"text":"` + strings.Repeat("word ", 50) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/chunks/text", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Router oversized body status = %v, want %v", w.Code, http.StatusRequestEntityTooLarge)
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockAlignService(ctrl)

	router := NewRouter(&Deps{AlignService: mockService})

	req := httptest.NewRequest(http.MethodPost, "/api/chunks/words", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// Check CORS headers are present
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Router should apply CORS middleware")
	}
}

func TestRouter_LogsEachRequestOnce(t *testing.T) {
	var chiLog bytes.Buffer
	prevChi := middleware.DefaultLogger
	middleware.DefaultLogger = middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log.New(&chiLog, "", 0), NoColor: true})
	defer func() { middleware.DefaultLogger = prevChi }()

	var slogBuf bytes.Buffer
	prevSlog := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&slogBuf, nil)))
	defer slog.SetDefault(prevSlog)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockAlignService(ctrl)
	mockService.EXPECT().List(gomock.Any()).Return([]catalog.Summary{}, nil)

	router := NewRouter(&Deps{AlignService: mockService})

	req := httptest.NewRequest(http.MethodGet, "/api/transcripts", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	if got := strings.Count(slogBuf.String(), "request completed"); got != 1 {
		t.Errorf("structured request log lines = %d, want 1 (output %q)", got, slogBuf.String())
	}
	if chiLog.Len() != 0 {
		t.Errorf("request logged a second time: %q", chiLog.String())
	}
}

func TestRouter_FollowUpgradesThroughMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	words := []aligner.TimedWord{{Text: "Hi", Start: 0, End: 1}, {Text: "there", Start: 1, End: 2}}
	transcript := &catalog.Transcript{
		ID:       "abc",
		Name:     "hi.json",
		Format:   "json",
		Segments: []aligner.Segment{aligner.NewSegment("Hi there", 0, 10, words)},
	}

	mockService := mocks.NewMockAlignService(ctrl)
	mockService.EXPECT().Get(gomock.Any(), "abc").Return(transcript, nil)

	server := httptest.NewServer(NewRouter(&Deps{AlignService: mockService, MaxBodyBytes: 1 << 20}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/transcripts/abc/follow"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	if err := conn.WriteJSON(map[string]any{"type": "tick", "time": 0.5}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	var reply struct {
		Segment int `json:"segment"`
		Word    int `json:"word"`
	}
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if reply.Segment != 0 || reply.Word != 0 {
		t.Errorf("tick reply = %+v, want segment 0 word 0", reply)
	}
}
