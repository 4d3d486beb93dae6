package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"segment-aligner/internal/handlers"
	"segment-aligner/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	AlignService service.AlignService
	MaxBodyBytes int64
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)

	// Add CORS middleware
	r.Use(CORS)

	if deps.MaxBodyBytes > 0 {
		r.Use(MaxBodySize(deps.MaxBodyBytes))
	}

	healthHandler := handlers.NewHealthHandler(deps.AlignService)
	chunkHandler := handlers.NewChunkHandler(deps.AlignService)
	lessonHandler := handlers.NewLessonHandler(deps.AlignService)
	transcriptHandler := handlers.NewTranscriptHandler(deps.AlignService)
	followHandler := handlers.NewFollowHandler(deps.AlignService)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Post("/chunks/words", chunkHandler.Words)
		r.Post("/chunks/text", chunkHandler.Text)
		r.Method(http.MethodPost, "/lessons/chunks", lessonHandler)

		r.Route("/transcripts", func(r chi.Router) {
			r.Post("/", transcriptHandler.Create)
			r.Get("/", transcriptHandler.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", transcriptHandler.Get)
				r.Delete("/", transcriptHandler.Delete)
				r.Get("/chunks", transcriptHandler.Chunks)
				r.Get("/stats", transcriptHandler.Stats)
				r.Get("/locate", transcriptHandler.Locate)
				r.Method(http.MethodGet, "/follow", followHandler)
			})
		})
	})

	return r
}
