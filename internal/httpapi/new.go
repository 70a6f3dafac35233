package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/pipeline"
)

type Options struct {
	Addr           string
	AllowedOrigins []string
}

// Server exposes the pipeline over HTTP and WebSocket.
type Server struct {
	pipeline pipeline.Pipeline
	opts     Options
	upgrader websocket.Upgrader
	logger   logger.Logger
}

func New(p pipeline.Pipeline, opts Options, log logger.Logger) *Server {
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return &Server{
		pipeline: p,
		opts:     opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: log,
	}
}

// Router builds the chi router with CORS applied.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)
	r.Post("/api/summaries", s.createSummary)
	r.Get("/ws", s.stream)

	return r
}
