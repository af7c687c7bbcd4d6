// Package server exposes card orders over HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /views/{view}/cards?role=&category=&funnel=
//	POST /views/{view}/move              {"card": "team", "to": 0}
//	GET  /scopes/{scope}/order
//	PUT  /scopes/{scope}/order           {"order": ["team", "tasks"]}
//
// View routes mount a board per request with the card context taken from
// the query string; role and category may be repeated or comma separated.
// Only the move route prunes stale ids from the stored record; GET routes
// never write.
// Errors are JSON objects {"error", "code"}; INVALID_* codes map to 400 and
// NOT_FOUND to 404.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/opsboard/pkg/board"
	"github.com/matzehuels/opsboard/pkg/card"
	"github.com/matzehuels/opsboard/pkg/drag"
	"github.com/matzehuels/opsboard/pkg/errors"
	"github.com/matzehuels/opsboard/pkg/store"
)

// Options configures a Server.
type Options struct {
	PruneOnLoad bool
	Drag        drag.Options
	Logger      *log.Logger

	// ShutdownTimeout bounds graceful shutdown. Zero means 5s.
	ShutdownTimeout time.Duration
}

// Server serves the order API over one order store.
type Server struct {
	orders *store.OrderStore
	drags  *drag.Manager
	opts   Options
	router chi.Router

	// moveMu serialises moves; drag sessions allow one gesture per scope.
	moveMu sync.Mutex
}

// New creates a server over orders.
func New(orders *store.OrderStore, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Drag.Logger == nil {
		opts.Drag.Logger = opts.Logger
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	if orders == nil {
		orders = store.NewOrderStore(nil, store.WithLogger(opts.Logger))
	}
	s := &Server{
		orders: orders,
		drags:  drag.NewManager(opts.Drag),
		opts:   opts,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.opts.Logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})

	r.Get("/healthz", s.handleHealth)
	r.Route("/views/{view}", func(r chi.Router) {
		r.Get("/cards", s.handleCards)
		r.Post("/move", s.handleMove)
	})
	r.Route("/scopes/{scope}", func(r chi.Router) {
		r.Get("/order", s.handleGetOrder)
		r.Put("/order", s.handlePutOrder)
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.opts.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	s.opts.Logger.Info("shutting down", "addr", addr)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// mount resolves view and mounts a board in the request's card context.
// prune enables PruneOnLoad when the server is configured for it; read-only
// routes pass false so a GET never writes.
func (s *Server) mount(r *http.Request, prune bool) (*board.Board, error) {
	reg, err := card.Resolve(chi.URLParam(r, "view"))
	if err != nil {
		return nil, err
	}
	cardCtx := cardContext(r)
	b, err := board.ForView(reg, s.orders, cardCtx, board.Options{
		PruneOnLoad: prune && s.opts.PruneOnLoad,
		Drags:       s.drags,
		Logger:      s.opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	b.Mount(r.Context(), cardCtx)
	return b, nil
}

// cardContext builds the card context from the query string.
func cardContext(r *http.Request) card.Context {
	q := r.URL.Query()
	ctx := card.NewContext(splitValues(q["role"]), splitValues(q["category"]))
	if id := q.Get("funnel"); id != "" {
		ctx = ctx.WithEntity(card.EntityFunnel, id)
	}
	return ctx
}

func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// requestLogger logs each request at debug level.
func requestLogger(l *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			l.Debug("request", "method", r.Method, "path", r.URL.Path,
				"status", ww.Status(), "elapsed", time.Since(start).Round(time.Microsecond))
		})
	}
}
