package fakeswapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mmcdole/holonet/internal/domain"
)

// DefaultPageSize matches the upstream page size
const DefaultPageSize = 10

const requestIDHeader = "X-Request-ID"

// Option configures a Server.
type Option func(*Server)

// WithCatalog replaces the embedded fixtures.
func WithCatalog(c *Catalog) Option {
	return func(s *Server) { s.catalog = c }
}

// WithPageSize sets the list page size.
func WithPageSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// Server is an http.Handler imitating the catalog API under /api.
type Server struct {
	catalog  *Catalog
	pageSize int
	logger   *slog.Logger
	router   *mux.Router

	mu       sync.Mutex
	calls    map[domain.Kind]int
	failures map[domain.Kind]int // kind -> forced status
}

// New creates a fixture server.
func New(logger *slog.Logger, opts ...Option) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		pageSize: DefaultPageSize,
		logger:   logger,
		calls:    make(map[domain.Kind]int),
		failures: make(map[domain.Kind]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.catalog == nil {
		c, err := DefaultCatalog()
		if err != nil {
			return nil, err
		}
		s.catalog = c
	}

	s.router = mux.NewRouter().StrictSlash(true)
	s.router.Use(s.requestID)
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	api.HandleFunc("/{kind}/", s.handleList).Methods(http.MethodGet)
	api.HandleFunc("/{kind}/{id:[0-9]+}/", s.handleItem).Methods(http.MethodGet)
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeNotFound(w)
	})
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Calls returns how many requests hit kind's endpoints.
func (s *Server) Calls(kind domain.Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[kind]
}

// FailWith makes every request for kind answer with status and an error
// body. Status 0 restores normal answers.
func (s *Server) FailWith(kind domain.Kind, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, kind)
		return
	}
	s.failures[kind] = status
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)
		s.logger.Debug("fake api request", "method", r.Method, "path", r.URL.Path, "request_id", id)
		next.ServeHTTP(w, r)
	})
}

// begin counts the call and reports a forced failure status, if any
func (s *Server) begin(kind domain.Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[kind]++
	return s.failures[kind]
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/api/", scheme, r.Host)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	base := baseURL(r)
	out := make(map[string]string, len(domain.Kinds))
	for _, k := range domain.Kinds {
		out[string(k)] = base + string(k) + "/"
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		writeNotFound(w)
		return
	}
	if status := s.begin(kind); status != 0 {
		writeJSON(w, status, map[string]string{"detail": http.StatusText(status)})
		return
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		page, err = strconv.Atoi(p)
		if err != nil || page < 1 {
			writeNotFound(w)
			return
		}
	}
	search := r.URL.Query().Get("search")

	matches := s.catalog.Search(kind, search)
	start := (page - 1) * s.pageSize
	if start > 0 && start >= len(matches) {
		writeNotFound(w)
		return
	}
	end := min(start+s.pageSize, len(matches))

	base := baseURL(r)
	results := make([]map[string]any, 0, end-start)
	for _, rec := range matches[start:end] {
		results = append(results, render(kind, rec, base))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":    len(matches),
		"next":     s.pageLink(base, kind, page+1, search, end < len(matches)),
		"previous": s.pageLink(base, kind, page-1, search, page > 1),
		"results":  results,
	})
}

func (s *Server) pageLink(base string, kind domain.Kind, page int, search string, ok bool) *string {
	if !ok {
		return nil
	}
	link := fmt.Sprintf("%s%s/?page=%d", base, kind, page)
	if search != "" {
		link += "&search=" + url.QueryEscape(search)
	}
	return &link
}

func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		writeNotFound(w)
		return
	}
	if status := s.begin(kind); status != 0 {
		writeJSON(w, status, map[string]string{"detail": http.StatusText(status)})
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	rec, ok := s.catalog.Get(kind, id)
	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, render(kind, rec, baseURL(r)))
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ListenAndServe serves the fixture api on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("fake api listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("fake api listen: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
