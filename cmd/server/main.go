// Command server exposes corpus synchronization as a JSON REST API.
//
// Endpoints:
//
//	GET  /health
//	POST /api/sync    body: {"tagged":"...","untagged":"..."}
//	POST /api/match   body: {"reference":"...","candidates":["...", ...]}
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/cours-de-latin/synccorpus"
	"github.com/cours-de-latin/synccorpus/internal/config"
	"github.com/cours-de-latin/synccorpus/internal/logging"
)

// ---- JSON request/response types ---------------------------------------

type syncRequest struct {
	Tagged   string `json:"tagged"`
	Untagged string `json:"untagged"`
}

type diagnosticJSON struct {
	Kind        string `json:"kind"`
	Line        int    `json:"line"`
	Surface     string `json:"surface"`
	Analysis    string `json:"analysis,omitempty"`
	Replacement string `json:"replacement,omitempty"`
	SharedTags  int    `json:"shared_tags,omitempty"`
	Message     string `json:"message"`
}

type syncResponse struct {
	Corpus      string           `json:"corpus"`
	Stats       synccorpus.Stats `json:"stats"`
	Diagnostics []diagnosticJSON `json:"diagnostics"`
}

type matchRequest struct {
	Reference  string   `json:"reference"`
	Candidates []string `json:"candidates"`
}

type matchResponse struct {
	Outcome  string `json:"outcome"`
	Analysis string `json:"analysis,omitempty"`
	Index    int    `json:"index"`
	Shared   int    `json:"shared_tags,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func toDiagnosticJSON(d synccorpus.Diagnostic) diagnosticJSON {
	dj := diagnosticJSON{
		Kind:    d.Kind.String(),
		Line:    d.Line,
		Surface: d.Surface,
		Message: d.Message(),
	}
	if !d.Analysis.IsZero() {
		dj.Analysis = d.Analysis.String()
	}
	if d.Kind == synccorpus.ReplacementFound {
		dj.Replacement = d.Replacement.String()
		dj.SharedTags = d.Shared
	}
	return dj
}

// syncStatus maps a synchronization error to an HTTP status.
func syncStatus(err error) int {
	var syntaxErr *synccorpus.SyntaxError
	switch {
	case errors.As(err, &syntaxErr):
		return http.StatusBadRequest
	case errors.Is(err, synccorpus.ErrUnalignedStreams):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// ---- handlers -----------------------------------------------------------

type server struct {
	cfg config.Config
	log *slog.Logger
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleSync(w http.ResponseWriter, r *http.Request) {
	var body syncRequest
	if !decodeBody(w, r, s.cfg.Server.MaxUploadBytes, &body) {
		return
	}
	diags := make([]diagnosticJSON, 0)
	collect := synccorpus.ReporterFunc(func(d synccorpus.Diagnostic) {
		diags = append(diags, toDiagnosticJSON(d))
	})
	// JSON strings are UTF-8 whatever the configured file encoding is.
	syncer, err := synccorpus.New(synccorpus.Options{Locale: s.cfg.Locale, Reporter: collect})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var out strings.Builder
	stats, err := syncer.Sync(strings.NewReader(body.Tagged), strings.NewReader(body.Untagged), &out)
	if err != nil {
		writeError(w, syncStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, syncResponse{
		Corpus:      out.String(),
		Stats:       stats,
		Diagnostics: diags,
	})
}

func (s *server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var body matchRequest
	if !decodeBody(w, r, s.cfg.Server.MaxUploadBytes, &body) {
		return
	}
	ref, err := synccorpus.ParseAnalysis(body.Reference)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reference: "+err.Error())
		return
	}
	candidates := make([]synccorpus.Analysis, 0, len(body.Candidates))
	for _, c := range body.Candidates {
		a, err := synccorpus.ParseAnalysis(c)
		if err != nil {
			writeError(w, http.StatusBadRequest, "candidate: "+err.Error())
			return
		}
		candidates = append(candidates, a)
	}

	folder, err := synccorpus.NewFolder(s.cfg.Locale)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	outcome := synccorpus.NewMatcher(folder).Synchronize(ref, candidates)
	resp := matchResponse{
		Outcome: outcome.Kind.String(),
		Index:   outcome.Index,
		Shared:  outcome.Shared,
	}
	if !outcome.Analysis.IsZero() {
		resp.Analysis = outcome.Analysis.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

// requestLogger logs one line per request.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"request_id", middleware.GetReqID(r.Context()),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

func newRouter(s *server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Post("/api/sync", s.handleSync)
	r.Post("/api/match", s.handleMatch)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

// ---- main ---------------------------------------------------------------

func main() {
	configPath := flag.String("c", "", "YAML configuration file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err == nil {
		if *addr != "" {
			cfg.Server.Addr = *addr
		}
		err = cfg.Validate()
	}
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log, err := logging.New(os.Stderr, cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		slog.Error("logger", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newRouter(&server{cfg: cfg, log: log}),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	log.Info("listening", "addr", cfg.Server.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
