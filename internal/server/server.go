// Package server exposes a document directory of region graphs over HTTP
// so a team can browse rendered functions without running the CLI.
//
// Routes:
//
//	GET /                      HTML index of available functions
//	GET /functions             JSON list of function names
//	GET /functions/{name}.dot  DOT source for one function
//	GET /functions/{name}.svg  rendered SVG for one function
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/regionviz/regionviz/pkg/cfg"
	"github.com/regionviz/regionviz/pkg/pipeline"
	"github.com/regionviz/regionviz/pkg/region"
)

// Server serves rendered region graphs for every *.json document found in
// a directory. The directory is rescanned on each listing, so documents
// dropped in by a running compiler show up without a restart.
type Server struct {
	dir    string
	runner *pipeline.Runner
	logger *log.Logger
	opts   pipeline.Options
}

// New creates a Server over the document directory dir.
func New(dir string, runner *pipeline.Runner, logger *log.Logger, opts pipeline.Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	opts.SetDefaults()
	return &Server{dir: dir, runner: runner, logger: logger, opts: opts}
}

// Handler builds the chi router for the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndex)
	r.Get("/functions", s.handleList)
	r.Get("/functions/{name}.dot", s.handleArtifact(pipeline.FormatDOT, "text/vnd.graphviz"))
	r.Get("/functions/{name}.svg", s.handleArtifact(pipeline.FormatSVG, "image/svg+xml"))

	return r
}

// requestLogger tags each request with an ID and logs method, path,
// and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed", time.Since(start).Round(time.Millisecond))
	})
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>regionviz</title></head>
<body>
<h1>Region graphs</h1>
<ul>
{{range .}}<li><a href="/functions/{{.}}.svg">{{.}}</a> (<a href="/functions/{{.}}.dot">dot</a>)</li>
{{end}}</ul>
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	names, err := s.listFunctions()
	if err != nil {
		s.serverError(w, "list documents", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, names); err != nil {
		s.logger.Warn("write index", "err", err)
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := s.listFunctions()
	if err != nil {
		s.serverError(w, "list documents", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(names); err != nil {
		s.logger.Warn("write function list", "err", err)
	}
}

func (s *Server) handleArtifact(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		doc, err := s.findDocument(name)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		opts := s.opts
		opts.Formats = []string{format}
		artifacts, err := s.runner.Render(r.Context(), doc, opts)
		if err != nil {
			// A document that fails to render is a bad input, not a
			// server fault.
			if isBadDocument(err) {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			s.serverError(w, "render "+name, err)
			return
		}

		w.Header().Set("Content-Type", contentType)
		if _, err := w.Write(artifacts[format]); err != nil {
			s.logger.Warn("write artifact", "function", name, "err", err)
		}
	}
}

func isBadDocument(err error) bool {
	return errors.Is(err, region.ErrMalformedTree) ||
		errors.Is(err, cfg.ErrDuplicateBlockID) ||
		errors.Is(err, cfg.ErrUnknownSuccessor)
}

func (s *Server) serverError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, "err", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// listFunctions returns the function names of all documents in the
// directory, sorted for stable listings.
func (s *Server) listFunctions() ([]string, error) {
	docs, err := s.loadDocuments()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// findDocument locates the document whose function name is name.
func (s *Server) findDocument(name string) (*cfg.Document, error) {
	docs, err := s.loadDocuments()
	if err != nil {
		return nil, err
	}
	doc, ok := docs[name]
	if !ok {
		return nil, fmt.Errorf("function %q not found", name)
	}
	return doc, nil
}

func (s *Server) loadDocuments() (map[string]*cfg.Document, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	docs := make(map[string]*cfg.Document)
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		doc, err := cfg.ReadDocumentFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			s.logger.Warn("skipping unreadable document", "file", e.Name(), "err", err)
			continue
		}
		if doc.Function == "" {
			s.logger.Warn("skipping document without a function name", "file", e.Name())
			continue
		}
		docs[doc.Function] = doc
	}
	return docs, nil
}

// ListenAndServe runs the server at addr until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.logger.Info("serving region graphs", "addr", addr, "dir", s.dir)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
