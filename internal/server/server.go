// Package server hosts the live preview editor over HTTP.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apierrors "github.com/diogo/mdlive/internal/errors"
	"github.com/diogo/mdlive/internal/highlight"
	"github.com/diogo/mdlive/internal/logging"
	"github.com/diogo/mdlive/internal/metrics"
	"github.com/diogo/mdlive/internal/preview"
)

// MaxBodyBytes caps request bodies on the API routes.
const MaxBodyBytes = 1 << 20

const shutdownTimeout = 5 * time.Second

//go:embed static
var staticFiles embed.FS

var pageTemplate = template.Must(template.ParseFS(staticFiles, "static/page.html"))

// Options configures a Server.
type Options struct {
	Addr string

	// Renderer and Highlighter are shared by all requests and must be
	// safe for concurrent use. A nil Renderer serves the warning preview.
	Renderer    preview.Renderer
	Highlighter preview.Highlighter
	// RenderOptions defaults to preview.DefaultRenderOptions when nil.
	RenderOptions *preview.RenderOptions

	// HighlightStyle names the chroma style served as highlight.css.
	HighlightStyle string

	// InitialText is shown in the editor on GET /.
	InitialText string

	Metrics *metrics.Recorder
	Logger  *slog.Logger
}

// Server is the HTTP editor host. Each request gets its own document and
// binder, so no editor state is shared between requests.
type Server struct {
	opts   Options
	logger *slog.Logger
	router chi.Router
}

// New creates a Server and its routes.
func New(opts Options) *Server {
	if opts.HighlightStyle == "" {
		opts.HighlightStyle = highlight.DefaultStyle
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	s := &Server{opts: opts, logger: opts.Logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	static, _ := fs.Sub(staticFiles, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Get("/", s.handlePage)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/keydown", s.handleKeydown)
		r.Get("/highlight.css", s.handleCSS)
	})

	if s.opts.Metrics != nil {
		r.Handle("/metrics", s.opts.Metrics.Handler())
	}
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("preview server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// bind creates a fresh editor document holding text and binds it.
func (s *Server) bind(text string) (*preview.Binder, *preview.TextArea) {
	doc, area, _ := preview.NewEditorDocument(text)

	opts := []preview.Option{
		preview.WithRenderer(s.opts.Renderer),
		preview.WithLogger(s.logger),
	}
	if s.opts.RenderOptions != nil {
		opts = append(opts, preview.WithRenderOptions(*s.opts.RenderOptions))
	}
	if s.opts.Highlighter != nil {
		opts = append(opts, preview.WithHighlighter(s.opts.Highlighter))
	}
	if s.opts.Metrics != nil {
		opts = append(opts, preview.WithRecorder(s.opts.Metrics))
	}

	b, _ := preview.Bind(doc, opts...)
	return b, area
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	b, _ := s.bind(s.opts.InitialText)

	data := struct {
		Title string
		Text  string
		HTML  template.HTML
	}{
		Title: "mdlive",
		Text:  s.opts.InitialText,
		HTML:  template.HTML(b.HTML()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("page render failed", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	if err := highlight.CSS(w, s.opts.HighlightStyle); err != nil {
		s.logger.Error("highlight css failed", "style", s.opts.HighlightStyle, "error", err)
	}
}

type renderResponse struct {
	HTML string `json:"html"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := readRenderRequest(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	b, _ := s.bind(req.Text)
	writeJSON(w, http.StatusOK, renderResponse{HTML: b.HTML()})
}

type keydownResponse struct {
	Text    string `json:"text"`
	Cursor  int    `json:"cursor"`
	HTML    string `json:"html"`
	Handled bool   `json:"handled"`
}

func (s *Server) handleKeydown(w http.ResponseWriter, r *http.Request) {
	req, err := readKeydownRequest(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	b, area := s.bind(req.Text)
	if req.HasSelection {
		area.SetSelection(req.SelectionStart, req.SelectionEnd)
	}
	handled := b.HandleKey(req.Key)

	cursor, _ := area.Selection()
	writeJSON(w, http.StatusOK, keydownResponse{
		Text:    area.Value(),
		Cursor:  cursor,
		HTML:    b.HTML(),
		Handled: handled,
	})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	if !apierrors.IsRequestError(err) {
		s.logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	var reqErr *apierrors.RequestError
	errors.As(err, &reqErr)
	s.logger.Debug("request rejected", "status", reqErr.StatusCode, "error", err)
	writeJSON(w, apierrors.GetHTTPStatus(err), map[string]string{"error": reqErr.Message})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// readBody reads a capped request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apierrors.NewRequestError(http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", MaxBodyBytes))
		}
		return nil, apierrors.NewBadRequest("failed to read request body")
	}
	return body, nil
}
