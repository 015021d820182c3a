package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/fieldprint"
	"github.com/aretw0/fieldprint/pkg/domain"
	"github.com/aretw0/fieldprint/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultMaxBodyBytes caps POST bodies fed to a run's STDIN section.
const DefaultMaxBodyBytes = 1 << 20

// Extractor is the part of fieldprint.Extractor the server needs.
type Extractor interface {
	Variant() domain.Variant
	Apply(raw string, src domain.Source) domain.Result
	Printer(w io.Writer) runner.Printer
	RunWith(ctx context.Context, stdin io.Reader, p runner.Printer, args []string) (*domain.Report, error)
}

// ScriptRunner executes allow-listed external scripts.
type ScriptRunner interface {
	Execute(ctx context.Context, call domain.ScriptCall) (domain.ScriptResult, error)
	Names() []string
}

// Server exposes extractors over HTTP the way a CGI host runs
// scripts: the query string becomes the command-line record and the request
// body (or, for GET, the query string again) becomes standard input.
type Server struct {
	Extractors     map[domain.Variant]Extractor
	Scripts        ScriptRunner
	Gatherer       prometheus.Gatherer
	MaxBodyBytes   int64
	AllowedOrigins []string
	Logger         *slog.Logger
	RequestLogger  *httplog.Logger

	validate *validator.Validate
}

// Option configures the Server.
type Option func(*Server)

// WithExtractor registers an extractor under its variant.
func WithExtractor(e Extractor) Option {
	return func(s *Server) {
		s.Extractors[e.Variant()] = e
	}
}

// WithScripts enables /scripts/{name}.
func WithScripts(r ScriptRunner) Option {
	return func(s *Server) {
		s.Scripts = r
	}
}

// WithGatherer enables /metrics for the given registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithMaxBodyBytes caps request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.MaxBodyBytes = n
	}
}

// WithAllowedOrigins enables CORS for the given origins.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.AllowedOrigins = origins
	}
}

// WithRequestLogger logs every request through httplog.
func WithRequestLogger(l *httplog.Logger) Option {
	return func(s *Server) {
		s.RequestLogger = l
	}
}

// WithLogger configures the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = l
	}
}

// NewHandler creates the HTTP handler.
func NewHandler(opts ...Option) http.Handler {
	s := &Server{
		Extractors:   make(map[domain.Variant]Extractor),
		MaxBodyBytes: DefaultMaxBodyBytes,
		Logger:       slog.Default(),
		validate:     validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()

	if len(s.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Accept"},
			MaxAge:         300,
		}))
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if s.RequestLogger != nil {
		r.Use(httplog.RequestLogger(s.RequestLogger))
	}
	r.Use(middleware.Recoverer)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/run/{variant}", s.Run)
	r.Post("/run/{variant}", s.Run)
	r.Get("/apply/{variant}", s.Apply)
	r.Post("/scripts/{name}", s.RunScript)
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) extractor(w http.ResponseWriter, r *http.Request) (Extractor, bool) {
	name := chi.URLParam(r, "variant")
	v, err := domain.ParseVariant(name)
	if err == nil {
		if ext, ok := s.Extractors[v]; ok {
			return ext, true
		}
	}
	http.Error(w, fmt.Sprintf("unknown variant %q", name), http.StatusNotFound)
	return nil, false
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// Run handles GET and POST /run/{variant}.
// The raw query string is the ARGV record. STDIN is the body for POST and the
// raw query string for GET.
func (s *Server) Run(w http.ResponseWriter, r *http.Request) {
	ext, ok := s.extractor(w, r)
	if !ok {
		return
	}

	var args []string
	if q := r.URL.RawQuery; q != "" {
		clean, err := runner.SanitizeRecord(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		args = []string{clean}
	}

	var stdin io.Reader
	if r.Method == http.MethodPost {
		stdin = http.MaxBytesReader(w, r.Body, s.MaxBodyBytes)
	} else if len(args) > 0 {
		stdin = strings.NewReader(args[0] + "\n")
	}

	var printer runner.Printer
	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/x-ndjson")
		printer = runner.NewJSONPrinter(w)
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		printer = ext.Printer(w)
	}

	report, err := ext.RunWith(r.Context(), stdin, printer, args)
	if err != nil {
		// Headers are already sent; the client sees a truncated body.
		s.Logger.Error("HTTP run failed", "variant", ext.Variant(), "err", err)
		return
	}
	s.Logger.Debug("HTTP run", "variant", ext.Variant(), "records", len(report.Results), "failures", len(report.Failures()))
}

// ApplyResponse is the JSON body of /apply/{variant}.
type ApplyResponse struct {
	Record domain.Record `json:"record"`
	Output string        `json:"output,omitempty"`
	OK     bool          `json:"ok"`
	Error  string        `json:"error,omitempty"`
}

// NewApplyResponse flattens a result.
func NewApplyResponse(res domain.Result) ApplyResponse {
	return ApplyResponse{Record: res.Record, Output: res.Output, OK: res.OK(), Error: res.Error()}
}

// Apply handles GET /apply/{variant}?record=... and returns one result as JSON.
// A failed record is still a 200: failure is data here, not a transport error.
func (s *Server) Apply(w http.ResponseWriter, r *http.Request) {
	ext, ok := s.extractor(w, r)
	if !ok {
		return
	}
	if !r.URL.Query().Has("record") {
		http.Error(w, "missing record parameter", http.StatusBadRequest)
		return
	}
	raw, err := runner.SanitizeRecord(r.URL.Query().Get("record"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	render.JSON(w, r, NewApplyResponse(ext.Apply(raw, domain.SourceHTTP)))
}

// ScriptRequest is the JSON body of POST /scripts/{name}.
type ScriptRequest struct {
	Record  string `json:"record" validate:"required"`
	Timeout string `json:"timeout,omitempty" validate:"omitempty"`
}

// scriptCall reads the call from the body: a JSON ScriptRequest when the
// content type says so, otherwise the raw body is the record.
func (s *Server) scriptCall(r *http.Request) (domain.ScriptCall, error) {
	call := domain.ScriptCall{Name: chi.URLParam(r, "name")}

	var raw string
	if render.GetRequestContentType(r) == render.ContentTypeJSON {
		var req ScriptRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			return call, fmt.Errorf("invalid request body: %w", err)
		}
		if err := s.validate.Struct(req); err != nil {
			return call, err
		}
		if req.Timeout != "" {
			d, err := time.ParseDuration(req.Timeout)
			if err != nil {
				return call, fmt.Errorf("invalid timeout: %w", err)
			}
			call.Timeout = d
		}
		raw = req.Record
	} else {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return call, fmt.Errorf("invalid request body: %w", err)
		}
		raw = string(body)
	}

	clean, err := runner.SanitizeRecord(strings.TrimRight(raw, "\r\n"))
	if err != nil {
		return call, err
	}
	call.Record = clean
	return call, nil
}

// RunScript handles POST /scripts/{name}.
func (s *Server) RunScript(w http.ResponseWriter, r *http.Request) {
	if s.Scripts == nil {
		http.Error(w, "script execution is disabled", http.StatusNotFound)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.MaxBodyBytes)

	call, err := s.scriptCall(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := s.Scripts.Execute(r.Context(), call)
	if errors.Is(err, domain.ErrScriptNotRegistered) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		s.Logger.Error("script execution failed", "script", call.Name, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if res.IsError {
		render.Status(r, http.StatusBadGateway)
	}
	render.JSON(w, r, res)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	variants := make([]string, 0, len(s.Extractors))
	for _, v := range []domain.Variant{domain.VariantConversor, domain.VariantNombre} {
		if _, ok := s.Extractors[v]; ok {
			variants = append(variants, string(v))
		}
	}
	scripts := []string{}
	if s.Scripts != nil {
		scripts = s.Scripts.Names()
	}

	render.JSON(w, r, map[string]any{
		"app":      "fieldprint-http",
		"version":  strings.TrimSpace(fieldprint.Version),
		"variants": variants,
		"scripts":  scripts,
	})
}
