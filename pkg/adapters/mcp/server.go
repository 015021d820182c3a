package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/fieldprint"
	"github.com/aretw0/fieldprint/pkg/domain"
	"github.com/aretw0/fieldprint/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ApplyResponse is the structured result of the convert and greet tools.
type ApplyResponse struct {
	Record domain.Record `json:"record" jsonschema_description:"The parsed record"`
	Output string        `json:"output,omitempty" jsonschema_description:"The derived output line"`
	OK     bool          `json:"ok" jsonschema_description:"Whether the record produced output"`
	Error  string        `json:"error,omitempty" jsonschema_description:"Why the record was rejected"`
}

// RecordArgs are the arguments of the record tools.
type RecordArgs struct {
	Record string `json:"record"`
}

// Extractor is the part of fieldprint.Extractor the server needs.
type Extractor interface {
	Variant() domain.Variant
	Apply(raw string, src domain.Source) domain.Result
	Banners() runner.Banners
}

// ScriptRunner executes allow-listed external scripts.
type ScriptRunner interface {
	Execute(ctx context.Context, call domain.ScriptCall) (domain.ScriptResult, error)
	Names() []string
}

// Server exposes extractors as MCP tools.
type Server struct {
	extractors map[domain.Variant]Extractor
	scripts    ScriptRunner
	logger     *slog.Logger
	mcpServer  *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithScripts registers the run_script tool.
func WithScripts(r ScriptRunner) Option {
	return func(s *Server) {
		s.scripts = r
	}
}

// WithLogger configures the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// toolNames maps variants to their tool names.
var toolNames = map[domain.Variant]string{
	domain.VariantConversor: "convert",
	domain.VariantNombre:    "greet",
}

var toolDescriptions = map[domain.Variant]string{
	domain.VariantConversor: "Extract the integer from a key=value record and add the Kelvin offset.",
	domain.VariantNombre:    "Extract the name from a key=value record and greet it.",
}

// NewServer creates a new MCP Server instance.
func NewServer(extractors []Extractor, opts ...Option) *Server {
	s := &Server{
		extractors: make(map[domain.Variant]Extractor, len(extractors)),
		logger:     slog.Default(),
		mcpServer:  server.NewMCPServer("fieldprint-mcp", strings.TrimSpace(fieldprint.Version)),
	}
	for _, e := range extractors {
		s.extractors[e.Variant()] = e
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves SSE on port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	for _, v := range []domain.Variant{domain.VariantConversor, domain.VariantNombre} {
		ext, ok := s.extractors[v]
		if !ok {
			continue
		}
		tool := mcp.NewTool(toolNames[v],
			mcp.WithDescription(toolDescriptions[v]),
			mcp.WithString("record", mcp.Required(), mcp.Description("A key=value record, e.g. temp=0")),
			mcp.WithOutputSchema[ApplyResponse](),
		)
		s.mcpServer.AddTool(tool, mcp.NewStructuredToolHandler(s.applyHandler(ext)))
	}

	if s.scripts == nil {
		return
	}
	s.mcpServer.AddTool(mcp.NewTool("run_script",
		mcp.WithDescription("Run a registered external script with the record on stdin and as its last argument."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Registered script name"), mcp.Enum(s.scripts.Names()...)),
		mcp.WithString("record", mcp.Required(), mcp.Description("A key=value record")),
	), s.handleRunScript)
}

func (s *Server) applyHandler(ext Extractor) func(context.Context, mcp.CallToolRequest, RecordArgs) (ApplyResponse, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args RecordArgs) (ApplyResponse, error) {
		raw, err := runner.SanitizeRecord(args.Record)
		if err != nil {
			s.logger.Warn("MCP: record rejected", "err", err, "size", len(args.Record))
			return ApplyResponse{}, fmt.Errorf("record rejected: %w", err)
		}
		res := ext.Apply(raw, domain.SourceMCP)
		if !res.OK() {
			s.logger.Debug("MCP: record failed", "variant", ext.Variant(), "raw", raw, "err", res.Err)
		}
		return ApplyResponse{Record: res.Record, Output: res.Output, OK: res.OK(), Error: res.Error()}, nil
	}
}

func (s *Server) handleRunScript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	record, err := request.RequireString("record")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	raw, err := runner.SanitizeRecord(record)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("record rejected: %v", err)), nil
	}

	res, err := s.scripts.Execute(ctx, domain.ScriptCall{Name: name, Record: raw})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("script failed: %v", err)), nil
	}
	if res.IsError {
		return mcp.NewToolResultError(fmt.Sprintf("script %s exited %d: %s", name, res.ExitCode, res.Error)), nil
	}
	return mcp.NewToolResultText(res.Output), nil
}

func (s *Server) registerResources() {
	for v, ext := range s.extractors {
		uri := "fieldprint://banners/" + string(v)
		s.mcpServer.AddResource(mcp.NewResource(uri, fmt.Sprintf("Banners of the %s script", v),
			mcp.WithMIMEType("application/json"),
		), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			jsonBytes, err := json.Marshal(ext.Banners())
			if err != nil {
				return nil, fmt.Errorf("failed to encode banners: %w", err)
			}
			return []mcp.ResourceContents{
				mcp.TextResourceContents{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(jsonBytes),
				},
			}, nil
		})
	}
}
