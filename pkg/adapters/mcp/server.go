package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/roster"
	"github.com/aretw0/roster/internal/logging"
	"github.com/aretw0/roster/pkg/domain"
	"github.com/aretw0/roster/pkg/schema"
	"github.com/aretw0/roster/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// StateURI is the resource exposing the default session.
const StateURI = "roster://state"

// Server exposes list screens as an MCP server.
// Tools act on the session named in their "session" argument, or on the
// server's default session when it is omitted.
type Server struct {
	sessions       *session.Manager
	defaultSession string
	logger         *slog.Logger
	mcpServer      *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions *session.Manager, defaultSession string, opts ...Option) *Server {
	if defaultSession == "" {
		defaultSession = "default"
	}
	s := &Server{
		sessions:       sessions,
		defaultSession: defaultSession,
		logger:         logging.NewNop(),
		mcpServer:      server.NewMCPServer("roster-mcp", strings.TrimSpace(roster.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
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

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func sessionArg() mcp.ToolOption {
	return mcp.WithString("session", mcp.Description("Session id (optional, defaults to the server session)"))
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_contacts",
		mcp.WithDescription("Show the contacts and the presented overlay, if any."),
		sessionArg(),
	), s.handleListContacts)

	s.mcpServer.AddTool(mcp.NewTool("add_contact",
		mcp.WithDescription("Add a contact by walking the add flow: open the editor, type the name, save."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Contact name (must not be blank)")),
		sessionArg(),
	), s.handleAddContact)

	s.mcpServer.AddTool(mcp.NewTool("delete_contact",
		mcp.WithDescription("Delete a contact by id: open the confirmation prompt and confirm it."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Contact id")),
		sessionArg(),
	), s.handleDeleteContact)

	s.mcpServer.AddTool(mcp.NewTool("dispatch",
		mcp.WithDescription("Send one raw action. Known types: "+strings.Join(schema.Kinds(), ", ")),
		mcp.WithString("action", mcp.Required(), mcp.Description(`JSON action, e.g. {"type":"delete_button_tapped","id":"42"}`)),
		sessionArg(),
	), s.handleDispatch)
}

func (s *Server) sessionOf(request mcp.CallToolRequest) string {
	if id := request.GetString("session", ""); id != "" {
		return id
	}
	return s.defaultSession
}

func (s *Server) handleListContacts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.sessions.LoadOrStart(ctx, s.sessionOf(request))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}
	return stateResult(state)
}

func (s *Server) handleAddContact(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if strings.TrimSpace(name) == "" {
		return mcp.NewToolResultError("name must not be blank"), nil
	}

	return s.dispatchAll(ctx, s.sessionOf(request),
		domain.AddButtonTapped{},
		domain.AddContactAction{Action: domain.EditorSetName{Name: name}},
		domain.AddContactAction{Action: domain.EditorSaveTapped{}},
	)
}

func (s *Server) handleDeleteContact(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.dispatchAll(ctx, s.sessionOf(request),
		domain.DeleteButtonTapped{ID: domain.ID(id)},
		domain.ConfirmDeletionOf(domain.ID(id)),
	)
}

func (s *Server) handleDispatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("action")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	action, err := schema.DecodeJSON([]byte(raw))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.dispatchAll(ctx, s.sessionOf(request), action)
}

func (s *Server) dispatchAll(ctx context.Context, sessionID string, actions ...domain.Action) (*mcp.CallToolResult, error) {
	var state *domain.State
	for _, a := range actions {
		var err error
		state, err = s.sessions.Dispatch(ctx, sessionID, a)
		if err != nil {
			s.logger.Error("MCP dispatch failed", "session_id", sessionID, "action", a.Kind(), "err", err)
			return mcp.NewToolResultError(fmt.Sprintf("dispatch %s failed: %v", a.Kind(), err)), nil
		}
	}
	return stateResult(state)
}

func stateResult(state *domain.State) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(StateURI, "Current screen state",
		mcp.WithResourceDescription("Contacts and presented overlay of the default session"),
		mcp.WithMIMEType("application/json"),
	), s.readState)
}

func (s *Server) readState(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	state, err := s.sessions.LoadOrStart(ctx, s.defaultSession)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      StateURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
