package mcp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	errs "github.com/amirhossein-jamali/finquery/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finquery/internal/domain/port/core"
	"github.com/amirhossein-jamali/finquery/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/config"
)

const adminInstructions = `This server provides administrative access to financial data.
Requires a bearer token.

Available capabilities:
- User balance inquiries
- Transaction searches and analysis
- Financial health assessments
- Risk analysis based on business guidelines`

// Dependencies are what the tool, resource and prompt descriptors need; Stateless skips issuing Mcp-Session-Id headers
type Dependencies struct {
	Users        usecase.UserUseCase
	Transactions usecase.TransactionUseCase
	Reference    config.ReferenceData
	SearchLimit  int
	Stateless    bool
	Heartbeat    time.Duration // zero disables SSE heartbeats
	Logger       coreport.Logger
	Metrics      *CallMetrics
}

// Server serves one registry over MCP
type Server struct {
	name      string
	logger    coreport.Logger
	mcp       *mcpserver.MCPServer
	transport *mcpserver.StreamableHTTPServer
}

// NewServer feeds every descriptor in registry into an MCP server
func NewServer(name, version, instructions string, registry *Registry, deps Dependencies) *Server {
	s := &Server{
		name:   name,
		logger: deps.Logger,
	}

	options := []mcpserver.ServerOption{
		mcpserver.WithInstructions(instructions),
		mcpserver.WithHooks(deps.Metrics.hooks(name)),
		mcpserver.WithRecovery(),
	}
	if len(registry.Tools()) > 0 {
		options = append(options,
			mcpserver.WithToolCapabilities(true),
			mcpserver.WithToolFilter(registry.inToolOrder),
		)
	}
	if len(registry.Resources()) > 0 {
		options = append(options, mcpserver.WithResourceCapabilities(false, true))
	}
	if len(registry.Prompts()) > 0 {
		options = append(options, mcpserver.WithPromptCapabilities(true))
	}

	s.mcp = mcpserver.NewMCPServer(name, version, options...)
	for _, tool := range registry.Tools() {
		s.mcp.AddTool(tool.definition(), s.callTool(tool))
	}
	for _, resource := range registry.Resources() {
		s.mcp.AddResource(resource.definition(), s.readResource(resource))
	}
	for _, prompt := range registry.Prompts() {
		s.mcp.AddPrompt(prompt.definition(), s.getPrompt(prompt))
	}

	s.transport = mcpserver.NewStreamableHTTPServer(s.mcp,
		mcpserver.WithStateLess(deps.Stateless),
		mcpserver.WithHeartbeatInterval(deps.Heartbeat),
		mcpserver.WithLogger(transportLogger{logger: deps.Logger, server: name}),
	)

	return s
}

// NewWarriorServer builds the public server exposing every tool, resource and prompt
func NewWarriorServer(deps Dependencies) (*Server, error) {
	registry := NewRegistry()

	for _, tool := range []*Tool{
		NewBalanceTool(deps.Users),
		NewSearchTool(deps.Transactions, deps.SearchLimit),
		NewStatsTool(deps.Users),
	} {
		if err := registry.RegisterTool(tool); err != nil {
			return nil, err
		}
	}
	for _, resource := range []*Resource{
		NewGuidelinesResource(deps.Reference),
		NewLimitsResource(deps.Reference),
	} {
		if err := registry.RegisterResource(resource); err != nil {
			return nil, err
		}
	}
	for _, prompt := range []*Prompt{
		NewAnalyzeUserPrompt(deps.Users),
		NewSearchTransactionsPrompt(),
		NewUserStatisticsPrompt(deps.Users),
	} {
		if err := registry.RegisterPrompt(prompt); err != nil {
			return nil, err
		}
	}

	return NewServer(
		"Warrior Server",
		"0.0.1",
		"Instructions describing how to use the server and its features.",
		registry,
		deps,
	), nil
}

// NewAdminServer builds the authenticated server with every tool, the guidelines and the analysis prompt
func NewAdminServer(deps Dependencies) (*Server, error) {
	registry := NewRegistry()

	for _, tool := range []*Tool{
		NewBalanceTool(deps.Users),
		NewSearchTool(deps.Transactions, deps.SearchLimit),
		NewStatsTool(deps.Users),
	} {
		if err := registry.RegisterTool(tool); err != nil {
			return nil, err
		}
	}
	if err := registry.RegisterResource(NewGuidelinesResource(deps.Reference)); err != nil {
		return nil, err
	}
	if err := registry.RegisterPrompt(NewAnalyzeUserPrompt(deps.Users)); err != nil {
		return nil, err
	}

	return NewServer("Admin Financial Server", "1.0.0", adminInstructions, registry, deps), nil
}

// Name returns the server name announced on initialize
func (s *Server) Name() string {
	return s.name
}

// Handler serves the streamable HTTP transport: POST carries messages, GET opens an SSE stream and DELETE ends a session
func (s *Server) Handler() http.Handler {
	return s.transport
}

func (s *Server) callTool(tool *Tool) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		result, err := tool.Handle(ctx, Arguments(req.GetArguments()))
		if err != nil {
			return s.toolError(tool.Name, err), nil
		}

		text, err := tool.Render(result)
		if err != nil {
			return s.toolError(tool.Name, err), nil
		}

		return mcpgo.NewToolResultText(text), nil
	}
}

// toolError reports a failed call inside the result so the model can see and react to it
func (s *Server) toolError(tool string, err error) *mcpgo.CallToolResult {
	fields := errs.LogFields(err)
	fields["tool"] = tool
	fields["server"] = s.name

	message := err.Error()
	switch {
	case errs.IsValidationError(err), errs.IsNotFoundError(err):
		s.logger.Debug("Tool call rejected", fields)
	case errs.IsStoreError(err):
		s.logger.Error("Tool call failed", fields)
		message = errs.ErrStore.Error()
	default:
		s.logger.Error("Tool call failed", fields)
		message = errs.ErrInternalServer.Error()
	}

	return mcpgo.NewToolResultError(message)
}

func (s *Server) readResource(resource *Resource) mcpserver.ResourceHandlerFunc {
	return func(_ context.Context, _ mcpgo.ReadResourceRequest) ([]mcpgo.ResourceContents, error) {
		text, err := resource.Read()
		if err != nil {
			s.logger.Error("Failed to read resource", map[string]any{
				"uri":    resource.URI,
				"server": s.name,
				"error":  err.Error(),
			})
			return nil, errs.ErrInternalServer
		}

		return []mcpgo.ResourceContents{
			mcpgo.TextResourceContents{URI: resource.URI, MIMEType: resource.MimeType, Text: text},
		}, nil
	}
}

// getPrompt renders a prompt; a returned error becomes a JSON-RPC error whose message is the client-facing text
func (s *Server) getPrompt(prompt *Prompt) mcpserver.PromptHandlerFunc {
	return func(ctx context.Context, req mcpgo.GetPromptRequest) (*mcpgo.GetPromptResult, error) {
		args := req.Params.Arguments
		if args == nil {
			args = map[string]string{}
		}

		messages, err := prompt.Render(ctx, args)
		if err != nil {
			return nil, s.promptError(prompt.Name, err)
		}

		return mcpgo.NewGetPromptResult(prompt.Description, messages), nil
	}
}

func (s *Server) promptError(prompt string, err error) error {
	fields := errs.LogFields(err)
	fields["prompt"] = prompt
	fields["server"] = s.name

	switch {
	case errs.IsValidationError(err):
		s.logger.Debug("Prompt arguments rejected", fields)
		return err
	case errs.IsStoreError(err):
		s.logger.Error("Failed to render prompt", fields)
		return errs.ErrStore
	default:
		s.logger.Error("Failed to render prompt", fields)
		return errs.ErrInternalServer
	}
}

// transportLogger routes the HTTP transport's own messages into the application logger
type transportLogger struct {
	logger coreport.Logger
	server string
}

func (l transportLogger) Infof(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...), map[string]any{"server": l.server})
}

func (l transportLogger) Errorf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...), map[string]any{"server": l.server})
}
