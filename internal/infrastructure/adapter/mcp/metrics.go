package mcp

import (
	"context"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
)

// Call outcomes
const (
	outcomeOK        = "ok"
	outcomeToolError = "tool_error"
	outcomeRPCError  = "rpc_error"
)

// CallMetrics counts JSON-RPC calls per server, method, target and outcome
type CallMetrics struct {
	calls *prometheus.CounterVec
}

// NewCallMetrics creates the counter and registers it with reg; a nil reg skips registration
func NewCallMetrics(reg prometheus.Registerer) *CallMetrics {
	m := &CallMetrics{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "finquery",
				Subsystem: "mcp",
				Name:      "calls_total",
				Help:      "MCP JSON-RPC calls by server, method, target and outcome",
			},
			[]string{"server", "method", "target", "outcome"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.calls)
	}
	return m
}

// hooks observes every answered request of the named server
func (m *CallMetrics) hooks(server string) *mcpserver.Hooks {
	hooks := &mcpserver.Hooks{}
	hooks.AddOnSuccess(func(_ context.Context, _ any, method mcpgo.MCPMethod, message any, result any) {
		outcome := outcomeOK
		if r, ok := result.(*mcpgo.CallToolResult); ok && r.IsError {
			outcome = outcomeToolError
		}
		m.observe(server, string(method), callTarget(message), outcome)
	})
	hooks.AddOnError(func(_ context.Context, _ any, method mcpgo.MCPMethod, message any, _ error) {
		m.observe(server, string(method), callTarget(message), outcomeRPCError)
	})
	return hooks
}

// callTarget names the tool, prompt or resource a request addresses
func callTarget(message any) string {
	switch req := message.(type) {
	case *mcpgo.CallToolRequest:
		return req.Params.Name
	case *mcpgo.GetPromptRequest:
		return req.Params.Name
	case *mcpgo.ReadResourceRequest:
		return req.Params.URI
	default:
		return ""
	}
}

func (m *CallMetrics) observe(server, method, target, outcome string) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(server, method, target, outcome).Inc()
}
