package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/finquery/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finquery/internal/domain/error"
	"github.com/amirhossein-jamali/finquery/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/config"
	mockcore "github.com/amirhossein-jamali/finquery/mocks/port/core"
	mockusecase "github.com/amirhossein-jamali/finquery/mocks/port/usecase"
)

const johnID = "6f1c2a9e-3b7d-4c1a-9f2e-1a2b3c4d5e6f"

type fixture struct {
	users        *mockusecase.MockUserUseCase
	transactions *mockusecase.MockTransactionUseCase
	metrics      *CallMetrics
	deps         Dependencies
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		users:        mockusecase.NewMockUserUseCase(t),
		transactions: mockusecase.NewMockTransactionUseCase(t),
		metrics:      NewCallMetrics(prometheus.NewRegistry()),
	}
	f.deps = Dependencies{
		Users:        f.users,
		Transactions: f.transactions,
		Reference:    config.DefaultReferenceData(),
		SearchLimit:  10,
		Logger:       mockcore.NewPermissiveMockLogger(),
		Metrics:      f.metrics,
	}
	return f
}

func (f *fixture) warrior(t *testing.T) *Server {
	server, err := NewWarriorServer(f.deps)
	require.NoError(t, err)
	return server
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcReply struct {
	ID     any             `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type textItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type toolReply struct {
	Content []textItem `json:"content"`
	IsError bool       `json:"isError"`
}

type promptReply struct {
	Description string `json:"description"`
	Messages    []struct {
		Role    string   `json:"role"`
		Content textItem `json:"content"`
	} `json:"messages"`
}

// call sends one request with id 1 through the server and decodes the reply envelope
func call(t *testing.T, server *Server, method string, params any) rpcReply {
	t.Helper()
	message := map[string]any{"jsonrpc": "2.0", "id": 1, "method": method}
	if params != nil {
		message["params"] = params
	}
	raw, err := json.Marshal(message)
	require.NoError(t, err)

	response := server.mcp.HandleMessage(context.Background(), raw)
	require.NotNil(t, response)

	encoded, err := json.Marshal(response)
	require.NoError(t, err)

	var reply rpcReply
	require.NoError(t, json.Unmarshal(encoded, &reply))
	assert.Equal(t, 1.0, reply.ID)
	return reply
}

func decodeResult[T any](t *testing.T, reply rpcReply) T {
	t.Helper()
	require.Nil(t, reply.Error)
	var result T
	require.NoError(t, json.Unmarshal(reply.Result, &result))
	return result
}

func callTool(t *testing.T, server *Server, name string, args map[string]any) toolReply {
	t.Helper()
	params := map[string]any{"name": name}
	if args != nil {
		params["arguments"] = args
	}
	result := decodeResult[toolReply](t, call(t, server, "tools/call", params))
	require.Len(t, result.Content, 1)
	assert.Equal(t, "text", result.Content[0].Type)
	return result
}

func TestInitialize(t *testing.T) {
	server := newFixture(t).warrior(t)

	t.Run("Echoes a supported version", func(t *testing.T) {
		result := decodeResult[mcpgo.InitializeResult](t, call(t, server, "initialize", map[string]any{
			"protocolVersion": "2024-11-05",
			"clientInfo":      map[string]any{"name": "test", "version": "1"},
		}))

		assert.Equal(t, "2024-11-05", result.ProtocolVersion)
		assert.Equal(t, "Warrior Server", result.ServerInfo.Name)
		assert.Equal(t, "0.0.1", result.ServerInfo.Version)
		assert.Equal(t, "Instructions describing how to use the server and its features.", result.Instructions)
		assert.NotNil(t, result.Capabilities.Tools)
		assert.NotNil(t, result.Capabilities.Resources)
		assert.NotNil(t, result.Capabilities.Prompts)
	})

	t.Run("Falls back to the latest version", func(t *testing.T) {
		result := decodeResult[mcpgo.InitializeResult](t, call(t, server, "initialize", map[string]any{
			"protocolVersion": "1999-01-01",
		}))
		assert.Equal(t, mcpgo.LATEST_PROTOCOL_VERSION, result.ProtocolVersion)
	})
}

func TestListings(t *testing.T) {
	f := newFixture(t)

	t.Run("Warrior server", func(t *testing.T) {
		server := f.warrior(t)

		tools := decodeResult[struct {
			Tools []struct {
				Name        string         `json:"name"`
				InputSchema map[string]any `json:"inputSchema"`
				Annotations map[string]any `json:"annotations"`
			} `json:"tools"`
		}](t, call(t, server, "tools/list", nil)).Tools
		names := make([]string, 0, len(tools))
		for _, tool := range tools {
			names = append(names, tool.Name)
		}
		assert.Equal(t, []string{"get_user_balance", "search_transactions", "get_user_stats"}, names)
		assert.Equal(t, []any{"user_id"}, tools[0].InputSchema["required"])
		assert.Equal(t, "Get User Balance", tools[0].Annotations["title"])
		assert.Equal(t, true, tools[0].Annotations["readOnlyHint"])

		currency := tools[1].InputSchema["properties"].(map[string]any)["currency"].(map[string]any)
		assert.Equal(t, 3.0, currency["minLength"])
		assert.Equal(t, 3.0, currency["maxLength"])

		resources := decodeResult[struct {
			Resources []mcpgo.Resource `json:"resources"`
		}](t, call(t, server, "resources/list", nil)).Resources
		require.Len(t, resources, 2)
		assert.Equal(t, "finance://guidelines", resources[0].URI)
		assert.Equal(t, "finance://limits", resources[1].URI)
		assert.Equal(t, "application/json", resources[0].MIMEType)

		prompts := decodeResult[struct {
			Prompts []mcpgo.Prompt `json:"prompts"`
		}](t, call(t, server, "prompts/list", nil)).Prompts
		require.Len(t, prompts, 3)
		assert.Equal(t, "analyze_user_financials", prompts[0].Name)
		assert.True(t, prompts[0].Arguments[0].Required)

		templates := decodeResult[struct {
			ResourceTemplates []mcpgo.ResourceTemplate `json:"resourceTemplates"`
		}](t, call(t, server, "resources/templates/list", nil)).ResourceTemplates
		assert.Empty(t, templates)
	})

	t.Run("Admin server", func(t *testing.T) {
		server, err := NewAdminServer(f.deps)
		require.NoError(t, err)
		assert.Equal(t, "Admin Financial Server", server.Name())

		assert.Len(t, decodeResult[struct {
			Tools []mcpgo.Tool `json:"tools"`
		}](t, call(t, server, "tools/list", nil)).Tools, 3)
		assert.Len(t, decodeResult[struct {
			Resources []mcpgo.Resource `json:"resources"`
		}](t, call(t, server, "resources/list", nil)).Resources, 1)
		assert.Len(t, decodeResult[struct {
			Prompts []mcpgo.Prompt `json:"prompts"`
		}](t, call(t, server, "prompts/list", nil)).Prompts, 1)

		reply := call(t, server, "resources/read", map[string]any{"uri": "finance://limits"})
		require.NotNil(t, reply.Error)
		assert.Equal(t, mcpgo.RESOURCE_NOT_FOUND, reply.Error.Code)
	})
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	f := newFixture(t)
	registry := NewRegistry()

	require.NoError(t, registry.RegisterTool(NewBalanceTool(f.users)))
	assert.Error(t, registry.RegisterTool(NewBalanceTool(f.users)))

	require.NoError(t, registry.RegisterResource(NewLimitsResource(f.deps.Reference)))
	assert.Error(t, registry.RegisterResource(NewLimitsResource(f.deps.Reference)))

	require.NoError(t, registry.RegisterPrompt(NewSearchTransactionsPrompt()))
	assert.Error(t, registry.RegisterPrompt(NewSearchTransactionsPrompt()))

	assert.Len(t, registry.Tools(), 1)
	assert.Len(t, registry.Resources(), 1)
	assert.Len(t, registry.Prompts(), 1)
}

func TestBalanceTool(t *testing.T) {
	f := newFixture(t)
	server := f.warrior(t)

	t.Run("Renders the balance sentence", func(t *testing.T) {
		f.users.On("GetUserBalance", mock.Anything, johnID).Return(&entity.UserBalance{
			UserID:   uuid.MustParse(johnID),
			UserName: "John Doe",
			Balance:  decimal.RequireFromString("1500.75"),
		}, nil).Once()

		result := callTool(t, server, "get_user_balance", map[string]any{"user_id": johnID})

		assert.False(t, result.IsError)
		assert.Equal(t, "User John Doe has a balance of $1,500.75", result.Content[0].Text)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.calls.WithLabelValues("Warrior Server", "tools/call", "get_user_balance", outcomeOK)))
	})

	t.Run("Malformed id never reaches the use case", func(t *testing.T) {
		for _, args := range []map[string]any{nil, {}, {"user_id": ""}, {"user_id": "abc"}, {"user_id": 42.0}} {
			result := callTool(t, server, "get_user_balance", args)
			assert.True(t, result.IsError, args)
			assert.Contains(t, result.Content[0].Text, "user_id", args)
		}
	})

	t.Run("Unknown user", func(t *testing.T) {
		missing := uuid.NewString()
		f.users.On("GetUserBalance", mock.Anything, missing).Return(nil, errs.ErrUserNotFound).Once()

		result := callTool(t, server, "get_user_balance", map[string]any{"user_id": missing})

		assert.True(t, result.IsError)
		assert.Equal(t, "user not found", result.Content[0].Text)
	})

	t.Run("Store failures are not leaked", func(t *testing.T) {
		id := uuid.NewString()
		storeErr := errs.NewStoreError("get user", errs.StoreKindConnection, errors.New("dial tcp 10.0.0.5:5432: refused"))
		f.users.On("GetUserBalance", mock.Anything, id).Return(nil, storeErr).Once()

		result := callTool(t, server, "get_user_balance", map[string]any{"user_id": id})

		assert.True(t, result.IsError)
		assert.Equal(t, "ledger store unavailable", result.Content[0].Text)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.calls.WithLabelValues("Warrior Server", "tools/call", "get_user_balance", outcomeToolError)))
	})
}

func TestStatsTool(t *testing.T) {
	f := newFixture(t)
	server := f.warrior(t)

	f.users.On("GetUserStatistics", mock.Anything, johnID).Return(&entity.UserStatistics{
		UserID:                 uuid.MustParse(johnID),
		UserName:               "John Doe",
		Balance:                decimal.RequireFromString("1500.75"),
		TotalTransactions:      4,
		SuccessfulTransactions: 2,
		PendingTransactions:    1,
		FailedTransactions:     1,
		TotalSent:              decimal.RequireFromString("425.75"),
		TotalReceived:          decimal.RequireFromString("1000"),
	}, nil).Once()

	result := callTool(t, server, "get_user_stats", map[string]any{"user_id": johnID})

	var stats map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &stats))
	assert.Equal(t, "John Doe", stats["user_name"])
	assert.Equal(t, "425.75", stats["total_sent"])
	assert.Equal(t, "1000.00", stats["total_received"])
	assert.Equal(t, 4.0, stats["total_transactions"])
}

func TestSearchTool(t *testing.T) {
	f := newFixture(t)
	server := f.warrior(t)

	t.Run("Caps results and passes criteria through", func(t *testing.T) {
		f.transactions.On("FilterTransactions", mock.Anything, mock.MatchedBy(func(q usecase.TransactionQuery) bool {
			return q.Limit == 10 && q.Type != nil && *q.Type == "SEND_MONEY" && q.Status == nil && q.Currency == nil
		})).Return([]*entity.Transaction{}, nil).Once()

		result := callTool(t, server, "search_transactions", map[string]any{"type": "SEND_MONEY", "status": nil})

		assert.False(t, result.IsError)
		assert.Equal(t, "[]", result.Content[0].Text)
	})

	t.Run("Renders summaries", func(t *testing.T) {
		description := "Initial wallet funding"
		f.transactions.On("FilterTransactions", mock.Anything, mock.Anything).Return([]*entity.Transaction{{
			ID:          uuid.New(),
			Type:        entity.TypeFundWallet,
			Amount:      decimal.RequireFromString("1000"),
			Currency:    "USD",
			Status:      entity.StatusSuccessful,
			Description: &description,
			User:        &entity.User{Name: "John Doe"},
		}}, nil).Once()

		result := callTool(t, server, "search_transactions", nil)

		var rows []map[string]any
		require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &rows))
		require.Len(t, rows, 1)
		assert.Equal(t, "John Doe", rows[0]["user"])
		assert.Equal(t, "1000.00", rows[0]["amount"])
		assert.Equal(t, description, rows[0]["description"])
	})

	t.Run("Non-string criteria are rejected", func(t *testing.T) {
		result := callTool(t, server, "search_transactions", map[string]any{"currency": 3.0})
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content[0].Text, "currency")
	})

	t.Run("Validation failures from the use case", func(t *testing.T) {
		f.transactions.On("FilterTransactions", mock.Anything, mock.Anything).
			Return(nil, errs.NewValidationError("type", "BOGUS", "must be one of SEND_MONEY, FUND_WALLET, WITHDRAW")).Once()

		result := callTool(t, server, "search_transactions", map[string]any{"type": "BOGUS"})
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content[0].Text, "type")
	})
}

func TestResources(t *testing.T) {
	server := newFixture(t).warrior(t)

	contents := decodeResult[struct {
		Contents []mcpgo.TextResourceContents `json:"contents"`
	}](t, call(t, server, "resources/read", map[string]any{"uri": "finance://guidelines"})).Contents
	require.Len(t, contents, 1)
	assert.Equal(t, "finance://guidelines", contents[0].URI)
	assert.Equal(t, "application/json", contents[0].MIMEType)
	assert.Contains(t, contents[0].Text, "\n    \"risk_assessment\": {")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(contents[0].Text), &decoded))
	assert.Contains(t, decoded, "balance_thresholds")

	reply := call(t, server, "resources/read", map[string]any{"uri": "finance://unknown"})
	require.NotNil(t, reply.Error)
	assert.Equal(t, mcpgo.RESOURCE_NOT_FOUND, reply.Error.Code)
}

func TestPrompts(t *testing.T) {
	f := newFixture(t)
	server := f.warrior(t)

	getPrompt := func(name string, args map[string]string) rpcReply {
		params := map[string]any{"name": name}
		if args != nil {
			params["arguments"] = args
		}
		return call(t, server, "prompts/get", params)
	}

	t.Run("Analysis prompt for an existing user", func(t *testing.T) {
		f.users.On("UserExists", mock.Anything, johnID).Return(true, nil).Once()

		result := decodeResult[promptReply](t, getPrompt("analyze_user_financials", map[string]string{"user_id": johnID}))

		assert.Equal(t, "Comprehensive financial analysis of a user", result.Description)
		require.Len(t, result.Messages, 2)
		assert.Equal(t, "assistant", result.Messages[0].Role)
		assert.Equal(t, "user", result.Messages[1].Role)
		assert.Equal(t, "text", result.Messages[1].Content.Type)
		assert.Contains(t, result.Messages[1].Content.Text, johnID)
	})

	t.Run("Unknown user is rejected with the argument error", func(t *testing.T) {
		missing := uuid.NewString()
		f.users.On("UserExists", mock.Anything, missing).Return(false, nil).Once()

		reply := getPrompt("user_statistics", map[string]string{"user_id": missing})
		require.NotNil(t, reply.Error)
		assert.Equal(t, mcpgo.INTERNAL_ERROR, reply.Error.Code)
		assert.Equal(t, "the user_id field does not reference an existing user", reply.Error.Message)
	})

	t.Run("Missing user id", func(t *testing.T) {
		reply := getPrompt("user_statistics", nil)
		require.NotNil(t, reply.Error)
		assert.Contains(t, reply.Error.Message, "user_id")
	})

	t.Run("Store failure", func(t *testing.T) {
		id := uuid.NewString()
		f.users.On("UserExists", mock.Anything, id).
			Return(false, errs.NewStoreError("user exists", errs.StoreKindTimeout, context.DeadlineExceeded)).Once()

		reply := getPrompt("analyze_user_financials", map[string]string{"user_id": id})
		require.NotNil(t, reply.Error)
		assert.Equal(t, mcpgo.INTERNAL_ERROR, reply.Error.Code)
		assert.Equal(t, "ledger store unavailable", reply.Error.Message)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.calls.WithLabelValues("Warrior Server", "prompts/get", "analyze_user_financials", outcomeRPCError)))
	})

	t.Run("Search prompt criteria", func(t *testing.T) {
		result := decodeResult[promptReply](t, getPrompt("search_transactions", nil))
		assert.Contains(t, result.Messages[1].Content.Text, "Search for all transactions using")

		result = decodeResult[promptReply](t, getPrompt("search_transactions", map[string]string{"currency": "USD", "type": "SEND_MONEY"}))
		assert.Contains(t, result.Messages[1].Content.Text, `transactions matching: {"type":"SEND_MONEY","currency":"USD"}`)

		reply := getPrompt("search_transactions", map[string]string{"status": "DONE"})
		require.NotNil(t, reply.Error)
		assert.Contains(t, reply.Error.Message, "status")
	})
}

func TestDispatchErrors(t *testing.T) {
	f := newFixture(t)
	server := f.warrior(t)

	testCases := []struct {
		name   string
		method string
		params any
		code   int
	}{
		{"Unknown method", "tools/delete", nil, mcpgo.METHOD_NOT_FOUND},
		{"Unknown tool", "tools/call", map[string]any{"name": "transfer_money"}, mcpgo.INVALID_PARAMS},
		{"Unknown prompt", "prompts/get", map[string]any{"name": "nope"}, mcpgo.INVALID_PARAMS},
		{"Malformed params", "resources/read", []int{1}, mcpgo.INVALID_REQUEST},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reply := call(t, server, tc.method, tc.params)
			require.NotNil(t, reply.Error)
			assert.Empty(t, reply.Result)
			assert.Equal(t, tc.code, reply.Error.Code)
		})
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.calls.WithLabelValues("Warrior Server", "tools/call", "transfer_money", outcomeRPCError)))
}

func TestNotificationsGetNoResponse(t *testing.T) {
	server := newFixture(t).warrior(t)

	response := server.mcp.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","method":"notifications/initialized"}`))
	assert.Nil(t, response)
}
