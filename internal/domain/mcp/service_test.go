package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock tool for testing
type mockTool struct {
	name        string
	description string
	schema      JSONSchema
	result      *CallToolResult
	err         error
}

func (m *mockTool) GetName() string            { return m.name }
func (m *mockTool) GetDescription() string     { return m.description }
func (m *mockTool) GetInputSchema() JSONSchema { return m.schema }
func (m *mockTool) Execute(ctx context.Context, arguments json.RawMessage) (*CallToolResult, error) {
	return m.result, m.err
}

// Mock resource for testing
type mockResource struct {
	uri         string
	name        string
	description string
	mimeType    string
	result      *ReadResourceResult
	err         error
}

func (m *mockResource) GetURI() string         { return m.uri }
func (m *mockResource) GetName() string        { return m.name }
func (m *mockResource) GetDescription() string { return m.description }
func (m *mockResource) GetMimeType() string    { return m.mimeType }
func (m *mockResource) Read(ctx context.Context) (*ReadResourceResult, error) {
	return m.result, m.err
}

// Mock prompt for testing
type mockPrompt struct {
	name        string
	description string
	arguments   []PromptArgument
	result      *GetPromptResult
	err         error
}

func (m *mockPrompt) GetName() string                { return m.name }
func (m *mockPrompt) GetDescription() string         { return m.description }
func (m *mockPrompt) GetArguments() []PromptArgument { return m.arguments }
func (m *mockPrompt) Get(ctx context.Context, arguments map[string]string) (*GetPromptResult, error) {
	return m.result, m.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func initialize(t *testing.T, service *Service) {
	t.Helper()
	initParams := InitializeParams{
		ProtocolVersion: "2024-11-05",
		Capabilities:    ClientCapability{},
		ClientInfo: ClientInfo{
			Name:    "test-client",
			Version: "1.0.0",
		},
	}
	initParamsJSON, _ := json.Marshal(initParams)
	service.HandleRequest(context.Background(), JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`1`),
		Method:  "initialize",
		Params:  initParamsJSON,
	})
}

func TestService_HandleInitialize(t *testing.T) {
	service := NewService(testLogger(), NewHandlerRegistry())

	params := InitializeParams{
		ProtocolVersion: "2024-11-05",
		Capabilities:    ClientCapability{},
		ClientInfo: ClientInfo{
			Name:    "test-client",
			Version: "1.0.0",
		},
	}
	paramsJSON, _ := json.Marshal(params)

	request := JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`1`),
		Method:  "initialize",
		Params:  paramsJSON,
	}

	httpResponse := service.HandleRequest(context.Background(), request)

	assert.Nil(t, httpResponse.JSONRPCResponse.Error)
	assert.NotNil(t, httpResponse.JSONRPCResponse.Result)
	assert.Equal(t, 200, httpResponse.StatusCode)

	resultJSON, _ := json.Marshal(httpResponse.JSONRPCResponse.Result)
	var result InitializeResult
	err := json.Unmarshal(resultJSON, &result)
	require.NoError(t, err)

	assert.Equal(t, "2024-11-05", result.ProtocolVersion)
	assert.Equal(t, "finwell-mcp-server", result.ServerInfo.Name)
}

func TestService_HandleListResources(t *testing.T) {
	registry := NewHandlerRegistry()
	registry.RegisterResource(&mockResource{
		uri:         "finwell://resource1",
		name:        "Test Resource 1",
		description: "First test resource",
		mimeType:    "text/plain",
	})
	registry.RegisterResource(&mockResource{
		uri:         "finwell://resource2",
		name:        "Test Resource 2",
		description: "Second test resource",
		mimeType:    "application/json",
	})

	service := NewService(testLogger(), registry)
	initialize(t, service)

	request := JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`2`),
		Method:  "resources/list",
	}

	httpResponse := service.HandleRequest(context.Background(), request)

	assert.Nil(t, httpResponse.JSONRPCResponse.Error)
	assert.Equal(t, 200, httpResponse.StatusCode)

	resultJSON, _ := json.Marshal(httpResponse.JSONRPCResponse.Result)
	var result ListResourcesResult
	err := json.Unmarshal(resultJSON, &result)
	require.NoError(t, err)

	require.Len(t, result.Resources, 2)
	// registration order is preserved
	assert.Equal(t, "finwell://resource1", result.Resources[0].URI)
	assert.Equal(t, "finwell://resource2", result.Resources[1].URI)
}

func TestService_HandleListTools(t *testing.T) {
	registry := NewHandlerRegistry()
	registry.RegisterTool(&mockTool{
		name:        "test_tool1",
		description: "First test tool",
		schema: JSONSchema{
			Type:     "object",
			Required: []string{"param1"},
		},
	})
	registry.RegisterTool(&mockTool{
		name:        "test_tool2",
		description: "Second test tool",
		schema: JSONSchema{
			Type:     "object",
			Required: []string{"param2"},
		},
	})

	service := NewService(testLogger(), registry)
	initialize(t, service)

	request := JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`2`),
		Method:  "tools/list",
	}

	httpResponse := service.HandleRequest(context.Background(), request)

	assert.Nil(t, httpResponse.JSONRPCResponse.Error)
	assert.Equal(t, 200, httpResponse.StatusCode)

	resultJSON, _ := json.Marshal(httpResponse.JSONRPCResponse.Result)
	var result ListToolsResult
	err := json.Unmarshal(resultJSON, &result)
	require.NoError(t, err)

	require.Len(t, result.Tools, 2)
	assert.Equal(t, "test_tool1", result.Tools[0].Name)
}

func TestService_CallTool(t *testing.T) {
	registry := NewHandlerRegistry()

	expectedResult := &CallToolResult{
		Content: []ToolResultContent{
			{
				Type: "text",
				Text: "Tool executed successfully",
			},
		},
		IsError: false,
	}

	registry.RegisterTool(&mockTool{
		name:        "test_tool",
		description: "Test tool",
		schema:      JSONSchema{Type: "object"},
		result:      expectedResult,
		err:         nil,
	})

	service := NewService(testLogger(), registry)
	initialize(t, service)

	callParams := CallToolParams{
		Name:      "test_tool",
		Arguments: json.RawMessage(`{"param": "value"}`),
	}
	callParamsJSON, _ := json.Marshal(callParams)

	request := JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`2`),
		Method:  "tools/call",
		Params:  callParamsJSON,
	}

	httpResponse := service.HandleRequest(context.Background(), request)

	assert.Nil(t, httpResponse.JSONRPCResponse.Error)
	assert.Equal(t, 200, httpResponse.StatusCode)

	resultJSON, _ := json.Marshal(httpResponse.JSONRPCResponse.Result)
	var result CallToolResult
	err := json.Unmarshal(resultJSON, &result)
	require.NoError(t, err)

	require.Len(t, result.Content, 1)
	assert.Equal(t, "text", result.Content[0].Type)
	assert.Equal(t, "Tool executed successfully", result.Content[0].Text)
	assert.False(t, result.IsError)
}

func TestService_CallTool_HandlerError(t *testing.T) {
	registry := NewHandlerRegistry()
	registry.RegisterTool(&mockTool{
		name:   "failing_tool",
		schema: JSONSchema{Type: "object"},
		err:    assert.AnError,
	})

	service := NewService(testLogger(), registry)
	initialize(t, service)

	callParamsJSON, _ := json.Marshal(CallToolParams{Name: "failing_tool"})
	httpResponse := service.HandleRequest(context.Background(), JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`2`),
		Method:  "tools/call",
		Params:  callParamsJSON,
	})

	// handler failures surface as tool-result errors, not JSON-RPC errors
	assert.Nil(t, httpResponse.JSONRPCResponse.Error)
	assert.Equal(t, 200, httpResponse.StatusCode)

	resultJSON, _ := json.Marshal(httpResponse.JSONRPCResponse.Result)
	var result CallToolResult
	err := json.Unmarshal(resultJSON, &result)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestService_HandlePrompts(t *testing.T) {
	registry := NewHandlerRegistry()
	registry.RegisterPrompt(&mockPrompt{
		name:        "test_prompt",
		description: "Test prompt",
		arguments:   []PromptArgument{{Name: "topic", Required: true}},
		result: &GetPromptResult{
			Messages: []PromptMessage{
				{Role: "user", Content: PromptContent{Type: "text", Text: "Tell me about budgets"}},
			},
		},
	})

	service := NewService(testLogger(), registry)
	initialize(t, service)

	t.Run("list", func(t *testing.T) {
		httpResponse := service.HandleRequest(context.Background(), JSONRPCRequest{
			JSONRPC: "2.0",
			ID:      json.RawMessage(`2`),
			Method:  "prompts/list",
		})

		assert.Nil(t, httpResponse.JSONRPCResponse.Error)

		resultJSON, _ := json.Marshal(httpResponse.JSONRPCResponse.Result)
		var result ListPromptsResult
		err := json.Unmarshal(resultJSON, &result)
		require.NoError(t, err)

		require.Len(t, result.Prompts, 1)
		assert.Equal(t, "test_prompt", result.Prompts[0].Name)
	})

	t.Run("get", func(t *testing.T) {
		paramsJSON, _ := json.Marshal(GetPromptParams{Name: "test_prompt"})
		httpResponse := service.HandleRequest(context.Background(), JSONRPCRequest{
			JSONRPC: "2.0",
			ID:      json.RawMessage(`3`),
			Method:  "prompts/get",
			Params:  paramsJSON,
		})

		assert.Nil(t, httpResponse.JSONRPCResponse.Error)

		resultJSON, _ := json.Marshal(httpResponse.JSONRPCResponse.Result)
		var result GetPromptResult
		err := json.Unmarshal(resultJSON, &result)
		require.NoError(t, err)
		require.Len(t, result.Messages, 1)
	})

	t.Run("unknown prompt", func(t *testing.T) {
		paramsJSON, _ := json.Marshal(GetPromptParams{Name: "nope"})
		httpResponse := service.HandleRequest(context.Background(), JSONRPCRequest{
			JSONRPC: "2.0",
			ID:      json.RawMessage(`4`),
			Method:  "prompts/get",
			Params:  paramsJSON,
		})
		require.NotNil(t, httpResponse.JSONRPCResponse.Error)
		assert.Equal(t, InvalidParams, httpResponse.JSONRPCResponse.Error.Code)
	})
}

func TestService_UnknownMethod(t *testing.T) {
	service := NewService(testLogger(), NewHandlerRegistry())

	httpResponse := service.HandleRequest(context.Background(), JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`1`),
		Method:  "tools/unknown",
	})

	require.NotNil(t, httpResponse.JSONRPCResponse.Error)
	assert.Equal(t, MethodNotFound, httpResponse.JSONRPCResponse.Error.Code)
	assert.Equal(t, 200, httpResponse.StatusCode)
}
