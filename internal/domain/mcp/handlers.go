package mcp

import (
	"context"
	"encoding/json"
)

// ToolHandler defines the interface for tool handlers
type ToolHandler interface {
	GetName() string
	GetDescription() string
	GetInputSchema() JSONSchema
	Execute(ctx context.Context, arguments json.RawMessage) (*CallToolResult, error)
}

// ResourceHandler defines the interface for resource handlers
type ResourceHandler interface {
	GetURI() string
	GetName() string
	GetDescription() string
	GetMimeType() string
	Read(ctx context.Context) (*ReadResourceResult, error)
}

// PromptHandler defines the interface for prompt handlers
type PromptHandler interface {
	GetName() string
	GetDescription() string
	GetArguments() []PromptArgument
	Get(ctx context.Context, arguments map[string]string) (*GetPromptResult, error)
}

// HandlerRegistry manages tool, resource, and prompt handlers. Listings come
// back in registration order so clients see a stable catalog.
type HandlerRegistry struct {
	tools         map[string]ToolHandler
	toolOrder     []string
	resources     map[string]ResourceHandler
	resourceOrder []string
	prompts       map[string]PromptHandler
	promptOrder   []string
}

// NewHandlerRegistry creates a new handler registry
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		tools:     make(map[string]ToolHandler),
		resources: make(map[string]ResourceHandler),
		prompts:   make(map[string]PromptHandler),
	}
}

// RegisterTool registers a tool handler
func (r *HandlerRegistry) RegisterTool(handler ToolHandler) {
	if _, ok := r.tools[handler.GetName()]; !ok {
		r.toolOrder = append(r.toolOrder, handler.GetName())
	}
	r.tools[handler.GetName()] = handler
}

// RegisterResource registers a resource handler
func (r *HandlerRegistry) RegisterResource(handler ResourceHandler) {
	if _, ok := r.resources[handler.GetURI()]; !ok {
		r.resourceOrder = append(r.resourceOrder, handler.GetURI())
	}
	r.resources[handler.GetURI()] = handler
}

// RegisterPrompt registers a prompt handler
func (r *HandlerRegistry) RegisterPrompt(handler PromptHandler) {
	if _, ok := r.prompts[handler.GetName()]; !ok {
		r.promptOrder = append(r.promptOrder, handler.GetName())
	}
	r.prompts[handler.GetName()] = handler
}

// GetTool retrieves a tool handler by name
func (r *HandlerRegistry) GetTool(name string) (ToolHandler, bool) {
	handler, ok := r.tools[name]
	return handler, ok
}

// GetResource retrieves a resource handler by URI
func (r *HandlerRegistry) GetResource(uri string) (ResourceHandler, bool) {
	handler, ok := r.resources[uri]
	return handler, ok
}

// GetPrompt retrieves a prompt handler by name
func (r *HandlerRegistry) GetPrompt(name string) (PromptHandler, bool) {
	handler, ok := r.prompts[name]
	return handler, ok
}

// ListTools returns all registered tools in registration order
func (r *HandlerRegistry) ListTools() []Tool {
	tools := make([]Tool, 0, len(r.tools))
	for _, name := range r.toolOrder {
		handler := r.tools[name]
		tools = append(tools, Tool{
			Name:        handler.GetName(),
			Description: handler.GetDescription(),
			InputSchema: handler.GetInputSchema(),
		})
	}
	return tools
}

// ListResources returns all registered resources in registration order
func (r *HandlerRegistry) ListResources() []Resource {
	resources := make([]Resource, 0, len(r.resources))
	for _, uri := range r.resourceOrder {
		handler := r.resources[uri]
		resources = append(resources, Resource{
			URI:         handler.GetURI(),
			Name:        handler.GetName(),
			Description: handler.GetDescription(),
			MimeType:    handler.GetMimeType(),
		})
	}
	return resources
}

// ListPrompts returns all registered prompts in registration order
func (r *HandlerRegistry) ListPrompts() []Prompt {
	prompts := make([]Prompt, 0, len(r.prompts))
	for _, name := range r.promptOrder {
		handler := r.prompts[name]
		prompts = append(prompts, Prompt{
			Name:        handler.GetName(),
			Description: handler.GetDescription(),
			Arguments:   handler.GetArguments(),
		})
	}
	return prompts
}
