package mcp

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

// InputSchema is the JSON Schema object describing tool arguments
type InputSchema struct {
	Type       string
	Properties map[string]SchemaProperty
	Required   []string
}

// SchemaProperty describes a single argument
type SchemaProperty struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Format      string   `json:"format,omitempty"`
	MinLength   int      `json:"minLength,omitempty"`
	MaxLength   int      `json:"maxLength,omitempty"`
}

// Tool is a callable operation: Handle runs the query and Render turns its result into text
type Tool struct {
	Name        string
	Title       string
	Description string
	InputSchema InputSchema
	Handle      func(ctx context.Context, args Arguments) (any, error)
	Render      func(result any) (string, error)
}

// Resource is a static payload addressed by URI
type Resource struct {
	URI         string
	Name        string
	Description string
	MimeType    string
	Read        func() (string, error)
}

// Prompt is a canned message template
type Prompt struct {
	Name        string
	Description string
	Arguments   []mcpgo.PromptArgument
	Render      func(ctx context.Context, args map[string]string) ([]mcpgo.PromptMessage, error)
}

// Registry holds descriptors keyed by name or URI; listings keep registration order
type Registry struct {
	tools     []*Tool
	resources []*Resource
	prompts   []*Prompt

	toolIndex     map[string]int
	resourceIndex map[string]int
	promptIndex   map[string]int
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		toolIndex:     make(map[string]int),
		resourceIndex: make(map[string]int),
		promptIndex:   make(map[string]int),
	}
}

// RegisterTool adds a tool; names are unique
func (r *Registry) RegisterTool(tool *Tool) error {
	if _, exists := r.toolIndex[tool.Name]; exists {
		return fmt.Errorf("tool %q already registered", tool.Name)
	}
	r.toolIndex[tool.Name] = len(r.tools)
	r.tools = append(r.tools, tool)
	return nil
}

// RegisterResource adds a resource; URIs are unique
func (r *Registry) RegisterResource(resource *Resource) error {
	if _, exists := r.resourceIndex[resource.URI]; exists {
		return fmt.Errorf("resource %q already registered", resource.URI)
	}
	r.resourceIndex[resource.URI] = len(r.resources)
	r.resources = append(r.resources, resource)
	return nil
}

// RegisterPrompt adds a prompt; names are unique
func (r *Registry) RegisterPrompt(prompt *Prompt) error {
	if _, exists := r.promptIndex[prompt.Name]; exists {
		return fmt.Errorf("prompt %q already registered", prompt.Name)
	}
	r.promptIndex[prompt.Name] = len(r.prompts)
	r.prompts = append(r.prompts, prompt)
	return nil
}

// Tools returns the tool descriptors in registration order
func (r *Registry) Tools() []*Tool {
	return r.tools
}

// Resources returns the resource descriptors in registration order
func (r *Registry) Resources() []*Resource {
	return r.resources
}

// Prompts returns the prompt descriptors in registration order
func (r *Registry) Prompts() []*Prompt {
	return r.prompts
}

// inToolOrder sorts listed tools back into registration order; unknown names go last
func (r *Registry) inToolOrder(_ context.Context, listed []mcpgo.Tool) []mcpgo.Tool {
	slices.SortStableFunc(listed, func(a, b mcpgo.Tool) int {
		return cmp.Compare(r.toolPosition(a.Name), r.toolPosition(b.Name))
	})
	return listed
}

func (r *Registry) toolPosition(name string) int {
	if i, ok := r.toolIndex[name]; ok {
		return i
	}
	return len(r.tools)
}

func (t *Tool) definition() mcpgo.Tool {
	properties := make(map[string]any, len(t.InputSchema.Properties))
	for name, property := range t.InputSchema.Properties {
		properties[name] = property
	}

	return mcpgo.Tool{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: mcpgo.ToolInputSchema{
			Type:       t.InputSchema.Type,
			Properties: properties,
			Required:   t.InputSchema.Required,
		},
		Annotations: mcpgo.ToolAnnotation{
			Title:          t.Title,
			ReadOnlyHint:   mcpgo.ToBoolPtr(true),
			IdempotentHint: mcpgo.ToBoolPtr(true),
		},
	}
}

func (r *Resource) definition() mcpgo.Resource {
	return mcpgo.NewResource(r.URI, r.Name,
		mcpgo.WithResourceDescription(r.Description),
		mcpgo.WithMIMEType(r.MimeType),
	)
}

func (p *Prompt) definition() mcpgo.Prompt {
	return mcpgo.Prompt{
		Name:        p.Name,
		Description: p.Description,
		Arguments:   p.Arguments,
	}
}
