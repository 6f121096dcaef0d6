// Package tools exposes the logbook store operations as named, schema-
// described tools for LLM tool calling. Each tool declares a JSON-schema
// argument shape, executes against the store, and returns either a
// markdown success payload or a structured failure with a machine-
// checkable reason code.
package tools

import "context"

// Property describes a single parameter for the JSON schema.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Enum        []any  `json:"enum,omitempty"`
	Default     any    `json:"default,omitempty"`
	// Items describes array element schema (required for type="array").
	Items *PropertyItems `json:"items,omitempty"`
}

// PropertyItems describes the schema for array elements.
type PropertyItems struct {
	Type string `json:"type"`
}

// Schema defines the JSON schema for tool arguments.
type Schema struct {
	Required   []string            `json:"required"`
	Properties map[string]Property `json:"properties"`
}

// HandlerFunc executes a tool call. The returned string is the success
// payload shown to the caller; errors are classified by the registry.
type HandlerFunc func(ctx context.Context, args map[string]any) (string, error)

// Tool is one callable operation.
type Tool struct {
	// Name is the unique identifier used by the caller.
	Name string

	// Description is the one-line summary surfaced with the schema.
	Description string

	// Guidance is the markdown decision-tree document steering an LLM's
	// use of this tool. May be empty.
	Guidance string

	// Schema declares the expected arguments.
	Schema Schema

	// Handler runs the tool.
	Handler HandlerFunc
}
