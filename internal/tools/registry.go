package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Registry holds the available tools and dispatches calls to them.
// Thread-safe.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*Tool
	log   *zap.Logger
}

// NewEmptyRegistry creates a registry with no tools registered.
func NewEmptyRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{tools: make(map[string]*Tool), log: log}
}

// Register adds a tool. Returns an error if the name is taken or the tool
// is missing its name or handler.
func (r *Registry) Register(tool *Tool) error {
	if tool.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if tool.Handler == nil {
		return fmt.Errorf("tool %s has no handler", tool.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("tool already registered: %s", tool.Name)
	}
	r.tools[tool.Name] = tool
	return nil
}

// mustRegister registers a tool and panics on error. Used for the static
// tool set built at construction time.
func (r *Registry) mustRegister(tool *Tool) {
	if err := r.Register(tool); err != nil {
		panic(err)
	}
}

// Get returns a tool by name, or nil.
func (r *Registry) Get(name string) *Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[name]
}

// Names returns the registered tool names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Result is the outcome of one dispatch: exactly one of Output or Failure
// is meaningful.
type Result struct {
	Tool    string   `json:"tool"`
	Output  string   `json:"output,omitempty"`
	Failure *Failure `json:"failure,omitempty"`
}

// OK reports whether the call succeeded.
func (res Result) OK() bool {
	return res.Failure == nil
}

// Dispatch runs the named tool. Every error, unknown tool included,
// comes back as a coded Failure, never as a raw error to the caller.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) Result {
	tool := r.Get(name)
	if tool == nil {
		err := fmt.Errorf("%w: %s", ErrToolNotFound, name)
		return Result{Tool: name, Failure: &Failure{Code: Classify(err), Message: err.Error()}}
	}

	start := time.Now()
	output, err := tool.Handler(ctx, args)
	elapsed := time.Since(start)

	if err != nil {
		r.log.Info("tool failed",
			zap.String("tool", name),
			zap.String("code", string(Classify(err))),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return Result{Tool: name, Failure: &Failure{Code: Classify(err), Message: err.Error()}}
	}

	r.log.Debug("tool executed",
		zap.String("tool", name),
		zap.Duration("elapsed", elapsed))
	return Result{Tool: name, Output: output}
}
