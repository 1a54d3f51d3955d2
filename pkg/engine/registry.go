package engine

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores engines by name, providing dispatch and duplication
// safeguards. The zero set used by resolvers comes from Default.
type Registry struct {
	mu      sync.RWMutex
	engines map[string]Engine
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		engines: make(map[string]Engine),
	}
}

// Default returns a registry with every built-in engine registered:
// plain-substitution, pongo2, and go-template.
func Default() *Registry {
	r := NewRegistry()
	r.MustRegister(Plain{})
	r.MustRegister(NewPongo2())
	r.MustRegister(GoTemplate{})
	return r
}

// Register adds an engine by its Name(). Duplicate names return an error.
func (r *Registry) Register(engine Engine) error {
	if engine == nil {
		return fmt.Errorf("engine: engine is required")
	}
	name := engine.Name()
	if name == "" {
		return fmt.Errorf("engine: engine name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.engines[name]; exists {
		return fmt.Errorf("engine: engine %q already registered", name)
	}

	r.engines[name] = engine
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(engine Engine) {
	if err := r.Register(engine); err != nil {
		panic(err)
	}
}

// Get retrieves an engine by name. The empty string selects the default
// plain-substitution engine when it is registered.
func (r *Registry) Get(name string) (Engine, error) {
	if name == "" {
		name = DefaultName
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	engine, ok := r.engines[name]
	if !ok {
		return nil, &UnknownEngineError{Name: name}
	}
	return engine, nil
}

// Render dispatches a pattern to the named engine. Engine failures are
// wrapped in a RenderError tagged with the engine name; an unknown name is
// returned as UnknownEngineError untouched.
func (r *Registry) Render(name, pattern string, params map[string]string) (string, error) {
	engine, err := r.Get(name)
	if err != nil {
		return "", err
	}

	out, err := engine.Render(pattern, params)
	if err != nil {
		return "", &RenderError{Engine: engine.Name(), Err: err}
	}
	return out, nil
}

// List returns a sorted list of registered engine names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether an engine is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.engines[name]
	return ok
}
