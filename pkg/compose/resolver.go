package compose

import (
	"github.com/goliatone/go-composer/pkg/engine"
	"github.com/goliatone/go-composer/pkg/parser"
	"github.com/goliatone/go-composer/pkg/registry"
)

// DefaultMaxDepth bounds invocation nesting. Authored templates rarely nest
// past a handful of levels; anything near the cap is a composition bug.
const DefaultMaxDepth = 32

// Option customises the resolver configuration.
type Option func(*Resolver)

// WithRegistry injects the template registry the resolver reads from.
func WithRegistry(reg *registry.Registry) Option {
	return func(r *Resolver) {
		r.registry = reg
	}
}

// WithEngines injects the engine set used for rendering.
func WithEngines(engines *engine.Registry) Option {
	return func(r *Resolver) {
		r.engines = engines
	}
}

// WithDefaultEngine overrides the engine used for inline patterns and for
// registry templates that do not name one.
func WithDefaultEngine(name string) Option {
	return func(r *Resolver) {
		if name != "" {
			r.defaultEngine = name
		}
	}
}

// WithMaxDepth overrides the invocation nesting cap.
func WithMaxDepth(depth int) Option {
	return func(r *Resolver) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

// Resolver evaluates invocations and composition blocks against a read-only
// template registry and a set of rendering engines. Resolution is one-shot
// and deterministic: the same registry and source always produce the same
// values, and a failure at one invocation site never affects another.
type Resolver struct {
	registry      *registry.Registry
	engines       *engine.Registry
	defaultEngine string
	maxDepth      int
}

// New constructs a Resolver applying any provided options. Missing
// dependencies fall back to an empty registry and the built-in engine set.
func New(options ...Option) *Resolver {
	r := &Resolver{
		defaultEngine: engine.DefaultName,
		maxDepth:      DefaultMaxDepth,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.registry == nil {
		r.registry = registry.Empty()
	}
	if r.engines == nil {
		r.engines = engine.Default()
	}
	return r
}

// Resolve evaluates a single invocation with no surrounding block scope.
// Variable references are undefined by construction and fail.
func (r *Resolver) Resolve(call *parser.Invocation) (string, error) {
	return r.resolveCall(call, newScope(), 0)
}

// ResolveBlock validates and evaluates a composition block, returning its
// exports in statement order. Validation runs in full before any rendering
// happens, so a block either evaluates from a known-good shape or fails
// before producing partial output.
func (r *Resolver) ResolveBlock(block *parser.Block) ([]Export, error) {
	if err := validateBlock(block); err != nil {
		return nil, err
	}

	sc := newScope()
	for _, stmt := range block.Statements {
		value, err := r.resolveCall(&stmt.Call, sc, 0)
		if err != nil {
			return nil, err
		}
		switch stmt.Kind {
		case parser.StmtLet:
			sc.addLocal(stmt.Name, value)
		case parser.StmtConst:
			sc.addExport(stmt.Attrs, stmt.Name, value)
		}
	}

	return sc.exports, nil
}

// validateBlock walks statements in order, rejecting duplicate names and
// variable references that do not resolve against the let bindings visible
// at that statement. A let may only reference lets strictly before it; a
// const may reference any earlier let but never another const.
func validateBlock(block *parser.Block) error {
	defined := make(map[string]struct{})
	lets := make(map[string]struct{})

	for _, stmt := range block.Statements {
		if _, dup := defined[stmt.Name]; dup {
			return &ScopeError{Code: CodeDuplicateName, Name: stmt.Name, Pos: stmt.Pos}
		}
		defined[stmt.Name] = struct{}{}

		if err := validateReferences(&stmt.Call, lets); err != nil {
			return err
		}

		if stmt.Kind == parser.StmtLet {
			lets[stmt.Name] = struct{}{}
		}
	}

	return nil
}

func validateReferences(call *parser.Invocation, lets map[string]struct{}) error {
	for _, param := range call.Params {
		switch param.Value.Kind {
		case parser.ParamVariable:
			if _, ok := lets[param.Value.Variable]; !ok {
				return &ScopeError{Code: CodeUndefinedVariable, Name: param.Value.Variable, Pos: param.Value.Pos}
			}
		case parser.ParamNested:
			if err := validateReferences(param.Value.Nested, lets); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveCall renders one invocation: registry lookup (or inline fallback),
// recursive parameter resolution, then engine dispatch.
func (r *Resolver) resolveCall(call *parser.Invocation, sc *scope, depth int) (string, error) {
	if depth >= r.maxDepth {
		return "", &DepthError{Depth: r.maxDepth}
	}

	pattern := call.Source
	engineName := r.defaultEngine
	if tpl, ok := r.registry.Lookup(call.Source); ok {
		pattern = tpl.Pattern
		if tpl.Engine != "" {
			engineName = tpl.Engine
		}
	}

	// Later duplicate keys overwrite earlier ones; see Invocation.Params.
	params := make(map[string]string, len(call.Params))
	for _, param := range call.Params {
		value, err := r.resolveParam(&param.Value, sc, depth)
		if err != nil {
			return "", err
		}
		params[param.Key] = value
	}

	return r.engines.Render(engineName, pattern, params)
}

func (r *Resolver) resolveParam(value *parser.ParamValue, sc *scope, depth int) (string, error) {
	switch value.Kind {
	case parser.ParamLiteral:
		return value.Literal, nil
	case parser.ParamVariable:
		resolved, ok := sc.local(value.Variable)
		if !ok {
			return "", &ScopeError{Code: CodeUndefinedVariable, Name: value.Variable, Pos: value.Pos}
		}
		return resolved, nil
	case parser.ParamNested:
		return r.resolveCall(value.Nested, sc, depth+1)
	default:
		return "", &ScopeError{Code: CodeUndefinedVariable, Name: value.Variable, Pos: value.Pos}
	}
}
