// Package composer resolves named or inline text templates at build time:
// invocations are parsed, composed against a read-only template registry,
// rendered by a pluggable engine, and — for fragments of surrounding host
// syntax — eagerly rewritten so downstream consumers see only literal text.
package composer

import (
	"github.com/goliatone/go-composer/pkg/compose"
	"github.com/goliatone/go-composer/pkg/engine"
	"github.com/goliatone/go-composer/pkg/parser"
	"github.com/goliatone/go-composer/pkg/registry"
	"github.com/goliatone/go-composer/pkg/rewrite"
)

// Template aliases the registry record type for convenience.
type Template = registry.Template

// Export aliases a composition block output entry.
type Export = compose.Export

// Engine aliases the rendering engine contract so callers can register
// custom engines without importing pkg/engine directly.
type Engine = engine.Engine

// Option customises a Composer before construction.
type Option func(*Composer)

// WithRegistry injects an already-loaded template registry.
func WithRegistry(reg *registry.Registry) Option {
	return func(c *Composer) {
		c.registry = reg
	}
}

// WithRegistryFile loads the template registry from an artifact on disk. A
// missing artifact yields an empty registry; any other load failure is
// reported by the first call that needs the registry.
func WithRegistryFile(path string) Option {
	return func(c *Composer) {
		reg, err := registry.LoadFile(path)
		if err != nil {
			c.initErr = err
			return
		}
		c.registry = reg
	}
}

// WithEngines injects a custom engine registry. The default carries
// plain-substitution, pongo2, and go-template.
func WithEngines(engines *engine.Registry) Option {
	return func(c *Composer) {
		c.engines = engines
	}
}

// WithDefaultEngine overrides the engine used when neither the invocation
// target nor the template record names one.
func WithDefaultEngine(name string) Option {
	return func(c *Composer) {
		c.defaultEngine = name
	}
}

// WithMaxDepth overrides the invocation nesting cap.
func WithMaxDepth(depth int) Option {
	return func(c *Composer) {
		c.maxDepth = depth
	}
}

// WithConstructNames overrides the identifiers the rewriter recognizes as
// the invocation and concatenation constructs.
func WithConstructNames(invocation, concat string) Option {
	return func(c *Composer) {
		c.invocationName = invocation
		c.concatName = concat
	}
}

// Composer bundles a registry, an engine set, the resolver, and the eager
// rewriter behind a single constructor. Construction problems (a bad
// registry artifact) are stashed and surfaced by the first operation, so
// callers can wire a Composer unconditionally and handle errors where they
// resolve.
type Composer struct {
	registry       *registry.Registry
	engines        *engine.Registry
	defaultEngine  string
	maxDepth       int
	invocationName string
	concatName     string

	resolver *compose.Resolver
	rewriter *rewrite.Rewriter
	initErr  error
}

// New constructs a Composer applying any provided options. Missing
// dependencies are initialised with built-ins: an empty registry and the
// default engine set.
func New(options ...Option) *Composer {
	c := &Composer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	c.resolver = compose.New(
		compose.WithRegistry(c.registry),
		compose.WithEngines(c.engines),
		compose.WithDefaultEngine(c.defaultEngine),
		compose.WithMaxDepth(c.maxDepth),
	)
	c.rewriter = rewrite.New(c.resolver,
		rewrite.WithConstructNames(c.invocationName, c.concatName),
	)
	return c
}

// Resolver exposes the configured resolver for callers that already hold
// parsed syntax.
func (c *Composer) Resolver() (*compose.Resolver, error) {
	if c.initErr != nil {
		return nil, c.initErr
	}
	return c.resolver, nil
}

// Resolve parses and resolves a single invocation argument list, e.g.
// `"user_query", fields = "id, name"`.
func (c *Composer) Resolve(src string) (string, error) {
	if c.initErr != nil {
		return "", c.initErr
	}
	call, err := parser.ParseInvocation(src)
	if err != nil {
		return "", err
	}
	return c.resolver.Resolve(call)
}

// ResolveBlock parses and resolves a composition block of let/const
// statements, returning the const exports in statement order.
func (c *Composer) ResolveBlock(src string) ([]Export, error) {
	if c.initErr != nil {
		return nil, c.initErr
	}
	block, err := parser.ParseBlock(src)
	if err != nil {
		return nil, err
	}
	return c.resolver.ResolveBlock(block)
}

// ResolveAny parses either surface form the grammar accepts. Blocks return
// their exports; single invocations return one unnamed export holding the
// resolved value.
func (c *Composer) ResolveAny(src string) ([]Export, error) {
	if c.initErr != nil {
		return nil, c.initErr
	}
	block, call, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	if block != nil {
		return c.resolver.ResolveBlock(block)
	}
	value, err := c.resolver.Resolve(call)
	if err != nil {
		return nil, err
	}
	return []Export{{Value: value}}, nil
}

// RewriteSource eagerly rewrites a host-syntax fragment, replacing every
// recognized invocation or concatenation construct with its literal result.
func (c *Composer) RewriteSource(src string) (string, error) {
	if c.initErr != nil {
		return "", c.initErr
	}
	return c.rewriter.RewriteSource(src)
}
