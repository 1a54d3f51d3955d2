// Package rewrite implements the eager pass that replaces template
// invocations embedded in arbitrary host syntax with their literal resolved
// values. Downstream consumers that require a literal string in place (query
// checkers, code generators, anything that cannot evaluate an invocation
// node) receive the fragment only after this pass has run.
package rewrite

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-composer/pkg/compose"
	"github.com/goliatone/go-composer/pkg/parser"
)

// ConcatConstruct is the literal-concatenation identifier recognized next to
// parser.Construct: concat(a, b, ...) joins its literal elements with no
// separator after its contents have been eagerly processed.
const ConcatConstruct = "concat"

// Option customises the rewriter configuration.
type Option func(*Rewriter)

// WithConstructNames overrides the identifiers recognized as the invocation
// and concatenation constructs.
func WithConstructNames(invocation, concat string) Option {
	return func(rw *Rewriter) {
		if invocation != "" {
			rw.invocationName = invocation
		}
		if concat != "" {
			rw.concatName = concat
		}
	}
}

// Rewriter walks a fragment's syntax tree and evaluates recognized
// invocation and concatenation constructs in place. Tokens it does not
// recognize pass through untouched; state is purely positional, so one
// rewriter can process any number of independent fragments.
type Rewriter struct {
	resolver       *compose.Resolver
	invocationName string
	concatName     string
}

// New constructs a Rewriter around the given resolver.
func New(resolver *compose.Resolver, options ...Option) *Rewriter {
	rw := &Rewriter{
		resolver:       resolver,
		invocationName: parser.Construct,
		concatName:     ConcatConstruct,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(rw)
	}
	if rw.resolver == nil {
		rw.resolver = compose.New()
	}
	return rw
}

// RewriteSource lexes a source fragment, rewrites it, and renders it back to
// text. Fragments containing no recognized constructs come back byte-for-byte
// identical.
func (rw *Rewriter) RewriteSource(src string) (string, error) {
	nodes, err := parser.Lex(src)
	if err != nil {
		return "", err
	}
	out, err := rw.Rewrite(nodes)
	if err != nil {
		return "", err
	}
	return parser.Render(out), nil
}

// Rewrite processes a node sequence left to right with one token of
// lookahead:
//
//  1. A recognized identifier followed by an optional bang and a
//     parenthesized group is consumed and evaluated; the resulting string
//     literal is spliced into the output in its place.
//  2. Any other group is processed recursively and re-wrapped in the same
//     delimiter kind.
//  3. Everything else, including a recognized identifier without a following
//     argument group, passes through unchanged.
func (rw *Rewriter) Rewrite(nodes []parser.Node) ([]parser.Node, error) {
	out := make([]parser.Node, 0, len(nodes))

	for i := 0; i < len(nodes); i++ {
		node := nodes[i]

		if node.Kind == parser.KindIdent && rw.recognized(node.Ident) {
			group, consumed := callArguments(nodes, i+1)
			if consumed > 0 {
				result, err := rw.evaluate(node, group)
				if err != nil {
					return nil, err
				}
				result.Leading = node.Leading
				out = append(out, result)
				i += consumed
				continue
			}
			// Bare identifier, or identifier + bang with no argument group:
			// pass through literally.
			out = append(out, node)
			continue
		}

		if node.Kind == parser.KindGroup {
			children, err := rw.Rewrite(node.Children)
			if err != nil {
				return nil, err
			}
			node.Children = children
			out = append(out, node)
			continue
		}

		out = append(out, node)
	}

	return out, nil
}

func (rw *Rewriter) recognized(name string) bool {
	return name == rw.invocationName || name == rw.concatName
}

// callArguments looks for [!] ( ... ) starting at index i and returns the
// argument group plus how many nodes the full shape consumes beyond the
// identifier. consumed is zero when the shape does not match.
func callArguments(nodes []parser.Node, i int) (parser.Node, int) {
	consumed := 0
	if i < len(nodes) && nodes[i].IsPunct("!") {
		i++
		consumed++
	}
	if i < len(nodes) && nodes[i].Kind == parser.KindGroup && nodes[i].Delim == parser.DelimParen {
		return nodes[i], consumed + 1
	}
	return parser.Node{}, 0
}

func (rw *Rewriter) evaluate(ident parser.Node, group parser.Node) (parser.Node, error) {
	switch ident.Ident {
	case rw.invocationName:
		call, err := parser.ParseArgs(group.Children)
		if err != nil {
			return parser.Node{}, err
		}
		value, err := rw.resolver.Resolve(call)
		if err != nil {
			return parser.Node{}, err
		}
		return parser.StringLit(value, ident.Pos), nil

	case rw.concatName:
		value, err := rw.evaluateConcat(group)
		if err != nil {
			return parser.Node{}, err
		}
		return parser.StringLit(value, ident.Pos), nil

	default:
		return parser.Node{}, fmt.Errorf("rewrite: unrecognized construct %q", ident.Ident)
	}
}

// evaluateConcat eagerly processes the group contents first, so nested
// invocations collapse to string literals, then joins every literal element
// with no separator. Commas separate elements; non-literal leftovers are
// skipped rather than rejected, matching the lenient shape of the construct.
func (rw *Rewriter) evaluateConcat(group parser.Node) (string, error) {
	children, err := rw.Rewrite(group.Children)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, child := range children {
		if child.Kind == parser.KindLiteral {
			sb.WriteString(child.Value)
		}
	}
	return sb.String(), nil
}
