package parser

// Construct is the identifier that introduces an invocation in composition
// blocks and parameter values, written template("name", key = value). A
// trailing bang (template!(...)) is accepted for symmetry with the eager
// rewriter surface.
const Construct = "template"

// Parse reads either form the grammar accepts: a composition block of
// let/const statements, or a single invocation argument list. The block
// grammar is attempted first; on failure the input is re-read as a single
// invocation, mirroring how callers overwhelmingly use the short form.
// Exactly one of the returns is non-nil on success.
func Parse(src string) (*Block, *Invocation, error) {
	nodes, err := Lex(src)
	if err != nil {
		return nil, nil, err
	}

	block, blockErr := parseBlockNodes(nodes)
	if blockErr == nil {
		return block, nil, nil
	}
	if pe, ok := blockErr.(*ParseError); ok && pe.Code == CodeAttributesOnLet {
		// Attributes ahead of a let can only come from block syntax; falling
		// back would bury the real fault.
		return nil, nil, blockErr
	}

	call, callErr := ParseArgs(nodes)
	if callErr != nil {
		return nil, nil, callErr
	}
	return nil, call, nil
}

// ParseBlock reads a composition block of let/const statements.
func ParseBlock(src string) (*Block, error) {
	nodes, err := Lex(src)
	if err != nil {
		return nil, err
	}
	return parseBlockNodes(nodes)
}

// ParseInvocation reads a single invocation argument list:
// "source" [, key = value]* with an optional trailing comma.
func ParseInvocation(src string) (*Invocation, error) {
	nodes, err := Lex(src)
	if err != nil {
		return nil, err
	}
	return ParseArgs(nodes)
}

func parseBlockNodes(nodes []Node) (*Block, error) {
	c := newCursor(nodes)
	block := &Block{}

	for !c.done() {
		attrs, err := c.parseAttributes()
		if err != nil {
			return nil, err
		}

		node, _ := c.peek()
		switch {
		case node.IsIdent("let"):
			if len(attrs) > 0 {
				return nil, errAt(CodeAttributesOnLet, node.Pos, "attributes are not allowed on let bindings")
			}
			stmt, err := c.parseStatement(StmtLet, nil)
			if err != nil {
				return nil, err
			}
			block.Statements = append(block.Statements, stmt)

		case node.IsIdent("const"):
			stmt, err := c.parseStatement(StmtConst, attrs)
			if err != nil {
				return nil, err
			}
			block.Statements = append(block.Statements, stmt)

		default:
			return nil, errAt(CodeUnexpectedToken, c.pos(), "expected 'let' or 'const' statement")
		}

		// Trailing commas after statements are permitted and ignored.
		if node, ok := c.peek(); ok && node.IsPunct(",") {
			c.next()
		}
	}

	return block, nil
}

func (c *cursor) parseAttributes() ([]string, error) {
	var attrs []string
	for {
		node, ok := c.peek()
		if !ok || !node.IsPunct("#") {
			return attrs, nil
		}
		c.next()

		group, ok := c.peek()
		if !ok || group.Kind != KindGroup || group.Delim != DelimBracket {
			return nil, errAt(CodeUnexpectedToken, c.pos(), "expected [...] after '#'")
		}
		c.next()
		attrs = append(attrs, "#["+Render(group.Children)+"]")
	}
}

func (c *cursor) parseStatement(kind StatementKind, attrs []string) (Statement, error) {
	keyword, _ := c.next() // let or const, checked by the caller

	name, ok := c.next()
	if !ok || name.Kind != KindIdent {
		return Statement{}, errAt(CodeUnexpectedToken, c.pos(), "expected binding name after '%s'", kind)
	}
	if eq, ok := c.next(); !ok || !eq.IsPunct("=") {
		return Statement{}, errAt(CodeUnexpectedToken, c.pos(), "expected '=' after binding name %q", name.Ident)
	}

	call, err := c.parseCall()
	if err != nil {
		return Statement{}, err
	}

	if semi, ok := c.next(); !ok || !semi.IsPunct(";") {
		return Statement{}, errAt(CodeUnexpectedToken, c.pos(), "expected ';' after %s %s", kind, name.Ident)
	}

	return Statement{
		Kind:  kind,
		Attrs: attrs,
		Name:  name.Ident,
		Pos:   keyword.Pos,
		Call:  *call,
	}, nil
}

// parseCall reads template("source", key = value, ...) with an optional bang.
func (c *cursor) parseCall() (*Invocation, error) {
	ident, ok := c.next()
	if !ok || !ident.IsIdent(Construct) {
		return nil, errAt(CodeUnexpectedToken, c.pos(), "expected '%s(...)' invocation", Construct)
	}
	if bang, ok := c.peek(); ok && bang.IsPunct("!") {
		c.next()
	}

	group, ok := c.next()
	if !ok || group.Kind != KindGroup || group.Delim != DelimParen {
		return nil, errAt(CodeUnexpectedToken, c.pos(), "expected '(' after '%s'", Construct)
	}

	call, err := ParseArgs(group.Children)
	if err != nil {
		return nil, err
	}
	call.Pos = ident.Pos
	return call, nil
}

// ParseArgs reads an invocation argument list from an already-lexed node
// sequence: the source string literal followed by key = value pairs. The
// rewriter calls this directly with the children of an invocation group.
func ParseArgs(nodes []Node) (*Invocation, error) {
	c := newCursor(nodes)

	source, ok := c.next()
	if !ok {
		return nil, errAt(CodeInvalidSource, c.pos(), "missing template source")
	}
	if source.Kind != KindLiteral || source.Lit != LitString {
		return nil, errAt(CodeInvalidSource, source.Pos, "template source must be a string literal")
	}

	call := &Invocation{Source: source.Value, Pos: source.Pos}

	for !c.done() {
		if comma, ok := c.next(); !ok || !comma.IsPunct(",") {
			return nil, errAt(CodeInvalidParameterSyntax, c.pos(), "expected ',' between arguments")
		}
		if c.done() {
			break // trailing comma
		}

		param, err := c.parseParam()
		if err != nil {
			return nil, err
		}
		call.Params = append(call.Params, param)
	}

	return call, nil
}

func (c *cursor) parseParam() (Param, error) {
	key, ok := c.next()
	if !ok || key.Kind != KindIdent {
		return Param{}, errAt(CodeInvalidParameterSyntax, c.pos(), "expected 'key = value' argument")
	}
	if eq, ok := c.next(); !ok || !eq.IsPunct("=") {
		return Param{}, errAt(CodeInvalidParameterSyntax, c.pos(), "expected '=' after parameter name %q", key.Ident)
	}

	value, err := c.parseParamValue()
	if err != nil {
		return Param{}, err
	}

	return Param{Key: key.Ident, Pos: key.Pos, Value: value}, nil
}

func (c *cursor) parseParamValue() (ParamValue, error) {
	node, ok := c.peek()
	if !ok {
		return ParamValue{}, errAt(CodeInvalidParameterValue, c.pos(), "missing parameter value")
	}

	switch node.Kind {
	case KindLiteral:
		c.next()
		return literalValue(node)

	case KindOther:
		// Unary minus ahead of a numeric literal.
		if node.Text == "-" {
			c.next()
			num, ok := c.peek()
			if ok && num.Kind == KindLiteral && (num.Lit == LitInt || num.Lit == LitFloat) {
				c.next()
				return ParamValue{Kind: ParamLiteral, Pos: node.Pos, Literal: "-" + num.Value}, nil
			}
			return ParamValue{}, errAt(CodeInvalidParameterValue, node.Pos, "expected numeric literal after '-'")
		}
		return ParamValue{}, errAt(CodeInvalidParameterValue, node.Pos, "parameter value must be a literal, variable reference, or %s(...) call", Construct)

	case KindIdent:
		c.next()
		if c.atCallArguments() {
			if node.Ident != Construct {
				return ParamValue{}, errAt(CodeInvalidParameterValue, node.Pos, "only %s(...) calls are supported in parameters", Construct)
			}
			if bang, ok := c.peek(); ok && bang.IsPunct("!") {
				c.next()
			}
			group, _ := c.next()
			nested, err := ParseArgs(group.Children)
			if err != nil {
				return ParamValue{}, err
			}
			nested.Pos = node.Pos
			return ParamValue{Kind: ParamNested, Pos: node.Pos, Nested: nested}, nil
		}
		return ParamValue{Kind: ParamVariable, Pos: node.Pos, Variable: node.Ident}, nil

	default:
		return ParamValue{}, errAt(CodeInvalidParameterValue, node.Pos, "parameter value must be a literal, variable reference, or %s(...) call", Construct)
	}
}

func literalValue(node Node) (ParamValue, error) {
	switch node.Lit {
	case LitString, LitInt, LitFloat, LitBool:
		return ParamValue{Kind: ParamLiteral, Pos: node.Pos, Literal: node.Value}, nil
	default:
		return ParamValue{}, errAt(CodeUnsupportedLiteralType, node.Pos, "unsupported literal type %s", node.Lit)
	}
}

// atCallArguments reports whether the cursor sits at [!] ( ... ), i.e. the
// argument group of an invocation.
func (c *cursor) atCallArguments() bool {
	node, ok := c.peek()
	if !ok {
		return false
	}
	if node.IsPunct("!") {
		node, ok = c.peekAhead(1)
		if !ok {
			return false
		}
	}
	return node.Kind == KindGroup && node.Delim == DelimParen
}
