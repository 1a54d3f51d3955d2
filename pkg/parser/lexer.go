package parser

import "strings"

// Lex tokenizes a source fragment into the generic syntax tree consumed by
// the grammar parser and the eager rewriter. Brackets become nested groups;
// every other byte of the input survives either as a token or as leading
// whitespace, so rendering an untouched tree reproduces the source.
func Lex(src string) ([]Node, error) {
	lx := &lexer{src: src, line: 1, column: 1}
	nodes, err := lx.lexUntil(0)
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

type lexer struct {
	src    string
	offset int
	line   int
	column int
}

func (lx *lexer) pos() Position {
	return Position{Offset: lx.offset, Line: lx.line, Column: lx.column}
}

func (lx *lexer) peek() (byte, bool) {
	if lx.offset >= len(lx.src) {
		return 0, false
	}
	return lx.src[lx.offset], true
}

func (lx *lexer) advance() byte {
	ch := lx.src[lx.offset]
	lx.offset++
	if ch == '\n' {
		lx.line++
		lx.column = 1
	} else {
		lx.column++
	}
	return ch
}

// lexUntil consumes tokens until the closing bracket (or end of input when
// close is zero), leaving the closing bracket itself consumed.
func (lx *lexer) lexUntil(close byte) ([]Node, error) {
	var nodes []Node

	for {
		leading := lx.whitespace()

		ch, ok := lx.peek()
		if !ok {
			if close != 0 {
				return nil, errAt(CodeUnterminatedGroup, lx.pos(), "missing closing %q", string(close))
			}
			if leading != "" {
				// Keep trailing whitespace attached to a zero-width marker so
				// rendering stays lossless.
				nodes = append(nodes, Node{Kind: KindOther, Pos: lx.pos(), Leading: leading})
			}
			return nodes, nil
		}

		if ch == close {
			lx.advance()
			if leading != "" {
				nodes = append(nodes, Node{Kind: KindOther, Pos: lx.pos(), Leading: leading})
			}
			return nodes, nil
		}

		node, err := lx.next()
		if err != nil {
			return nil, err
		}
		node.Leading = leading
		nodes = append(nodes, node)
	}
}

func (lx *lexer) next() (Node, error) {
	pos := lx.pos()
	ch, _ := lx.peek()

	switch {
	case ch == '(', ch == '[', ch == '{':
		lx.advance()
		children, err := lx.lexUntil(Delim(ch).Close())
		if err != nil {
			return Node{}, err
		}
		return Node{Kind: KindGroup, Pos: pos, Delim: Delim(ch), Children: children}, nil

	case ch == ')', ch == ']', ch == '}':
		return Node{}, errAt(CodeUnbalancedGroup, pos, "unexpected closing %q", string(ch))

	case ch == '"':
		return lx.lexString(pos)

	case isDigit(ch):
		return lx.lexNumber(pos), nil

	case isIdentStart(ch):
		return lx.lexIdent(pos), nil

	default:
		lx.advance()
		return Node{Kind: KindOther, Pos: pos, Text: string(ch)}, nil
	}
}

func (lx *lexer) whitespace() string {
	start := lx.offset
	for {
		ch, ok := lx.peek()
		if !ok || (ch != ' ' && ch != '\t' && ch != '\n' && ch != '\r') {
			break
		}
		lx.advance()
	}
	return lx.src[start:lx.offset]
}

func (lx *lexer) lexString(pos Position) (Node, error) {
	lx.advance() // opening quote

	var value strings.Builder
	start := lx.offset
	for {
		ch, ok := lx.peek()
		if !ok || ch == '\n' {
			return Node{}, errAt(CodeUnterminatedString, pos, "missing closing quote")
		}
		if ch == '"' {
			lx.advance()
			break
		}
		if ch != '\\' {
			value.WriteByte(lx.advance())
			continue
		}

		lx.advance()
		esc, ok := lx.peek()
		if !ok {
			return Node{}, errAt(CodeUnterminatedString, pos, "missing closing quote")
		}
		switch esc {
		case 'n':
			value.WriteByte('\n')
		case 't':
			value.WriteByte('\t')
		case 'r':
			value.WriteByte('\r')
		case '\\', '"', '\'':
			value.WriteByte(esc)
		default:
			return Node{}, errAt(CodeInvalidEscape, lx.pos(), "unsupported escape \\%s", string(esc))
		}
		lx.advance()
	}

	raw := lx.src[start-1 : lx.offset]
	return Node{Kind: KindLiteral, Pos: pos, Lit: LitString, Text: raw, Value: value.String()}, nil
}

func (lx *lexer) lexNumber(pos Position) Node {
	start := lx.offset
	kind := LitInt
	for {
		ch, ok := lx.peek()
		if !ok {
			break
		}
		if ch == '.' && kind == LitInt {
			// Only a single dot followed by a digit turns this into a float.
			if lx.offset+1 < len(lx.src) && isDigit(lx.src[lx.offset+1]) {
				kind = LitFloat
				lx.advance()
				continue
			}
			break
		}
		if !isDigit(ch) && ch != '_' {
			break
		}
		lx.advance()
	}
	text := lx.src[start:lx.offset]
	return Node{Kind: KindLiteral, Pos: pos, Lit: kind, Text: text, Value: strings.ReplaceAll(text, "_", "")}
}

func (lx *lexer) lexIdent(pos Position) Node {
	start := lx.offset
	for {
		ch, ok := lx.peek()
		if !ok || !isIdentChar(ch) {
			break
		}
		lx.advance()
	}
	text := lx.src[start:lx.offset]

	if text == "true" || text == "false" {
		return Node{Kind: KindLiteral, Pos: pos, Lit: LitBool, Text: text, Value: text}
	}
	return Node{Kind: KindIdent, Pos: pos, Ident: text}
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentChar(ch byte) bool { return isIdentStart(ch) || isDigit(ch) }
