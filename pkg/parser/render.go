package parser

import "strings"

// Render writes a syntax tree back out as source text. Leading whitespace is
// preserved per token, so a tree that was lexed and never modified renders to
// the original fragment.
func Render(nodes []Node) string {
	var sb strings.Builder
	renderInto(&sb, nodes)
	return sb.String()
}

func renderInto(sb *strings.Builder, nodes []Node) {
	for _, node := range nodes {
		sb.WriteString(node.Leading)
		switch node.Kind {
		case KindIdent:
			sb.WriteString(node.Ident)
		case KindLiteral:
			sb.WriteString(node.Text)
		case KindGroup:
			sb.WriteByte(node.Delim.Open())
			renderInto(sb, node.Children)
			sb.WriteByte(node.Delim.Close())
		case KindOther:
			sb.WriteString(node.Text)
		}
	}
}
