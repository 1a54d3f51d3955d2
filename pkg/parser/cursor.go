package parser

// cursor walks a node slice with single-token lookahead, transparently
// skipping the zero-width whitespace markers the lexer emits for lossless
// rendering.
type cursor struct {
	nodes []Node
	i     int
	last  Position
}

func newCursor(nodes []Node) *cursor {
	c := &cursor{nodes: nodes}
	c.skipMarkers()
	return c
}

func isMarker(n Node) bool {
	return n.Kind == KindOther && n.Text == ""
}

func (c *cursor) skipMarkers() {
	for c.i < len(c.nodes) && isMarker(c.nodes[c.i]) {
		c.i++
	}
}

func (c *cursor) done() bool {
	return c.i >= len(c.nodes)
}

func (c *cursor) peek() (Node, bool) {
	if c.done() {
		return Node{}, false
	}
	return c.nodes[c.i], true
}

func (c *cursor) peekAhead(n int) (Node, bool) {
	seen := 0
	for i := c.i; i < len(c.nodes); i++ {
		if isMarker(c.nodes[i]) {
			continue
		}
		if seen == n {
			return c.nodes[i], true
		}
		seen++
	}
	return Node{}, false
}

func (c *cursor) next() (Node, bool) {
	if c.done() {
		return Node{}, false
	}
	node := c.nodes[c.i]
	c.last = node.Pos
	c.i++
	c.skipMarkers()
	return node, true
}

// pos is the position of the upcoming token, or of the last consumed token
// when the input is exhausted.
func (c *cursor) pos() Position {
	if node, ok := c.peek(); ok {
		return node.Pos
	}
	return c.last
}
