package compose

// Export is one observable output of a composition block: a const binding
// with its attributes and fully-resolved value. Export order follows
// statement order for deterministic emission.
type Export struct {
	Attrs []string
	Name  string
	Value string
}

// scope tracks the two tiers of a composition block while it evaluates:
// block-private let bindings and the ordered const export list.
type scope struct {
	locals  map[string]string
	exports []Export
}

func newScope() *scope {
	return &scope{locals: make(map[string]string)}
}

func (s *scope) addLocal(name, value string) {
	s.locals[name] = value
}

func (s *scope) local(name string) (string, bool) {
	value, ok := s.locals[name]
	return value, ok
}

func (s *scope) addExport(attrs []string, name, value string) {
	s.exports = append(s.exports, Export{Attrs: attrs, Name: name, Value: value})
}
