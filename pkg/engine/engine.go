package engine

// Engine renders a pattern against fully-resolved string parameters and
// returns the final text. Engines are selected by name through the Registry;
// the resolver never talks to a concrete engine directly.
//
// Outputs are data or code fragments, never markup, so implementations must
// not apply any markup escaping to substituted values.
type Engine interface {
	Name() string
	Render(pattern string, params map[string]string) (string, error)
}

// DefaultName is the engine used when neither the template record nor the
// resolver configuration names one.
const DefaultName = "plain-substitution"
