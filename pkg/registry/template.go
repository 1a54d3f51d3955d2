package registry

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Template is one named entry of the registry artifact: a pattern string, an
// optional engine designation, and any additional metadata fields the source
// file carried. Templates are immutable once loaded; identity is the registry
// key, not anything inside the record.
type Template struct {
	// Pattern is the template text. Its placeholder syntax depends on the
	// engine: {name} for plain-substitution, {{ name }} for pongo2, and
	// {{.name}} for go-template.
	Pattern string

	// Engine names the rendering engine. Empty means the resolver default.
	Engine string

	// Metadata preserves every extra field from the source record. The core
	// never reads these; they exist for documentation and downstream tooling.
	Metadata map[string]any
}

// templateRecord is the decode shape for one artifact entry. Unknown keys
// land in Metadata via the remain tag.
type templateRecord struct {
	Pattern  string         `mapstructure:"pattern"`
	Engine   string         `mapstructure:"engine"`
	Metadata map[string]any `mapstructure:",remain"`
}

func decodeTemplate(name string, raw map[string]any) (Template, error) {
	var rec templateRecord
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: &rec})
	if err != nil {
		return Template{}, fmt.Errorf("registry: build decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return Template{}, &InvalidTemplateError{Name: name, Err: err}
	}
	if rec.Pattern == "" {
		return Template{}, &InvalidTemplateError{Name: name, Err: errMissingPattern}
	}
	if len(rec.Metadata) == 0 {
		rec.Metadata = nil
	}

	return Template{
		Pattern:  rec.Pattern,
		Engine:   rec.Engine,
		Metadata: rec.Metadata,
	}, nil
}
