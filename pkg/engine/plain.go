package engine

import "strings"

// Plain is the always-available default engine: every {key} placeholder is
// replaced with its parameter value, literally and without escaping. After
// substitution the result is scanned for leftover placeholder-shaped text;
// any placeholder whose name was not supplied fails the render.
type Plain struct{}

// Name implements Engine.
func (Plain) Name() string { return DefaultName }

// Render implements Engine.
func (Plain) Render(pattern string, params map[string]string) (string, error) {
	result := pattern
	for key, value := range params {
		result = strings.ReplaceAll(result, "{"+key+"}", value)
	}

	if missing := scanPlaceholders(result, params); len(missing) > 0 {
		return "", &UnsubstitutedVariablesError{Names: missing}
	}
	return result, nil
}

// scanPlaceholders collects the names of {ident}-shaped placeholders that do
// not appear in params, in first-seen order and without duplicates.
func scanPlaceholders(text string, params map[string]string) []string {
	var missing []string
	seen := make(map[string]struct{})

	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}

		j := i + 1
		for j < len(text) && isPlaceholderChar(text[j]) {
			j++
		}
		if j == i+1 || j >= len(text) || text[j] != '}' {
			continue
		}

		name := text[i+1 : j]
		i = j
		if _, ok := params[name]; ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		missing = append(missing, name)
	}

	return missing
}

func isPlaceholderChar(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}
