package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

// parseAssignments turns key=value arguments into a property map. A value
// that parses as JSON keeps its JSON type; anything else is a string.
func parseAssignments(args []string) (map[string]any, error) {
	out := make(map[string]any, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: expected key=value, got %q", domain.ErrInvalidInput, arg)
		}
		out[key] = parseValue(raw)
	}
	return out, nil
}

func parseValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}
	switch trimmed[0] {
	case '{', '[', '"':
	default:
		if trimmed != "true" && trimmed != "false" && trimmed != "null" && !looksNumeric(trimmed) {
			return raw
		}
	}
	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return raw
	}
	return v
}

func looksNumeric(s string) bool {
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '-' && i == 0:
		case r == '.' || r == 'e' || r == 'E' || r == '+':
		default:
			return false
		}
	}
	return true
}
