package calculation

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

// ErrDataIntegrity marks failures caused by missing or malformed table data
// rather than by the input.
var ErrDataIntegrity = errors.New("data integrity error")

// ValidationError reports every input field that failed validation, keyed by
// its dotted path (for example "children[0].care").
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// add records msg for field unless the field already has a message
func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) errOrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
