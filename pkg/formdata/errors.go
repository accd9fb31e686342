package formdata

import (
	"strings"
)

// Messages normalizes a field error into trimmed, de-duplicated messages.
// Strings, string slices, error values and arbitrary slices are accepted.
func Messages(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case error:
		return normalizeMessages([]string{val.Error()})
	case []error:
		raw := make([]string, 0, len(val))
		for _, err := range val {
			if err != nil {
				raw = append(raw, err.Error())
			}
		}
		return normalizeMessages(raw)
	}
	return normalizeMessages(Strings(v))
}

// HasError reports whether v carries at least one non-blank message.
func HasError(v any) bool {
	return len(Messages(v)) > 0
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
