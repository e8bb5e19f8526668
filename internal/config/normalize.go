package config

import (
	"fmt"
	"sort"
	"strings"
)

// normalizer provides type-safe string-to-enum normalization.
type normalizer[T comparable] struct {
	name         string
	validValues  map[string]T
	defaultValue T
	validKeys    []string // Cached for error messages
}

func newNormalizer[T comparable](name string, values map[string]T, defaultValue T) *normalizer[T] {
	normalized := make(map[string]T, len(values))
	validKeys := make([]string, 0, len(values))
	for k, v := range values {
		key := normalizeKey(k)
		normalized[key] = v
		validKeys = append(validKeys, key)
	}
	sort.Strings(validKeys)

	return &normalizer[T]{
		name:         name,
		validValues:  normalized,
		defaultValue: defaultValue,
		validKeys:    validKeys,
	}
}

// Normalize returns the default value for empty or unrecognized input.
func (n *normalizer[T]) Normalize(raw string) T {
	if v, ok := n.validValues[normalizeKey(raw)]; ok {
		return v
	}
	return n.defaultValue
}

// Check reports an error for non-empty input that is not recognized.
func (n *normalizer[T]) Check(raw string) error {
	key := normalizeKey(raw)
	if key == "" {
		return nil
	}
	if _, ok := n.validValues[key]; ok {
		return nil
	}
	return fmt.Errorf("invalid %s %q, valid options: %v", n.name, raw, n.validKeys)
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
