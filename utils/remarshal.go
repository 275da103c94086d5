package utils

import (
	"fmt"

	"github.com/go-json-experiment/json"
)

// Remarshal copies input into output through its JSON form. Values decoded
// from other formats (YAML ints, nested structs) come out with JSON types:
// float64 numbers and map[string]any objects.
func Remarshal(input any, output any) error {
	b, err := json.Marshal(input, json.Deterministic(true))
	if err != nil {
		return fmt.Errorf("remarshal encode: %w", err)
	}
	err = json.Unmarshal(b, output)
	if err != nil {
		return fmt.Errorf("remarshal decode: %w", err)
	}
	return nil
}
