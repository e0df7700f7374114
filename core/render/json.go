package render

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/gaurav-prasanna/recipecard/core"
)

// JSONRenderer writes the canonical record as indented JSON.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals the record unchanged.
func (r *JSONRenderer) Render(recipe core.Recipe) ([]byte, error) {
	data, err := sonic.ConfigStd.MarshalIndent(recipe, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// ContentType returns the MIME type for JSON output.
func (r *JSONRenderer) ContentType() string {
	return "application/json; charset=utf-8"
}
