// Package assemble merges normalized recipe fields with the request URL.
package assemble

import "github.com/gaurav-prasanna/recipecard/core"

// Assemble returns the final record for sourceURL. The sequences are
// copied so the result shares no backing arrays with fields.
func Assemble(fields core.Recipe, sourceURL string) core.Recipe {
	out := fields
	out.Ingredients = clone(fields.Ingredients)
	out.Instructions = clone(fields.Instructions)
	out.URL = sourceURL
	return out
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
