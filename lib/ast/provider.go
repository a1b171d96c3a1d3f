package ast

import (
	"context"
)

// Provider builds the AST of one source file. Any parser can implement it.
type Provider interface {
	// Language is the language name, as reported by enry.
	Language() string

	Parse(ctx context.Context, path string, content []byte) (*AST, error)
}
