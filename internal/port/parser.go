package port

import "codemap/internal/domain"

// DeclarationParser extracts the declaration structure of one source file.
// Implementations are pure: identical input always yields an identical
// symbol forest.
type DeclarationParser interface {
	// Language returns the tag this parser is registered under.
	Language() string

	// Parse extracts the symbol forest from source text. It returns a fatal
	// error (LexError, UnbalancedScopeError) only when no usable forest can
	// be produced; recoverable problems are reported as warnings on the
	// extraction, which is then marked partial.
	Parse(source string) (*domain.Extraction, error)
}
