package parser

import "fmt"

// LexError is a fatal tokenization failure, such as an unterminated string
// or block comment. Line and Offset point at the start of the offending
// construct.
type LexError struct {
	Line   int
	Offset int
	Msg    string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at line %d: %s", e.Line, e.Msg)
}

// UnbalancedScopeError is a fatal parse failure: end of input was reached
// while the named construct's scope was still open. It reports the outermost
// unclosed construct.
type UnbalancedScopeError struct {
	Kind string
	Name string
	Line int
}

func (e *UnbalancedScopeError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("unclosed %s starting at line %d", e.Kind, e.Line)
	}
	return fmt.Sprintf("unclosed %s %q starting at line %d", e.Kind, e.Name, e.Line)
}

// reclaim replaces an inner unbalanced-scope error with the enclosing
// construct, so the outermost unclosed scope is the one reported.
func reclaim(err error, kind, name string, line int) error {
	if _, ok := err.(*UnbalancedScopeError); ok {
		return &UnbalancedScopeError{Kind: kind, Name: name, Line: line}
	}
	return err
}
