package parser

import (
	"fmt"

	"codemap/internal/domain"
)

// cursor walks the semantic tokens of a file while keeping the full stream
// (and the comment collector's documentation index) in reach. Both language
// parsers share it.
type cursor struct {
	src      string
	toks     []Token
	sem      []int // indices of semantic tokens in toks, EOF last
	pos      int
	docs     map[int]string
	warnings []domain.Warning
	partial  bool
}

func newCursor(src string, toks []Token) *cursor {
	c := &cursor{src: src, toks: toks, docs: CollectDocs(toks)}
	for i, tok := range toks {
		if tok.Semantic() {
			c.sem = append(c.sem, i)
		}
	}
	return c
}

// tok returns the current semantic token; at end of input it keeps
// returning the EOF token.
func (c *cursor) tok() Token {
	return c.peek(0)
}

func (c *cursor) peek(n int) Token {
	i := c.pos + n
	if i >= len(c.sem) {
		i = len(c.sem) - 1
	}
	return c.toks[c.sem[i]]
}

func (c *cursor) next() Token {
	tok := c.tok()
	if c.pos < len(c.sem)-1 {
		c.pos++
	}
	return tok
}

func (c *cursor) eof() bool {
	return c.tok().Type == TokenEOF
}

func (c *cursor) at(text string) bool {
	return c.tok().Is(text)
}

func (c *cursor) accept(text string) bool {
	if c.at(text) {
		c.next()
		return true
	}
	return false
}

// doc returns the documentation block attached to the current token, if any.
func (c *cursor) doc() string {
	return c.docs[c.sem[c.pos]]
}

func (c *cursor) warnf(line int, format string, args ...interface{}) {
	c.warnings = append(c.warnings, domain.Warning{
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	})
}

// textBetween slices the original source from the start of from up to the
// start of to.
func (c *cursor) textBetween(from, to Token) string {
	if from.Offset > to.Offset {
		return ""
	}
	return c.src[from.Offset:to.Offset]
}

// textThrough slices the original source from the start of from through the
// end of to.
func (c *cursor) textThrough(from, to Token) string {
	end := to.Offset + len(to.Text)
	if from.Offset > end {
		return ""
	}
	return c.src[from.Offset:end]
}

// skipPreproc consumes a preprocessor directive: every token on the
// directive's line.
func (c *cursor) skipPreproc() {
	line := c.tok().Line
	for !c.eof() && c.tok().Line == line {
		c.next()
	}
}

// skipBalancedBraces consumes from the current "{" through its matching "}",
// returning the closing token. The caller supplies the construct identity
// for the unbalanced-scope report.
func (c *cursor) skipBalancedBraces(kind, name string, startLine int) (Token, error) {
	depth := 0
	for {
		tok := c.tok()
		if tok.Type == TokenEOF {
			return Token{}, &UnbalancedScopeError{Kind: kind, Name: name, Line: startLine}
		}
		c.next()
		if tok.Is("{") {
			depth++
		} else if tok.Is("}") {
			depth--
			if depth == 0 {
				return tok, nil
			}
		}
	}
}

// skipBalancedParens is the parenthesis counterpart of skipBalancedBraces.
func (c *cursor) skipBalancedParens(kind, name string, startLine int) (Token, error) {
	depth := 0
	for {
		tok := c.tok()
		if tok.Type == TokenEOF {
			return Token{}, &UnbalancedScopeError{Kind: kind, Name: name, Line: startLine}
		}
		c.next()
		if tok.Is("(") {
			depth++
		} else if tok.Is(")") {
			depth--
			if depth == 0 {
				return tok, nil
			}
		}
	}
}

// recover skips forward to the next ";" or "}" at the current nesting depth
// and consumes a ";" terminator. Used after an unrecognized construct.
func (c *cursor) recover() {
	depth := 0
	for !c.eof() {
		tok := c.tok()
		switch {
		case tok.Is("{") || tok.Is("("):
			depth++
		case tok.Is(")"):
			if depth > 0 {
				depth--
			}
		case tok.Is("}"):
			if depth == 0 {
				return
			}
			depth--
		case tok.Is(";"):
			if depth == 0 {
				c.next()
				return
			}
		}
		c.next()
	}
}

// collectUntilSemi consumes tokens up to (not including) the terminating
// ";" at the current depth, skipping balanced braces and parentheses, and
// returns the collected tokens plus the semicolon. EOF before the semicolon
// is an unbalanced-scope failure.
func (c *cursor) collectUntilSemi(kind, name string, startLine int) ([]Token, Token, error) {
	var collected []Token
	depth := 0
	for {
		tok := c.tok()
		if tok.Type == TokenEOF {
			return nil, Token{}, &UnbalancedScopeError{Kind: kind, Name: name, Line: startLine}
		}
		if tok.Is(";") && depth == 0 {
			c.next()
			return collected, tok, nil
		}
		if tok.Is("{") || tok.Is("(") || tok.Is("[") {
			depth++
		} else if tok.Is("}") || tok.Is(")") || tok.Is("]") {
			depth--
		}
		collected = append(collected, tok)
		c.next()
	}
}
