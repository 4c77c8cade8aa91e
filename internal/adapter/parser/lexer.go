package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// lexer scans source text into tokens, tracking line numbers and byte
// offsets.
type lexer struct {
	src      string
	keywords map[string]struct{}
	pos      int
	line     int
}

// Tokenize materializes the full token stream for the given source. Comments
// and whitespace are first-class tokens so the comment collector can see
// them. It fails with a LexError on unterminated strings, char literals and
// block comments.
func Tokenize(src string, keywords map[string]struct{}) ([]Token, error) {
	l := &lexer{src: src, keywords: keywords, line: 1}
	var toks []Token
	for {
		tok, err := l.scan()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == TokenEOF {
			return toks, nil
		}
	}
}

func (l *lexer) scan() (Token, error) {
	if l.pos >= len(l.src) {
		return Token{Type: TokenEOF, Line: l.line, EndLine: l.line, Offset: l.pos}, nil
	}

	start := l.pos
	startLine := l.line
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])

	switch {
	case r == '\n':
		l.pos += size
		l.line++
		return Token{Type: TokenNewline, Text: "\n", Line: startLine, EndLine: startLine, Offset: start}, nil

	case r == ' ' || r == '\t' || r == '\r':
		for l.pos < len(l.src) {
			c := l.src[l.pos]
			if c != ' ' && c != '\t' && c != '\r' {
				break
			}
			l.pos++
		}
		return l.emit(TokenWhitespace, start, startLine), nil

	case r == '/':
		return l.scanSlash(start, startLine)

	case r == '"':
		return l.scanQuoted(start, startLine, '"', TokenString, "unterminated string literal")

	case r == '\'':
		return l.scanQuoted(start, startLine, '\'', TokenChar, "unterminated char literal")

	case r == '_' || unicode.IsLetter(r):
		l.pos += size
		for l.pos < len(l.src) {
			r, size = utf8.DecodeRuneInString(l.src[l.pos:])
			if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				break
			}
			l.pos += size
		}
		tok := l.emit(TokenIdentifier, start, startLine)
		if _, ok := l.keywords[tok.Text]; ok {
			tok.Type = TokenKeyword
		}
		return tok, nil

	case unicode.IsDigit(r):
		l.pos += size
		for l.pos < len(l.src) {
			r, size = utf8.DecodeRuneInString(l.src[l.pos:])
			if r != '.' && r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				break
			}
			l.pos += size
		}
		return l.emit(TokenNumber, start, startLine), nil

	default:
		l.pos += size
		// The only multi-rune punctuation the parsers rely on.
		if rest := l.src[l.pos:]; (r == ':' && strings.HasPrefix(rest, ":")) ||
			(r == '-' && strings.HasPrefix(rest, ">")) {
			l.pos++
		}
		return l.emit(TokenPunct, start, startLine), nil
	}
}

func (l *lexer) scanSlash(start, startLine int) (Token, error) {
	l.pos++ // '/'
	if l.pos < len(l.src) && l.src[l.pos] == '/' {
		for l.pos < len(l.src) && l.src[l.pos] != '\n' {
			l.pos++
		}
		return l.emit(TokenLineComment, start, startLine), nil
	}
	if l.pos < len(l.src) && l.src[l.pos] == '*' {
		l.pos++
		for l.pos < len(l.src) {
			if l.src[l.pos] == '\n' {
				l.line++
				l.pos++
				continue
			}
			if l.src[l.pos] == '*' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
				l.pos += 2
				return l.emit(TokenBlockComment, start, startLine), nil
			}
			l.pos++
		}
		return Token{}, &LexError{Line: startLine, Offset: start, Msg: "unterminated block comment"}
	}
	return l.emit(TokenPunct, start, startLine), nil
}

func (l *lexer) scanQuoted(start, startLine int, quote byte, typ TokenType, failMsg string) (Token, error) {
	l.pos++ // opening quote
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case '\\':
			l.pos += 2
		case '\n':
			return Token{}, &LexError{Line: startLine, Offset: start, Msg: failMsg}
		case quote:
			l.pos++
			return l.emit(typ, start, startLine), nil
		default:
			l.pos++
		}
	}
	return Token{}, &LexError{Line: startLine, Offset: start, Msg: failMsg}
}

func (l *lexer) emit(typ TokenType, start, startLine int) Token {
	return Token{
		Type:    typ,
		Text:    l.src[start:l.pos],
		Line:    startLine,
		EndLine: l.line,
		Offset:  start,
	}
}
