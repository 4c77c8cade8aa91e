package parser

// TokenType classifies a lexical token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdentifier
	TokenKeyword
	TokenNumber
	TokenString
	TokenChar
	TokenPunct
	TokenLineComment
	TokenBlockComment
	TokenWhitespace
	TokenNewline
)

// Token is one lexical token. Text is the raw source slice, comment markers
// and quotes included. Line and EndLine are 1-indexed.
type Token struct {
	Type    TokenType
	Text    string
	Line    int
	EndLine int
	Offset  int
}

// Is reports whether the token is a keyword, identifier or punctuation with
// exactly the given text.
func (t Token) Is(text string) bool {
	switch t.Type {
	case TokenKeyword, TokenIdentifier, TokenPunct:
		return t.Text == text
	}
	return false
}

// Semantic reports whether the token carries meaning for the declaration
// parsers. Comments and whitespace are trivia, visible only to the comment
// collector.
func (t Token) Semantic() bool {
	switch t.Type {
	case TokenLineComment, TokenBlockComment, TokenWhitespace, TokenNewline:
		return false
	}
	return true
}

func keywordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

var cKeywords = keywordSet(
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if",
	"inline", "int", "long", "register", "restrict", "return", "short",
	"signed", "sizeof", "static", "struct", "switch", "typedef", "union",
	"unsigned", "void", "volatile", "while",
)

var cppKeywords = keywordSet(
	"auto", "bool", "break", "case", "catch", "char", "class", "const",
	"constexpr", "continue", "decltype", "default", "delete", "do", "double",
	"else", "enum", "explicit", "extern", "false", "float", "for", "friend",
	"goto", "if", "inline", "int", "long", "mutable", "namespace", "new",
	"noexcept", "nullptr", "operator", "private", "protected", "public",
	"register", "return", "short", "signed", "sizeof", "static", "struct",
	"switch", "template", "this", "throw", "true", "try", "typedef",
	"typename", "union", "unsigned", "using", "virtual", "void", "volatile",
	"while",
)
