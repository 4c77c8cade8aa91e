package parser

import "strings"

// CollectDocs maps each semantic token that directly follows a run of
// comments to that run's documentation text. A run is the maximal sequence
// of comment tokens separated from the following token by nothing but
// whitespace and newlines; any intervening semantic token ends the run
// without attaching it. Stacked line comments and multi-line block comments
// join into a single documentation block.
//
// Keys are indices into the full token stream.
func CollectDocs(tokens []Token) map[int]string {
	docs := make(map[int]string)
	var run []Token
	for i, tok := range tokens {
		switch tok.Type {
		case TokenLineComment, TokenBlockComment:
			run = append(run, tok)
		case TokenWhitespace, TokenNewline:
			// Blank lines do not break comment-to-declaration adjacency.
		case TokenEOF:
			// Trailing comments attach to nothing.
		default:
			if len(run) > 0 {
				if text := joinCommentRun(run); text != "" {
					docs[i] = text
				}
				run = nil
			}
		}
	}
	return docs
}

func joinCommentRun(run []Token) string {
	parts := make([]string, 0, len(run))
	for _, tok := range run {
		var text string
		if tok.Type == TokenLineComment {
			text = stripLineComment(tok.Text)
		} else {
			text = stripBlockComment(tok.Text)
		}
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

func stripLineComment(text string) string {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimLeft(text, "/")
	return strings.TrimSpace(text)
}

func stripBlockComment(text string) string {
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")
	text = strings.TrimLeft(text, "*")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		lines[i] = strings.TrimSpace(line)
	}

	// Drop blank leading and trailing lines left by the markers.
	start, end := 0, len(lines)
	for start < end && lines[start] == "" {
		start++
	}
	for end > start && lines[end-1] == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
