package parser

import (
	"strings"

	"codemap/internal/domain"
)

// finalize assembles the cursor's accumulated state into an Extraction,
// tagging every symbol with its language and normalizing captured text.
func finalize(c *cursor, syms []domain.Symbol, lang string) *domain.Extraction {
	normalizeSymbols(syms, lang)
	return &domain.Extraction{
		Symbols:  syms,
		Warnings: c.warnings,
		Partial:  c.partial,
	}
}

func normalizeSymbols(syms []domain.Symbol, lang string) {
	for i := range syms {
		syms[i].Language = lang
		syms[i].Signature = normalizeSignature(syms[i].Signature)
		syms[i].Doc = strings.TrimSpace(syms[i].Doc)
		normalizeSymbols(syms[i].Children, lang)
	}
}

// normalizeSignature collapses all runs of whitespace, including newlines
// from multi-line declarations, to single spaces.
func normalizeSignature(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
