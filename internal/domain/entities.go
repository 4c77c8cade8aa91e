package domain

import "time"

// SymbolKind classifies a declaration in the unified symbol model.
type SymbolKind string

const (
	KindFunction         SymbolKind = "function"
	KindMethod           SymbolKind = "method"
	KindConstructor      SymbolKind = "constructor"
	KindStruct           SymbolKind = "struct"
	KindClass            SymbolKind = "class"
	KindEnum             SymbolKind = "enum"
	KindEnumMember       SymbolKind = "enum_member"
	KindTypedef          SymbolKind = "typedef"
	KindTypeAlias        SymbolKind = "type_alias"
	KindNamespace        SymbolKind = "namespace"
	KindTemplateFunction SymbolKind = "template_function"
	KindTemplateClass    SymbolKind = "template_class"
	KindField            SymbolKind = "field"
)

// Span is a 1-indexed, inclusive line range in the source file.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Symbol is one extracted declaration together with its nested members.
// Children preserve source declaration order.
type Symbol struct {
	Kind      SymbolKind `json:"kind"`
	Name      string     `json:"name"`
	Signature string     `json:"signature,omitempty"`
	Doc       string     `json:"doc,omitempty"`
	Span      Span       `json:"span"`
	Access    string     `json:"access,omitempty"` // public, private, protected
	Scoped    bool       `json:"scoped,omitempty"` // enum class
	Value     *int       `json:"value,omitempty"`  // enum member value
	Language  string     `json:"language,omitempty"`
	Children  []Symbol   `json:"children,omitempty"`
}

// Warning is a non-fatal issue found during extraction.
type Warning struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// Extraction is the result of extracting one source file. Partial marks a
// best-effort result in which unrecognized constructs were skipped.
type Extraction struct {
	Symbols  []Symbol
	Warnings []Warning
	Partial  bool
}

// FileMap is the stored map entry for one indexed file.
type FileMap struct {
	Path      string    `json:"path"`
	Hash      string    `json:"hash"`
	IndexedAt time.Time `json:"indexed_at"`
	Language  string    `json:"language"`
	Lines     int       `json:"lines"`
	Partial   bool      `json:"partial,omitempty"`
	Warnings  []Warning `json:"warnings,omitempty"`
	Symbols   []Symbol  `json:"symbols"`
}

// Stats summarizes the stored map.
type Stats struct {
	TotalFiles   int `json:"total_files"`
	TotalSymbols int `json:"total_symbols"`
	TotalLines   int `json:"total_lines"`
}

// CountSymbols returns the number of symbols in the forest, nested included.
func CountSymbols(symbols []Symbol) int {
	n := 0
	for _, s := range symbols {
		n += 1 + CountSymbols(s.Children)
	}
	return n
}
