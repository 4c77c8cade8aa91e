package usecase

import (
	"sort"
	"strings"

	"codemap/internal/domain"
	"codemap/internal/port"
)

// FindUseCase searches the stored symbol map by name.
type FindUseCase struct {
	store port.MapStore
}

func NewFindUseCase(store port.MapStore) *FindUseCase {
	return &FindUseCase{store: store}
}

// Match is one search hit with its location and container path.
type Match struct {
	Path      string
	Qualified string
	Symbol    domain.Symbol
}

// Find returns symbols whose name contains query, case-insensitively.
// An empty kind matches every kind. Results are ordered by path, then by
// line.
func (u *FindUseCase) Find(query string, kind domain.SymbolKind) ([]Match, error) {
	entries, err := u.store.ListFiles()
	if err != nil {
		return nil, err
	}

	queryLower := strings.ToLower(query)
	var matches []Match
	for _, entry := range entries {
		collectMatches(entry.Path, "", entry.Symbols, queryLower, kind, &matches)
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Path != matches[j].Path {
			return matches[i].Path < matches[j].Path
		}
		return matches[i].Symbol.Span.Start < matches[j].Symbol.Span.Start
	})
	return matches, nil
}

func collectMatches(path, prefix string, symbols []domain.Symbol, queryLower string, kind domain.SymbolKind, out *[]Match) {
	for _, sym := range symbols {
		qualified := sym.Name
		if prefix != "" {
			qualified = prefix + "::" + sym.Name
		}
		if (kind == "" || sym.Kind == kind) && strings.Contains(strings.ToLower(sym.Name), queryLower) {
			*out = append(*out, Match{Path: path, Qualified: qualified, Symbol: sym})
		}
		collectMatches(path, qualified, sym.Children, queryLower, kind, out)
	}
}
