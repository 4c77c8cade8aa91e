package parser

import (
	"fmt"
	"sort"

	"codemap/internal/domain"
	"codemap/internal/port"
)

var registry = map[string]func() port.DeclarationParser{}

// Register makes a parser constructor available under a language name.
// Registering the same language twice panics; that is a programming error.
func Register(language string, ctor func() port.DeclarationParser) {
	if _, dup := registry[language]; dup {
		panic(fmt.Sprintf("parser: duplicate registration for language %q", language))
	}
	registry[language] = ctor
}

// New returns a fresh parser for the given language.
func New(language string) (port.DeclarationParser, error) {
	ctor, ok := registry[language]
	if !ok {
		return nil, fmt.Errorf("parser: unsupported language %q", language)
	}
	return ctor(), nil
}

// Languages lists the registered language names in sorted order.
func Languages() []string {
	out := make([]string, 0, len(registry))
	for lang := range registry {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// Extract parses source in the given language and returns its symbol tree.
func Extract(language, source string) (*domain.Extraction, error) {
	p, err := New(language)
	if err != nil {
		return nil, err
	}
	return p.Parse(source)
}

func init() {
	Register("c", func() port.DeclarationParser { return NewCParser() })
	Register("cpp", func() port.DeclarationParser { return NewCppParser() })
}
