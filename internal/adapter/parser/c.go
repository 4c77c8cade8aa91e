package parser

import (
	"strconv"
	"strings"

	"codemap/internal/domain"
)

// CParser extracts declaration structure from C source: structs, enums,
// typedefs and free functions.
type CParser struct{}

func NewCParser() *CParser {
	return &CParser{}
}

func (p *CParser) Language() string {
	return "c"
}

func (p *CParser) Parse(source string) (*domain.Extraction, error) {
	toks, err := Tokenize(source, cKeywords)
	if err != nil {
		return nil, err
	}
	c := newCursor(source, toks)

	var syms []domain.Symbol
	for !c.eof() {
		switch {
		case c.at(";"):
			c.next()
		case c.at("#"):
			c.skipPreproc()
		case c.at("enum") && enumIntroducesType(c):
			sym, err := parseEnum(c, false)
			if err != nil {
				return nil, err
			}
			syms = append(syms, sym)
		case c.at("struct") && classLikeIntroducesType(c):
			sym, err := parseStructC(c)
			if err != nil {
				return nil, err
			}
			syms = append(syms, sym)
		case c.at("typedef"):
			sym, err := parseTypedef(c, false)
			if err != nil {
				return nil, err
			}
			syms = append(syms, sym)
		default:
			sym, err := parseFunction(c)
			if err != nil {
				return nil, err
			}
			if sym != nil {
				syms = append(syms, *sym)
			}
		}
	}
	return finalize(c, syms, "c"), nil
}

// enumIntroducesType reports whether the current "enum" keyword starts a
// type declaration rather than, say, an enum-typed function return.
func enumIntroducesType(c *cursor) bool {
	i := 1
	if c.peek(i).Is("class") || c.peek(i).Is("struct") {
		i++
	}
	if c.peek(i).Type == TokenIdentifier {
		i++
	}
	return c.peek(i).Is("{") || c.peek(i).Is(":") || c.peek(i).Is(";")
}

// classLikeIntroducesType is the analogous check for struct/class keywords.
func classLikeIntroducesType(c *cursor) bool {
	i := 1
	if c.peek(i).Type == TokenIdentifier {
		i++
		if c.peek(i).Is("final") {
			i++
		}
	}
	return c.peek(i).Is("{") || c.peek(i).Is(":") || c.peek(i).Is(";")
}

// parseEnum parses an enum declaration from the "enum" keyword through the
// closing brace. Member values follow standard enum semantics: an explicit
// integer literal resets the counter, otherwise previous+1 (0 for the
// first).
func parseEnum(c *cursor, cpp bool) (domain.Symbol, error) {
	doc := c.doc()
	start := c.next() // enum
	sym := domain.Symbol{
		Kind: domain.KindEnum,
		Doc:  doc,
		Span: domain.Span{Start: start.Line, End: start.Line},
	}
	if cpp && (c.at("class") || c.at("struct")) {
		c.next()
		sym.Scoped = true
	}
	if c.tok().Type == TokenIdentifier {
		sym.Name = c.next().Text
	}
	// Underlying-type clause, or a bodiless forward declaration.
	for !c.at("{") && !c.at(";") && !c.eof() {
		c.next()
	}
	if c.at(";") {
		sym.Span.End = c.next().Line
		return sym, nil
	}
	if c.eof() {
		return sym, &UnbalancedScopeError{Kind: "enum", Name: sym.Name, Line: start.Line}
	}
	c.next() // '{'

	nextValue := 0
	for !c.at("}") {
		if c.eof() {
			return sym, &UnbalancedScopeError{Kind: "enum", Name: sym.Name, Line: start.Line}
		}
		if c.tok().Type != TokenIdentifier {
			c.warnf(c.tok().Line, "unrecognized enum member starting at %q", c.tok().Text)
			c.partial = true
			skipEnumMember(c)
			continue
		}
		mdoc := c.doc()
		nameTok := c.next()
		member := domain.Symbol{
			Kind: domain.KindEnumMember,
			Name: nameTok.Text,
			Doc:  mdoc,
			Span: domain.Span{Start: nameTok.Line, End: nameTok.Line},
		}
		if c.accept("=") {
			if v, ok := parseEnumValue(c); ok {
				nextValue = v
			} else {
				// Non-literal initializer; value keeps counting from the
				// previous member.
				for !c.eof() && !c.at(",") && !c.at("}") {
					c.next()
				}
			}
		}
		value := nextValue
		member.Value = &value
		nextValue++
		sym.Children = append(sym.Children, member)
		if !c.accept(",") && !c.at("}") {
			c.warnf(c.tok().Line, "unexpected token %q in enum %s", c.tok().Text, sym.Name)
			c.partial = true
			skipEnumMember(c)
		}
	}
	sym.Span.End = c.next().Line
	return sym, nil
}

func skipEnumMember(c *cursor) {
	for !c.eof() && !c.at(",") && !c.at("}") {
		c.next()
	}
	c.accept(",")
}

func parseEnumValue(c *cursor) (int, bool) {
	neg := false
	if c.at("-") {
		c.next()
		neg = true
	}
	if c.tok().Type != TokenNumber {
		return 0, false
	}
	v, err := strconv.ParseInt(c.next().Text, 0, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	// Anything beyond a single literal is a constant expression we do not
	// evaluate.
	if !c.at(",") && !c.at("}") {
		return 0, false
	}
	return int(v), true
}

// parseStructC parses a C struct declaration with its field list.
func parseStructC(c *cursor) (domain.Symbol, error) {
	doc := c.doc()
	start := c.next() // struct
	sym := domain.Symbol{
		Kind: domain.KindStruct,
		Doc:  doc,
		Span: domain.Span{Start: start.Line, End: start.Line},
	}
	if c.tok().Type == TokenIdentifier {
		sym.Name = c.next().Text
	}
	if c.at(";") {
		sym.Span.End = c.next().Line
		return sym, nil
	}
	if !c.at("{") {
		c.warnf(start.Line, "unrecognized struct declaration %q", sym.Name)
		c.partial = true
		c.recover()
		return sym, nil
	}
	if err := parseStructBody(c, &sym); err != nil {
		return sym, err
	}
	return sym, nil
}

// parseStructBody consumes from "{" through "}" producing Field children.
func parseStructBody(c *cursor, sym *domain.Symbol) error {
	c.next() // '{'
	for !c.at("}") {
		if c.eof() {
			return &UnbalancedScopeError{Kind: "struct", Name: sym.Name, Line: sym.Span.Start}
		}
		if c.accept(";") {
			continue
		}
		fdoc := c.doc()
		toks, semi, err := c.collectUntilSemi("struct", sym.Name, sym.Span.Start)
		if err != nil {
			return err
		}
		fields := declaratorFields(c, toks, semi)
		if len(fields) == 0 {
			c.warnf(semi.Line, "unrecognized member in struct %s", sym.Name)
			c.partial = true
			continue
		}
		fields[0].Doc = fdoc
		sym.Children = append(sym.Children, fields...)
	}
	sym.Span.End = c.next().Line
	return nil
}

// declaratorFields turns one field declaration into per-declarator Field
// symbols: "double x, y, z;" yields three fields sharing the base type.
func declaratorFields(c *cursor, toks []Token, semi Token) []domain.Symbol {
	if len(toks) == 0 {
		return nil
	}
	// Function-pointer declarator: the name follows "(*".
	for i := 0; i < len(toks)-1; i++ {
		if toks[i].Is("(") && toks[i+1].Is("*") {
			j := i + 1
			for j < len(toks) && toks[j].Is("*") {
				j++
			}
			if j < len(toks) && toks[j].Type == TokenIdentifier {
				return []domain.Symbol{{
					Kind:      domain.KindField,
					Name:      toks[j].Text,
					Signature: c.textBetween(toks[0], semi),
					Span:      domain.Span{Start: toks[0].Line, End: semi.EndLine},
				}}
			}
		}
	}
	var fields []domain.Symbol
	var baseType string
	for i, seg := range splitTopLevel(toks, ",") {
		nameIdx := lastIdentifier(seg)
		if nameIdx < 0 {
			continue
		}
		name := seg[nameIdx]
		if i == 0 {
			baseType = strings.TrimSpace(c.textBetween(seg[0], name))
		}
		fields = append(fields, domain.Symbol{
			Kind:      domain.KindField,
			Name:      name.Text,
			Signature: baseType + " " + name.Text,
			Span:      domain.Span{Start: name.Line, End: name.Line},
		})
	}
	return fields
}

// parseTypedef parses "typedef <type-expr> NAME;", including function
// pointers and typedefs wrapping an inline struct/enum body.
func parseTypedef(c *cursor, cpp bool) (domain.Symbol, error) {
	doc := c.doc()
	start := c.next() // typedef

	bodied := func(at int) bool {
		return c.peek(at).Is("{") || (c.peek(at).Type == TokenIdentifier && c.peek(at+1).Is("{"))
	}
	if (c.at("struct") || c.at("enum")) && bodied(1) {
		var sym domain.Symbol
		var err error
		if c.at("struct") {
			sym, err = parseStructC(c)
		} else {
			sym, err = parseEnum(c, cpp)
		}
		if err != nil {
			return sym, reclaim(err, "typedef", sym.Name, start.Line)
		}
		if c.tok().Type == TokenIdentifier && sym.Name == "" {
			sym.Name = c.tok().Text
		}
		_, semi, err := c.collectUntilSemi("typedef", sym.Name, start.Line)
		if err != nil {
			return sym, err
		}
		sym.Doc = doc
		sym.Span.Start = start.Line
		sym.Span.End = semi.EndLine
		return sym, nil
	}

	toks, semi, err := c.collectUntilSemi("typedef", "", start.Line)
	if err != nil {
		return domain.Symbol{}, err
	}
	name := ""
	for i := 0; i < len(toks)-1; i++ {
		if toks[i].Is("(") && toks[i+1].Is("*") {
			j := i + 1
			for j < len(toks) && toks[j].Is("*") {
				j++
			}
			if j < len(toks) && toks[j].Type == TokenIdentifier {
				name = toks[j].Text
			}
			break
		}
	}
	if name == "" {
		if idx := lastIdentifier(toks); idx >= 0 {
			name = toks[idx].Text
		}
	}
	sym := domain.Symbol{
		Kind:      domain.KindTypedef,
		Name:      name,
		Doc:       doc,
		Signature: c.textBetween(start, semi),
		Span:      domain.Span{Start: start.Line, End: semi.EndLine},
	}
	if name == "" {
		c.warnf(start.Line, "typedef with no resolvable name")
		c.partial = true
	}
	return sym, nil
}

// parseFunction parses a free function definition or prototype. A definition
// is recognized by the "(" following the declarator; a prototype ending in
// ";" is recorded without a body and reported as a warning. Anything that is
// not function-shaped is skipped with an unrecognized-construct warning.
func parseFunction(c *cursor) (*domain.Symbol, error) {
	doc := c.doc()
	startTok := c.tok()
	var head []Token
	angle := 0
	for {
		tok := c.tok()
		if tok.Type == TokenEOF {
			return nil, &UnbalancedScopeError{Kind: "declaration", Line: startTok.Line}
		}
		if tok.Is("<") {
			angle++
		} else if tok.Is(">") && angle > 0 {
			angle--
		}
		if angle == 0 && (tok.Is("(") || tok.Is(";") || tok.Is("{") || tok.Is("=") || tok.Is("}")) {
			break
		}
		head = append(head, tok)
		c.next()
	}
	if !c.tok().Is("(") {
		c.warnf(startTok.Line, "unrecognized construct starting at %q", startTok.Text)
		c.partial = true
		if len(head) == 0 && c.at("}") {
			// Stray closing brace; consume it so the scan makes progress.
			c.next()
		} else {
			c.recover()
		}
		return nil, nil
	}
	nameIdx := lastIdentifier(head)
	if nameIdx < 0 {
		c.warnf(startTok.Line, "declarator with no name")
		c.partial = true
		c.recover()
		return nil, nil
	}
	name := head[nameIdx].Text

	closeParen, err := c.skipBalancedParens("function", name, startTok.Line)
	if err != nil {
		return nil, err
	}
	sigEnd := closeParen
	for c.at("const") || c.at("noexcept") || c.at("override") || c.at("final") || c.at("volatile") {
		sigEnd = c.next()
	}
	sym := domain.Symbol{
		Kind:      domain.KindFunction,
		Name:      name,
		Doc:       doc,
		Signature: c.textThrough(startTok, sigEnd),
		Span:      domain.Span{Start: startTok.Line, End: sigEnd.EndLine},
	}
	switch {
	case c.at("{"):
		closing, err := c.skipBalancedBraces("function", name, startTok.Line)
		if err != nil {
			return nil, err
		}
		sym.Span.End = closing.Line
	case c.at(";"):
		sym.Span.End = c.next().Line
		c.warnf(startTok.Line, "function prototype %q has no body", name)
	default:
		c.warnf(startTok.Line, "unrecognized construct after declarator %q", name)
		c.partial = true
		c.recover()
		return nil, nil
	}
	return &sym, nil
}

func splitTopLevel(toks []Token, sep string) [][]Token {
	var out [][]Token
	var cur []Token
	depth, angle := 0, 0
	for _, t := range toks {
		switch {
		case t.Is("(") || t.Is("[") || t.Is("{"):
			depth++
		case t.Is(")") || t.Is("]") || t.Is("}"):
			depth--
		case t.Is("<"):
			angle++
		case t.Is(">"):
			if angle > 0 {
				angle--
			}
		case t.Is(sep) && depth == 0 && angle == 0:
			out = append(out, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func lastIdentifier(toks []Token) int {
	for i := len(toks) - 1; i >= 0; i-- {
		if toks[i].Type == TokenIdentifier {
			return i
		}
	}
	return -1
}
