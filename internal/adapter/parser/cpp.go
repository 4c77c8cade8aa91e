package parser

import (
	"strings"

	"codemap/internal/domain"
)

// CppParser extracts declaration structure from C++ source. It handles
// everything the C parser does plus namespaces, classes with access
// control, scoped enums, templates and type aliases.
type CppParser struct{}

func NewCppParser() *CppParser {
	return &CppParser{}
}

func (p *CppParser) Language() string {
	return "cpp"
}

func (p *CppParser) Parse(source string) (*domain.Extraction, error) {
	toks, err := Tokenize(source, cppKeywords)
	if err != nil {
		return nil, err
	}
	c := newCursor(source, toks)
	syms, err := parseCppScope(c, false)
	if err != nil {
		return nil, err
	}
	return finalize(c, syms, "cpp"), nil
}

// parseCppScope parses declarations until end of input or, when nested, the
// enclosing scope's closing brace (left unconsumed for the caller).
func parseCppScope(c *cursor, nested bool) ([]domain.Symbol, error) {
	var syms []domain.Symbol
	for !c.eof() {
		if nested && c.at("}") {
			return syms, nil
		}
		var sym *domain.Symbol
		var err error
		switch {
		case c.at(";"):
			c.next()
			continue
		case c.at("#"):
			c.skipPreproc()
			continue
		case c.at("namespace"):
			sym, err = parseNamespace(c)
		case c.at("template"):
			sym, err = parseTemplate(c)
		case (c.at("class") || c.at("struct")) && classLikeIntroducesType(c):
			sym, err = parseClass(c)
		case c.at("enum") && enumIntroducesType(c):
			var e domain.Symbol
			e, err = parseEnum(c, true)
			sym = &e
		case c.at("typedef"):
			var t domain.Symbol
			t, err = parseTypedef(c, true)
			sym = &t
		case c.at("using"):
			sym, err = parseUsing(c)
		case c.at("extern") && c.peek(1).Type == TokenString:
			inner, ierr := parseExternBlock(c)
			if ierr != nil {
				return nil, ierr
			}
			syms = append(syms, inner...)
			continue
		default:
			sym, err = parseFunction(c)
		}
		if err != nil {
			return nil, err
		}
		if sym != nil {
			syms = append(syms, *sym)
		}
	}
	return syms, nil
}

// parseNamespace parses "namespace NAME { ... }" with unbounded nesting.
// Member names stay local; qualification is a downstream concern.
func parseNamespace(c *cursor) (*domain.Symbol, error) {
	doc := c.doc()
	start := c.next() // namespace
	var name strings.Builder
	for c.tok().Type == TokenIdentifier {
		name.WriteString(c.next().Text)
		if !c.at("::") {
			break
		}
		name.WriteString(c.next().Text)
	}
	if !c.at("{") {
		// Namespace alias or ill-formed declaration.
		c.warnf(start.Line, "unrecognized namespace declaration %q", name.String())
		c.partial = true
		c.recover()
		return nil, nil
	}
	c.next() // '{'
	children, err := parseCppScope(c, true)
	if err != nil {
		return nil, reclaim(err, "namespace", name.String(), start.Line)
	}
	if !c.at("}") {
		return nil, &UnbalancedScopeError{Kind: "namespace", Name: name.String(), Line: start.Line}
	}
	closing := c.next()
	return &domain.Symbol{
		Kind:     domain.KindNamespace,
		Name:     name.String(),
		Doc:      doc,
		Span:     domain.Span{Start: start.Line, End: closing.Line},
		Children: children,
	}, nil
}

// parseTemplate captures the template parameter list into the templated
// entity's signature and retags its kind as the template variant.
func parseTemplate(c *cursor) (*domain.Symbol, error) {
	doc := c.doc()
	start := c.next() // template
	if !c.at("<") {
		c.warnf(start.Line, "template keyword without parameter list")
		c.partial = true
		c.recover()
		return nil, nil
	}
	depth := 0
	var closeAngle Token
	for {
		tok := c.tok()
		if tok.Type == TokenEOF {
			return nil, &UnbalancedScopeError{Kind: "template", Line: start.Line}
		}
		c.next()
		if tok.Is("<") {
			depth++
		} else if tok.Is(">") {
			depth--
			if depth == 0 {
				closeAngle = tok
				break
			}
		}
	}
	params := c.textThrough(start, closeAngle)

	var inner *domain.Symbol
	var err error
	if (c.at("class") || c.at("struct")) && classLikeIntroducesType(c) {
		inner, err = parseClass(c)
	} else {
		inner, err = parseFunction(c)
	}
	if err != nil {
		return nil, reclaim(err, "template", "", start.Line)
	}
	if inner == nil {
		return nil, nil
	}
	switch inner.Kind {
	case domain.KindClass, domain.KindStruct:
		inner.Kind = domain.KindTemplateClass
	case domain.KindFunction, domain.KindMethod:
		inner.Kind = domain.KindTemplateFunction
	}
	inner.Signature = strings.TrimSpace(params + " " + inner.Signature)
	inner.Span.Start = start.Line
	if inner.Doc == "" {
		inner.Doc = doc
	}
	return inner, nil
}

// parseClass parses a class or struct with access-controlled members.
// Anonymous and forward declarations produce no symbol.
func parseClass(c *cursor) (*domain.Symbol, error) {
	doc := c.doc()
	start := c.next() // class|struct
	kind := domain.KindClass
	access := "private"
	scopeWord := "class"
	if start.Text == "struct" {
		kind = domain.KindStruct
		access = "public"
		scopeWord = "struct"
	}
	name := ""
	if c.tok().Type == TokenIdentifier {
		name = c.next().Text
	}
	// final specifier and base clause
	for !c.at("{") && !c.at(";") && !c.eof() {
		c.next()
	}
	if c.at(";") {
		c.next()
		return nil, nil
	}
	if c.eof() {
		return nil, &UnbalancedScopeError{Kind: scopeWord, Name: name, Line: start.Line}
	}
	c.next() // '{'
	members, err := parseClassBody(c, name, access, scopeWord, start.Line)
	if err != nil {
		return nil, reclaim(err, scopeWord, name, start.Line)
	}
	if !c.at("}") {
		return nil, &UnbalancedScopeError{Kind: scopeWord, Name: name, Line: start.Line}
	}
	closing := c.next()
	if name == "" {
		// Anonymous class/struct with a trailing variable declarator.
		for !c.at(";") && !c.eof() {
			c.next()
		}
		c.accept(";")
		return nil, nil
	}
	return &domain.Symbol{
		Kind:     kind,
		Name:     name,
		Doc:      doc,
		Span:     domain.Span{Start: start.Line, End: closing.Line},
		Children: members,
	}, nil
}

func parseClassBody(c *cursor, className, access, scopeWord string, startLine int) ([]domain.Symbol, error) {
	var members []domain.Symbol
	appendWithAccess := func(sym *domain.Symbol) {
		if sym != nil {
			sym.Access = access
			members = append(members, *sym)
		}
	}
	for !c.at("}") {
		if c.eof() {
			return nil, &UnbalancedScopeError{Kind: scopeWord, Name: className, Line: startLine}
		}
		switch {
		case c.at(";"):
			c.next()
		case c.at("public") || c.at("private") || c.at("protected"):
			spec := c.next().Text
			if c.accept(":") {
				access = spec
			} else {
				c.warnf(c.tok().Line, "access specifier %q without colon", spec)
				c.partial = true
				c.recover()
			}
		case (c.at("class") || c.at("struct")) && classLikeIntroducesType(c):
			nested, err := parseClass(c)
			if err != nil {
				return nil, err
			}
			appendWithAccess(nested)
		case c.at("enum") && enumIntroducesType(c):
			e, err := parseEnum(c, true)
			if err != nil {
				return nil, err
			}
			appendWithAccess(&e)
		case c.at("typedef"):
			t, err := parseTypedef(c, true)
			if err != nil {
				return nil, err
			}
			appendWithAccess(&t)
		case c.at("using"):
			u, err := parseUsing(c)
			if err != nil {
				return nil, err
			}
			appendWithAccess(u)
		case c.at("template"):
			t, err := parseTemplate(c)
			if err != nil {
				return nil, err
			}
			appendWithAccess(t)
		case c.at("friend"):
			c.recover()
		default:
			ms, err := parseMember(c, className, access, scopeWord)
			if err != nil {
				return nil, err
			}
			members = append(members, ms...)
		}
	}
	return members, nil
}

// parseMember handles one member declaration: a method, a constructor (no
// return type, name matching the class), a destructor, or field
// declarators.
func parseMember(c *cursor, className, access, scopeWord string) ([]domain.Symbol, error) {
	doc := c.doc()
	startTok := c.tok()
	var head []Token
	angle := 0
	for {
		tok := c.tok()
		if tok.Type == TokenEOF {
			return nil, &UnbalancedScopeError{Kind: scopeWord, Name: className, Line: startTok.Line}
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
		if c.at("}") {
			// The declaration ran into the class's closing brace.
			c.warnf(startTok.Line, "unrecognized member in %s %s", scopeWord, className)
			c.partial = true
			return nil, nil
		}
		rest, semi, err := c.collectUntilSemi(scopeWord, className, startTok.Line)
		if err != nil {
			return nil, err
		}
		fields := declaratorFields(c, append(head, rest...), semi)
		if len(fields) == 0 {
			c.warnf(startTok.Line, "unrecognized member in %s %s", scopeWord, className)
			c.partial = true
			return nil, nil
		}
		fields[0].Doc = doc
		for i := range fields {
			fields[i].Access = access
		}
		return fields, nil
	}

	name := ""
	if idx := lastIdentifier(head); idx >= 0 {
		name = head[idx].Text
		if idx > 0 && head[idx-1].Is("~") {
			name = "~" + name
		}
	}
	if name == "" {
		c.warnf(startTok.Line, "member declarator with no name in %s %s", scopeWord, className)
		c.partial = true
		c.recover()
		return nil, nil
	}

	closeParen, err := c.skipBalancedParens("method", name, startTok.Line)
	if err != nil {
		return nil, reclaim(err, scopeWord, className, startTok.Line)
	}
	sigEnd := closeParen
	for c.at("const") || c.at("noexcept") || c.at("override") || c.at("final") || c.at("volatile") {
		sigEnd = c.next()
	}
	kind := domain.KindMethod
	if name == className {
		kind = domain.KindConstructor
	}
	sym := domain.Symbol{
		Kind:      kind,
		Name:      name,
		Doc:       doc,
		Access:    access,
		Signature: c.textThrough(startTok, sigEnd),
		Span:      domain.Span{Start: startTok.Line, End: sigEnd.EndLine},
	}
	// Constructor initializer list.
	if c.at(":") {
		for !c.at("{") && !c.at(";") && !c.eof() {
			if c.at("(") {
				if _, err := c.skipBalancedParens("method", name, startTok.Line); err != nil {
					return nil, reclaim(err, scopeWord, className, startTok.Line)
				}
				continue
			}
			c.next()
		}
	}
	// "= 0", "= default", "= delete"
	if c.at("=") {
		for !c.at(";") && !c.eof() {
			c.next()
		}
	}
	switch {
	case c.at("{"):
		closing, err := c.skipBalancedBraces("method", name, startTok.Line)
		if err != nil {
			return nil, reclaim(err, scopeWord, className, startTok.Line)
		}
		sym.Span.End = closing.Line
	case c.at(";"):
		sym.Span.End = c.next().Line
	case c.eof():
		return nil, &UnbalancedScopeError{Kind: scopeWord, Name: className, Line: startTok.Line}
	default:
		c.warnf(startTok.Line, "unrecognized member %q in %s %s", name, scopeWord, className)
		c.partial = true
		c.recover()
		return nil, nil
	}
	return []domain.Symbol{sym}, nil
}

// parseUsing handles "using NAME = type;" alias declarations. Other using
// forms (directives, using-declarations) introduce no symbol.
func parseUsing(c *cursor) (*domain.Symbol, error) {
	doc := c.doc()
	start := c.next() // using
	if c.tok().Type == TokenIdentifier && c.peek(1).Is("=") {
		name := c.next().Text
		c.next() // '='
		_, semi, err := c.collectUntilSemi("using", name, start.Line)
		if err != nil {
			return nil, err
		}
		return &domain.Symbol{
			Kind:      domain.KindTypeAlias,
			Name:      name,
			Doc:       doc,
			Signature: c.textBetween(start, semi),
			Span:      domain.Span{Start: start.Line, End: semi.EndLine},
		}, nil
	}
	_, _, err := c.collectUntilSemi("using", "", start.Line)
	return nil, err
}

// parseExternBlock parses `extern "C" { ... }`, surfacing the block's
// declarations at the current level, or a single extern declaration.
func parseExternBlock(c *cursor) ([]domain.Symbol, error) {
	start := c.next() // extern
	c.next()          // linkage string
	if !c.at("{") {
		sym, err := parseFunction(c)
		if err != nil {
			return nil, err
		}
		if sym == nil {
			return nil, nil
		}
		return []domain.Symbol{*sym}, nil
	}
	c.next() // '{'
	syms, err := parseCppScope(c, true)
	if err != nil {
		return nil, reclaim(err, "extern block", "", start.Line)
	}
	if !c.at("}") {
		return nil, &UnbalancedScopeError{Kind: "extern block", Line: start.Line}
	}
	c.next()
	return syms, nil
}
