package syntax

import (
	"strings"

	tt "github.com/swlin/swlin/internal/types"
)

// Parse lexes and parses a source unit into an immutable tree. The parser
// is tolerant: it gives structure to the constructs the rules understand
// (type declarations, attributed variable declarations, switch statements
// with enum-case patterns) and degrades everything else to generic token
// leaves. Printing the tree reproduces src byte for byte.
func Parse(filename string, src []byte) (*Tree, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, &tt.ParseFailure{Filename: filename, Err: err}
	}
	p := &parser{toks: toks}
	root := p.parseSource()
	return &Tree{root: root, src: src, conv: NewConverter(src), filename: filename}, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) cur() token { return p.toks[p.pos] }
func (p *parser) eof() bool  { return p.cur().isEOF() }

func (p *parser) is(s string) bool {
	return p.cur().text == s
}

// leaf consumes the current token as a leaf of the given kind.
func (p *parser) leaf(kind Kind) *Node {
	t := p.cur()
	p.pos++
	return NewLeaf(kind, t.trivia, t.text, t.offset)
}

func (p *parser) parseSource() *Node {
	var children []*Node
	for !p.eof() {
		children = append(children, p.parseElement())
	}
	// EOF leaf carries trailing trivia so printing round-trips
	t := p.cur()
	children = append(children, NewLeaf(KindToken, t.trivia, t.text, t.offset))
	return NewNode(KindSource, children...)
}

var typeKeywords = map[string]bool{
	"class":     true,
	"struct":    true,
	"enum":      true,
	"extension": true,
	"protocol":  true,
	"actor":     true,
}

var modifierKeywords = map[string]bool{
	"weak":        true,
	"unowned":     true,
	"public":      true,
	"private":     true,
	"internal":    true,
	"fileprivate": true,
	"open":        true,
	"static":      true,
	"final":       true,
	"lazy":        true,
	"override":    true,
	"required":    true,
}

func (p *parser) parseElement() *Node {
	switch t := p.cur(); {
	case strings.HasPrefix(t.text, "@") || modifierKeywords[t.text]:
		return p.parseMaybeVarDecl()
	case t.text == "var" || t.text == "let":
		return p.parseVarDecl(nil)
	case typeKeywords[t.text]:
		return p.parseTypeDecl()
	case t.text == "switch":
		return p.parseSwitch()
	case t.text == "{":
		return p.parseBody()
	default:
		return p.leaf(KindToken)
	}
}

// parseMaybeVarDecl consumes a run of attributes and modifiers. If it ends
// at var/let the run belongs to a variable declaration; otherwise the
// lookahead is abandoned and the first token degrades to a generic leaf.
func (p *parser) parseMaybeVarDecl() *Node {
	mark := p.pos
	var prefix []*Node
	for !p.eof() {
		t := p.cur()
		switch {
		case strings.HasPrefix(t.text, "@") && len(t.text) > 1:
			prefix = append(prefix, p.leaf(KindAttribute))
		case modifierKeywords[t.text]:
			prefix = append(prefix, p.leaf(KindModifier))
		default:
			if t.text == "var" || t.text == "let" {
				return p.parseVarDecl(prefix)
			}
			p.pos = mark
			return p.leaf(KindToken)
		}
	}
	p.pos = mark
	return p.leaf(KindToken)
}

// declTerminators end the free-form tail of a variable declaration.
var declTerminators = map[string]bool{
	";":       true,
	"var":     true,
	"let":     true,
	"func":    true,
	"case":    true,
	"default": true,
	"switch":  true,
	"}":       true,
	"{":       true,
}

func isTypeToken(text string) bool {
	if text == "" {
		return false
	}
	switch text {
	case ".", "?", "!", "[", "]", "<", ">":
		return true
	}
	r := rune(text[0])
	return isIdentStart(r)
}

func (p *parser) parseVarDecl(prefix []*Node) *Node {
	children := append([]*Node{}, prefix...)
	children = append(children, p.leaf(KindToken)) // var or let
	if !p.eof() && isIdentStart(rune(p.cur().text[0])) {
		children = append(children, p.leaf(KindToken)) // name
	}
	if p.is(":") {
		children = append(children, p.leaf(KindToken))
		for !p.eof() && isTypeToken(p.cur().text) && !declTerminators[p.cur().text] {
			children = append(children, p.leaf(KindToken))
		}
	}
	if p.is("=") {
		children = append(children, p.leaf(KindToken))
		for !p.eof() && !declTerminators[p.cur().text] && !typeKeywords[p.cur().text] && !strings.HasPrefix(p.cur().text, "@") {
			if p.is("(") {
				children = p.appendBalancedParens(children)
				continue
			}
			children = append(children, p.leaf(KindToken))
		}
	}
	return NewNode(KindVarDecl, children...)
}

func (p *parser) parseTypeDecl() *Node {
	children := []*Node{p.leaf(KindToken)} // class/struct/enum/...
	for !p.eof() && !p.is("{") && !p.is("}") {
		children = append(children, p.leaf(KindToken))
	}
	if p.is("{") {
		children = append(children, p.parseBody())
	}
	return NewNode(KindTypeDecl, children...)
}

func (p *parser) parseBody() *Node {
	children := []*Node{p.leaf(KindToken)} // {
	for !p.eof() && !p.is("}") {
		children = append(children, p.parseElement())
	}
	if p.is("}") {
		children = append(children, p.leaf(KindToken))
	}
	return NewNode(KindBody, children...)
}

func (p *parser) parseSwitch() *Node {
	children := []*Node{p.leaf(KindToken)} // switch
	for !p.eof() && !p.is("{") {
		children = append(children, p.leaf(KindToken))
	}
	if !p.is("{") {
		return NewNode(KindSwitch, children...)
	}
	children = append(children, p.leaf(KindToken)) // {
	for !p.eof() && !p.is("}") {
		switch {
		case p.is("case"), p.is("default"):
			children = append(children, p.parseCaseClause())
		default:
			children = append(children, p.parseElement())
		}
	}
	if p.is("}") {
		children = append(children, p.leaf(KindToken))
	}
	return NewNode(KindSwitch, children...)
}

func (p *parser) parseCaseClause() *Node {
	children := []*Node{p.leaf(KindToken)} // case or default
	for !p.eof() && !p.is(":") && !p.is("}") {
		children = append(children, p.parsePattern())
		if p.is(",") {
			children = append(children, p.leaf(KindToken))
			continue
		}
		break
	}
	if p.is(":") {
		children = append(children, p.leaf(KindToken))
	}
	for !p.eof() && !p.is("case") && !p.is("default") && !p.is("}") {
		children = append(children, p.parseElement())
	}
	return NewNode(KindCase, children...)
}

// parsePattern parses one case pattern. Leading-dot enum-case patterns get
// full structure (name plus argument list); anything else is a flat run of
// tokens up to the next pattern separator.
func (p *parser) parsePattern() *Node {
	if p.is(".") {
		children := []*Node{p.leaf(KindToken)} // .
		if !p.eof() && isIdentStart(rune(p.cur().text[0])) {
			children = append(children, p.leaf(KindToken)) // case name
		}
		if p.is("(") {
			children = append(children, p.parseArgList())
		}
		return NewNode(KindPattern, children...)
	}
	var children []*Node
	for !p.eof() && !p.is(",") && !p.is(":") && !p.is("}") {
		if p.is("(") {
			children = p.appendBalancedParens(children)
			continue
		}
		children = append(children, p.leaf(KindToken))
	}
	if len(children) == 0 {
		// malformed pattern; degrade to a single token so we keep moving
		return p.leaf(KindToken)
	}
	return NewNode(KindPattern, children...)
}

func (p *parser) parseArgList() *Node {
	children := []*Node{p.leaf(KindToken)} // (
	for !p.eof() && !p.is(")") {
		switch {
		case p.is("_"):
			children = append(children, p.leaf(KindWildcard))
		case p.is("."):
			children = append(children, p.parsePattern())
		case p.is(","):
			children = append(children, p.leaf(KindToken))
		case p.is("("):
			children = p.appendBalancedParens(children)
		default:
			children = append(children, p.leaf(KindToken))
		}
	}
	if p.is(")") {
		children = append(children, p.leaf(KindToken))
	}
	return NewNode(KindArgList, children...)
}

// appendBalancedParens consumes a parenthesized token run as flat leaves.
func (p *parser) appendBalancedParens(children []*Node) []*Node {
	depth := 0
	for !p.eof() {
		switch p.cur().text {
		case "(":
			depth++
		case ")":
			depth--
		}
		children = append(children, p.leaf(KindToken))
		if depth == 0 {
			return children
		}
	}
	return children
}
