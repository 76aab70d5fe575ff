package teamref

import (
	"fmt"
	"strconv"
	"strings"
)

// SyntaxError describes a malformed team reference.
type SyntaxError struct {
	Ref     string
	Offset  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid team reference %q at offset %d: %s", e.Ref, e.Offset, e.Message)
}

// reserved characters may not appear in a literal team ID.
const reserved = "\":{}?="

// ValidID reports whether id is usable as a literal team ID: printable
// ASCII without any of the reference delimiters.
func ValidID(id string) bool {
	if id == "" {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if c < 0x20 || c > 0x7e || strings.IndexByte(reserved, c) >= 0 {
			return false
		}
	}
	return true
}

// Parse parses a team reference. A reference that does not start with "{"
// is a literal team ID.
func Parse(s string) (*Ref, error) {
	if s == "" {
		return nil, &SyntaxError{Ref: s, Message: "empty team reference"}
	}
	if s[0] != '{' {
		if !ValidID(s) {
			return nil, &SyntaxError{Ref: s, Message: "team ID contains a reserved character"}
		}
		return &Ref{Kind: Literal, ID: s}, nil
	}

	p := &parser{src: s}
	first, err := p.term()
	if err != nil {
		return nil, err
	}
	if p.eof() {
		return first, nil
	}

	t := &Ref{Kind: Ternary, Left: first}
	if err := p.expect("=="); err != nil {
		return nil, err
	}
	if t.Right, err = p.term(); err != nil {
		return nil, err
	}
	if err := p.expect("?"); err != nil {
		return nil, err
	}
	if t.IfTrue, err = p.term(); err != nil {
		return nil, err
	}
	if err := p.expect(":"); err != nil {
		return nil, err
	}
	if t.IfFalse, err = p.term(); err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, p.errorf("unexpected %q after ternary reference", p.src[p.pos:])
	}
	return t, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Ref: p.src, Offset: p.pos, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(tok string) error {
	if !strings.HasPrefix(p.src[p.pos:], tok) {
		if p.eof() {
			return p.errorf("expected %q, found end of reference", tok)
		}
		return p.errorf("expected %q, found %q", tok, p.src[p.pos:p.pos+1])
	}
	p.pos += len(tok)
	return nil
}

// term parses a literal ID or a braced structured reference.
func (p *parser) term() (*Ref, error) {
	if p.eof() {
		return nil, p.errorf("expected team reference, found end of reference")
	}
	if p.src[p.pos] == '{' {
		return p.structured()
	}

	start := p.pos
	for !p.eof() && strings.IndexByte("=?:{}", p.src[p.pos]) < 0 {
		p.pos++
	}
	id := p.src[start:p.pos]
	if id == "" {
		return nil, p.errorf("expected team reference, found %q", p.src[p.pos:p.pos+1])
	}
	if !ValidID(id) {
		return nil, &SyntaxError{Ref: p.src, Offset: start, Message: fmt.Sprintf("team ID %q contains a reserved character", id)}
	}
	return &Ref{Kind: Literal, ID: id}, nil
}

func (p *parser) structured() (*Ref, error) {
	open := p.pos
	end := strings.IndexByte(p.src[open:], '}')
	if end < 0 {
		return nil, p.errorf("unterminated \"{\"")
	}
	inner := p.src[open+1 : open+end]
	if i := strings.IndexByte(inner, '{'); i >= 0 {
		return nil, &SyntaxError{Ref: p.src, Offset: open + 1 + i, Message: "nested \"{\" inside a structured reference"}
	}
	p.pos = open + end + 1

	parts := strings.Split(inner, ":")
	if len(parts) != 4 {
		return nil, &SyntaxError{Ref: p.src, Offset: open, Message: fmt.Sprintf("structured reference {%s} must have four parts {stage:group:selector:qualifier}", inner)}
	}
	for i, part := range parts {
		if part == "" {
			return nil, &SyntaxError{Ref: p.src, Offset: open, Message: fmt.Sprintf("structured reference {%s} has an empty %s", inner, partNames[i])}
		}
	}

	r := &Ref{Kind: Structured, Stage: parts[0], Group: parts[1], Selector: parts[2], Qualifier: parts[3]}
	if r.Selector == SelectorLeague {
		n, err := strconv.Atoi(r.Qualifier)
		if err != nil || n < 1 {
			return nil, &SyntaxError{Ref: p.src, Offset: open, Message: fmt.Sprintf("league position %q must be a positive integer", r.Qualifier)}
		}
		r.Position = n
		return r, nil
	}
	if r.Qualifier != QualifierWinner && r.Qualifier != QualifierLoser {
		return nil, &SyntaxError{Ref: p.src, Offset: open, Message: fmt.Sprintf("match qualifier %q must be \"winner\" or \"loser\"", r.Qualifier)}
	}
	return r, nil
}

var partNames = [4]string{"stage", "group", "selector", "qualifier"}
