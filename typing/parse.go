package typing

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseTerm reads the textual form produced by Term.String:
// variables are lowercase identifiers, constructors start with an uppercase
// letter and apply to space-separated arguments in parentheses, as in
// "Show(List(a))".
func ParseTerm(src string) (Term, error) {
	r := &termReader{src: src}
	r.skipSpaces()
	term, err := r.readTerm()
	if err != nil {
		return nil, err
	}
	r.skipSpaces()
	if r.pos != len(r.src) {
		return nil, fmt.Errorf("unexpected trailing input at offset %d of %q", r.pos, r.src)
	}
	return term, nil
}

type termReader struct {
	src string
	pos int
}

func (r *termReader) skipSpaces() {
	for r.pos < len(r.src) && r.src[r.pos] == ' ' {
		r.pos++
	}
}

func (r *termReader) readIdent() (string, error) {
	start := r.pos
	for r.pos < len(r.src) {
		c := rune(r.src[r.pos])
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' && c != '\'' {
			break
		}
		r.pos++
	}
	if r.pos == start {
		return "", fmt.Errorf("expected an identifier at offset %d of %q", r.pos, r.src)
	}
	return r.src[start:r.pos], nil
}

func (r *termReader) readTerm() (Term, error) {
	ident, err := r.readIdent()
	if err != nil {
		return nil, err
	}
	isVar := unicode.IsLower(rune(ident[0])) || strings.HasPrefix(ident, "_")

	if r.pos >= len(r.src) || r.src[r.pos] != '(' {
		if isVar {
			return Var{Name: ident}, nil
		}
		return Expr{Head: ident}, nil
	}
	if isVar {
		return nil, fmt.Errorf("variable %q cannot take arguments", ident)
	}

	r.pos++ // consume '('
	var args []Term
	for {
		r.skipSpaces()
		if r.pos >= len(r.src) {
			return nil, fmt.Errorf("unterminated argument list for %q", ident)
		}
		if r.src[r.pos] == ')' {
			r.pos++
			return Expr{Head: ident, Args: args}, nil
		}
		arg, err := r.readTerm()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
}
