package parse

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"tlog.app/go/loc"
	"tlog.app/go/tlog"
)

type (
	Token any

	Char    byte
	Punct   string
	Keyword string
	Ident   string
	Number  string
	Str     string
	Invalid string

	UnexpectedError struct {
		Token Token
		Pos   int
		Want  []Token
	}
)

var keywords = map[string]struct{}{
	"fn":     {},
	"return": {},
	"if":     {},
	"let":    {},
}

// next returns token, its start and the position after it.
// Nil token means end of input.
func (s *State) next(ctx context.Context, st int) (tk Token, tst int, i int) {
	if tr := tlog.SpanFromContext(ctx); tr.If("next_token") {
		defer func(st int) {
			tr.Printw("next token", "st", st, "tk", tk, "tst", tst, "i", i, "from", loc.Callers(1, 3))
		}(st)
	}

	st = SpaceAll.SkipComments(s.b, st)
	i = st

	if i == len(s.b) {
		return nil, st, i
	}

	c := s.b[i]

	if i+1 < len(s.b) {
		switch p := string(s.b[i : i+2]); p {
		case "->", "==", "!=", "<=", ">=":
			return Punct(p), st, i + 2
		}
	}

	switch c {
	case '(', ')', '{', '}', ',', ';', ':', '=', '+', '-', '*', '/', '<', '>':
		return Char(c), st, i + 1
	case '"':
		e, ok := skipString(s.b, i)
		if !ok {
			return Invalid(s.b[i:e]), st, e
		}

		return Str(s.b[i:e]), st, e
	}

	switch {
	case c >= '0' && c <= '9':
		e := skipNum(s.b, i)

		return Number(s.b[i:e]), st, e
	case isIdentStart(s.b, i):
		e := skipIdent(s.b, i)
		w := string(s.b[i:e])

		if _, ok := keywords[w]; ok {
			return Keyword(w), st, e
		}

		return Ident(w), st, e
	default:
		_, w := utf8.DecodeRune(s.b[i:])

		return Invalid(s.b[i : i+w]), st, i + w
	}
}

func NewUnexpected(got Token, pos int, want ...Token) error {
	return UnexpectedError{
		Token: got,
		Pos:   pos,
		Want:  want,
	}
}

func (e UnexpectedError) Error() string {
	l := make([]string, len(e.Want))

	for i, w := range e.Want {
		l[i] = describe(w)
	}

	got := "end of input"
	if e.Token != nil {
		got = fmt.Sprintf("%q (%v)", e.Token, tokenKind(e.Token))
	}

	return fmt.Sprintf("unexpected token at pos 0x%x: %v want: %v", e.Pos, got, strings.Join(l, ", "))
}

func describe(t Token) string {
	switch t := t.(type) {
	case Char:
		return fmt.Sprintf("%q", string(t))
	case Punct, Keyword:
		return fmt.Sprintf("%q", t)
	default:
		return tokenKind(t)
	}
}

func tokenKind(t Token) string {
	switch t.(type) {
	case Char, Punct:
		return "punct"
	case Keyword:
		return "keyword"
	case Ident:
		return "ident"
	case Number:
		return "number"
	case Str:
		return "string"
	case Invalid:
		return "invalid"
	default:
		return fmt.Sprintf("%T", t)
	}
}

func (c Char) String() string {
	return string(c)
}

func isIdentStart(b []byte, i int) bool {
	c := b[i]

	if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' {
		return true
	}

	if c < utf8.RuneSelf {
		return false
	}

	r, _ := utf8.DecodeRune(b[i:])

	return unicode.IsLetter(r)
}

func skipIdent(b []byte, i int) int {
	for i < len(b) {
		c := b[i]

		switch {
		case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_':
			i++
		case c >= utf8.RuneSelf:
			r, w := utf8.DecodeRune(b[i:])
			if r == utf8.RuneError || !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.Is(unicode.Mn, r) {
				return i
			}

			i += w
		default:
			return i
		}
	}

	return i
}

func skipNum(b []byte, i int) int {
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
	}

	return i
}

func skipString(b []byte, i int) (int, bool) {
	for i++; i < len(b); i++ {
		switch b[i] {
		case '\\':
			i++
		case '"':
			return i + 1, true
		case '\n':
			return i, false
		}
	}

	return len(b), false
}
