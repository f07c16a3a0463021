package dom

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// declaration is one property of an inline style attribute. start and end
// are byte offsets of the declaration from its name to the end of its value.
type declaration struct {
	prop  string
	value string
	start int
	end   int
}

// matches compares property names. Custom properties are case-sensitive.
func (d declaration) matches(prop string) bool {
	if strings.HasPrefix(d.prop, "--") {
		return d.prop == prop
	}
	return strings.EqualFold(d.prop, prop)
}

type styleToken struct {
	tt    css.TokenType
	start int
	end   int
}

// scanDeclarations tokenizes an inline style attribute and returns its
// well-formed declarations in source order. Strings, url() tokens and
// bracketed blocks are opaque, so a ';' inside them does not end a
// declaration. Segments without a property name and colon are skipped
// but left in place.
func scanDeclarations(style string) []declaration {
	l := css.NewLexer(parse.NewInputString(style))

	var (
		decls   []declaration
		segment []styleToken
		depth   int
		offset  int
	)
	flush := func() {
		if d, ok := declarationOf(style, segment); ok {
			decls = append(decls, d)
		}
		segment = segment[:0]
	}

	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			break
		}
		tok := styleToken{tt: tt, start: offset, end: offset + len(data)}
		offset = tok.end

		switch tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken, css.LeftBraceToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken, css.RightBraceToken:
			if depth > 0 {
				depth--
			}
		case css.SemicolonToken:
			if depth == 0 {
				flush()
				continue
			}
		}
		segment = append(segment, tok)
	}
	flush()
	return decls
}

func declarationOf(style string, segment []styleToken) (declaration, bool) {
	i := skipBlank(segment, 0)
	if i == len(segment) {
		return declaration{}, false
	}
	name := segment[i]
	if name.tt != css.IdentToken && name.tt != css.CustomPropertyNameToken {
		return declaration{}, false
	}

	colon := skipBlank(segment, i+1)
	if colon == len(segment) || segment[colon].tt != css.ColonToken {
		return declaration{}, false
	}

	end := segment[colon].end
	for j := len(segment) - 1; j > colon; j-- {
		if !blank(segment[j].tt) {
			end = segment[j].end
			break
		}
	}

	return declaration{
		prop:  style[name.start:name.end],
		value: strings.TrimSpace(style[segment[colon].end:end]),
		start: name.start,
		end:   end,
	}, true
}

func skipBlank(segment []styleToken, i int) int {
	for i < len(segment) && blank(segment[i].tt) {
		i++
	}
	return i
}

func blank(tt css.TokenType) bool {
	return tt == css.WhitespaceToken || tt == css.CommentToken
}

// lookupDeclaration returns the declaration of prop that takes effect,
// which is the last one in source order.
func lookupDeclaration(style, prop string) (declaration, bool) {
	var (
		found declaration
		ok    bool
	)
	for _, d := range scanDeclarations(style) {
		if d.matches(prop) {
			found, ok = d, true
		}
	}
	return found, ok
}

// setDeclaration rewrites the effective declaration of prop in place, or
// appends one. Bytes outside that declaration are kept as they are.
func setDeclaration(style, prop, value string) string {
	decl := prop + ": " + value
	if d, ok := lookupDeclaration(style, prop); ok {
		return style[:d.start] + decl + style[d.end:]
	}

	trimmed := strings.TrimRight(style, " \t\r\n\f")
	switch {
	case trimmed == "":
		return decl + ";"
	case strings.HasSuffix(trimmed, ";"):
		return trimmed + " " + decl + ";"
	default:
		return trimmed + "; " + decl + ";"
	}
}
