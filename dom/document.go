package dom

import (
	"bytes"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/wippyai/wasm-fragment/errors"
)

// Document is a parsed host page.
type Document struct {
	root *html.Node
}

// Parse reads an HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHost, errors.KindInvalidInput, err, "parse host page")
	}
	return &Document{root: root}, nil
}

// MustParse is like Parse but panics on error. Intended for literals.
func MustParse(page string) *Document {
	doc, err := Parse(strings.NewReader(page))
	if err != nil {
		panic(err)
	}
	return doc
}

// Query returns the first element matching locator, or nil when nothing
// matches. An unparsable locator is an error.
func (d *Document) Query(locator string) (*Element, error) {
	sel, err := cascadia.Parse(locator)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseGeometry, errors.KindInvalidInput, err, "parse locator "+locator)
	}
	n := cascadia.Query(d.root, sel)
	if n == nil {
		return nil, nil
	}
	return &Element{node: n}, nil
}

// Render writes the page as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the page, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Element is a node of the page.
type Element struct {
	node *html.Node
}

// Attr returns the named attribute value.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (e *Element) setAttr(name, val string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[i].Val = val
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: val})
}

// Style returns the value of one inline style declaration. When the
// property is declared more than once the last declaration wins.
func (e *Element) Style(prop string) (string, bool) {
	style, _ := e.Attr("style")
	d, ok := lookupDeclaration(style, prop)
	return d.value, ok
}

// SetStyle sets one inline style declaration, rewriting the previous
// declaration in place or appending it. The rest of the attribute is left
// byte for byte.
func (e *Element) SetStyle(prop, value string) {
	style, _ := e.Attr("style")
	e.setAttr("style", setDeclaration(style, prop, value))
}
