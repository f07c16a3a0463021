// Package dom models the host page render tree the fragment is embedded in.
//
// A Document is an HTML node tree. Elements are located with CSS selectors
// and only their inline style declarations are edited:
//
//	doc, err := dom.Parse(strings.NewReader(`<div class="parent"></div>`))
//	el, err := doc.Query(".parent")
//	el.SetStyle("height", "480px")
//
// Editing one declaration preserves every other declaration and attribute.
package dom
