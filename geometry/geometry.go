// Package geometry keeps the fragment's container height in step with the
// height the host allots to it.
package geometry

import (
	"strconv"
	"strings"

	wasmfragment "github.com/wippyai/wasm-fragment"
	"github.com/wippyai/wasm-fragment/dom"
	"github.com/wippyai/wasm-fragment/errors"
)

// DefaultLocator selects the container the fragment renders into.
const DefaultLocator = ".parent"

// Synchronizer writes heights to the container element of a host page.
type Synchronizer struct {
	doc     *dom.Document
	locator string
}

// New returns a Synchronizer for the element matching locator in doc.
// An empty locator means DefaultLocator.
func New(doc *dom.Document, locator string) *Synchronizer {
	if locator == "" {
		locator = DefaultLocator
	}
	return &Synchronizer{doc: doc, locator: locator}
}

// Locator returns the container locator.
func (s *Synchronizer) Locator() string {
	return s.locator
}

func (s *Synchronizer) container() (*dom.Element, error) {
	el, err := s.doc.Query(s.locator)
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, errors.ElementNotFound(s.locator)
	}
	return el, nil
}

// ApplyHeight sets the container's height to px pixels. Only the height
// declaration is written. A missing container yields an error matching
// errors.ErrElementNotFound and nothing is mutated.
func (s *Synchronizer) ApplyHeight(px float64) error {
	if !wasmfragment.ValidHeight(px) {
		return errors.InvalidHeight(errors.PhaseGeometry, px)
	}
	el, err := s.container()
	if err != nil {
		return err
	}
	el.SetStyle("height", FormatPx(px))
	return nil
}

// Height reads the container's current height in pixels. ok is false when
// the container is missing or has no pixel height.
func (s *Synchronizer) Height() (px float64, ok bool) {
	el, err := s.container()
	if err != nil {
		return 0, false
	}
	v, found := el.Style("height")
	if !found {
		return 0, false
	}
	return ParsePx(v)
}

// FormatPx renders a pixel length, e.g. 480 -> "480px", 12.5 -> "12.5px".
func FormatPx(px float64) string {
	return strconv.FormatFloat(px, 'f', -1, 64) + "px"
}

// ParsePx is the inverse of FormatPx.
func ParsePx(v string) (float64, bool) {
	num, ok := strings.CutSuffix(strings.TrimSpace(v), "px")
	if !ok {
		return 0, false
	}
	px, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, false
	}
	return px, true
}
