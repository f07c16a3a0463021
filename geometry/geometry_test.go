package geometry

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/wippyai/wasm-fragment/dom"
	"github.com/wippyai/wasm-fragment/errors"
)

const page = `<div id="host"><div class="parent" style="width: 640px; background: black"></div></div>`

func TestApplyHeight(t *testing.T) {
	for _, h := range []float64{0, 1, 300, 480, 12.5, 100000} {
		doc := dom.MustParse(page)
		s := New(doc, "")

		if err := s.ApplyHeight(h); err != nil {
			t.Fatalf("ApplyHeight(%v): %v", h, err)
		}

		el, _ := doc.Query(".parent")
		if got, _ := el.Style("height"); got != FormatPx(h) {
			t.Errorf("height = %q, want %q", got, FormatPx(h))
		}
		if got, _ := el.Style("width"); got != "640px" {
			t.Errorf("width mutated: %q", got)
		}
		if got, _ := el.Style("background"); got != "black" {
			t.Errorf("background mutated: %q", got)
		}
		if px, ok := s.Height(); !ok || px != h {
			t.Errorf("Height() = %v, %v; want %v", px, ok, h)
		}
	}
}

func TestApplyHeight_Idempotent(t *testing.T) {
	once := dom.MustParse(page)
	twice := dom.MustParse(page)

	if err := New(once, "").ApplyHeight(480); err != nil {
		t.Fatal(err)
	}
	s := New(twice, "")
	for i := 0; i < 2; i++ {
		if err := s.ApplyHeight(480); err != nil {
			t.Fatal(err)
		}
	}

	if once.String() != twice.String() {
		t.Errorf("state differs:\n%s\n%s", once.String(), twice.String())
	}
}

func TestApplyHeight_KeepsOtherDeclarations(t *testing.T) {
	const style = `background: url(data:image/png;base64,AAAA) no-repeat; content: "a;b"; --Accent: red; height: 1px`
	doc := dom.MustParse(`<div class="parent" style='` + style + `'></div>`)

	if err := New(doc, "").ApplyHeight(480); err != nil {
		t.Fatal(err)
	}

	el, _ := doc.Query(".parent")
	want := `background: url(data:image/png;base64,AAAA) no-repeat; content: "a;b"; --Accent: red; height: 480px`
	if got, _ := el.Attr("style"); got != want {
		t.Errorf("style = %q\nwant    %q", got, want)
	}
	if got, _ := el.Style("--Accent"); got != "red" {
		t.Errorf("--Accent = %q", got)
	}
}

func TestApplyHeight_LastWriteWins(t *testing.T) {
	s := New(dom.MustParse(page), DefaultLocator)
	_ = s.ApplyHeight(480)
	_ = s.ApplyHeight(300)
	if px, _ := s.Height(); px != 300 {
		t.Errorf("height = %v, want 300", px)
	}
}

func TestApplyHeight_ElementNotFound(t *testing.T) {
	doc := dom.MustParse(`<div class="other" style="height: 1px"></div>`)
	before := doc.String()

	err := New(doc, ".parent").ApplyHeight(480)
	if !stderrors.Is(err, errors.ErrElementNotFound) {
		t.Fatalf("expected ErrElementNotFound, got %v", err)
	}
	if doc.String() != before {
		t.Error("page mutated on failure")
	}
	if _, ok := New(doc, ".parent").Height(); ok {
		t.Error("Height() should report missing container")
	}
}

func TestApplyHeight_InvalidHeight(t *testing.T) {
	doc := dom.MustParse(page)
	before := doc.String()
	s := New(doc, "")

	for _, h := range []float64{-1, math.NaN(), math.Inf(1)} {
		err := s.ApplyHeight(h)
		var e *errors.Error
		if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidInput {
			t.Errorf("ApplyHeight(%v): expected invalid_input, got %v", h, err)
		}
	}
	if doc.String() != before {
		t.Error("page mutated on invalid height")
	}
}

func TestParsePx(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"480px", 480, true},
		{" 12.5px ", 12.5, true},
		{"100%", 0, false},
		{"autopx", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParsePx(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePx(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
