package errors

import (
	"errors"
	"strings"
	"testing"
)

type stateName string

func (s stateName) String() string { return string(s) }

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseMount,
				Kind:   KindInvalidInput,
				Path:   []string{"props", "height"},
				Detail: "negative",
			},
			contains: []string{"[mount]", "invalid_input", "props.height", "negative"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseGeometry,
				Kind:  KindNotFound,
			},
			contains: []string{"[geometry]", "not_found"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseModule,
				Kind:   KindModuleFault,
				Detail: "entry point failed",
				Cause:  errors.New("unreachable"),
			},
			contains: []string{"[module]", "module_fault", "entry point failed", "caused by", "unreachable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := ModuleFault("main", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is did not reach cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := ElementNotFound(".parent")

	if !errors.Is(err, ErrElementNotFound) {
		t.Error("ElementNotFound should match ErrElementNotFound")
	}
	if errors.Is(err, &Error{Phase: PhaseGeometry, Kind: KindInvalidInput}) {
		t.Error("different kind should not match")
	}
	if errors.Is(NotFound(PhaseHost, "app", "kline"), ErrElementNotFound) {
		t.Error("different phase should not match")
	}
	if errors.Is(err, errors.New("other")) {
		t.Error("non-structured error should not match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("cause")
	err := New(PhaseUpdate, KindInvalidInput).
		Path("props", "height").
		Value(-3).
		Detail("got %d", -3).
		Cause(cause).
		Build()

	if err.Phase != PhaseUpdate || err.Kind != KindInvalidInput {
		t.Errorf("phase/kind = %s/%s", err.Phase, err.Kind)
	}
	if len(err.Path) != 2 || err.Path[1] != "height" {
		t.Errorf("path = %v", err.Path)
	}
	if err.Value != -3 {
		t.Errorf("value = %v", err.Value)
	}
	if err.Detail != "got -3" {
		t.Errorf("detail = %q", err.Detail)
	}
	if err.Cause != cause {
		t.Error("cause not set")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		err   *Error
		name  string
		phase Phase
		kind  Kind
	}{
		{ElementNotFound(".parent"), "element not found", PhaseGeometry, KindNotFound},
		{InvalidHeight(PhaseGeometry, -1.0), "invalid height", PhaseGeometry, KindInvalidInput},
		{FieldMissing(PhaseMount, "height"), "field missing", PhaseMount, KindFieldMissing},
		{InvalidTransition(PhaseUpdate, stateName("Unmounted")), "transition", PhaseUpdate, KindInvalidState},
		{ModuleFault("main", errors.New("trap")), "module fault", PhaseModule, KindModuleFault},
		{SignatureMismatch("main", "func()", "func(i32)"), "signature", PhaseLoad, KindSignatureMismatch},
		{NotFound(PhaseHost, "app", "kline"), "not found", PhaseHost, KindNotFound},
		{InvalidInput(PhaseConfig, "bad"), "invalid input", PhaseConfig, KindInvalidInput},
		{Instantiation(errors.New("link")), "instantiation", PhaseLoad, KindInstantiation},
		{Load("compile", errors.New("magic")), "load", PhaseLoad, KindInvalidInput},
		{Wrap(PhaseHost, KindInvalidState, errors.New("x"), "wrapped"), "wrap", PhaseHost, KindInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("phase = %s, want %s", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", tt.err.Kind, tt.kind)
			}
			if tt.err.Error() == "" {
				t.Error("empty message")
			}
		})
	}
}

func TestInvalidTransitionMessage(t *testing.T) {
	msg := InvalidTransition(PhaseMount, stateName("Mounted")).Error()
	if !strings.Contains(msg, "mount not allowed in state Mounted") {
		t.Errorf("unexpected message %q", msg)
	}
}
