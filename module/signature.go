package module

import (
	"fmt"
	"strings"

	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"
)

// Signature declares a function crossing the module boundary in WIT terms.
// Only types that flatten to a single core value are supported; the
// boundary carries no strings or aggregates.
type Signature struct {
	Params  []wit.Type
	Results []wit.Type
}

// EntrySignature is the shape the entry point must have: func().
var EntrySignature = Signature{}

// HeightSignature is the shape of the container_height import.
var HeightSignature = Signature{Results: []wit.Type{wit.F64{}}}

func (s Signature) core() (params, results []api.ValueType, err error) {
	if params, err = coreTypes(s.Params); err != nil {
		return nil, nil, err
	}
	if results, err = coreTypes(s.Results); err != nil {
		return nil, nil, err
	}
	return params, results, nil
}

// Matches reports whether def has this signature after flattening.
func (s Signature) Matches(def api.FunctionDefinition) (bool, error) {
	params, results, err := s.core()
	if err != nil {
		return false, err
	}
	return equalTypes(params, def.ParamTypes()) && equalTypes(results, def.ResultTypes()), nil
}

func (s Signature) String() string {
	var b strings.Builder
	b.WriteString("func(")
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(witTypeName(p))
	}
	b.WriteByte(')')
	if len(s.Results) > 0 {
		b.WriteString(" -> ")
		for i, r := range s.Results {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(witTypeName(r))
		}
	}
	return b.String()
}

func coreTypes(types []wit.Type) ([]api.ValueType, error) {
	out := make([]api.ValueType, 0, len(types))
	for _, t := range types {
		vt, err := coreType(t)
		if err != nil {
			return nil, err
		}
		out = append(out, vt)
	}
	return out, nil
}

func coreType(t wit.Type) (api.ValueType, error) {
	switch t.(type) {
	case wit.Bool, wit.S8, wit.U8, wit.S16, wit.U16, wit.S32, wit.U32, wit.Char:
		return api.ValueTypeI32, nil
	case wit.S64, wit.U64:
		return api.ValueTypeI64, nil
	case wit.F32:
		return api.ValueTypeF32, nil
	case wit.F64:
		return api.ValueTypeF64, nil
	default:
		return 0, fmt.Errorf("type %s does not flatten to a single core value", witTypeName(t))
	}
}

func equalTypes(a, b []api.ValueType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// coreSignature renders a core function type, e.g. "func(i32) -> f64".
func coreSignature(def api.FunctionDefinition) string {
	var b strings.Builder
	b.WriteString("func(")
	for i, p := range def.ParamTypes() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(api.ValueTypeName(p))
	}
	b.WriteByte(')')
	if results := def.ResultTypes(); len(results) > 0 {
		b.WriteString(" -> ")
		for i, r := range results {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(api.ValueTypeName(r))
		}
	}
	return b.String()
}

func witTypeName(t wit.Type) string {
	switch t.(type) {
	case wit.Bool:
		return "bool"
	case wit.U8:
		return "u8"
	case wit.S8:
		return "s8"
	case wit.U16:
		return "u16"
	case wit.S16:
		return "s16"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.U64:
		return "u64"
	case wit.S64:
		return "s64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	default:
		return fmt.Sprintf("%T", t)
	}
}
