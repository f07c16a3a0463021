package wasmfragment

import (
	"context"
	"encoding/json"
	"math"

	"github.com/wippyai/wasm-fragment/errors"
)

// HeightKey is the props field carrying the container height in pixels.
const HeightKey = "height"

// Lifecycle is the four-phase contract a host orchestrator drives.
// Calls are serialized by the host; implementations are not required
// to be safe for concurrent use.
type Lifecycle interface {
	Bootstrap(ctx context.Context) error
	Mount(ctx context.Context, props Props) error
	Update(ctx context.Context, props Props) error
	Unmount(ctx context.Context, props Props) error
}

// Registrar accepts a Lifecycle under an application name.
type Registrar interface {
	Register(name string, l Lifecycle) error
}

// Props is the property bag a host passes to mount, update and unmount.
// Only HeightKey is examined; every other field passes through.
type Props map[string]any

// Height resolves the height field. phase tags any returned error.
func (p Props) Height(phase errors.Phase) (float64, error) {
	raw, ok := p[HeightKey]
	if !ok || raw == nil {
		return 0, errors.FieldMissing(phase, HeightKey)
	}

	var h float64
	switch v := raw.(type) {
	case float64:
		h = v
	case float32:
		h = float64(v)
	case int:
		h = float64(v)
	case int8:
		h = float64(v)
	case int16:
		h = float64(v)
	case int32:
		h = float64(v)
	case int64:
		h = float64(v)
	case uint:
		h = float64(v)
	case uint8:
		h = float64(v)
	case uint16:
		h = float64(v)
	case uint32:
		h = float64(v)
	case uint64:
		h = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, errors.InvalidHeight(phase, raw)
		}
		h = f
	default:
		return 0, errors.InvalidHeight(phase, raw)
	}

	if !ValidHeight(h) {
		return 0, errors.InvalidHeight(phase, raw)
	}
	return h, nil
}

// ValidHeight reports whether px can be applied to a container.
func ValidHeight(px float64) bool {
	return px >= 0 && !math.IsNaN(px) && !math.IsInf(px, 0)
}
