package session

import (
	"github.com/vovakirdan/aetheria/internal/core"
)

// Values arrive as whatever the publishing side stored; a room backed by a
// wire format may hand back decoded JSON. Unusable values count as missing.

func decodeVec3(v any) (core.Vec3, bool) {
	switch t := v.(type) {
	case core.Vec3:
		return t, true
	case *core.Vec3:
		if t == nil {
			return core.Vec3{}, false
		}
		return *t, true
	case [3]float64:
		return core.V3(t[0], t[1], t[2]), true
	case []float64:
		if len(t) != 3 {
			return core.Vec3{}, false
		}
		return core.V3(t[0], t[1], t[2]), true
	case []any:
		if len(t) != 3 {
			return core.Vec3{}, false
		}
		var xyz [3]float64
		for i, c := range t {
			f, ok := decodeFloat(c)
			if !ok {
				return core.Vec3{}, false
			}
			xyz[i] = f
		}
		return core.V3(xyz[0], xyz[1], xyz[2]), true
	case map[string]any:
		x, okX := decodeFloat(t["x"])
		y, okY := decodeFloat(t["y"])
		z, okZ := decodeFloat(t["z"])
		if !okX || !okY || !okZ {
			return core.Vec3{}, false
		}
		return core.V3(x, y, z), true
	default:
		return core.Vec3{}, false
	}
}

func decodeFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}

// decodeRotation accepts a scalar yaw or a rotation vector.
func decodeRotation(v any) (float64, bool) {
	if f, ok := decodeFloat(v); ok {
		return f, true
	}
	if vec, ok := decodeVec3(v); ok {
		return vec.Y, true
	}
	return 0, false
}

func decodeColor(v any) (core.Color, bool) {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case core.Color:
		s = string(t)
	default:
		return "", false
	}
	c, err := core.ParseHexColor(s)
	if err != nil {
		return "", false
	}
	return c, true
}

func decodeAvatar(v any) (core.AvatarKind, bool) {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case core.AvatarKind:
		s = string(t)
	default:
		return "", false
	}
	a, err := core.ParseAvatar(s)
	if err != nil {
		return "", false
	}
	return a, true
}
