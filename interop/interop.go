// Package interop converts tag trees to and from plain Go values and the
// common interchange encodings built on them: JSON, YAML and CBOR.
//
// The bridge type is `any`: ToAny lowers a tree into maps, slices and
// scalars, FromAny lifts such values back into tags. The interchange
// helpers are thin compositions of that bridge with the respective
// marshalers.
//
// Conversion is not fully faithful. Compound names are carried by the
// enclosing entry, so a root's own name is dropped; re-imported integers
// widen to Long and floats to Double when the source encoding does not
// preserve widths (JSON in particular represents every number as a
// float64). Byte arrays survive JSON as base64 strings, YAML as !!binary
// nodes and CBOR as byte strings. For lossless persistence use the binary
// codec; interop output is for inspection, tooling and export.
package interop

import (
	"fmt"
	"math"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/tag"
)

// ToAny lowers a tag tree into plain Go values: compounds become
// map[string]any, lists []any, arrays keep their slice types and scalars
// map to their underlying Go types. A nil value lowers to nil.
func ToAny(v tag.Value) any {
	switch val := v.(type) {
	case tag.Byte:
		return int8(val)
	case tag.Short:
		return int16(val)
	case tag.Int:
		return int32(val)
	case tag.Long:
		return int64(val)
	case tag.Float:
		return float32(val)
	case tag.Double:
		return float64(val)
	case tag.String:
		return string(val)
	case tag.ByteArray:
		return []byte(val)
	case tag.IntArray:
		return []int32(val)
	case *tag.List:
		if val == nil {
			return nil
		}
		out := make([]any, 0, val.Len())
		for _, elem := range val.Elems {
			out = append(out, ToAny(elem))
		}

		return out
	case *tag.Compound:
		if val == nil {
			return nil
		}
		out := make(map[string]any, val.Len())
		for key, child := range val.All() {
			out[key] = ToAny(child)
		}

		return out
	default:
		return nil
	}
}

// FromAny lifts a plain Go value into a tag. Maps with string keys become
// anonymous compounds, []any becomes a homogeneous list, and scalars map
// onto the narrowest tag of their Go type: int8 to Byte, int16 to Short,
// int32 to Int, and the remaining integer kinds to Long. Booleans follow
// the byte-flag convention (Byte 0 or 1). Values that already are tags
// are deep-copied through unchanged.
//
// Nil values, unsigned integers beyond the Long range and unsupported
// types fail with errs.ErrInvalidValue. Mixed-kind slices fail with
// errs.ErrHeterogeneousList.
func FromAny(v any) (tag.Value, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil has no tag representation", errs.ErrInvalidValue)
	case tag.Value:
		return tag.CloneValue(val), nil
	case bool:
		if val {
			return tag.Byte(1), nil
		}

		return tag.Byte(0), nil
	case int8:
		return tag.Byte(val), nil
	case int16:
		return tag.Short(val), nil
	case int32:
		return tag.Int(val), nil
	case int:
		return tag.Long(val), nil
	case int64:
		return tag.Long(val), nil
	case uint8:
		return tag.Short(int16(val)), nil
	case uint16:
		return tag.Int(int32(val)), nil
	case uint32:
		return tag.Long(int64(val)), nil
	case uint:
		if uint64(val) > math.MaxInt64 {
			return nil, fmt.Errorf("%w: %d exceeds the Long range", errs.ErrInvalidValue, val)
		}

		return tag.Long(int64(val)), nil //nolint:gosec
	case uint64:
		if val > math.MaxInt64 {
			return nil, fmt.Errorf("%w: %d exceeds the Long range", errs.ErrInvalidValue, val)
		}

		return tag.Long(int64(val)), nil //nolint:gosec
	case float32:
		return tag.Float(val), nil
	case float64:
		return tag.Double(val), nil
	case string:
		return tag.String(val), nil
	case []byte:
		return tag.ByteArray(val), nil
	case []int32:
		return tag.IntArray(val), nil
	case []any:
		return listFromAny(val)
	case map[string]any:
		return compoundFromAny(val)
	default:
		return nil, fmt.Errorf("%w: cannot represent %T as a tag", errs.ErrInvalidValue, v)
	}
}

func listFromAny(items []any) (*tag.List, error) {
	list := tag.NewList()
	for i, item := range items {
		elem, err := FromAny(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if i > 0 && elem.ID() != list.Elems[0].ID() {
			return nil, fmt.Errorf("%w: element %d is %s, list is %s",
				errs.ErrHeterogeneousList, i, elem.ID(), list.Elems[0].ID())
		}
		list.Append(elem)
	}

	return list, nil
}

func compoundFromAny(entries map[string]any) (*tag.Compound, error) {
	c := tag.NewCompound("")
	for key, item := range entries {
		child, err := FromAny(item)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		if err := c.Set(key, child); err != nil {
			return nil, err
		}
	}

	return c, nil
}
