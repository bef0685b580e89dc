package interop

import (
	"encoding/json"
	"fmt"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/tag"
)

// ToJSON renders a tag tree as compact JSON. Byte arrays appear as base64
// strings per Go's JSON conventions; NaN and infinite floats are not
// representable and fail the marshal.
func ToJSON(v tag.Value) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil value", errs.ErrInvalidValue)
	}

	return json.Marshal(ToAny(v))
}

// ToJSONIndent renders a tag tree as indented JSON for human inspection.
func ToJSONIndent(v tag.Value, indent string) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil value", errs.ErrInvalidValue)
	}

	return json.MarshalIndent(ToAny(v), "", indent)
}

// FromJSON parses JSON and lifts the result into a tag tree. All JSON
// numbers arrive as float64 and therefore become Double tags; JSON null
// has no tag representation and is rejected.
func FromJSON(data []byte) (tag.Value, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	return FromAny(raw)
}
