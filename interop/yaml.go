package interop

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/tag"
)

// ToYAML renders a tag tree as YAML. Byte arrays appear as !!binary
// nodes; non-finite floats use YAML's .nan and .inf forms.
func ToYAML(v tag.Value) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil value", errs.ErrInvalidValue)
	}

	return yaml.Marshal(ToAny(v))
}

// FromYAML parses YAML and lifts the result into a tag tree. Integers
// become Long tags and floats Double; !!binary nodes arrive as String
// tags holding the decoded bytes.
func FromYAML(data []byte) (tag.Value, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	return FromAny(raw)
}
