package interop

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/tag"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer encoding,
// no indefinite-length items. Same logical data always produces
// identical bytes.
var encMode cbor.EncMode

// decMode is the CBOR decoder configured to accept standard CBOR.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("interop: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Tag keys are always strings. With an any-typed decode target the
		// CBOR default map type would be map[interface{}]interface{},
		// which FromAny does not accept; force map[string]any instead.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("interop: CBOR decoder initialization failed: " + err.Error())
	}
}

// ToCBOR renders a tag tree as deterministically encoded CBOR. Unlike
// JSON, CBOR keeps integers and floats apart and carries byte arrays as
// native byte strings, so it is the highest-fidelity interchange form.
func ToCBOR(v tag.Value) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil value", errs.ErrInvalidValue)
	}

	return encMode.Marshal(ToAny(v))
}

// FromCBOR parses CBOR and lifts the result into a tag tree. Integers
// widen to Long and floats to Double; byte strings become ByteArray tags.
func FromCBOR(data []byte) (tag.Value, error) {
	var raw any
	if err := decMode.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid CBOR: %w", err)
	}

	return FromAny(raw)
}
