// Package tag defines the in-memory tree model for named-binary-tag
// documents: a closed set of value kinds plus the Compound container that
// holds named children.
//
// Every kind implements the Value interface. The set is sealed, so encoding
// can classify any Value exhaustively; a value outside this set cannot be
// constructed by callers.
//
// # Value Kinds
//
//	Byte, Short, Int, Long    signed integers of 8/16/32/64 bits
//	Float, Double             IEEE-754 floats of 32/64 bits
//	String                    UTF-8 text
//	ByteArray, IntArray       packed arrays
//	*List                     ordered homogeneous sequence of unnamed values
//	*Compound                 named set of keyed values
//
// # Building Trees
//
//	root := tag.NewCompound("player")
//	root.SetString("id", "f81d4fae")
//	root.SetInt("score", 1200)
//	pos := root.GetCompound("position", true)
//	pos.SetDouble("x", 12.5)
package tag

import (
	"math"
	"slices"

	"github.com/arloliu/nbt/format"
)

// Value is the interface implemented by every tag kind. It is sealed: the
// kinds declared in this package are the only implementations.
type Value interface {
	// ID returns the wire identifier of the value's kind.
	ID() format.TagID

	isValue()
}

type (
	// Byte is a signed 8-bit integer value.
	Byte int8
	// Short is a signed 16-bit integer value.
	Short int16
	// Int is a signed 32-bit integer value.
	Int int32
	// Long is a signed 64-bit integer value.
	Long int64
	// Float is an IEEE-754 32-bit float value.
	Float float32
	// Double is an IEEE-754 64-bit float value.
	Double float64
	// String is a UTF-8 text value.
	String string
	// ByteArray is a packed sequence of bytes.
	ByteArray []byte
	// IntArray is a packed sequence of signed 32-bit integers.
	IntArray []int32
)

func (Byte) ID() format.TagID      { return format.TagByte }
func (Short) ID() format.TagID     { return format.TagShort }
func (Int) ID() format.TagID       { return format.TagInt }
func (Long) ID() format.TagID      { return format.TagLong }
func (Float) ID() format.TagID     { return format.TagFloat }
func (Double) ID() format.TagID    { return format.TagDouble }
func (String) ID() format.TagID    { return format.TagString }
func (ByteArray) ID() format.TagID { return format.TagByteArray }
func (IntArray) ID() format.TagID  { return format.TagIntArray }

func (Byte) isValue()      {}
func (Short) isValue()     {}
func (Int) isValue()       {}
func (Long) isValue()      {}
func (Float) isValue()     {}
func (Double) isValue()    {}
func (String) isValue()    {}
func (ByteArray) isValue() {}
func (IntArray) isValue()  {}

// List is an ordered sequence of unnamed values. All elements must share a
// single kind; the writer rejects heterogeneous lists at encode time.
//
// An empty list has no intrinsic element kind and is encoded with a Byte
// placeholder and a count of zero.
type List struct {
	Elems []Value
}

// NewList creates a list holding the given elements.
func NewList(elems ...Value) *List {
	return &List{Elems: elems}
}

func (l *List) ID() format.TagID { return format.TagList }
func (l *List) isValue()         {}

// Len returns the number of elements in the list.
func (l *List) Len() int {
	return len(l.Elems)
}

// Append adds elements to the end of the list.
func (l *List) Append(elems ...Value) {
	l.Elems = append(l.Elems, elems...)
}

// ElementID returns the kind of the list's elements, taken from the first
// element. The second return is false for an empty list, which has no
// intrinsic element kind.
func (l *List) ElementID() (format.TagID, bool) {
	if len(l.Elems) == 0 {
		return format.TagEnd, false
	}

	return l.Elems[0].ID(), true
}

// Equal reports whether two values are structurally equal.
//
// Floats compare by bit pattern, so NaN equals NaN and +0 differs from -0;
// this keeps equality consistent with the encoded representation. Compounds
// compare order-independently, including their names. Lists compare
// element-wise in order.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.ID() != b.ID() {
		return false
	}

	switch av := a.(type) {
	case Byte:
		return av == b.(Byte)
	case Short:
		return av == b.(Short)
	case Int:
		return av == b.(Int)
	case Long:
		return av == b.(Long)
	case Float:
		return math.Float32bits(float32(av)) == math.Float32bits(float32(b.(Float)))
	case Double:
		return math.Float64bits(float64(av)) == math.Float64bits(float64(b.(Double)))
	case String:
		return av == b.(String)
	case ByteArray:
		return slices.Equal(av, b.(ByteArray))
	case IntArray:
		return slices.Equal(av, b.(IntArray))
	case *List:
		bv := b.(*List)
		if av == nil || bv == nil {
			return av == bv
		}
		if len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !Equal(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}

		return true
	case *Compound:
		return av.Equal(b.(*Compound))
	default:
		return false
	}
}

// CloneValue returns a deep copy of v. Arrays, lists and compounds are
// copied recursively; scalar kinds are returned as-is since they are
// immutable.
func CloneValue(v Value) Value {
	switch val := v.(type) {
	case ByteArray:
		return ByteArray(slices.Clone(val))
	case IntArray:
		return IntArray(slices.Clone(val))
	case *List:
		if val == nil {
			return val
		}
		elems := make([]Value, len(val.Elems))
		for i, e := range val.Elems {
			elems[i] = CloneValue(e)
		}

		return &List{Elems: elems}
	case *Compound:
		if val == nil {
			return val
		}

		return val.Clone(val.name)
	default:
		return v
	}
}
