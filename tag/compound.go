package tag

import (
	"fmt"
	"iter"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
)

// Compound is a named tree node holding keyed child values.
//
// Keys are unique; storing under an existing key replaces the value without
// changing the size. Iteration order is unspecified, and equality is
// order-independent. A child compound with a non-empty name must be stored
// under a key equal to that name; the mismatch is reported by Set at the
// call site rather than surfacing later during encoding.
type Compound struct {
	name    string
	entries map[string]Value
}

// NewCompound creates an empty compound with the given name. Compounds that
// live inside lists are anonymous; pass an empty name for those.
func NewCompound(name string) *Compound {
	return &Compound{
		name:    name,
		entries: make(map[string]Value, 8),
	}
}

func (c *Compound) ID() format.TagID { return format.TagCompound }
func (c *Compound) isValue()         {}

// Name returns the compound's own name. It is empty for anonymous
// compounds, such as members of a list.
func (c *Compound) Name() string {
	return c.name
}

// Set stores v under key, replacing any existing entry.
//
// Returns errs.ErrInvalidValue for a nil value and errs.ErrNameMismatch
// when v is a compound whose non-empty name differs from key.
func (c *Compound) Set(key string, v Value) error {
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("%w: nil value for key %q", errs.ErrInvalidValue, key)
	case *Compound:
		if val == nil {
			return fmt.Errorf("%w: nil compound for key %q", errs.ErrInvalidValue, key)
		}
		if val.name != "" && val.name != key {
			return fmt.Errorf("%w: compound named %q stored under key %q", errs.ErrNameMismatch, val.name, key)
		}
	case *List:
		if val == nil {
			return fmt.Errorf("%w: nil list for key %q", errs.ErrInvalidValue, key)
		}
	}

	if c.entries == nil {
		c.entries = make(map[string]Value, 8)
	}
	c.entries[key] = v

	return nil
}

// SetByte stores a byte value under key.
func (c *Compound) SetByte(key string, v int8) { c.mustSet(key, Byte(v)) }

// SetShort stores a short value under key.
func (c *Compound) SetShort(key string, v int16) { c.mustSet(key, Short(v)) }

// SetInt stores an int value under key.
func (c *Compound) SetInt(key string, v int32) { c.mustSet(key, Int(v)) }

// SetLong stores a long value under key.
func (c *Compound) SetLong(key string, v int64) { c.mustSet(key, Long(v)) }

// SetFloat stores a float value under key.
func (c *Compound) SetFloat(key string, v float32) { c.mustSet(key, Float(v)) }

// SetDouble stores a double value under key.
func (c *Compound) SetDouble(key string, v float64) { c.mustSet(key, Double(v)) }

// SetString stores a string value under key.
func (c *Compound) SetString(key string, v string) { c.mustSet(key, String(v)) }

// SetByteArray stores a byte array value under key. The slice is stored
// without copying.
func (c *Compound) SetByteArray(key string, v []byte) { c.mustSet(key, ByteArray(v)) }

// SetIntArray stores an int array value under key. The slice is stored
// without copying.
func (c *Compound) SetIntArray(key string, v []int32) { c.mustSet(key, IntArray(v)) }

// mustSet inserts kinds that cannot violate the container contract.
func (c *Compound) mustSet(key string, v Value) {
	if c.entries == nil {
		c.entries = make(map[string]Value, 8)
	}
	c.entries[key] = v
}

// AddChild stores child under its own name. Equivalent to calling Set with
// the child's name as the key.
func (c *Compound) AddChild(child *Compound) error {
	if child == nil {
		return fmt.Errorf("%w: nil compound child", errs.ErrInvalidValue)
	}

	return c.Set(child.name, child)
}

// Get returns the value stored under key and whether it exists.
func (c *Compound) Get(key string) (Value, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// get returns the entry under key as type T, or def when the key is absent
// or holds a different kind.
func get[T Value](c *Compound, key string, def T) T {
	if v, ok := c.entries[key]; ok {
		if tv, ok := v.(T); ok {
			return tv
		}
	}

	return def
}

// GetByte returns the byte value under key, or def when absent or held by
// another kind.
func (c *Compound) GetByte(key string, def int8) int8 {
	return int8(get(c, key, Byte(def)))
}

// GetShort returns the short value under key, or def when absent or held by
// another kind.
func (c *Compound) GetShort(key string, def int16) int16 {
	return int16(get(c, key, Short(def)))
}

// GetInt returns the int value under key, or def when absent or held by
// another kind.
func (c *Compound) GetInt(key string, def int32) int32 {
	return int32(get(c, key, Int(def)))
}

// GetLong returns the long value under key, or def when absent or held by
// another kind.
func (c *Compound) GetLong(key string, def int64) int64 {
	return int64(get(c, key, Long(def)))
}

// GetFloat returns the float value under key, or def when absent or held by
// another kind.
func (c *Compound) GetFloat(key string, def float32) float32 {
	return float32(get(c, key, Float(def)))
}

// GetDouble returns the double value under key, or def when absent or held
// by another kind.
func (c *Compound) GetDouble(key string, def float64) float64 {
	return float64(get(c, key, Double(def)))
}

// GetString returns the string value under key, or def when absent or held
// by another kind.
func (c *Compound) GetString(key string, def string) string {
	return string(get(c, key, String(def)))
}

// GetByteArray returns the byte array under key, or def when absent or held
// by another kind. The returned slice is the stored one, not a copy.
func (c *Compound) GetByteArray(key string, def []byte) []byte {
	return []byte(get(c, key, ByteArray(def)))
}

// GetIntArray returns the int array under key, or def when absent or held
// by another kind. The returned slice is the stored one, not a copy.
func (c *Compound) GetIntArray(key string, def []int32) []int32 {
	return []int32(get(c, key, IntArray(def)))
}

// GetCompound returns the compound stored under key. When the key is absent
// and create is true, a fresh empty compound named key is inserted and
// returned; with create false, absence yields nil. A key holding a
// different kind yields nil without inserting.
func (c *Compound) GetCompound(key string, create bool) *Compound {
	if v, ok := c.entries[key]; ok {
		child, _ := v.(*Compound)
		return child
	}

	if !create {
		return nil
	}

	child := NewCompound(key)
	c.mustSet(key, child)

	return child
}

// GetList returns the list stored under key. When the key is absent and
// create is true, a fresh empty list is inserted and returned; with create
// false, absence yields nil. A key holding a different kind yields nil
// without inserting.
func (c *Compound) GetList(key string, create bool) *List {
	if v, ok := c.entries[key]; ok {
		child, _ := v.(*List)
		return child
	}

	if !create {
		return nil
	}

	child := NewList()
	c.mustSet(key, child)

	return child
}

// Remove deletes the entry under key and returns the removed value, or
// (nil, false) when no entry existed.
func (c *Compound) Remove(key string) (Value, bool) {
	v, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	delete(c.entries, key)

	return v, true
}

// Contains reports whether an entry exists under key.
func (c *Compound) Contains(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// Len returns the number of entries in the compound.
func (c *Compound) Len() int {
	return len(c.entries)
}

// All returns an iterator over the live (key, value) entries. The order is
// unspecified.
//
// Example:
//
//	for key, val := range compound.All() {
//	    fmt.Printf("%s: %v\n", key, val)
//	}
func (c *Compound) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for k, v := range c.entries {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Keys returns the entry keys in unspecified order.
func (c *Compound) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}

	return keys
}

// Clone returns a deep copy of the compound under the given name, or under
// the original name when newName is empty. Nested compounds, lists and
// arrays are copied recursively, so the clone shares no mutable state with
// its source.
func (c *Compound) Clone(newName string) *Compound {
	if newName == "" {
		newName = c.name
	}
	clone := &Compound{
		name:    newName,
		entries: make(map[string]Value, len(c.entries)),
	}
	for k, v := range c.entries {
		clone.entries[k] = CloneValue(v)
	}

	return clone
}

// Equal reports whether two compounds hold equal entries under the same
// name. Entry order does not participate; two compounds built in different
// insertion orders compare equal.
func (c *Compound) Equal(other *Compound) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.name != other.name || len(c.entries) != len(other.entries) {
		return false
	}
	for k, v := range c.entries {
		ov, ok := other.entries[k]
		if !ok || !Equal(v, ov) {
			return false
		}
	}

	return true
}
