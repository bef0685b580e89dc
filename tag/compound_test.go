package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/nbt/errs"
)

func TestCompound_SetUpsert(t *testing.T) {
	c := NewCompound("root")

	c.SetInt("a", 1)
	require.Equal(t, 1, c.Len())

	c.SetInt("a", 2)
	require.Equal(t, 1, c.Len(), "replacing a key must not change the size")
	require.Equal(t, int32(2), c.GetInt("a", 0))
}

func TestCompound_RemoveAndDefaults(t *testing.T) {
	c := NewCompound("root")
	c.SetInt("a", 42)

	removed, ok := c.Remove("a")
	require.True(t, ok)
	require.Equal(t, Int(42), removed)

	assert.Equal(t, int32(-1), c.GetInt("a", -1), "getter must fall back to the default after removal")
	assert.False(t, c.Contains("a"))
	assert.Equal(t, 0, c.Len())

	_, ok = c.Remove("a")
	assert.False(t, ok, "removing a missing key reports not found")
}

func TestCompound_TypedGetters(t *testing.T) {
	c := NewCompound("root")
	c.SetByte("b", -5)
	c.SetShort("s", -1000)
	c.SetInt("i", 123456)
	c.SetLong("l", -1<<40)
	c.SetFloat("f", 1.5)
	c.SetDouble("d", -2.25)
	c.SetString("str", "hello")
	c.SetByteArray("ba", []byte{1, 2, 3})
	c.SetIntArray("ia", []int32{-1, 0, 1})

	assert.Equal(t, int8(-5), c.GetByte("b", 0))
	assert.Equal(t, int16(-1000), c.GetShort("s", 0))
	assert.Equal(t, int32(123456), c.GetInt("i", 0))
	assert.Equal(t, int64(-1<<40), c.GetLong("l", 0))
	assert.Equal(t, float32(1.5), c.GetFloat("f", 0))
	assert.Equal(t, -2.25, c.GetDouble("d", 0))
	assert.Equal(t, "hello", c.GetString("str", ""))
	assert.Equal(t, []byte{1, 2, 3}, c.GetByteArray("ba", nil))
	assert.Equal(t, []int32{-1, 0, 1}, c.GetIntArray("ia", nil))
}

func TestCompound_GetterKindMismatch(t *testing.T) {
	c := NewCompound("root")
	c.SetString("key", "text")

	// A key held by another kind falls back to the default.
	assert.Equal(t, int32(7), c.GetInt("key", 7))
	assert.Equal(t, "text", c.GetString("key", ""))
}

func TestCompound_SetNameMismatch(t *testing.T) {
	root := NewCompound("root")

	child := NewCompound("alice")
	err := root.Set("bob", child)
	require.ErrorIs(t, err, errs.ErrNameMismatch)
	assert.False(t, root.Contains("bob"))

	// Matching key is accepted.
	require.NoError(t, root.Set("alice", child))

	// Anonymous compounds may live under any key.
	anon := NewCompound("")
	require.NoError(t, root.Set("whatever", anon))
}

func TestCompound_SetNilValues(t *testing.T) {
	c := NewCompound("root")

	require.ErrorIs(t, c.Set("x", nil), errs.ErrInvalidValue)
	require.ErrorIs(t, c.Set("x", (*Compound)(nil)), errs.ErrInvalidValue)
	require.ErrorIs(t, c.Set("x", (*List)(nil)), errs.ErrInvalidValue)
	assert.Equal(t, 0, c.Len())
}

func TestCompound_AddChild(t *testing.T) {
	root := NewCompound("root")
	child := NewCompound("settings")

	require.NoError(t, root.AddChild(child))
	require.Same(t, child, root.GetCompound("settings", false))

	require.ErrorIs(t, root.AddChild(nil), errs.ErrInvalidValue)
}

func TestCompound_GetCompoundCreate(t *testing.T) {
	root := NewCompound("root")

	// Absent without create yields nil and inserts nothing.
	require.Nil(t, root.GetCompound("missing", false))
	assert.Equal(t, 0, root.Len())

	// Absent with create inserts a fresh compound named after the key.
	child := root.GetCompound("branch", true)
	require.NotNil(t, child)
	require.Equal(t, "branch", child.Name())
	assert.Equal(t, 1, root.Len())

	// A second lookup returns the same instance.
	require.Same(t, child, root.GetCompound("branch", true))

	// A key held by another kind yields nil even with create.
	root.SetInt("num", 1)
	require.Nil(t, root.GetCompound("num", true))
	require.Equal(t, int32(1), root.GetInt("num", 0), "create must not clobber an existing entry")
}

func TestCompound_GetListCreate(t *testing.T) {
	root := NewCompound("root")

	require.Nil(t, root.GetList("missing", false))

	list := root.GetList("items", true)
	require.NotNil(t, list)
	require.Equal(t, 0, list.Len())
	require.Same(t, list, root.GetList("items", false))

	list.Append(Int(1), Int(2))
	require.Equal(t, 2, root.GetList("items", false).Len())
}

func TestCompound_All(t *testing.T) {
	c := NewCompound("root")
	c.SetInt("a", 1)
	c.SetInt("b", 2)
	c.Remove("a")

	seen := map[string]Value{}
	for k, v := range c.All() {
		seen[k] = v
	}

	require.Len(t, seen, 1, "iteration must reflect only live entries")
	require.Equal(t, Int(2), seen["b"])
}

func TestCompound_EqualOrderIndependent(t *testing.T) {
	a := NewCompound("root")
	a.SetInt("x", 1)
	a.SetString("y", "two")
	a.SetByteArray("z", []byte{3})

	b := NewCompound("root")
	b.SetByteArray("z", []byte{3})
	b.SetString("y", "two")
	b.SetInt("x", 1)

	require.True(t, a.Equal(b), "insertion order must not affect equality")
	require.True(t, Equal(a, b))

	b.SetInt("x", 9)
	require.False(t, a.Equal(b))
}

func TestCompound_EqualNameSensitive(t *testing.T) {
	a := NewCompound("one")
	b := NewCompound("two")

	require.False(t, a.Equal(b), "differing names must not compare equal")
}

func TestCompound_CloneDeep(t *testing.T) {
	root := NewCompound("root")
	root.SetIntArray("arr", []int32{1, 2, 3})
	nested := root.GetCompound("nested", true)
	nested.SetString("k", "v")
	list := root.GetList("list", true)
	list.Append(Int(10))

	clone := root.Clone("copy")
	require.Equal(t, "copy", clone.Name())
	require.Equal(t, root.Len(), clone.Len())

	// Mutating the clone's nested structures must not touch the source.
	clone.GetCompound("nested", false).SetString("k", "changed")
	clone.GetIntArray("arr", nil)[0] = 99
	clone.GetList("list", false).Append(Int(20))

	assert.Equal(t, "v", root.GetCompound("nested", false).GetString("k", ""))
	assert.Equal(t, []int32{1, 2, 3}, root.GetIntArray("arr", nil))
	assert.Equal(t, 1, root.GetList("list", false).Len())
}

func TestCompound_CloneKeepName(t *testing.T) {
	root := NewCompound("root")
	root.SetInt("a", 1)

	clone := root.Clone("")
	require.Equal(t, "root", clone.Name(), "empty name keeps the original name")
	require.True(t, root.Equal(clone))

	renamed := root.Clone("copy")
	require.Equal(t, "copy", renamed.Name())
}
