package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_ZeroValue(t *testing.T) {
	var f Fields

	assert.Equal(t, 0, f.Len())
	assert.Nil(t, f.Get("missing"))
	assert.Equal(t, "", f.First("missing"))
	assert.False(t, f.Has("missing"))

	f.Add("a", "1")
	assert.Equal(t, []string{"1"}, f.Get("a"))
}

func TestFields_NilReceiver(t *testing.T) {
	var f *Fields

	assert.Equal(t, 0, f.Len())
	assert.Nil(t, f.Get("a"))
	assert.Nil(t, f.Names())
	assert.Nil(t, f.List())
	assert.NotNil(t, f.Clone())
	f.Remove("a")
}

func TestFields_AddPreservesOrder(t *testing.T) {
	f := NewFields()
	f.Add("b", "2")
	f.Add("a", "1")
	f.Add("b", "3")

	assert.Equal(t, []string{"b", "a"}, f.Names())
	assert.Equal(t, []string{"2", "3"}, f.Get("b"))
	assert.Equal(t, "2", f.First("b"))
	assert.Equal(t, 2, f.Len())
}

func TestFields_Remove(t *testing.T) {
	f := NewFields()
	f.Add("a", "1")
	f.Add("b", "2")
	f.Add("c", "3")

	f.Remove("b")
	f.Remove("missing")

	assert.Equal(t, []string{"a", "c"}, f.Names())
	assert.False(t, f.Has("b"))
}

func TestFields_NamesIsCopy(t *testing.T) {
	f := NewFields()
	f.Add("a", "1")

	names := f.Names()
	names[0] = "mutated"

	assert.Equal(t, []string{"a"}, f.Names())
}

func TestFields_Clone(t *testing.T) {
	f := NewFields()
	f.Add("a", "1")
	f.Add("a", "2")

	clone := f.Clone()
	clone.Add("a", "3")
	clone.Add("b", "4")

	assert.Equal(t, []string{"1", "2"}, f.Get("a"))
	assert.Equal(t, []string{"1", "2", "3"}, clone.Get("a"))
	assert.False(t, f.Has("b"))
}

func TestFields_JSON(t *testing.T) {
	f := NewFields()
	f.Add("z", "last")
	f.Add("a", "1")
	f.Add("a", "2")

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"z","values":["last"]},{"name":"a","values":["1","2"]}]`, string(data))

	var decoded Fields
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []string{"z", "a"}, decoded.Names())
	assert.Equal(t, []string{"1", "2"}, decoded.Get("a"))
}

func TestFields_JSON_Empty(t *testing.T) {
	data, err := json.Marshal(NewFields())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestFields_UnmarshalInvalid(t *testing.T) {
	var f Fields
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &f))
}
