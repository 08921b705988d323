package analytics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdered_KeepsInsertionOrder(t *testing.T) {
	o := NewOrdered[int]()
	o.Set("b", 1)
	o.Set("a", 2)
	o.Set("c", 3)
	o.Set("b", 4)

	assert.Equal(t, []string{"b", "a", "c"}, o.Keys())
	assert.Equal(t, 3, o.Len())

	v, ok := o.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 4, v)

	out, err := json.Marshal(o)
	require.NoError(t, err)
	assert.Equal(t, `{"b":4,"a":2,"c":3}`, string(out))
}

func TestOrdered_Nil(t *testing.T) {
	var o *Ordered[int]
	assert.Equal(t, 0, o.Len())

	out, err := o.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
}

func TestOrdered_EscapesKeys(t *testing.T) {
	o := NewOrdered[int]()
	o.Set(`say "hi"`, 1)

	out, err := json.Marshal(o)
	require.NoError(t, err)
	assert.Equal(t, `{"say \"hi\"":1}`, string(out))
}

func TestCounts(t *testing.T) {
	c := NewCounts()
	Increment(c, "x")
	Increment(c, "y")
	Increment(c, "x")

	assert.Equal(t, 3, Sum(c))
	assert.Equal(t, `{"x":2,"y":1}`, string(mustJSONBytes(t, c)))
}

func mustJSONBytes(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
