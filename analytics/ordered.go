package analytics

import (
	"bytes"
	"encoding/json"
)

// Ordered is a string-keyed map that remembers insertion order and encodes
// to JSON in that order.
type Ordered[V any] struct {
	keys   []string
	values map[string]V
}

func NewOrdered[V any]() *Ordered[V] {
	return &Ordered[V]{values: make(map[string]V)}
}

func (o *Ordered[V]) Get(key string) (V, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Set stores v under key. A new key goes to the end.
func (o *Ordered[V]) Set(key string, v V) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// GetOrInit returns the value under key, storing init() first if absent.
func (o *Ordered[V]) GetOrInit(key string, init func() V) V {
	if v, ok := o.values[key]; ok {
		return v
	}
	v := init()
	o.Set(key, v)
	return v
}

func (o *Ordered[V]) Keys() []string {
	return append([]string(nil), o.keys...)
}

func (o *Ordered[V]) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Each calls fn for every entry in insertion order.
func (o *Ordered[V]) Each(fn func(key string, v V)) {
	if o == nil {
		return
	}
	for _, k := range o.keys {
		fn(k, o.values[k])
	}
}

func (o *Ordered[V]) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Counts tallies occurrences per key.
type Counts = Ordered[int]

func NewCounts() *Counts { return NewOrdered[int]() }

func (o *Ordered[V]) incr(key string, add func(V) V) {
	v, _ := o.Get(key)
	o.Set(key, add(v))
}

// Increment adds one to key.
func Increment(c *Counts, key string) {
	c.incr(key, func(n int) int { return n + 1 })
}

// Sum adds up every count.
func Sum(c *Counts) int {
	total := 0
	c.Each(func(_ string, n int) { total += n })
	return total
}
