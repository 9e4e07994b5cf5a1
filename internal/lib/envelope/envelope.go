// Package envelope converts between Tiny's wrapped-collection wire
// format and flat Go slices.
//
// Tiny encodes every list as an array of single-key containers, e.g.
//
//	"contatos": [{"contato": {...}}, {"contato": {...}}]
//
// Collection handles the conversion in both directions through the
// standard json.Marshaler/Unmarshaler hooks, so record types can embed
// nested wrapped collections as ordinary struct fields and get the
// recursion for free.
package envelope

import (
	"encoding/json"
	"fmt"

	apierrors "tinyclient/internal/lib/errors"
)

// Wrapped is implemented by record types that travel inside
// single-key containers. WrapKey returns the container's field name.
type Wrapped interface {
	WrapKey() string
}

// Collection is a flat, ordered sequence of records that marshals to
// and from Tiny's array-of-single-key-object form.
type Collection[T Wrapped] []T

// MarshalJSON wraps every element into a fresh single-key container.
// A nil or empty collection encodes as [], never null: the provider
// expects empty lists to be present in write payloads.
func (c Collection[T]) MarshalJSON() ([]byte, error) {
	key := wrapKey[T]()
	wrapped := make([]map[string]T, 0, len(c))
	for _, item := range c {
		wrapped = append(wrapped, map[string]T{key: item})
	}
	return json.Marshal(wrapped)
}

// UnmarshalJSON extracts the record under the wrapper key from every
// container, preserving order. A null input unwraps to an empty
// collection. A container lacking the key fails with a ShapeError,
// since success payloads are shape-correct by provider contract.
func (c *Collection[T]) UnmarshalJSON(data []byte) error {
	key := wrapKey[T]()

	var containers []map[string]json.RawMessage
	if err := json.Unmarshal(data, &containers); err != nil {
		return fmt.Errorf("decode wrapped %q collection: %w", key, err)
	}

	items := make([]T, 0, len(containers))
	for i, container := range containers {
		raw, ok := container[key]
		if !ok {
			return &apierrors.ShapeError{Key: key, Index: i}
		}
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return fmt.Errorf("decode %q element %d: %w", key, i, err)
		}
		items = append(items, item)
	}

	*c = items
	return nil
}

func wrapKey[T Wrapped]() string {
	var zero T
	return zero.WrapKey()
}

// Entry pairs a caller-supplied sequence number with one record to
// submit in a batch call. Sequence numbers must be unique within one
// call; they exist purely so the caller can correlate per-record
// results, which the provider may return in any order.
type Entry[T Wrapped] struct {
	Sequencia int
	Record    T
}

// WrapBatch serializes entries into the provider's batch request
// shape: {plural: [{key: {record fields..., "sequencia": n}}]}.
// The sequence number is injected into each record at the JSON level,
// so record types carry no sequencing field of their own.
func WrapBatch[T Wrapped](entries []Entry[T], plural string) ([]byte, error) {
	key := wrapKey[T]()

	wrapped := make([]map[string]json.RawMessage, 0, len(entries))
	for _, entry := range entries {
		encoded, err := json.Marshal(entry.Record)
		if err != nil {
			return nil, fmt.Errorf("marshal %q record %d: %w", key, entry.Sequencia, err)
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(encoded, &fields); err != nil {
			return nil, fmt.Errorf("reshape %q record %d: %w", key, entry.Sequencia, err)
		}
		fields["sequencia"], _ = json.Marshal(entry.Sequencia)

		record, err := json.Marshal(fields)
		if err != nil {
			return nil, fmt.Errorf("marshal %q container %d: %w", key, entry.Sequencia, err)
		}
		wrapped = append(wrapped, map[string]json.RawMessage{key: record})
	}

	return json.Marshal(map[string]any{plural: wrapped})
}
