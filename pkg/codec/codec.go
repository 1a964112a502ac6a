package codec

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
)

// Codec converts queue items to and from their stored byte representation.
type Codec[T any] interface {
	Encode(v T) ([]byte, error)
	Decode(b []byte) (T, error)
}

// Gob encodes items with encoding/gob. It is the default codec: any value
// gob can represent round-trips, including nested structs, maps and slices.
type Gob[T any] struct{}

func (Gob[T]) Encode(v T) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Gob[T]) Decode(b []byte) (T, error) {
	var v T
	err := gob.NewDecoder(bytes.NewReader(b)).Decode(&v)
	return v, err
}

// JSON encodes items with encoding/json, for queues shared with non-Go
// producers or consumers.
type JSON[T any] struct{}

func (JSON[T]) Encode(v T) ([]byte, error) { return json.Marshal(v) }

func (JSON[T]) Decode(b []byte) (T, error) {
	var v T
	err := json.Unmarshal(b, &v)
	return v, err
}

// Raw passes byte slices through unchanged. Use with Queue[[]byte] when the
// payloads are already serialized, or when another process owns the format.
type Raw struct{}

func (Raw) Encode(v []byte) ([]byte, error) { return v, nil }

func (Raw) Decode(b []byte) ([]byte, error) { return b, nil }
