// Package codec defines the pluggable item serializer used at the queue
// boundary.
//
// A Codec turns application values into the opaque byte payloads stored in
// the backing list and back again. Three implementations ship with the
// library:
//
//	codec.Gob[T]{}  // default; handles arbitrary Go values via encoding/gob
//	codec.JSON[T]{} // text interchange, readable by non-Go consumers
//	codec.Raw{}     // passthrough for Queue[[]byte]; no transformation
//
// Codecs are plain values injected at queue construction and carry no state,
// so they are safe to share across queues and goroutines.
package codec
