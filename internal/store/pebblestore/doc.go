// Package pebblestore implements the store contract on an embedded Pebble
// database. It is the fallback backend when no Redis address is configured,
// and the backend the test suite runs against.
//
// A queue's list is a run of keys between two boundary cursors:
//   - q/{name}/i/{seq_be8}  (items; seq grows rightward from a mid-range origin)
//   - q/{name}/m            (boundary cursors: left, right)
//   - c/{key}               (counters, 8-byte big-endian)
//
// Pushing right writes at the right cursor and advances it; pushing left
// writes below the left cursor. Both cursors live in a meta record committed
// in the same batch as the items, so a queue reopened from disk resumes
// where it left off. Blocked poppers park on a per-queue notify channel that
// is closed and replaced on every push.
//
// Atomicity is process-local (Pebble batches under a per-queue mutex), which
// matches the backend's role: one process, many goroutines. Cross-process
// sharing is what the Redis backend is for.
package pebblestore
