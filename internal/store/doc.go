// Package store defines the backing-store contract the queue engine runs
// against: an end-addressed list plus a small set of named atomic counters,
// scoped by queue name.
//
// Two backends implement the contract:
//   - redisstore: a shared Redis instance, usable from independent processes
//     and machines. Multi-step invariants (push+count, checked decrement,
//     clear) run as server-side Lua scripts.
//   - pebblestore: an embedded Pebble keyspace for single-machine use and
//     tests, the fallback when no Redis address is configured.
//
// All blocking happens inside Pop: wait < 0 blocks until an item arrives,
// wait == 0 returns ErrEmpty immediately on a miss, wait > 0 returns
// ErrTimeout once the deadline passes. Everything else is a single remote
// or storage-level operation and returns without suspending.
package store
