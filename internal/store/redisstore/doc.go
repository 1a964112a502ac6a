// Package redisstore implements the store contract on a shared Redis
// instance, the backend that makes queues usable across independent
// processes and machines.
//
// The list is a native Redis list keyed by the queue name; counters are
// plain string keys driven by INCRBY/DECR. Single-command atomicity covers
// most operations (variadic LPUSH/RPUSH for contiguous batches, BLPOP/BRPOP
// for blocking pops, multi-key DEL for clear); the two multi-step
// invariants, push+count and the checked task-done decrement, run as
// server-side Lua scripts so no client-side locking is ever needed.
package redisstore
