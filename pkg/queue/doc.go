// Package queue implements process-shared queues backed by a remote list
// store, with the interface of an in-process blocking queue.
//
// # Overview
//
// A queue is a name plus a store handle; every client opening the same name
// against the same store shares one logical queue, across goroutines,
// processes and machines. Ordering variants differ only in which list ends
// push and pop use:
//
//	New          FIFO: tail push, head pop
//	NewLIFO      stack: tail push, tail pop
//	NewDeque     double-ended: explicit left/right methods per call
//
// Each has a joinable counterpart (NewJoinable, NewJoinableLIFO,
// NewJoinableDeque) that counts every put as an outstanding task,
// atomically with the push. Consumers acknowledge items with TaskDone;
// Join and Wait block until the counter drains to zero.
//
// Items are serialized at the boundary by a codec.Codec; gob is the
// default. All blocking operations take a context and a well-defined
// failure: ErrEmpty for non-blocking misses, ErrTimeout for expired
// deadlines, ErrTaskCount for unbalanced TaskDone calls.
//
// Quick start
//
//	q, _ := queue.NewJoinable[job]("render", queue.Config[job]{Store: st})
//	_ = q.PutMany(ctx, jobs)
//	// elsewhere, possibly another process:
//	v, _ := q.Get(ctx)
//	process(v)
//	_ = q.TaskDone(ctx)
//	// producer side:
//	_ = q.Join(ctx) // all tasks done
//
// Scoped and ScopedJoinable provide the clear-on-exit lifecycle: the queue
// is cleared on every exit path, after a Join for joinable queues.
//
// # Concurrency
//
// Queue handles hold no mutable state beyond the store connection, so one
// handle may be shared by any number of goroutines. Mutual exclusion for
// multi-step operations is delegated to the backing store's atomic
// primitives; no client-side locking is involved, which is what makes the
// same queue safe from uncoordinated processes.
package queue
