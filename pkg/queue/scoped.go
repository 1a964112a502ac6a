package queue

import "context"

// Clearer is the surface the scoped helpers need from any queue variant.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Joiner is the surface of a joinable variant: it can block until all
// outstanding tasks complete.
type Joiner interface {
	Clearer
	Join(ctx context.Context) error
}

// Scoped runs fn with the queue and clears it on every exit path, whether
// fn succeeded or not. If fn fails, its error wins over a clear failure.
func Scoped[Q Clearer](ctx context.Context, q Q, fn func(Q) error) error {
	err := fn(q)
	if cerr := q.Clear(ctx); err == nil {
		err = cerr
	}
	return err
}

// ScopedJoinable runs fn with the joinable queue, then blocks until every
// enqueued task is marked done before clearing, so the exit-time clear
// never discards in-flight work. Cancel ctx to give up on the join.
func ScopedJoinable[Q Joiner](ctx context.Context, q Q, fn func(Q) error) error {
	err := fn(q)
	if jerr := q.Join(ctx); err == nil {
		err = jerr
	}
	if cerr := q.Clear(ctx); err == nil {
		err = cerr
	}
	return err
}
