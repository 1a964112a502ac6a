package queue

import (
	"errors"

	"github.com/clbarnes/yarqueue/internal/store"
)

var (
	// ErrEmpty reports that a non-blocking get found nothing to return.
	ErrEmpty = errors.New("queue: empty")
	// ErrFull is reserved for bounded queue variants. The unbounded core
	// never returns it.
	ErrFull = errors.New("queue: full")
	// ErrTimeout reports that a blocking get, or a Wait on a joinable
	// queue, exceeded its deadline.
	ErrTimeout = errors.New("queue: timed out")
	// ErrTaskCount reports a TaskDone call with no outstanding task: more
	// TaskDone calls than items put. The task counter is left unchanged.
	ErrTaskCount = errors.New("queue: TaskDone called more times than items put")
)

// mapStoreErr rewrites store-level sentinels into the public error kinds.
// Other errors (connection failures and the like) pass through untouched.
func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrEmpty):
		return ErrEmpty
	case errors.Is(err, store.ErrTimeout):
		return ErrTimeout
	case errors.Is(err, store.ErrCounterUnderflow):
		return ErrTaskCount
	default:
		return err
	}
}
