package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/clbarnes/yarqueue/internal/store"
)

// blockSlice bounds each server-side BLPOP round during an indefinite wait,
// so context cancellation is observed between rounds.
const blockSlice = time.Second

// Options configures the Redis connection.
type Options struct {
	// Addr is the host:port of the Redis instance.
	Addr string
	// DB is the database index to SELECT.
	DB int
	// Username and Password are optional credentials.
	Username string
	Password string
	// MaxIdle bounds the connection pool; 0 means a small default.
	MaxIdle int
}

// Store implements store.Store for one named queue on a Redis instance.
type Store struct {
	pool    *redis.Pool
	ownPool bool
	name    string
}

var _ store.Store = (*Store)(nil)

// pushCountScript pushes a contiguous batch at either end and bumps the
// task counter in the same script execution. ARGV[1] is "l" or "r"; the
// remaining ARGV are payloads in input order. Left batches are pushed in
// reverse so the run reads in input order from the left.
var pushCountScript = redis.NewScript(2, `
local n = #ARGV - 1
if ARGV[1] == "r" then
  redis.call("RPUSH", KEYS[1], unpack(ARGV, 2))
else
  for i = #ARGV, 2, -1 do
    redis.call("LPUSH", KEYS[1], ARGV[i])
  end
end
return redis.call("INCRBY", KEYS[2], n)
`)

// decrCheckScript decrements the counter only when the result stays
// non-negative, returning -1 to signal underflow.
var decrCheckScript = redis.NewScript(1, `
local v = tonumber(redis.call("GET", KEYS[1]) or "0")
if v <= 0 then
  return -1
end
return redis.call("DECR", KEYS[1])
`)

// New dials a pooled connection to Redis for the named queue.
func New(name string, opts Options) (*Store, error) {
	if opts.Addr == "" {
		return nil, errors.New("redisstore: Options.Addr is required")
	}
	return &Store{pool: NewPool(opts), ownPool: true, name: name}, nil
}

// NewPool builds a connection pool for the given options. Use with
// NewWithPool when several queue names share one Redis instance.
func NewPool(opts Options) *redis.Pool {
	maxIdle := opts.MaxIdle
	if maxIdle <= 0 {
		maxIdle = 3
	}
	return &redis.Pool{
		MaxIdle:     maxIdle,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			// No read timeout on the dial: blocking pops rely on the
			// server-side BLPOP deadline.
			return redis.Dial("tcp", opts.Addr,
				redis.DialDatabase(opts.DB),
				redis.DialUsername(opts.Username),
				redis.DialPassword(opts.Password),
			)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

// NewWithPool wraps an existing pool, which the caller keeps ownership of.
// Queues sharing a pool and a name are the same logical queue.
func NewWithPool(name string, pool *redis.Pool) *Store {
	return &Store{pool: pool, name: name}
}

// Close releases the pool if this store created it.
func (s *Store) Close() error {
	if s.ownPool {
		return s.pool.Close()
	}
	return nil
}

func (s *Store) conn(ctx context.Context) (redis.Conn, error) {
	return s.pool.GetContext(ctx)
}

func pushCmd(end store.End) string {
	if end == store.Tail {
		return "RPUSH"
	}
	return "LPUSH"
}

func popCmd(end store.End, blocking bool) string {
	switch {
	case end == store.Head && blocking:
		return "BLPOP"
	case end == store.Head:
		return "LPOP"
	case blocking:
		return "BRPOP"
	default:
		return "RPOP"
	}
}

func (s *Store) Push(ctx context.Context, end store.End, payloads ...[]byte) error {
	if len(payloads) == 0 {
		return nil
	}
	c, err := s.conn(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	args := make([]interface{}, 0, len(payloads)+1)
	args = append(args, s.name)
	if end == store.Tail {
		for _, p := range payloads {
			args = append(args, p)
		}
	} else {
		// Variadic LPUSH inserts arguments left to right, reversing them;
		// feed the batch backwards so it reads in input order.
		for i := len(payloads) - 1; i >= 0; i-- {
			args = append(args, payloads[i])
		}
	}
	_, err = c.Do(pushCmd(end), args...)
	return err
}

func (s *Store) PushCount(ctx context.Context, end store.End, counter string, payloads ...[]byte) error {
	if len(payloads) == 0 {
		return nil
	}
	c, err := s.conn(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	args := make([]interface{}, 0, len(payloads)+3)
	args = append(args, s.name, counter)
	if end == store.Tail {
		args = append(args, "r")
	} else {
		args = append(args, "l")
	}
	for _, p := range payloads {
		args = append(args, p)
	}
	_, err = pushCountScript.Do(c, args...)
	return err
}

func (s *Store) Pop(ctx context.Context, end store.End, wait time.Duration) ([]byte, error) {
	c, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	if wait == 0 {
		b, err := redis.Bytes(c.Do(popCmd(end, false), s.name))
		if errors.Is(err, redis.ErrNil) {
			return nil, store.ErrEmpty
		}
		return b, err
	}

	if wait > 0 {
		b, ok, err := s.blockingPop(c, end, wait)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, store.ErrTimeout
		}
		return b, nil
	}

	// Indefinite wait: bounded BLPOP rounds, re-checking the context
	// between them.
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, ok, err := s.blockingPop(c, end, blockSlice)
		if err != nil {
			return nil, err
		}
		if ok {
			return b, nil
		}
	}
}

// blockTimeout renders a positive wait as the fractional-second string
// BLPOP/BRPOP take (Redis 6.0+). Millisecond resolution is the finest the
// command accepts, and a rendered "0.000" would mean block forever, so
// sub-millisecond waits round up to 0.001.
func blockTimeout(wait time.Duration) string {
	if wait < time.Millisecond {
		wait = time.Millisecond
	}
	return fmt.Sprintf("%.3f", wait.Seconds())
}

// blockingPop runs one server-side blocking pop, returning ok=false when
// the deadline passed with nothing to pop.
func (s *Store) blockingPop(c redis.Conn, end store.End, wait time.Duration) ([]byte, bool, error) {
	reply, err := redis.Values(c.Do(popCmd(end, true), s.name, blockTimeout(wait)))
	if errors.Is(err, redis.ErrNil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(reply) != 2 {
		return nil, false, fmt.Errorf("redisstore: unexpected blocking pop reply of %d values", len(reply))
	}
	b, err := redis.Bytes(reply[1], nil)
	return b, err == nil, err
}

func (s *Store) Len(ctx context.Context) (int, error) {
	c, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}
	defer c.Close()
	return redis.Int(c.Do("LLEN", s.name))
}

func (s *Store) Clear(ctx context.Context, counters ...string) error {
	c, err := s.conn(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	// Multi-key DEL is a single atomic command.
	args := make([]interface{}, 0, len(counters)+1)
	args = append(args, s.name)
	for _, counter := range counters {
		args = append(args, counter)
	}
	_, err = c.Do("DEL", args...)
	return err
}

func (s *Store) IncrBy(ctx context.Context, counter string, n int64) (int64, error) {
	c, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}
	defer c.Close()
	return redis.Int64(c.Do("INCRBY", counter, n))
}

func (s *Store) DecrCheck(ctx context.Context, counter string) error {
	c, err := s.conn(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	v, err := redis.Int64(decrCheckScript.Do(c, counter))
	if err != nil {
		return err
	}
	if v < 0 {
		return store.ErrCounterUnderflow
	}
	return nil
}

func (s *Store) Counter(ctx context.Context, counter string) (int64, error) {
	c, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}
	defer c.Close()

	v, err := redis.Int64(c.Do("GET", counter))
	if errors.Is(err, redis.ErrNil) {
		return 0, nil
	}
	return v, err
}
