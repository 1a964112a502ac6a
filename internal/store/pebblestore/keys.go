package pebblestore

import "encoding/binary"

// Key layout:
//
//	q/{name}/i/{seq_be8} - items
//	q/{name}/m           - boundary cursors (left be8, right be8)
//	c/{key}              - counters (value be8, int64 bits)

// seqOrigin sits mid-range so left pushes can descend indefinitely while
// big-endian ordering keeps item keys sorted by position.
const seqOrigin = uint64(1) << 63

func itemPrefix(name string) []byte {
	return []byte("q/" + name + "/i/")
}

func itemKey(name string, seq uint64) []byte {
	prefix := itemPrefix(name)
	key := make([]byte, len(prefix)+8)
	copy(key, prefix)
	binary.BigEndian.PutUint64(key[len(prefix):], seq)
	return key
}

func metaKey(name string) []byte {
	return []byte("q/" + name + "/m")
}

func counterKey(counter string) []byte {
	return []byte("c/" + counter)
}

// itemRange returns the [start, end) bounds covering every item key of the
// named queue. The end bound is the prefix with its last byte incremented,
// which sorts after any seq suffix.
func itemRange(name string) ([]byte, []byte) {
	prefix := itemPrefix(name)
	end := make([]byte, len(prefix))
	copy(end, prefix)
	end[len(end)-1]++
	return prefix, end
}

func encodeCursors(left, right uint64) []byte {
	b := make([]byte, 16)
	binary.BigEndian.PutUint64(b[:8], left)
	binary.BigEndian.PutUint64(b[8:], right)
	return b
}

func decodeCursors(b []byte) (left, right uint64, ok bool) {
	if len(b) < 16 {
		return 0, 0, false
	}
	return binary.BigEndian.Uint64(b[:8]), binary.BigEndian.Uint64(b[8:16]), true
}

func encodeCounter(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

func decodeCounter(b []byte) int64 {
	if len(b) < 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(b[:8]))
}
