package id

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"sync/atomic"
	"time"
)

// ID is a process-unique identifier: an 8-byte random generator tag
// followed by an 8-byte sequence number.
type ID [16]byte

// Bytes returns the raw 16-byte representation.
func (i ID) Bytes() []byte { b := make([]byte, 16); copy(b, i[:]); return b }

// String returns the id as 32 lowercase hex digits.
func (i ID) String() string { return hex.EncodeToString(i[:]) }

// Generator produces unique IDs. Safe for concurrent use.
type Generator struct {
	tag [8]byte
	seq atomic.Uint64
}

// NewGenerator creates a Generator with a fresh random tag.
func NewGenerator() *Generator {
	g := &Generator{}
	if _, err := rand.Read(g.tag[:]); err != nil {
		// crypto/rand should not fail; the clock still keeps ids unique
		// within this process.
		binary.BigEndian.PutUint64(g.tag[:], uint64(time.Now().UnixNano()))
	}
	return g
}

// Next returns a new ID.
func (g *Generator) Next() ID {
	var out ID
	copy(out[:8], g.tag[:])
	binary.BigEndian.PutUint64(out[8:], g.seq.Add(1))
	return out
}
