package ident

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator produces review IDs: ULIDs with monotonic entropy, so IDs are
// globally unique and lexicographically sortable by generation time. IDs
// handed out by one Generator sort consistently with call order even within
// the same millisecond.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewGenerator() *Generator {
	return &Generator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// NewReviewID never fails. Entropy exhaustion inside a single millisecond is
// the only error path of ulid.New; fall back to a fresh non-monotonic ULID
// rather than surface it.
func (g *Generator) NewReviewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), g.entropy)
	if err != nil {
		return ulid.Make().String()
	}
	return id.String()
}
