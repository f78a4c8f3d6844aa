package registry

import (
	"fmt"
	"sync"
	"time"
)

// IDPrefix is the fixed prefix of every panel window id.
const IDPrefix = "floating-"

// IDGenerator produces panel ids of the form "floating-<epoch-millis>".
// Two generations inside the same millisecond would collide, so the
// generator bumps the stamp past the last one it handed out. Ids stay
// strictly increasing and unique for the life of the process.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDGenerator creates a generator using wall-clock time.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// Next returns a fresh panel id.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	stamp := g.now().UnixMilli()
	if stamp <= g.last {
		stamp = g.last + 1
	}
	g.last = stamp

	return fmt.Sprintf("%s%d", IDPrefix, stamp)
}
