package dialogue

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"sync"

	"github.com/jonboulle/clockwork"
)

// CodePattern matches every generated reservation code
var CodePattern = regexp.MustCompile(`^RES\d{11}$`)

// CodeGenerator produces reservation codes: "RES", the last 8 digits of a
// strictly increasing millisecond timestamp, and a 3 digit random suffix.
// Codes are unlikely but not guaranteed to be unique across processes; the
// storage unique constraint is the final guard.
type CodeGenerator struct {
	mu     sync.Mutex
	clock  clockwork.Clock
	random func(n int) int
	last   int64
}

// NewCodeGenerator creates a generator reading time from clock
func NewCodeGenerator(clock clockwork.Clock) *CodeGenerator {
	return &CodeGenerator{clock: clock, random: rand.IntN}
}

// Next returns a new reservation code
func (g *CodeGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.clock.Now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms

	return fmt.Sprintf("RES%08d%03d", ms%100_000_000, g.random(1000))
}
