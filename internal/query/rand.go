package query

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the randomness capability used for image selection. Abstracting
// it lets tests substitute a deterministic source.
type Rand interface {
	Intn(n int) int
}

var (
	processRand     Rand
	processRandOnce sync.Once
)

// defaultRand returns the process-wide random source, shared by every
// Engine that does not inject its own. math/rand sources are not safe for
// concurrent use, so calls are serialized with a mutex.
func defaultRand() Rand {
	processRandOnce.Do(func() {
		processRand = &lockedRand{
			r: rand.New(rand.NewSource(time.Now().UnixNano())),
		}
	})
	return processRand
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
