package game

import "sync"

// barrier is a reusable rendezvous point: every call to Wait blocks until the
// configured number of participants has arrived, then all are released and
// the barrier resets for the next cycle. A participant arriving during the
// next cycle simply waits for that cycle to fill up.
type barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	parties    int
	arrived    int
	generation int
}

// newBarrier creates a barrier for the given number of participants.
func newBarrier(parties int) *barrier {
	b := &barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until all participants of the current cycle have arrived.
func (b *barrier) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()

	generation := b.generation
	b.arrived++
	if b.arrived == b.parties {
		b.arrived = 0
		b.generation++
		b.cond.Broadcast()
		return
	}
	for generation == b.generation {
		b.cond.Wait()
	}
}
