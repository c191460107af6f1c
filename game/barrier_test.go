package game

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBarrier(t *testing.T) {
	const workers = 3
	b := newBarrier(workers + 1)

	var phase atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Wait()
			phase.Add(1)
			b.Wait()
			phase.Add(1)
		}()
	}

	// Nobody advances until the last party arrives.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), phase.Load())

	b.Wait()
	assert.Eventually(t, func() bool { return phase.Load() == workers }, time.Second, time.Millisecond)

	// The barrier is reusable across generations.
	b.Wait()
	wg.Wait()
	assert.Equal(t, int32(2*workers), phase.Load())
}
