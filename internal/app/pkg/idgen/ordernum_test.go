package idgen

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_Format(t *testing.T) {
	gen := NewOrderNumberGenerator(1)

	num := gen.Next()

	assert.True(t, strings.HasPrefix(num, "TT"))
	assert.Len(t, num, 17)
}

func TestNext_UniqueUnderConcurrency(t *testing.T) {
	gen := NewOrderNumberGenerator(1)

	const workers = 20
	const perWorker = 50

	var mu sync.Mutex
	seen := make(map[string]struct{}, workers*perWorker)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				num := gen.Next()
				mu.Lock()
				seen[num] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, workers*perWorker, "no two orders may share a number")
}

func TestNext_Monotonic(t *testing.T) {
	gen := NewOrderNumberGenerator(0)

	prev := gen.Next()
	for i := 0; i < 100; i++ {
		next := gen.Next()
		assert.True(t, next > prev, "order numbers must be monotonically increasing: %s then %s", prev, next)
		prev = next
	}
}

func TestNewOrderNumberGenerator_InvalidMachineID(t *testing.T) {
	gen := NewOrderNumberGenerator(1000)

	// 非法机器ID回退为 0
	assert.Equal(t, int64(0), gen.machineID)
}
