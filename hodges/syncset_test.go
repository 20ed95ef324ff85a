package hodges

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSyncSetConcurrentAddContains(t *testing.T) {
	s, err := New(1<<16, 8)
	require.NoError(t, err)
	ss := NewSyncSet(s)

	// The 64 entries below land on distinct slots at this size.
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e := []byte(fmt.Sprintf("entry-%d", i))
			ss.Add(e)
			if !ss.Contains(e) {
				t.Errorf("entry-%d not found after Add", i)
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, uint64(64), ss.Occupied())
	require.Equal(t, uint64(1<<16), ss.SlotCount())
	require.Equal(t, uint64(8), ss.ValueSize())

	ss.Reset()
	require.Zero(t, ss.Occupied())
}
