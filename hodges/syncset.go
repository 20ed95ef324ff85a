package hodges

import "sync"

// SyncSet guards a Set with a single RWMutex so it can be shared between
// goroutines. A Contains that starts after an Add returns observes it.
type SyncSet struct {
	mu  sync.RWMutex
	set *Set
}

// NewSyncSet wraps set. The caller must not use set directly afterwards.
func NewSyncSet(set *Set) *SyncSet {
	return &SyncSet{set: set}
}

func (s *SyncSet) Add(entry []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set.Add(entry)
}

func (s *SyncSet) Contains(entry []byte) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Contains(entry)
}

func (s *SyncSet) Occupied() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Occupied()
}

func (s *SyncSet) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set.Reset()
}

func (s *SyncSet) SlotCount() uint64 { return s.set.SlotCount() }
func (s *SyncSet) ValueSize() uint64 { return s.set.ValueSize() }
