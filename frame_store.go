package grid

// stateEntry wraps a value with frame tracking for staleness detection.
type stateEntry[T any] struct {
	value     T
	lastFrame uint64
}

// FrameStore caches per-row values for one grid instance and drops entries
// that were not touched during the previous render cycle. Memory therefore
// stays bounded by the materialized window, not by the total row count.
//
// Unlike a process-wide registry, every grid owns its own store; two grids
// never see each other's rows.
//
// Usage:
//
//	store := NewFrameStore[Record]()
//	store.NextFrame()
//	for i := w.Start; i < w.End; i++ {
//	    rec, ok := store.GetOrLoad(i, func() (Record, bool) { return p.RecordByIndex(i) })
//	}
type FrameStore[T any] struct {
	states map[int]*stateEntry[T]
	frame  uint64
	loads  uint64
}

// NewFrameStore creates an empty store at frame 0.
func NewFrameStore[T any]() *FrameStore[T] {
	return &FrameStore[T]{states: make(map[int]*stateEntry[T])}
}

// NextFrame advances the render cycle and removes entries that were not
// accessed in the cycle before it.
func (s *FrameStore[T]) NextFrame() {
	s.frame++
	threshold := s.frame - 1
	for idx, entry := range s.states {
		if entry.lastFrame < threshold {
			delete(s.states, idx)
		}
	}
}

// Frame returns the current render cycle counter.
func (s *FrameStore[T]) Frame() uint64 { return s.frame }

// GetOrLoad returns the cached value for idx, calling load on a miss.
// A failed load is not cached.
func (s *FrameStore[T]) GetOrLoad(idx int, load func() (T, bool)) (T, bool) {
	if entry, ok := s.states[idx]; ok {
		entry.lastFrame = s.frame
		return entry.value, true
	}
	s.loads++
	v, ok := load()
	if !ok {
		var zero T
		return zero, false
	}
	s.states[idx] = &stateEntry[T]{value: v, lastFrame: s.frame}
	return v, true
}

// Get returns the cached value for idx without loading.
func (s *FrameStore[T]) Get(idx int) (T, bool) {
	entry, ok := s.states[idx]
	if !ok {
		var zero T
		return zero, false
	}
	return entry.value, true
}

// Delete removes one entry.
func (s *FrameStore[T]) Delete(idx int) {
	delete(s.states, idx)
}

// Len returns the number of cached entries.
func (s *FrameStore[T]) Len() int { return len(s.states) }

// Loads returns how many cache misses called their loader.
func (s *FrameStore[T]) Loads() uint64 { return s.loads }

// Clear removes all entries immediately, e.g. after the row set changed.
func (s *FrameStore[T]) Clear() {
	s.states = make(map[int]*stateEntry[T])
}
