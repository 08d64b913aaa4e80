package store

import "sync"

// SlotView is a point-in-time copy of a resource slot, the per-resource
// lifecycle of one outstanding call: idle, loading, fulfilled or rejected.
type SlotView[T any] struct {
	Value   T
	Loading bool
	Err     error
	Success bool
}

// Slot tracks one logical resource's request state. Each dispatch gets a
// monotonic generation from Begin; Resolve and Fail apply only while their
// generation is still the newest, so a stale response can never overwrite a
// newer one.
type Slot[T any] struct {
	mu      sync.Mutex
	gen     uint64
	value   T
	loading bool
	err     error
	success bool
}

// Begin marks the slot loading, clears the previous error and returns the
// generation the caller must present when the call settles.
func (s *Slot[T]) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.loading = true
	s.err = nil
	return s.gen
}

// Resolve stores the payload and sets the success flag. Returns false if a
// newer dispatch has superseded this generation; the payload is dropped.
func (s *Slot[T]) Resolve(gen uint64, v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.loading = false
	s.value = v
	s.success = true
	return true
}

// Fail records the error. Prior data is left untouched. Returns false if the
// generation is stale.
func (s *Slot[T]) Fail(gen uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.loading = false
	s.err = err
	return true
}

func (s *Slot[T]) View() SlotView[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SlotView[T]{Value: s.value, Loading: s.loading, Err: s.err, Success: s.success}
}

// ClearError drops a surfaced error so the view stops showing it.
func (s *Slot[T]) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
}

// ClearSuccess resets the completion flag after the caller has reacted to it.
func (s *Slot[T]) ClearSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.success = false
}

// Reset returns the slot to idle with a zero value. Pending generations are
// invalidated.
func (s *Slot[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.gen++
	s.value = zero
	s.loading = false
	s.err = nil
	s.success = false
}
