// Package fence implements last-request-wins fencing for asynchronous work.
//
// Every request for a key takes a Ticket carrying a monotonically increasing
// sequence number. When the work completes, its result is committed only if
// the ticket is still the newest one issued for that key; older results are
// dropped. In-flight work is never aborted, only ignored on completion.
package fence

import "sync"

// Ticket identifies one issued request for a key.
type Ticket[K comparable] struct {
	Key K
	Seq uint64
}

// Sequencer hands out tickets per key. The zero value is ready to use.
type Sequencer[K comparable] struct {
	mu     sync.Mutex
	latest map[K]uint64
}

// Next issues a new ticket for key, superseding all earlier ones.
func (s *Sequencer[K]) Next(key K) Ticket[K] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest == nil {
		s.latest = make(map[K]uint64)
	}
	s.latest[key]++
	return Ticket[K]{Key: key, Seq: s.latest[key]}
}

// IsLatest reports whether t is still the newest ticket for its key.
func (s *Sequencer[K]) IsLatest(t Ticket[K]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.latest[t.Key] == t.Seq
}

// Commit runs apply while holding the sequencer lock, but only when t is
// still the newest ticket. It reports whether apply ran. Holding the lock
// keeps a concurrent Next from slipping between the check and the write.
func (s *Sequencer[K]) Commit(t Ticket[K], apply func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest[t.Key] != t.Seq {
		return false
	}
	if apply != nil {
		apply()
	}
	return true
}

// Invalidate supersedes every outstanding ticket for key without issuing a
// new request.
func (s *Sequencer[K]) Invalidate(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest == nil {
		s.latest = make(map[K]uint64)
	}
	s.latest[key]++
}
