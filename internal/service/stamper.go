package service

import (
	"sync"
	"time"
)

// stamper hands out strictly increasing UTC timestamps at microsecond
// granularity, the finest precision every backend keeps.
type stamper struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

func newStamper() *stamper {
	return &stamper{now: time.Now}
}

func (s *stamper) next() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.now().UTC().Truncate(time.Microsecond)
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}
