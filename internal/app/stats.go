package app

import (
	"sync"
	"time"
)

// Snapshot is a point-in-time copy of loop counters.
type Snapshot struct {
	Cycles          uint64    `json:"cycles"`
	Delivered       uint64    `json:"delivered"`
	Failed          uint64    `json:"failed"`
	Removed         uint64    `json:"removed"`
	RemoveFailed    uint64    `json:"remove_failed"`
	LastPath        string    `json:"last_path,omitempty"`
	LastError       string    `json:"last_error,omitempty"`
	LastDeliveryAt  time.Time `json:"last_delivery_at"`
	RootUnavailable bool      `json:"root_unavailable"`
}

// Stats accumulates loop counters. Safe for concurrent use.
type Stats struct {
	mu   sync.RWMutex
	snap Snapshot
}

func (s *Stats) cycle() {
	s.mu.Lock()
	s.snap.Cycles++
	s.mu.Unlock()
}

func (s *Stats) rootUnavailable(down bool) {
	s.mu.Lock()
	s.snap.RootUnavailable = down
	s.mu.Unlock()
}

func (s *Stats) delivery(path string, at time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.LastPath = path
	s.snap.LastDeliveryAt = at
	if err != nil {
		s.snap.Failed++
		s.snap.LastError = err.Error()
		return
	}
	s.snap.Delivered++
	s.snap.LastError = ""
}

func (s *Stats) removal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.snap.RemoveFailed++
		return
	}
	s.snap.Removed++
}

// Snapshot returns a copy of the current counters.
func (s *Stats) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
