package facecam

import (
	"sync"

	"github.com/swdee/go-facecam/preprocess"
	"gocv.io/x/gocv"
)

// SlotStats are the counters of a Slot
type SlotStats struct {
	// Stores is the number of frames written
	Stores uint64
	// Snapshots is the number of frames read
	Snapshots uint64
	// Drops is the number of frames overwritten before they were read
	Drops uint64
}

// Slot holds the single most recent frame shared between a writer and a
// reader.  A Store replaces the held frame as a whole so a Snapshot always
// copies out either the previous or the new complete frame, never a mix
type Slot struct {
	mu     sync.Mutex
	mat    gocv.Mat
	unread bool
	closed bool
	stats  SlotStats
}

// NewSlot returns a slot holding a copy of the initial frame
func NewSlot(initial gocv.Mat) *Slot {
	return &Slot{
		mat: initial.Clone(),
	}
}

// Store replaces the held frame with a copy of m
func (s *Slot) Store(m gocv.Mat) error {

	if m.Empty() {
		return preprocess.ErrEmptyFrame
	}

	// copy outside the lock so readers are only held up by the swap
	clone := m.Clone()

	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		clone.Close()
		return ErrSlotClosed
	}

	old := s.mat
	s.mat = clone

	if s.unread {
		s.stats.Drops++
	}

	s.unread = true
	s.stats.Stores++
	s.mu.Unlock()

	// no reader can reference old once it has been swapped out
	return old.Close()
}

// Snapshot copies the held frame into dst
func (s *Slot) Snapshot(dst *gocv.Mat) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSlotClosed
	}

	s.mat.CopyTo(dst)
	s.unread = false
	s.stats.Snapshots++

	return nil
}

// Stats returns the slot counters
func (s *Slot) Stats() SlotStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Close releases the held frame.  Subsequent Store and Snapshot calls return
// ErrSlotClosed
func (s *Slot) Close() error {

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	return s.mat.Close()
}
