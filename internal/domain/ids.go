package domain

import (
	"sync"
	"time"

	"github.com/noah-isme/college-events-api/internal/models"
)

// IDGenerator hands out identifiers for new events and registrations.
type IDGenerator interface {
	NextID() int64
}

// SequenceIDs counts upwards from a starting value.
type SequenceIDs struct {
	mu   sync.Mutex
	next int64
}

// NewSequenceIDs starts the sequence at start, or at 1 when start is not positive.
func NewSequenceIDs(start int64) *SequenceIDs {
	if start < 1 {
		start = 1
	}
	return &SequenceIDs{next: start}
}

// NextID implements IDGenerator.
func (s *SequenceIDs) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	return id
}

// ClockIDs derives ids from the wall clock in milliseconds. Two calls within the
// same millisecond still get distinct, increasing ids.
type ClockIDs struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewClockIDs never returns an id at or below floor.
func NewClockIDs(now func() time.Time, floor int64) *ClockIDs {
	if now == nil {
		now = time.Now
	}
	return &ClockIDs{now: now, last: floor}
}

// NextID implements IDGenerator.
func (c *ClockIDs) NextID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	return id
}

// MaxID returns the largest event or registration id in the state.
func MaxID(state models.AppState) int64 {
	var highest int64
	for _, e := range state.Events {
		if e.ID > highest {
			highest = e.ID
		}
	}
	for _, r := range state.Registrations {
		if r.ID > highest {
			highest = r.ID
		}
	}
	return highest
}
