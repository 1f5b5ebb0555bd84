package collision

import (
	"fmt"

	"github.com/mrmattuschka/yokai-image/errs"
)

// Tracker detects duplicate image keys while a container is being built.
// It keeps the insertion order so the LUT can be written in the same order.
type Tracker struct {
	seen [4]uint64 // one bit per possible key byte
	keys []byte
}

// NewTracker creates a new key tracker.
func NewTracker() *Tracker {
	return &Tracker{
		keys: make([]byte, 0, 16),
	}
}

// Track records key. It returns ErrDuplicateKey if key was already tracked.
func (t *Tracker) Track(key byte) error {
	word, bit := key>>6, uint64(1)<<(key&63)
	if t.seen[word]&bit != 0 {
		return fmt.Errorf("%w: %d", errs.ErrDuplicateKey, key)
	}

	t.seen[word] |= bit
	t.keys = append(t.keys, key)

	return nil
}

// Keys returns the tracked keys in insertion order.
func (t *Tracker) Keys() []byte {
	return t.keys
}

// Count returns the number of tracked keys.
func (t *Tracker) Count() int {
	return len(t.keys)
}
