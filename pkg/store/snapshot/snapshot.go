package snapshot

import (
	"sync"
	"time"
)

// Holder keeps the last complete normalized snapshot for one report. Each
// fetch takes a sequence token before issuing its request; a response whose
// token is older than the last applied one is discarded, so rapid
// refiltering can never let a stale response overwrite newer data. Readers
// always see one complete snapshot, never a partial write.
type Holder[T any] struct {
	mu        sync.RWMutex
	nextSeq   uint64
	appliedAt uint64
	records   []T
	fetched   time.Time
	hasData   bool
}

func NewHolder[T any]() *Holder[T] {
	return &Holder[T]{}
}

// Begin allocates the sequence token for a fetch about to be issued.
func (h *Holder[T]) Begin() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextSeq++
	return h.nextSeq
}

// Apply installs a fetched snapshot. It reports false, leaving the current
// snapshot untouched, when a newer response has already been applied.
func (h *Holder[T]) Apply(token uint64, records []T) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if token < h.appliedAt {
		return false
	}
	h.appliedAt = token
	h.records = records
	h.fetched = time.Now()
	h.hasData = true
	return true
}

// Current returns the last applied snapshot. The boolean is false until the
// first successful Apply.
func (h *Holder[T]) Current() ([]T, time.Time, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.records, h.fetched, h.hasData
}
