package rate

import "context"

// Gate is a counting semaphore that bounds concurrent browser sessions.
// Each automation run holds one slot for the lifetime of its Chromium
// instance; a saturated gate makes callers wait or give up with their
// context rather than letting launches pile up on the host.
type Gate struct {
	slots chan struct{}
}

// NewGate creates a gate with the given capacity. Capacity below 1 is
// treated as 1.
func NewGate(capacity int) *Gate {
	if capacity < 1 {
		capacity = 1
	}
	return &Gate{slots: make(chan struct{}, capacity)}
}

// Acquire claims a slot, blocking until one frees up or ctx is done.
func (g *Gate) Acquire(ctx context.Context) error {
	select {
	case g.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryAcquire claims a slot without blocking. Returns false if the gate is full.
func (g *Gate) TryAcquire() bool {
	select {
	case g.slots <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release frees a previously acquired slot.
func (g *Gate) Release() {
	select {
	case <-g.slots:
	default:
		// Release without a matching Acquire is a programming error;
		// swallowing it beats blocking the caller forever.
	}
}

// InUse reports how many slots are currently held.
func (g *Gate) InUse() int {
	return len(g.slots)
}

// Capacity reports the gate's total slot count.
func (g *Gate) Capacity() int {
	return cap(g.slots)
}
