package link

import "sync/atomic"

// Heartbeat tracks peer liveness with a TTL counter. A receive path
// calls Feed on traffic; a periodic task calls Tick. When the counter
// runs out the peer is marked offline until the next Feed.
//
// All methods are safe for concurrent use.
type Heartbeat struct {
	online atomic.Bool
	ttl    atomic.Int32
}

// Feed marks the peer online and resets its TTL.
func (h *Heartbeat) Feed(ttl int32) {
	h.online.Store(true)
	h.ttl.Store(ttl)
}

// Kill marks the peer offline and zeroes the TTL.
func (h *Heartbeat) Kill() {
	h.online.Store(false)
	h.ttl.Store(0)
}

// Online reports whether the peer is currently considered alive.
func (h *Heartbeat) Online() bool {
	return h.online.Load()
}

// TTL returns the remaining tick budget.
func (h *Heartbeat) TTL() int32 {
	return h.ttl.Load()
}

// Tick decrements the TTL, marking the peer offline once it runs out.
// It reports whether the peer is still online.
func (h *Heartbeat) Tick() bool {
	prev := h.ttl.Add(-1) + 1
	if prev < 1 {
		h.ttl.Store(0)
		h.online.Store(false)
		return false
	}
	return true
}
