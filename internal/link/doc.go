// Package link owns the receive-side session around the framing
// engine.
//
// Ownership boundary:
// - accumulation buffer feeding and drain/resync policy
// - command id dispatch to registered payload handlers
// - peer liveness tracking (heartbeat TTL)
//
// The engine itself (internal/frame) stays stateless; everything
// stateful about a serial session lives here.
package link
