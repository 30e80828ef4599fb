// Package referee is the catalogue of message types carried over the
// serial link to and from the referee system and sibling controllers.
//
// Ownership boundary:
// - one type per command id, implementing frame.Marshaler
// - fixed little-endian payload layouts, invisible to the engine
//
// The framing engine holds no registry; consumers match
// RawFrame.CmdID against these types (see internal/link).
package referee
