// Package frame owns the serial wire contract and framing engine.
//
// Ownership boundary:
// - frame layout constants and checksum validators
// - payload marshal/unmarshal contract
// - pack/unpack engine and stream resynchronization errors
//
// The package performs no I/O and no heap allocation. Callers own the
// accumulation buffer; decoded payloads alias that buffer.
package frame
