// Package io provides host-side I/O devices for the machine's INP and
// OUT instructions. It includes a Tape for sequential value streams
// over byte-oriented readers and writers, and an in-memory Queue
// usable as an input buffer or test fixture.
package io

import (
	"iter"
)

// Channel defines the interface for all host I/O devices. A channel
// offers input values one at a time and accepts output values.
type Channel interface {
	// Defines returns the device's published equates.
	Defines() iter.Seq2[string, string]
	// Rewind resets the channel's read position to its initial state.
	Rewind()
	// Next returns the next input value. ok is false when the channel
	// has no value to offer.
	Next() (value int64, ok bool, err error)
	// Send writes a single output value to the channel.
	Send(value int64) error
}
