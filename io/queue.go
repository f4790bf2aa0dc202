package io

import (
	"fmt"
	"iter"
	"maps"
)

// Queue implements an in-memory FIFO of values with an optional
// capacity. It serves as a preloadable input fixture and as an output
// capture; Rewind replays queued values from the start.
type Queue struct {
	Capacity int // Maximum queued values; 0 means unbounded.

	ReadIndex int
	Data      []int64
}

var _ Channel = (*Queue)(nil)

// Defines returns an iter of defines for the channel. A bounded queue
// publishes its capacity.
func (q *Queue) Defines() iter.Seq2[string, string] {
	defines := map[string]string{}
	if q.Capacity > 0 {
		defines["QUEUE_CAPACITY"] = fmt.Sprintf("%v", q.Capacity)
	}

	return maps.All(defines)
}

// Rewind resets the read position to the start of the queue.
func (q *Queue) Rewind() {
	q.ReadIndex = 0
}

// Next returns the next unread value in the queue.
func (q *Queue) Next() (value int64, ok bool, err error) {
	if q.ReadIndex >= len(q.Data) {
		return
	}

	value = q.Data[q.ReadIndex]
	q.ReadIndex++
	ok = true
	return
}

// Send appends a value to the queue. Returns ErrChannelFull once the
// capacity is reached.
func (q *Queue) Send(value int64) (err error) {
	if q.Capacity > 0 && len(q.Data) >= q.Capacity {
		err = ErrChannelFull
		return
	}

	q.Data = append(q.Data, value)
	return
}
