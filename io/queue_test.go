package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue(t *testing.T) {
	assert := assert.New(t)

	q := &Queue{}

	assert.NoError(q.Send(10))
	assert.NoError(q.Send(20))

	value, ok, err := q.Next()
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(int64(10), value)

	value, ok, err = q.Next()
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(int64(20), value)

	_, ok, err = q.Next()
	assert.NoError(err)
	assert.False(ok)

	// Rewind replays from the start.
	q.Rewind()
	value, ok, err = q.Next()
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(int64(10), value)
}

func TestQueueCapacity(t *testing.T) {
	assert := assert.New(t)

	q := &Queue{Capacity: 2}

	assert.NoError(q.Send(1))
	assert.NoError(q.Send(2))
	assert.ErrorIs(q.Send(3), ErrChannelFull)
	assert.Equal([]int64{1, 2}, q.Data)
}

func TestQueueDefines(t *testing.T) {
	assert := assert.New(t)

	q := &Queue{Capacity: 16}
	defines := map[string]string{}
	for key, value := range q.Defines() {
		defines[key] = value
	}
	assert.Equal("16", defines["QUEUE_CAPACITY"])

	// An unbounded queue publishes nothing.
	unbounded := &Queue{}
	count := 0
	for range unbounded.Defines() {
		count++
	}
	assert.Equal(0, count)
}

func TestQueuePreloaded(t *testing.T) {
	assert := assert.New(t)

	q := &Queue{Data: []int64{5, 6}}

	value, ok, err := q.Next()
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(int64(5), value)
}
