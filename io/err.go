package io

import (
	"errors"

	"github.com/lmp-machine/lmp/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull = errors.New(f("channel full"))
)

type ErrTapeValue string

func (err ErrTapeValue) Error() string {
	return f("'%v' is not a tape value", string(err))
}
