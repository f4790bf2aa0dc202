package io

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"maps"
	"strconv"
)

// Tape provides sequential value I/O over byte streams. Input is read
// as whitespace-separated signed decimal values; output is written one
// value per line.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	scanner *bufio.Scanner
}

var _ Channel = (*Tape)(nil)

// Defines returns an iter of defines for the channel.
func (tape *Tape) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{})
}

// Rewind is not possible on a tape.
func (tape *Tape) Rewind() {
}

// Next reads the next value from the input stream. ok is false at end
// of input. A token that does not parse as a decimal value is an error.
func (tape *Tape) Next() (value int64, ok bool, err error) {
	if tape.Input == nil {
		return
	}
	if tape.scanner == nil {
		tape.scanner = bufio.NewScanner(tape.Input)
		tape.scanner.Split(bufio.ScanWords)
	}

	if !tape.scanner.Scan() {
		err = tape.scanner.Err()
		return
	}

	word := tape.scanner.Text()
	value, err = strconv.ParseInt(word, 10, 64)
	if err != nil {
		value = 0
		err = ErrTapeValue(word)
		return
	}

	ok = true
	return
}

// Send writes a value to the output stream, one value per line.
func (tape *Tape) Send(value int64) (err error) {
	if tape.Output == nil {
		return
	}

	_, err = fmt.Fprintf(tape.Output, "%v\n", value)
	return
}
