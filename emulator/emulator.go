// Package emulator wires a machine to host I/O channels and drives it
// to completion one cycle at a time.
package emulator

import (
	"fmt"
	"iter"
	"maps"

	"github.com/lmp-machine/lmp/internal"
	"github.com/lmp-machine/lmp/io"
	"github.com/lmp-machine/lmp/machine"
)

const (
	RUN_LIMIT = 1_000_000 // Default cycle limit for Run.
)

var _emulator_defines = map[string]string{
	"RUN_LIMIT": fmt.Sprintf("%v", RUN_LIMIT),
}

// Emulator state. Machine + input and output channels.
type Emulator struct {
	Verbose bool // If set, enables verbose logging.
	*machine.Machine

	Input  io.Channel // Supplies INP values.
	Output io.Channel // Receives OUT values.

	Limit int64 // Maximum cycles per Run; 0 uses RUN_LIMIT.
}

// NewEmulator creates a new emulator around a fresh machine.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Machine: machine.NewMachine(),
	}

	return
}

// Defines returns an iterator over all of the defines, merging the
// machine's with those of every attached device.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	seqs := []iter.Seq2[string, string]{
		maps.All(_emulator_defines),
		emu.Machine.Defines(),
	}
	if emu.Input != nil {
		seqs = append(seqs, emu.Input.Defines())
	}
	if emu.Output != nil {
		seqs = append(seqs, emu.Output.Defines())
	}

	return internal.IterSeq2Concat(seqs...)
}

// runtime attributes a runtime error to the source line of the
// current program counter.
func (emu *Emulator) runtime(reason error) (err error) {
	var lineno int
	if prog := emu.Machine.Program(); prog != nil {
		if node := prog.Debug(emu.Machine.ProgramCounter()); node != nil {
			lineno = node.LineNo
		}
	}

	err = &ErrRuntime{LineNo: lineno, Err: reason}
	return
}

// Tick performs a single cycle of the emulator: one machine step,
// feeding input on demand and forwarding outputs. done reports that
// the machine has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set machine verbosity
	emu.Machine.Verbose = emu.Verbose

	result, value, serr := emu.Machine.Step()
	switch result {
	case machine.STEP_HALTED:
		done = true
	case machine.STEP_FAULT:
		err = emu.runtime(serr)
	case machine.STEP_OUTPUT:
		if emu.Output != nil {
			err = emu.Output.Send(value)
		}
	case machine.STEP_INPUT:
		if emu.Input == nil {
			err = emu.runtime(ErrInputExhausted)
			return
		}
		var input int64
		var ok bool
		input, ok, err = emu.Input.Next()
		if err != nil {
			return
		}
		if !ok {
			err = emu.runtime(ErrInputExhausted)
			return
		}
		// Consumed by the next tick's INP cycle.
		emu.Machine.Input(input)
	}

	return
}

// Run ticks the machine until it halts, errors, or exceeds the cycle
// limit.
func (emu *Emulator) Run() (err error) {
	limit := emu.Limit
	if limit == 0 {
		limit = RUN_LIMIT
	}

	for {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
		if emu.Machine.Cycles() >= limit {
			err = emu.runtime(ErrCycleLimit)
			return
		}
	}
}
