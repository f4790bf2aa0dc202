package machine

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
)

const (
	// MEMORY_SIZE is the mailbox count, shared by the assembler and
	// the machine. A program may not exceed it.
	MEMORY_SIZE = 100

	// POINTER_LIMIT is the first operand value that is neither a
	// direct address nor an indirection marker.
	POINTER_LIMIT = 2 * MEMORY_SIZE

	// INDIRECT_MAX bounds pointer-chain following. A chain longer
	// than the memory itself must revisit a cell.
	INDIRECT_MAX = MEMORY_SIZE
)

var _machine_defines = map[string]string{
	"MEMORY_SIZE":   fmt.Sprintf("%v", MEMORY_SIZE),
	"POINTER_LIMIT": fmt.Sprintf("%v", POINTER_LIMIT),
	"INDIRECT_MAX":  fmt.Sprintf("%v", INDIRECT_MAX),
}

// StepResult reports the outcome of a single machine cycle.
type StepResult int

//go:generate go tool stringer -linecomment -type=StepResult
const (
	STEP_ADVANCED = StepResult(0) // advanced
	STEP_OUTPUT   = StepResult(1) // output
	STEP_INPUT    = StepResult(2) // input
	STEP_HALTED   = StepResult(3) // halted
	STEP_FAULT    = StepResult(4) // fault
)

// Machine is the Little Man Plus virtual machine: a program counter,
// an accumulator, and MEMORY_SIZE mailboxes of signed 64-bit cells.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	pc        int
	acc       int64
	cycles    int64
	memory    [MEMORY_SIZE]int64
	halted    bool
	fault     error
	input     *int64
	accessing int

	program *Program
}

// NewMachine creates a new machine with empty memory, not halted.
func NewMachine() (m *Machine) {
	m = &Machine{}

	return
}

// Defines for the machine
func (m *Machine) Defines() iter.Seq2[string, string] {
	return maps.All(_machine_defines)
}

// Compile assembles source text and loads it into memory. On failure
// the machine is untouched; memory is never partially loaded.
func (m *Machine) Compile(source string) (err error) {
	prog, err := Assemble(source)
	if err != nil {
		err = errors.Join(ErrCompile, err)
		return
	}

	return m.Load(prog)
}

// Load installs an assembled program. On success the machine is fully
// restarted: memory reloaded, registers, cycle counter, pending input
// and any fault cleared.
func (m *Machine) Load(prog *Program) (err error) {
	if len(prog.Code) > MEMORY_SIZE {
		err = ErrProgramTooLarge
		return
	}

	m.program = prog
	m.restart()

	if m.Verbose {
		log.Printf("machine: loaded %v cells", len(prog.Code))
	}

	return
}

// restart reloads the program image and clears all register state.
func (m *Machine) restart() {
	clear(m.memory[:])
	if m.program != nil {
		for addr, cell := range m.program.Cells() {
			m.memory[addr] = cell
		}
	}

	m.pc = 0
	m.acc = 0
	m.cycles = 0
	m.halted = false
	m.fault = nil
	m.input = nil
	m.accessing = 0
}

// Reset restarts the machine from the loaded image. It is effective
// only once the machine has halted or faulted.
func (m *Machine) Reset() {
	if !m.halted && m.fault == nil {
		return
	}

	if m.Verbose {
		log.Printf("machine: reset")
	}

	m.restart()
}

// Input buffers exactly one pending input value, overwriting any
// previous unconsumed value. The next INP cycle consumes it.
func (m *Machine) Input(value int64) {
	m.input = &value
}

// locate resolves an operand to a direct memory address, following
// indirection markers. Marker MEMORY_SIZE+k names cell k, whose
// current value is resolved in turn, at most INDIRECT_MAX times.
func (m *Machine) locate(ptr int64) (loc int, err error) {
	for range INDIRECT_MAX {
		if ptr < 0 || ptr >= POINTER_LIMIT {
			err = ErrPointerRange
			return
		}
		if ptr < MEMORY_SIZE {
			loc = int(ptr)
			return
		}
		ptr = m.memory[ptr-MEMORY_SIZE]
	}

	err = ErrPointerDepth
	return
}

// faulted latches a terminal fault. The program counter stays at the
// faulting instruction so the host can attribute it.
func (m *Machine) faulted(reason error) (result StepResult, value int64, err error) {
	m.fault = reason
	result = STEP_FAULT
	err = m.fault
	return
}

// Step advances the machine by exactly one fetch-decode-execute cycle.
//
// It returns STEP_ADVANCED when an instruction executed, STEP_OUTPUT
// with the accumulator value when an OUT executed, STEP_INPUT when an
// INP found no buffered input (no state changes; the call repeats
// until Input supplies a value), STEP_HALTED when HLT executed or the
// program counter ran past the end of memory, and STEP_FAULT with the
// fault reason when the cycle trapped. Halted and faulted machines are
// sticky: further calls are no-ops that do not advance the cycle
// counter.
//
// A cell value that decodes to no instruction is skipped: the program
// counter advances, the cycle counts, the result is STEP_ADVANCED.
func (m *Machine) Step() (result StepResult, value int64, err error) {
	if m.fault != nil {
		result = STEP_FAULT
		err = m.fault
		return
	}
	if m.halted {
		result = STEP_HALTED
		return
	}
	if m.pc >= MEMORY_SIZE {
		m.halted = true
		result = STEP_HALTED
		return
	}

	in, derr := Decode(m.memory[m.pc])
	if derr != nil {
		if m.Verbose {
			log.Printf("%03d: skip: %v", m.pc, derr)
		}
		m.pc += 1
		m.cycles += 1
		return
	}

	if m.Verbose {
		log.Printf("%03d: %v", m.pc, in)
	}

	next_pc := m.pc + 1

	switch in.Op {
	case OP_HLT:
		m.cycles += 1
		m.halted = true
		result = STEP_HALTED
		return
	case OP_INP:
		if m.input == nil {
			result = STEP_INPUT
			return
		}
		m.acc = *m.input
		m.input = nil
	case OP_OUT:
		value = m.acc
		result = STEP_OUTPUT
	case OP_BWN:
		m.acc = ^m.acc
	case OP_BRA, OP_BRZ, OP_BRP:
		taken := in.Op == OP_BRA ||
			(in.Op == OP_BRZ && m.acc == 0) ||
			(in.Op == OP_BRP && m.acc >= 0)
		if taken {
			// Branch targets are direct addresses.
			if in.Operand >= MEMORY_SIZE {
				return m.faulted(ErrAddressRange)
			}
			next_pc = int(in.Operand)
		}
	default:
		ptr := in.Operand
		if in.Op == OP_LDR {
			ptr = m.acc
		}
		var loc int
		loc, err = m.locate(ptr)
		if err != nil {
			return m.faulted(err)
		}
		m.accessing = loc

		switch in.Op {
		case OP_ADD:
			m.acc += m.memory[loc]
		case OP_SUB:
			m.acc -= m.memory[loc]
		case OP_STA:
			m.memory[loc] = m.acc
		case OP_LDA, OP_LDR:
			m.acc = m.memory[loc]
		case OP_BWA:
			m.acc &= m.memory[loc]
		case OP_BWO:
			m.acc |= m.memory[loc]
		case OP_BWX:
			m.acc ^= m.memory[loc]
		}
	}

	m.pc = next_pc
	m.cycles += 1

	return
}

// ProgramCounter returns the current program counter.
func (m *Machine) ProgramCounter() int {
	return m.pc
}

// Accumulator returns the current accumulator value.
func (m *Machine) Accumulator() int64 {
	return m.acc
}

// Cycles returns the executed cycle count since the last restart.
func (m *Machine) Cycles() int64 {
	return m.cycles
}

// Halted reports whether the machine has executed HLT or run past the
// end of memory. A faulted machine is not halted.
func (m *Machine) Halted() bool {
	return m.halted
}

// Fault returns the latched fault reason, or nil.
func (m *Machine) Fault() error {
	return m.fault
}

// Accessing returns the memory address touched by the most recent
// operand access. Diagnostic only.
func (m *Machine) Accessing() int {
	return m.accessing
}

// Program returns the currently loaded program, or nil.
func (m *Machine) Program() *Program {
	return m.program
}

// Memory returns a snapshot copy of all memory cells.
func (m *Machine) Memory() (cells []int64) {
	cells = make([]int64, MEMORY_SIZE)
	copy(cells, m.memory[:])

	return
}

// Cells returns an iterator over live memory as (address, cell) pairs.
func (m *Machine) Cells() iter.Seq2[int, int64] {
	return func(yield func(addr int, cell int64) bool) {
		for n := range m.memory {
			if !yield(n, m.memory[n]) {
				return
			}
		}
	}
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	regs := []string{"pc", "acc", "cycles", "halted", "fault", "access"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%03d", m.pc)
		case "acc":
			strval = fmt.Sprintf("%v", m.acc)
		case "cycles":
			strval = fmt.Sprintf("%v", m.cycles)
		case "halted":
			strval = fmt.Sprintf("%v", m.halted)
		case "fault":
			strval = "-"
			if m.fault != nil {
				strval = m.fault.Error()
			}
		case "access":
			strval = fmt.Sprintf("%03d", m.accessing)
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}
