package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzDecode(f *testing.F) {
	f.Add(int64(0))
	f.Add(CODE_HLT)
	f.Add(CODE_INP)
	f.Add(CODE_BWN)
	f.Add(BAND_ADD + 42)
	f.Add(BAND_BWX + 999)
	f.Add(int64(-7))
	f.Add(int64(99999))

	f.Fuzz(func(t *testing.T, cell int64) {
		assert := assert.New(t)

		in, err := Decode(cell)
		if err != nil {
			assert.ErrorIs(err, ErrDecode(cell))
			return
		}

		// Any decodable cell re-encodes to itself.
		assert.Equal(cell, in.Encode())
	})
}

func FuzzMachineStep(f *testing.F) {
	f.Add(int64(901), int64(3002), int64(6000))
	f.Add(int64(5102), int64(102), int64(1))
	f.Add(int64(8050), int64(-1), int64(10000))

	f.Fuzz(func(t *testing.T, a int64, b int64, c int64) {
		assert := assert.New(t)

		prog := &Program{Code: []Instruction{
			{Op: OP_DAT, Operand: a},
			{Op: OP_DAT, Operand: b},
			{Op: OP_DAT, Operand: c},
		}}

		m := NewMachine()
		err := m.Load(prog)
		assert.NoError(err)

		// Whatever the image, the machine must settle without panic:
		// either halted, faulted, or still cycling at the cap.
		for range 4 * MEMORY_SIZE {
			result, _, serr := m.Step()
			switch result {
			case STEP_INPUT:
				m.Input(a)
			case STEP_HALTED:
				assert.True(m.Halted())
				return
			case STEP_FAULT:
				assert.Error(serr)
				assert.ErrorIs(m.Fault(), serr)
				return
			}
		}
	})
}
