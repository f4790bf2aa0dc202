package machine

import (
	"fmt"
)

// Op identifies an instruction class.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_DAT = Op(0)  // DAT
	OP_HLT = Op(1)  // HLT
	OP_ADD = Op(2)  // ADD
	OP_SUB = Op(3)  // SUB
	OP_STA = Op(4)  // STA
	OP_LDA = Op(5)  // LDA
	OP_LDR = Op(6)  // LDR
	OP_BRA = Op(7)  // BRA
	OP_BRZ = Op(8)  // BRZ
	OP_BRP = Op(9)  // BRP
	OP_INP = Op(10) // INP
	OP_OUT = Op(11) // OUT
	OP_BWN = Op(12) // BWN
	OP_BWA = Op(13) // BWA
	OP_BWO = Op(14) // BWO
	OP_BWX = Op(15) // BWX
)

// Fixed instruction codes. These occupy cell values no operand band
// can produce.
const (
	CODE_HLT = int64(1)     // Halt.
	CODE_INP = int64(901)   // Input to accumulator.
	CODE_OUT = int64(902)   // Output from accumulator.
	CODE_LDR = int64(903)   // Load through accumulator-as-pointer.
	CODE_BWN = int64(10000) // Bitwise NOT of the accumulator.
)

// Band encoding: each operand-bearing opcode class owns an exclusive
// numeric band of BAND_WIDTH cell values, base + operand.
const (
	BAND_WIDTH = int64(1000)

	BAND_ADD = int64(1000)
	BAND_SUB = int64(2000)
	BAND_STA = int64(3000)
	BAND_LDA = int64(5000)
	BAND_BRA = int64(6000)
	BAND_BRZ = int64(7000)
	BAND_BRP = int64(8000)
	BAND_BWA = int64(11000)
	BAND_BWO = int64(12000)
	BAND_BWX = int64(13000)
)

// opBand maps each operand-bearing op to its band base, in decode
// priority order when iterated via opBands.
var opBand = map[Op]int64{
	OP_ADD: BAND_ADD,
	OP_SUB: BAND_SUB,
	OP_STA: BAND_STA,
	OP_LDA: BAND_LDA,
	OP_BRA: BAND_BRA,
	OP_BRZ: BAND_BRZ,
	OP_BRP: BAND_BRP,
	OP_BWA: BAND_BWA,
	OP_BWO: BAND_BWO,
	OP_BWX: BAND_BWX,
}

// opBands lists the banded ops in ascending band order.
var opBands = []Op{
	OP_ADD, OP_SUB, OP_STA, OP_LDA, OP_BRA,
	OP_BRZ, OP_BRP, OP_BWA, OP_BWO, OP_BWX,
}

// opFixed maps each fixed-width op to its cell value.
var opFixed = map[Op]int64{
	OP_HLT: CODE_HLT,
	OP_INP: CODE_INP,
	OP_OUT: CODE_OUT,
	OP_LDR: CODE_LDR,
	OP_BWN: CODE_BWN,
}

// HasOperand reports whether the op encodes an operand band. DAT is
// not banded; its payload is the raw cell value.
func (op Op) HasOperand() bool {
	_, ok := opBand[op]
	return ok
}

// Instruction is a single machine instruction with a resolved numeric
// operand. The operand is meaningful only for banded ops and DAT.
type Instruction struct {
	Op      Op
	Operand int64
}

// Encode packs the instruction into a single memory cell. Banded
// operands must lie in [0, BAND_WIDTH); the assembler enforces that
// capacity at compile time, larger operands alias the next band.
func (in Instruction) Encode() (cell int64) {
	if base, ok := opBand[in.Op]; ok {
		return base + in.Operand
	}
	if code, ok := opFixed[in.Op]; ok {
		return code
	}

	// DAT payload is the cell value itself.
	return in.Operand
}

// Decode unpacks a memory cell into an instruction. Fixed codes are
// matched first, then the operand bands in ascending order. Decode
// never produces DAT; a cell outside every band fails with ErrDecode.
func Decode(cell int64) (in Instruction, err error) {
	switch cell {
	case CODE_HLT:
		in.Op = OP_HLT
		return
	case CODE_INP:
		in.Op = OP_INP
		return
	case CODE_OUT:
		in.Op = OP_OUT
		return
	case CODE_LDR:
		in.Op = OP_LDR
		return
	case CODE_BWN:
		in.Op = OP_BWN
		return
	}

	for _, op := range opBands {
		base := opBand[op]
		if cell >= base && cell < base+BAND_WIDTH {
			in = Instruction{Op: op, Operand: cell - base}
			return
		}
	}

	err = ErrDecode(cell)
	return
}

// String returns the assembly language representation of the instruction.
func (in Instruction) String() (out string) {
	if in.Op.HasOperand() || in.Op == OP_DAT {
		out = fmt.Sprintf("%v %v", in.Op, in.Operand)
	} else {
		out = in.Op.String()
	}
	return
}
