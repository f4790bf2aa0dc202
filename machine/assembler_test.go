package machine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		"; countdown: print acc until it goes negative",
		"        INP",
		"loop    OUT",
		"        STA count",
		"        SUB one",
		"        LDA count",
		"        SUB one",
		"        BRP loop",
		"        HLT",
		"",
		"one     DAT 1",
		"count   DAT",
	}, "\n")

	prog, err := Assemble(source)
	assert.NoError(err)
	if !assert.NotNil(prog) {
		return
	}

	// Addresses are node positions: blank and comment lines do not
	// occupy memory.
	expect := []int64{901, 902, 3009, 2008, 5009, 2008, 8001, 1, 1, 0}
	assert.Equal(expect, prog.Binary())

	// Labels resolve to node addresses.
	node := prog.Debug(1)
	if assert.NotNil(node) {
		assert.Equal("loop", node.Label)
		assert.Equal(3, node.LineNo)
	}
	node = prog.Debug(8)
	if assert.NotNil(node) {
		assert.Equal("one", node.Label)
	}
}

func TestAssemblerPointer(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		"        LDA @ptr",
		"        STA @ptr",
		"        HLT",
		"ptr     DAT 4",
		"val     DAT 77",
	}, "\n")

	prog, err := Assemble(source)
	assert.NoError(err)
	if !assert.NotNil(prog) {
		return
	}

	// A pointer operand is the label address plus the memory capacity.
	assert.Equal([]int64{
		BAND_LDA + 3 + MEMORY_SIZE,
		BAND_STA + 3 + MEMORY_SIZE,
		CODE_HLT,
		4,
		77,
	}, prog.Binary())
}

func TestAssemblerEquates(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		".equ FORTY 40",
		"        ADD $(FORTY + 2)",
		"        LDA $(MEMORY_SIZE - 1)",
		"        SUB FORTY",
		"        HLT",
	}, "\n")

	prog, err := Assemble(source)
	assert.NoError(err)
	if !assert.NotNil(prog) {
		return
	}

	assert.Equal([]int64{
		BAND_ADD + 42,
		BAND_LDA + 99,
		BAND_SUB + 40,
		CODE_HLT,
	}, prog.Binary())
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("LIMIT", "25")

	prog, err := asm.Parse(strings.NewReader("ADD LIMIT\nHLT\n"))
	assert.NoError(err)
	if !assert.NotNil(prog) {
		return
	}
	assert.Equal([]int64{BAND_ADD + 25, CODE_HLT}, prog.Binary())
}

func TestAssemblerDeterministic(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		"start   INP",
		"        STA @cell",
		"        BRZ start",
		"        HLT",
		"cell    DAT 4",
		"        DAT",
	}, "\n")

	first, err := Assemble(source)
	assert.NoError(err)
	second, err := Assemble(source)
	assert.NoError(err)
	if assert.NotNil(first) && assert.NotNil(second) {
		assert.Equal(first.Binary(), second.Binary())
		assert.Equal(first.Code, second.Code)
	}
}

func TestAssemblerErrSyntax(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source string
		lineno int
		target error
	}){
		{"FOO", 1, ErrInstructionInvalid},
		{"lonely", 1, ErrInstructionMissing},
		{"ADD", 1, ErrOperandMissing},
		{"HLT 5", 1, ErrOperandExtra},
		{"ADD 1 2", 1, ErrOperandExtra},
		{"ADD @", 1, ErrOperandInvalid},
		{"ADD -5", 1, ErrOperandInvalid},
		{"DAT x", 1, ErrParseNumber("x")},
		{"DAT 1 2", 1, ErrOperandExtra},
		{".equ A", 1, ErrEquateSyntax},
		{".equ A 1\n.equ A 2", 2, ErrEquateDuplicate},
		{"dup INP\ndup INP", 2, ErrLabelDuplicate},
		{"INP\nADD nowhere", 2, ErrLabelMissing("nowhere")},
		{"INP\nBRA @nowhere", 2, ErrLabelMissing("nowhere")},
		{"ADD 1000", 1, ErrOperandRange},
		{"BRA 5000", 1, ErrOperandRange},
		{"ADD $(1 +)", 1, nil},
	}

	for _, entry := range table {
		_, err := Assemble(entry.source)
		if !assert.Error(err, entry.source) {
			continue
		}

		var se *ErrSyntax
		if !assert.ErrorAs(err, &se, entry.source) {
			continue
		}
		assert.Equal(entry.lineno, se.LineNo, entry.source)
		if entry.target != nil {
			assert.ErrorIs(err, entry.target, entry.source)
		}
	}
}
