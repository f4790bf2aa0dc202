package machine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Nodes: []Node{
			{LineNo: 1, Addr: 0, Words: []string{"INP"}},
			{LineNo: 3, Addr: 1, Label: "loop", Words: []string{"loop", "OUT"}},
			{LineNo: 4, Addr: 2, Words: []string{"HLT"}},
		},
		Code: []Instruction{
			{Op: OP_INP},
			{Op: OP_OUT},
			{Op: OP_HLT},
		},
	}

	node := prog.Debug(0)
	if assert.NotNil(node) {
		assert.Equal(1, node.LineNo)
	}

	node = prog.Debug(1)
	if assert.NotNil(node) {
		assert.Equal(3, node.LineNo)
		assert.Equal("loop", node.Label)
	}
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Nodes: []Node{
			{LineNo: 1, Addr: 0, Words: []string{"HLT"}},
		},
		Code: []Instruction{{Op: OP_HLT}},
	}

	assert.Nil(prog.Debug(10))
	assert.Nil(prog.Debug(-1))
}

func TestProgram_Cells(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Code: []Instruction{
			{Op: OP_INP},
			{Op: OP_ADD, Operand: 2},
			{Op: OP_DAT, Operand: 7},
		},
	}

	addrs := []int{}
	cells := []int64{}
	for addr, cell := range prog.Cells() {
		addrs = append(addrs, addr)
		cells = append(cells, cell)
	}

	assert.Equal([]int{0, 1, 2}, addrs)
	assert.Equal([]int64{CODE_INP, BAND_ADD + 2, 7}, cells)
}

func TestProgram_Cells_EarlyReturn(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Code: []Instruction{{Op: OP_INP}, {Op: OP_OUT}},
	}

	count := 0
	for range prog.Cells() {
		count++
		if count == 1 {
			break
		}
	}

	assert.Equal(1, count)
}

func TestProgram_Cells_Empty(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{}

	count := 0
	for range prog.Cells() {
		count++
	}

	assert.Equal(0, count)
}

func TestProgram_Integration_ParseAndDebug(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	source := strings.Join([]string{
		"; leading comment",
		"        INP",
		"",
		"        OUT",
		"        HLT",
	}, "\n")

	prog, err := asm.Parse(strings.NewReader(source))
	assert.NoError(err)

	node := prog.Debug(0)
	if assert.NotNil(node) {
		assert.Equal(2, node.LineNo)
	}

	node = prog.Debug(1)
	if assert.NotNil(node) {
		assert.Equal(4, node.LineNo)
	}

	assert.Equal([]int64{CODE_INP, CODE_OUT, CODE_HLT}, prog.Binary())
}
