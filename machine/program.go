package machine

import (
	"iter"
)

// Program is the result of assembly: the parsed source nodes and the
// resolved instruction sequence, index-aligned. Address n holds the
// instruction assembled from Nodes[n].
type Program struct {
	Nodes []Node
	Code  []Instruction
}

// Binary returns the encoded memory image, one cell per instruction.
// DAT payloads are written verbatim.
func (prog *Program) Binary() (cells []int64) {
	for _, in := range prog.Code {
		cells = append(cells, in.Encode())
	}

	return
}

// Cells returns an iterator over the memory image as (address, cell)
// pairs.
func (prog *Program) Cells() iter.Seq2[int, int64] {
	return func(yield func(addr int, cell int64) bool) {
		for n, in := range prog.Code {
			if !yield(n, in.Encode()) {
				return
			}
		}
	}
}

// Debug returns the source node that assembled to the given address,
// or nil when the address holds no program text.
func (prog *Program) Debug(addr int) (node *Node) {
	if addr >= 0 && addr < len(prog.Nodes) {
		node = &prog.Nodes[addr]
	}

	return
}
