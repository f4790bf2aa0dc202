package machine

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// OperandKind distinguishes the source forms an operand can take
// before label resolution.
type OperandKind int

//go:generate go tool stringer -linecomment -type=OperandKind
const (
	OPERAND_NONE    = OperandKind(0) // none
	OPERAND_NUMBER  = OperandKind(1) // number
	OPERAND_LABEL   = OperandKind(2) // label
	OPERAND_POINTER = OperandKind(3) // pointer
)

// Operand is a symbolic instruction argument prior to label resolution.
type Operand struct {
	Kind  OperandKind
	Value int64  // OPERAND_NUMBER only.
	Name  string // OPERAND_LABEL and OPERAND_POINTER only.
}

// Node is one parsed source line: an optional label plus one
// instruction whose operand is still symbolic. Every node occupies
// exactly one memory address, so a label's address is its node's
// position in the sequence.
type Node struct {
	LineNo  int
	Addr    int
	Label   string
	Op      Op
	Operand Operand
	Words   []string
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":        "0",
	"MEMORY_SIZE":   fmt.Sprintf("%v", MEMORY_SIZE),
	"POINTER_LIMIT": fmt.Sprintf("%v", POINTER_LIMIT),
	"INDIRECT_MAX":  fmt.Sprintf("%v", INDIRECT_MAX),
}

// mnemonicMap maps mnemonic words to instruction classes.
var mnemonicMap = map[string]Op{
	"DAT": OP_DAT,
	"HLT": OP_HLT,
	"ADD": OP_ADD,
	"SUB": OP_SUB,
	"STA": OP_STA,
	"LDA": OP_LDA,
	"LDR": OP_LDR,
	"BRA": OP_BRA,
	"BRZ": OP_BRZ,
	"BRP": OP_BRP,
	"INP": OP_INP,
	"OUT": OP_OUT,
	"BWN": OP_BWN,
	"BWA": OP_BWA,
	"BWO": OP_BWO,
	"BWX": OP_BWX,
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// isLabel reports whether a word is usable as a line label: an
// identifier that is not composed entirely of uppercase ASCII letters,
// so that a bare mnemonic is never eaten as a label.
func isLabel(word string) bool {
	if !identRe.MatchString(word) {
		return false
	}
	for _, c := range word {
		if c < 'A' || c > 'Z' {
			return true
		}
	}
	return false
}

// Assembler translates assembly source into a resolved Program.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Node    []Node // Parsed nodes, one memory address each.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of line labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Assemble compiles assembly source into a resolved program. It is a
// pure function of the source text.
func Assemble(source string) (*Program, error) {
	asm := &Assembler{}
	return asm.Parse(strings.NewReader(source))
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a number word. The grammar only admits
// non-negative decimal literals.
func valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 10, 64)
	if err != nil || value < 0 {
		value = 0
		err = ErrParseNumber(word)
	}
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		value64, verr := strconv.ParseInt(str, 10, 64)
		if verr != nil {
			// Ignore non-integer equates. They may be labels
			// or mnemonic text.
			continue
		}
		pred[key] = starlark.MakeInt64(value64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = st_int64
	return
}

// parseLine preprocesses a single source line: $() evaluation, .equ
// directives, and equate substitution.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// parseOperand parses an instruction argument: a non-negative decimal
// literal, a label identifier, or an @label pointer reference.
func parseOperand(word string) (operand Operand, err error) {
	if strings.HasPrefix(word, "@") {
		name := word[1:]
		if !identRe.MatchString(name) {
			err = ErrOperandInvalid
			return
		}
		operand = Operand{Kind: OPERAND_POINTER, Name: name}
		return
	}

	value, nerr := valueOf(word)
	if nerr == nil {
		operand = Operand{Kind: OPERAND_NUMBER, Value: value}
		return
	}

	if identRe.MatchString(word) {
		operand = Operand{Kind: OPERAND_LABEL, Name: word}
		return
	}

	err = ErrOperandInvalid
	return
}

// parseWords evaluates the words in a line of assembly text as an
// optional label plus one instruction.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// Blank line, comment, or directive.
	if len(words) == 0 {
		return
	}

	initial_words := words
	addr := len(asm.Node)

	var label string
	if isLabel(words[0]) {
		label = words[0]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = addr
		words = words[1:]
		if len(words) == 0 {
			err = ErrInstructionMissing
			return
		}
	}

	op, ok := mnemonicMap[words[0]]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	args := words[1:]
	var operand Operand

	switch {
	case op == OP_DAT:
		// DAT takes an optional literal payload, default 0.
		if len(args) > 1 {
			err = ErrOperandExtra
			return
		}
		operand.Kind = OPERAND_NUMBER
		if len(args) == 1 {
			operand.Value, err = valueOf(args[0])
			if err != nil {
				return
			}
		}
	case op.HasOperand():
		if len(args) == 0 {
			err = ErrOperandMissing
			return
		}
		if len(args) > 1 {
			err = ErrOperandExtra
			return
		}
		operand, err = parseOperand(args[0])
		if err != nil {
			return
		}
	default:
		if len(args) != 0 {
			err = ErrOperandExtra
			return
		}
	}

	asm.Node = append(asm.Node, Node{
		LineNo:  lineno,
		Addr:    addr,
		Label:   label,
		Op:      op,
		Operand: operand,
		Words:   initial_words,
	})

	return
}

// resolve rewrites every symbolic operand into a concrete address.
// Pointer references encode as the label address plus the memory
// capacity. On failure the offending node is returned for source
// attribution.
func (asm *Assembler) resolve() (code []Instruction, bad *Node, err error) {
	for n := range asm.Node {
		node := &asm.Node[n]

		in := Instruction{Op: node.Op}
		switch node.Operand.Kind {
		case OPERAND_NUMBER:
			in.Operand = node.Operand.Value
		case OPERAND_LABEL:
			addr, ok := asm.Label[node.Operand.Name]
			if !ok {
				bad = node
				err = ErrLabelMissing(node.Operand.Name)
				return
			}
			in.Operand = int64(addr)
		case OPERAND_POINTER:
			addr, ok := asm.Label[node.Operand.Name]
			if !ok {
				bad = node
				err = ErrLabelMissing(node.Operand.Name)
				return
			}
			in.Operand = int64(addr) + MEMORY_SIZE
		}

		// Band capacity is a hard limit, not a silent wraparound.
		if node.Op.HasOperand() && in.Operand >= BAND_WIDTH {
			bad = node
			err = ErrOperandRange
			return
		}

		code = append(code, in)
	}

	return
}

// Parse parses an input stream into a resolved Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	if asm.Label == nil {
		asm.Label = make(map[string]int, 16)
	}
	clear(asm.Label)
	asm.Node = asm.Node[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	// Second pass: label and pointer resolution.
	code, bad, err := asm.resolve()
	if err != nil {
		if bad != nil {
			lineno = bad.LineNo
			line = strings.Join(bad.Words, " ")
		}
		return
	}

	prog = &Program{
		Nodes: slices.Clone(asm.Node),
		Code:  code,
	}

	return
}
