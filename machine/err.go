package machine

import (
	"errors"

	"github.com/lmp-machine/lmp/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrCompile         = errors.New(f("compile failed"))
	ErrProgramTooLarge = errors.New(f("program too large"))

	// Runtime fault reasons
	ErrPointerRange = errors.New(f("pointer out of range"))
	ErrPointerDepth = errors.New(f("pointer chain too deep"))
	ErrAddressRange = errors.New(f("address out of range"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrInstructionMissing = errors.New(f("instruction missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrOperandMissing     = errors.New(f("operand missing"))
	ErrOperandExtra       = errors.New(f("excessive arguments"))
	ErrOperandInvalid     = errors.New(f("operand invalid"))
	ErrOperandRange       = errors.New(f("operand exceeds band width"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrDecode int64

func (ed ErrDecode) Error() string {
	return f("cannot decode cell value %v", int64(ed))
}

func (ed ErrDecode) Is(err error) (ok bool) {
	_, ok = err.(ErrDecode)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
