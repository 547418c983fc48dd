package ir

// The IR is a closed set of instruction variants between the parser and the
// code generator. A program is an ordered []Instruction; nesting occurs only
// inside IfElse branches. Nodes are immutable once built and carry no source
// positions: diagnostics are raised during parsing, before IR exists.

// Instruction is implemented by every IR variant. The marker method keeps
// the set closed so the code generator can match exhaustively.
type Instruction interface {
	isInstruction()
}

// PushConst pushes a constant value onto the runtime stack.
type PushConst struct {
	Value float64
}

// Dup duplicates the top of the runtime stack.
type Dup struct{}

// Drop removes the top of the runtime stack.
type Drop struct{}

// Swap exchanges the two topmost runtime stack values.
type Swap struct{}

// BinKind selects an arithmetic operation.
type BinKind int

const (
	Add BinKind = iota
	Sub
	Mul
	Div
	Pow
)

var binNames = [...]string{"add", "sub", "mul", "div", "pow"}

func (k BinKind) String() string { return binNames[k] }

// BinOp pops two values and pushes one arithmetic result.
type BinOp struct {
	Kind BinKind
}

// CmpKind selects an ordered floating-point comparison.
type CmpKind int

const (
	Gt CmpKind = iota
	Lt
	Ge
	Le
	Eq
	Ne
)

var cmpNames = [...]string{"gt", "lt", "ge", "le", "eq", "ne"}

func (k CmpKind) String() string { return cmpNames[k] }

// CmpOp pops two values and pushes 1.0 or 0.0.
type CmpOp struct {
	Kind CmpKind
}

// IfElse pops the condition from the runtime stack and runs Then when it is
// nonzero. Else may be nil, meaning the false path falls through.
type IfElse struct {
	Then []Instruction
	Else []Instruction
}

func (PushConst) isInstruction() {}
func (Dup) isInstruction()       {}
func (Drop) isInstruction()      {}
func (Swap) isInstruction()      {}
func (BinOp) isInstruction()     {}
func (CmpOp) isInstruction()     {}
func (IfElse) isInstruction()    {}
