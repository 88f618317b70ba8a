// Package ast defines Nebula's abstract syntax tree. Nodes are plain
// data: a closed family of struct types matched exhaustively by a
// type switch in package eval, rather than an interface implemented
// polymorphically by each node (the source this was distilled from
// used virtual dispatch for the same purpose; go-mix's own evaluator
// already centralizes dispatch the same way this package does, in
// eval/evaluator_expressions.go's type switch over parser.Node). A
// handful of node kinds here — TypeTag, Symbol, Defn, Param — exist
// only to flow through the parser's stack machine and have no value of
// their own. The evaluator reports an unconsumed Symbol as an
// unknown-symbol error and treats encountering any of the other three
// as an internal error.
package ast

import (
	"github.com/nebula-lang/nebula/scope"
	"github.com/nebula-lang/nebula/value"
)

// Node is the marker interface implemented by every AST node type.
// It carries no behavior: evaluation lives in package eval's type
// switch, not on the node itself.
type Node interface {
	nebulaNode()
}

// CompOp identifies a comparison operator.
type CompOp int

const (
	CompEq CompOp = iota
	CompNeq
	CompGT
	CompLT
)

// LogicOp identifies a boolean-logic operator.
type LogicOp int

const (
	LogicAnd LogicOp = iota
	LogicOr
)

// ArithOp identifies an arithmetic operator.
type ArithOp int

const (
	ArithAdd ArithOp = iota
	ArithSub
	ArithMul
	ArithDiv
	ArithMod
	ArithPow
)

// Literal is a constant value parsed directly from source text.
type Literal struct {
	Val value.Value
}

// TypeTag names a value type in a declaration; it only ever appears
// as an operand of the parser's `let` handling and is never evaluated.
type TypeTag struct {
	Type value.Type
}

// Symbol is an identifier the parser could not resolve to a declared
// variable at the point it was encountered. It either gets consumed
// immediately by a `let` declaration (the identifier being declared) or, if it
// reaches the evaluator unconsumed, reports an unknown-symbol error.
type Symbol struct {
	Name string
}

// Var references a declared variable's shared storage cell. Every Var
// produced by the parser for the same name in the same scope chain
// (until shadowed) points at the identical Cell, so an assignment
// through any one of them is visible through all the others.
type Var struct {
	Name string
	Cell *scope.Cell
}

// Defn represents a `let T name` declaration. The parser does not
// construct it: its `let` handling turns the TypeTag and Symbol
// operands directly into a scope.Cell plus a Var node. It is never
// evaluated.
type Defn struct {
	Type value.Type
	Name string
}

// Asgn assigns the result of evaluating Rhs into Target's cell.
type Asgn struct {
	Target *Var
	Rhs    Node
}

// Comp is a type-strict comparison between two operands of the same
// value.Type.
type Comp struct {
	Lhs, Rhs Node
	Op       CompOp
}

// BoolLogic is a logical AND/OR over two BOOL operands.
type BoolLogic struct {
	Lhs, Rhs Node
	Op       LogicOp
}

// Arith is an arithmetic operation over two same-typed numeric
// (INT or FLOAT) operands; the result keeps that type, except Mod,
// which truncates both operands to INT and always yields INT.
type Arith struct {
	Lhs, Rhs Node
	Op       ArithOp
}

// Print is a print or println statement; Args are evaluated and
// written in the reverse of their source order, preserving the
// original interpreter's (likely accidental, but test-fidelity
// preserving — see DESIGN.md) argument ordering.
type Print struct {
	Args    []Node
	Newline bool
}

// Block is a `begin ... end` statement group with its own scope. It
// evaluates to the value of its last statement, or Null if empty.
type Block struct {
	Scope *scope.Scope
	Stmts []Node
}

// CondBlock is an `if (cond) ... [else ...] end` statement. Else is
// nil when no else clause was parsed.
type CondBlock struct {
	Scope *scope.Scope
	Cond  Node
	Then  []Node
	Else  *Block
}

// LoopBlock is a `while (cond) ... end` statement. It evaluates to
// the value of its last executed iteration, or Null if the condition
// was false on entry.
type LoopBlock struct {
	Scope *scope.Scope
	Cond  Node
	Stmts []Node
}

// EvalBlock wraps a parenthesized expression. It performs no grouping
// of its own beyond holding on to whatever single node the parser
// produced while the parens were open; see parser/parser.go for why
// that can end up being more than the literal text between the
// parens.
type EvalBlock struct {
	Inner Node
}

// ParamKind distinguishes the two forms of `[...]` parameter access.
type ParamKind int

const (
	ParamIndex ParamKind = iota
	ParamType
)

// Param is a `[index]` or `[type]` qualifier. Not evaluated directly.
type Param struct {
	Kind  ParamKind
	Index int
	Type  value.Type
}

func (*Literal) nebulaNode()   {}
func (*TypeTag) nebulaNode()   {}
func (*Symbol) nebulaNode()    {}
func (*Var) nebulaNode()       {}
func (*Defn) nebulaNode()      {}
func (*Asgn) nebulaNode()      {}
func (*Comp) nebulaNode()      {}
func (*BoolLogic) nebulaNode() {}
func (*Arith) nebulaNode()     {}
func (*Print) nebulaNode()     {}
func (*Block) nebulaNode()     {}
func (*CondBlock) nebulaNode() {}
func (*LoopBlock) nebulaNode() {}
func (*EvalBlock) nebulaNode() {}
func (*Param) nebulaNode()     {}
