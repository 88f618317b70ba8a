// Package eval walks Nebula's AST and produces values. Eval is a
// single type switch over ast.Node, the same dispatch shape go-mix's
// own evaluator uses over parser.Node in its evaluator_expressions.go
// — generalized here to Nebula's closed node set and to idiomatic Go
// (value.Value, error) returns instead of the teacher's GoMixObject
// sentinel-error convention, since Nebula has no equivalent to
// go-mix's Error object threaded through every return value.
package eval

import (
	"fmt"
	"io"
	"os"

	"github.com/nebula-lang/nebula/ast"
	"github.com/nebula-lang/nebula/value"
)

// Evaluator walks a parsed Nebula program, writing print/println
// output to Writer (os.Stdout by default, swappable for tests).
type Evaluator struct {
	Writer io.Writer
}

// NewEvaluator creates an Evaluator that writes to os.Stdout.
func NewEvaluator() *Evaluator {
	return &Evaluator{Writer: os.Stdout}
}

// SetWriter redirects print/println output, e.g. to a bytes.Buffer in
// tests.
func (e *Evaluator) SetWriter(w io.Writer) {
	e.Writer = w
}

// Run evaluates every top-level statement in order, returning the
// value of the last one (or Null if stmts is empty) and stopping at
// the first error.
func (e *Evaluator) Run(stmts []ast.Node) (value.Value, error) {
	result := value.Null
	for _, n := range stmts {
		v, err := e.Eval(n)
		if err != nil {
			return value.Null, err
		}
		result = v
	}
	return result, nil
}

// Eval evaluates a single AST node.
func (e *Evaluator) Eval(n ast.Node) (value.Value, error) {
	switch node := n.(type) {
	case *ast.Literal:
		return node.Val, nil

	case *ast.Var:
		if !node.Cell.Initialized {
			return value.Null, fmt.Errorf("cannot evaluate an unitialized variable")
		}
		return node.Cell.Value, nil

	case *ast.Asgn:
		return e.evalAsgn(node)

	case *ast.Comp:
		return e.evalComp(node)

	case *ast.BoolLogic:
		return e.evalBoolLogic(node)

	case *ast.Arith:
		return e.evalArith(node)

	case *ast.Print:
		return e.evalPrint(node)

	case *ast.Block:
		return e.evalStmts(node.Stmts)

	case *ast.CondBlock:
		return e.evalCondBlock(node)

	case *ast.LoopBlock:
		return e.evalLoopBlock(node)

	case *ast.EvalBlock:
		return e.Eval(node.Inner)

	case *ast.Symbol:
		return value.Null, fmt.Errorf("unknown symbol '%s'", node.Name)

	case *ast.TypeTag, *ast.Defn, *ast.Param:
		return value.Null, fmt.Errorf("internal error: %T reached the evaluator unconsumed", n)

	default:
		return value.Null, fmt.Errorf("internal error: unhandled node type %T", n)
	}
}

func (e *Evaluator) evalStmts(stmts []ast.Node) (value.Value, error) {
	result := value.Null
	for _, n := range stmts {
		v, err := e.Eval(n)
		if err != nil {
			return value.Null, err
		}
		result = v
	}
	return result, nil
}

func (e *Evaluator) evalAsgn(node *ast.Asgn) (value.Value, error) {
	rhs, err := e.Eval(node.Rhs)
	if err != nil {
		return value.Null, err
	}
	cell := node.Target.Cell
	if cell.Value.GetType() != rhs.GetType() {
		return value.Null, fmt.Errorf("cannot assign a variable to a value of a different type")
	}
	cell.Value = rhs
	cell.Initialized = true
	return rhs, nil
}

func (e *Evaluator) evalComp(node *ast.Comp) (value.Value, error) {
	lhs, err := e.Eval(node.Lhs)
	if err != nil {
		return value.Null, err
	}
	rhs, err := e.Eval(node.Rhs)
	if err != nil {
		return value.Null, err
	}
	if lhs.GetType() != rhs.GetType() {
		return value.Null, fmt.Errorf("cannot compare two values of differing types")
	}
	switch node.Op {
	case ast.CompEq:
		return value.NewBool(lhs.Equals(rhs)), nil
	case ast.CompNeq:
		return value.NewBool(!lhs.Equals(rhs)), nil
	case ast.CompGT, ast.CompLT:
		lf, rf, ok := numericPair(lhs, rhs)
		if !ok {
			return value.Null, fmt.Errorf("invalid operation for non-numeric types")
		}
		if node.Op == ast.CompGT {
			return value.NewBool(lf > rf), nil
		}
		return value.NewBool(lf < rf), nil
	default:
		return value.Null, fmt.Errorf("invalid conditional")
	}
}

func (e *Evaluator) evalBoolLogic(node *ast.BoolLogic) (value.Value, error) {
	lhs, err := e.Eval(node.Lhs)
	if err != nil {
		return value.Null, err
	}
	rhs, err := e.Eval(node.Rhs)
	if err != nil {
		return value.Null, err
	}
	if lhs.GetType() != value.BOOL || rhs.GetType() != value.BOOL {
		return value.Null, fmt.Errorf("invalid operand types for logical operation")
	}
	switch node.Op {
	case ast.LogicAnd:
		return value.NewBool(lhs.AsBool() && rhs.AsBool()), nil
	default:
		return value.NewBool(lhs.AsBool() || rhs.AsBool()), nil
	}
}

func (e *Evaluator) evalArith(node *ast.Arith) (value.Value, error) {
	lhs, err := e.Eval(node.Lhs)
	if err != nil {
		return value.Null, err
	}
	rhs, err := e.Eval(node.Rhs)
	if err != nil {
		return value.Null, err
	}
	if lhs.GetType() != rhs.GetType() {
		return value.Null, fmt.Errorf("cannot perform arithmetic on differing types")
	}
	switch lhs.GetType() {
	case value.INT:
		return e.arithInt(lhs.AsInt(), rhs.AsInt(), node.Op)
	case value.FLOAT:
		return e.arithFloat(lhs.AsFloat(), rhs.AsFloat(), node.Op)
	default:
		return value.Null, fmt.Errorf("invalid operation for non-numeric types")
	}
}

func (e *Evaluator) arithInt(lhs, rhs int64, op ast.ArithOp) (value.Value, error) {
	switch op {
	case ast.ArithAdd:
		return value.NewInt(lhs + rhs), nil
	case ast.ArithSub:
		return value.NewInt(lhs - rhs), nil
	case ast.ArithMul:
		return value.NewInt(lhs * rhs), nil
	case ast.ArithDiv:
		if rhs == 0 {
			return value.Null, fmt.Errorf("division by zero")
		}
		return value.NewInt(lhs / rhs), nil
	case ast.ArithMod:
		if rhs == 0 {
			return value.Null, fmt.Errorf("division by zero")
		}
		return value.NewInt(lhs % rhs), nil
	case ast.ArithPow:
		var result int64 = 1
		for i := int64(0); i < rhs; i++ {
			result *= lhs
		}
		return value.NewInt(result), nil
	default:
		return value.Null, fmt.Errorf("invalid operation for non-numeric types")
	}
}

func (e *Evaluator) arithFloat(lhs, rhs float64, op ast.ArithOp) (value.Value, error) {
	switch op {
	case ast.ArithAdd:
		return value.NewFloat(lhs + rhs), nil
	case ast.ArithSub:
		return value.NewFloat(lhs - rhs), nil
	case ast.ArithMul:
		return value.NewFloat(lhs * rhs), nil
	case ast.ArithDiv:
		if rhs == 0 {
			return value.Null, fmt.Errorf("division by zero")
		}
		return value.NewFloat(lhs / rhs), nil
	case ast.ArithMod:
		li, ri := int64(lhs), int64(rhs)
		if ri == 0 {
			return value.Null, fmt.Errorf("division by zero")
		}
		return value.NewInt(li % ri), nil
	case ast.ArithPow:
		result := 1.0
		for i := 0; i < int(rhs); i++ {
			result *= lhs
		}
		return value.NewFloat(result), nil
	default:
		return value.Null, fmt.Errorf("invalid operation for non-numeric types")
	}
}

// numericPair evaluates two already-computed values as float64 for
// GT/LT comparison, succeeding only when both are INT or both FLOAT.
func numericPair(lhs, rhs value.Value) (float64, float64, bool) {
	switch lhs.GetType() {
	case value.INT:
		return float64(lhs.AsInt()), float64(rhs.AsInt()), true
	case value.FLOAT:
		return lhs.AsFloat(), rhs.AsFloat(), true
	default:
		return 0, 0, false
	}
}

// evalPrint writes Args in the reverse of their source order — a
// quirk of the interpreter this was distilled from (PrintNode::eval
// walks its argument vector back to front) preserved here for fidelity
// with existing Nebula programs and their expected output.
func (e *Evaluator) evalPrint(node *ast.Print) (value.Value, error) {
	for i := len(node.Args) - 1; i >= 0; i-- {
		v, err := e.Eval(node.Args[i])
		if err != nil {
			return value.Null, err
		}
		fmt.Fprint(e.Writer, v.String())
	}
	if node.Newline {
		fmt.Fprintln(e.Writer)
	}
	return value.Null, nil
}

func (e *Evaluator) evalCondBlock(node *ast.CondBlock) (value.Value, error) {
	cond, err := e.Eval(node.Cond)
	if err != nil {
		return value.Null, err
	}
	if cond.GetType() != value.BOOL {
		return value.Null, fmt.Errorf("invalid conditional")
	}
	if cond.AsBool() {
		return e.evalStmts(node.Then)
	}
	if node.Else != nil {
		return e.evalStmts(node.Else.Stmts)
	}
	return value.Null, nil
}

func (e *Evaluator) evalLoopBlock(node *ast.LoopBlock) (value.Value, error) {
	result := value.Null
	for {
		cond, err := e.Eval(node.Cond)
		if err != nil {
			return value.Null, err
		}
		if cond.GetType() != value.BOOL {
			return value.Null, fmt.Errorf("invalid conditional")
		}
		if !cond.AsBool() {
			return result, nil
		}
		result, err = e.evalStmts(node.Stmts)
		if err != nil {
			return value.Null, err
		}
	}
}
