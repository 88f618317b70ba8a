// Package parser implements Nebula's parser: a single recursive-
// descent routine, not a Pratt/precedence-climbing parser, driven by
// an explicit "currently open block" plus a stack used both to build
// operands during parsing and, once parsing is done, as the FIFO of
// top-level statements the evaluator drains. Binary operators get
// exactly one right-hand operand by recursing into the same routine
// once; the teacher's Pratt-parser approach (UnaryFuncs/BinaryFuncs
// precedence tables in its own parser/parser.go) doesn't apply here —
// Nebula's grammar has no precedence levels to climb, only the single
// dispatch-and-recurse loop this package implements.
//
// Each dispatch case either continues the same loop after pushing a
// node (literals, type tags, existing-variable references,
// declarations, assignments — so that one call keeps consuming tokens
// left to right) or returns immediately once it has produced exactly
// one complete node (a new variable name, a parenthesized group, a
// block boundary, a binary reduction — comparison, boolean AND/OR,
// arithmetic — or a statement break). Binary operators in particular
// must return as soon as they push their reduced node: a call made to
// fetch a single right-hand operand (e.g. the condition inside
// `while (cond)`) would otherwise keep running and swallow whatever
// statement follows, which is exactly what made an early draft of this
// parser mis-parse `while (ctr != 10) ctr = (ctr + 1); end` — the
// comparison's own recursive call kept going past `!= 10` and consumed
// the loop body, leaving the comparison itself as a stray top-level
// statement and the assignment as the loop's condition. Every binary
// reduction now returns immediately after pushing its node, so a
// parenthesized condition containing a comparison yields just that
// comparison, the way the source this was distilled from intends.
package parser

import (
	"fmt"

	"github.com/nebula-lang/nebula/ast"
	"github.com/nebula-lang/nebula/lexer"
	"github.com/nebula-lang/nebula/scope"
	"github.com/nebula-lang/nebula/value"
)

// frame is one entry of the parser's block stack: the block awaiting
// more statements, and the scope those statements bind into.
type frame struct {
	block any // *ast.Block, *ast.CondBlock, or *ast.LoopBlock
	scope *scope.Scope
}

// Parser turns a token stream into a queue of top-level statement
// ASTs. It collects syntax errors encountered while isolating a
// single statement (mirroring the teacher's Errors/addError/HasErrors
// convention) but Parse itself stops and returns the first fatal
// error, since spec'd failure semantics are single-diagnostic, not
// multi-error reporting.
type Parser struct {
	lex lexer.Lexer
	cur lexer.Token

	rootScope *scope.Scope
	curScope  *scope.Scope

	curBlock   any
	blockStack []frame
	evalDepth  int

	topLevel []ast.Node

	Errors []string
}

// NewParser creates a parser over src, ready to call Parse.
func NewParser(src string) (*Parser, error) {
	p := &Parser{
		lex:       lexer.NewLexer(src),
		rootScope: scope.NewScope(nil),
	}
	p.curScope = p.rootScope
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) addError(format string, a ...interface{}) error {
	msg := fmt.Sprintf("[%d:%d] %s", p.cur.Line, p.cur.Column, fmt.Sprintf(format, a...))
	p.Errors = append(p.Errors, msg)
	return fmt.Errorf("%s", msg)
}

// Parse drains every token into a queue of top-level statements, in
// source order, ready for the evaluator to consume.
func (p *Parser) Parse() ([]ast.Node, error) {
	for p.cur.Type != lexer.EOF_TYPE {
		if err := p.parseStatement(); err != nil {
			return nil, err
		}
	}
	if len(p.blockStack) > 0 {
		return nil, p.addError("expected 'end'")
	}
	if p.evalDepth != 0 {
		return nil, p.addError("expected ')'")
	}
	return p.topLevel, nil
}

// push appends n to whichever statement list is currently active:
// the open block's Then/Else/Stmts, or the top-level queue.
func (p *Parser) push(n ast.Node) {
	switch b := p.curBlock.(type) {
	case *ast.Block:
		b.Stmts = append(b.Stmts, n)
	case *ast.CondBlock:
		if b.Else != nil {
			b.Else.Stmts = append(b.Else.Stmts, n)
		} else {
			b.Then = append(b.Then, n)
		}
	case *ast.LoopBlock:
		b.Stmts = append(b.Stmts, n)
	default:
		p.topLevel = append(p.topLevel, n)
	}
}

// pop removes and returns the most recently pushed node from whatever
// list is currently active, mirroring push's routing.
func (p *Parser) pop() (ast.Node, bool) {
	switch b := p.curBlock.(type) {
	case *ast.Block:
		return popLast(&b.Stmts)
	case *ast.CondBlock:
		if b.Else != nil {
			return popLast(&b.Else.Stmts)
		}
		return popLast(&b.Then)
	case *ast.LoopBlock:
		return popLast(&b.Stmts)
	default:
		return popLast(&p.topLevel)
	}
}

func (p *Parser) size() int {
	switch b := p.curBlock.(type) {
	case *ast.Block:
		return len(b.Stmts)
	case *ast.CondBlock:
		if b.Else != nil {
			return len(b.Else.Stmts)
		}
		return len(b.Then)
	case *ast.LoopBlock:
		return len(b.Stmts)
	default:
		return len(p.topLevel)
	}
}

func popLast(s *[]ast.Node) (ast.Node, bool) {
	n := len(*s)
	if n == 0 {
		return nil, false
	}
	v := (*s)[n-1]
	*s = (*s)[:n-1]
	return v, true
}

// parseStatement is the parser's single dispatch-and-recurse routine.
// It consumes tokens one at a time, pushing nodes as it goes, until a
// dispatch case decides the current (sub)statement is complete and
// yields by returning. Binary-operator and condition/argument-
// collecting cases recurse back into this same function to obtain
// exactly one operand, the way the source's return_next flag did —
// here expressed as call depth instead of mutable parser state.
func (p *Parser) parseStatement() error {
	for {
		tok := p.cur

		switch tok.Type {
		case lexer.EOF_TYPE:
			return nil

		case lexer.INT_TYPE, lexer.FLOAT_TYPE, lexer.CHAR_TYPE, lexer.BOOL_TYPE:
			p.push(&ast.TypeTag{Type: typeFromToken(tok.Type)})
			if err := p.advance(); err != nil {
				return err
			}
			continue

		case lexer.INT_LIT:
			n, err := parseIntLiteral(tok.Literal)
			if err != nil {
				return err
			}
			p.push(&ast.Literal{Val: value.NewInt(n)})
			if err := p.advance(); err != nil {
				return err
			}
			continue

		case lexer.FLOAT_LIT:
			f, err := parseFloatLiteral(tok.Literal)
			if err != nil {
				return err
			}
			p.push(&ast.Literal{Val: value.NewFloat(f)})
			if err := p.advance(); err != nil {
				return err
			}
			continue

		case lexer.CHAR_LIT:
			p.push(&ast.Literal{Val: value.NewChar(tok.Literal[0])})
			if err := p.advance(); err != nil {
				return err
			}
			continue

		case lexer.BOOL_LIT:
			p.push(&ast.Literal{Val: value.NewBool(tok.Literal == "true")})
			if err := p.advance(); err != nil {
				return err
			}
			continue

		case lexer.BEGIN_KEY:
			if err := p.advance(); err != nil {
				return err
			}
			childScope := scope.NewScope(p.curScope)
			block := &ast.Block{Scope: childScope}
			p.blockStack = append(p.blockStack, frame{block: p.curBlock, scope: p.curScope})
			p.curBlock = block
			p.curScope = childScope
			continue

		case lexer.IF_KEY, lexer.WHILE_KEY:
			isWhile := tok.Type == lexer.WHILE_KEY
			if err := p.advance(); err != nil {
				return err
			}
			if err := p.parseStatement(); err != nil {
				return err
			}
			cond, ok := p.pop()
			if !ok {
				return p.addError("expected expression")
			}
			childScope := scope.NewScope(p.curScope)
			p.blockStack = append(p.blockStack, frame{block: p.curBlock, scope: p.curScope})
			if isWhile {
				p.curBlock = &ast.LoopBlock{Scope: childScope, Cond: cond}
			} else {
				p.curBlock = &ast.CondBlock{Scope: childScope, Cond: cond}
			}
			p.curScope = childScope
			continue

		case lexer.ELSE_KEY:
			cond, ok := p.curBlock.(*ast.CondBlock)
			if !ok {
				return p.addError("unexpected token 'else'")
			}
			if err := p.advance(); err != nil {
				return err
			}
			elseScope := scope.NewScope(p.curScope.Parent())
			cond.Else = &ast.Block{Scope: elseScope}
			p.curScope = elseScope
			continue

		case lexer.LEFT_PAREN:
			p.evalDepth++
			if err := p.advance(); err != nil {
				return err
			}
			if err := p.parseStatement(); err != nil {
				return err
			}
			inner, ok := p.pop()
			if !ok {
				return p.addError("expected expression")
			}
			p.push(&ast.EvalBlock{Inner: inner})
			return nil

		case lexer.RIGHT_PAREN:
			if p.evalDepth == 0 {
				return p.addError("unexpected token ')'")
			}
			p.evalDepth--
			if err := p.advance(); err != nil {
				return err
			}
			return nil

		case lexer.END_KEY:
			if len(p.blockStack) == 0 {
				return p.addError("unexpected token 'end'")
			}
			if err := p.advance(); err != nil {
				return err
			}
			finished := p.curBlock
			top := p.blockStack[len(p.blockStack)-1]
			p.blockStack = p.blockStack[:len(p.blockStack)-1]
			p.curBlock = top.block
			p.curScope = top.scope
			p.push(finished.(ast.Node))
			return nil

		case lexer.AND_OP, lexer.OR_OP:
			op := logicOpFromToken(tok.Type)
			if err := p.advance(); err != nil {
				return err
			}
			if err := p.parseStatement(); err != nil {
				return err
			}
			if p.size() < 2 {
				return p.addError("expected expression")
			}
			rhs, _ := p.pop()
			lhs, _ := p.pop()
			p.push(&ast.BoolLogic{Lhs: lhs, Rhs: rhs, Op: op})
			return nil

		case lexer.EQ_OP, lexer.NEQ_OP, lexer.GT_OP, lexer.LT_OP:
			op := compOpFromToken(tok.Type)
			if err := p.advance(); err != nil {
				return err
			}
			if err := p.parseStatement(); err != nil {
				return err
			}
			if p.size() < 2 {
				return p.addError("expected expression")
			}
			rhs, _ := p.pop()
			lhs, _ := p.pop()
			p.push(&ast.Comp{Lhs: lhs, Rhs: rhs, Op: op})
			return nil

		case lexer.PLUS_OP, lexer.MINUS_OP, lexer.MUL_OP, lexer.DIV_OP, lexer.MOD_OP, lexer.POW_OP:
			op := arithOpFromToken(tok.Type)
			if err := p.advance(); err != nil {
				return err
			}
			if err := p.parseStatement(); err != nil {
				return err
			}
			if p.size() < 2 {
				return p.addError("expected expression")
			}
			rhs, _ := p.pop()
			lhs, _ := p.pop()
			p.push(&ast.Arith{Lhs: lhs, Rhs: rhs, Op: op})
			return nil

		case lexer.ASSIGN_OP:
			if err := p.advance(); err != nil {
				return err
			}
			if err := p.parseStatement(); err != nil {
				return err
			}
			if p.size() < 2 {
				return p.addError("expected expression")
			}
			rhs, _ := p.pop()
			lhs, _ := p.pop()
			target, ok := lhs.(*ast.Var)
			if !ok {
				return p.addError("cannot assign to expression")
			}
			p.push(&ast.Asgn{Target: target, Rhs: rhs})
			continue

		case lexer.LET_KEY:
			if err := p.advance(); err != nil {
				return err
			}
			if err := p.parseStatement(); err != nil {
				return err
			}
			if p.size() < 2 {
				return p.addError("expected expression")
			}
			symNode, _ := p.pop()
			typeNode, _ := p.pop()
			tt, ok := typeNode.(*ast.TypeTag)
			if !ok {
				return p.addError("expected type literal")
			}
			sym, ok := symNode.(*ast.Symbol)
			if !ok {
				return p.addError("invalid variable name")
			}
			cell := p.curScope.Create(sym.Name, tt.Type)
			p.push(&ast.Var{Name: sym.Name, Cell: cell})
			continue

		case lexer.PRINT_KEY, lexer.PRINTLN_KEY:
			newline := tok.Type == lexer.PRINTLN_KEY
			if err := p.advance(); err != nil {
				return err
			}
			before := p.size()
			if err := p.parseStatement(); err != nil {
				return err
			}
			var args []ast.Node
			for p.size() > before {
				n, _ := p.pop()
				args = append([]ast.Node{n}, args...)
			}
			p.push(&ast.Print{Args: args, Newline: newline})
			continue

		case lexer.LEFT_BRACKET:
			if err := p.advance(); err != nil {
				return err
			}
			param, err := p.parseParam()
			if err != nil {
				return err
			}
			p.push(param)
			continue

		case lexer.IDENTIFIER_ID:
			if err := p.advance(); err != nil {
				return err
			}
			if cell, ok := p.curScope.Get(tok.Literal); ok {
				p.push(&ast.Var{Name: tok.Literal, Cell: cell})
				continue
			}
			p.push(&ast.Symbol{Name: tok.Literal})
			return nil

		case lexer.SEMI:
			if err := p.advance(); err != nil {
				return err
			}
			return nil

		default:
			return p.addError("unexpected token '%s'", tok.Literal)
		}
	}
}

// parseParam parses the interior of a `[...]` qualifier: either an
// integer literal (index form) or a type keyword (type form).
func (p *Parser) parseParam() (*ast.Param, error) {
	var param *ast.Param
	switch p.cur.Type {
	case lexer.INT_LIT:
		n, err := parseIntLiteral(p.cur.Literal)
		if err != nil {
			return nil, err
		}
		param = &ast.Param{Kind: ast.ParamIndex, Index: int(n)}
		if err := p.advance(); err != nil {
			return nil, err
		}
	case lexer.INT_TYPE, lexer.FLOAT_TYPE, lexer.CHAR_TYPE, lexer.BOOL_TYPE:
		param = &ast.Param{Kind: ast.ParamType, Type: typeFromToken(p.cur.Type)}
		if err := p.advance(); err != nil {
			return nil, err
		}
	default:
		return nil, p.addError("expected ']'")
	}
	if p.cur.Type != lexer.RIGHT_BRACKET {
		return nil, p.addError("expected ']'")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return param, nil
}

func typeFromToken(t lexer.TokenType) value.Type {
	switch t {
	case lexer.INT_TYPE:
		return value.INT
	case lexer.FLOAT_TYPE:
		return value.FLOAT
	case lexer.CHAR_TYPE:
		return value.CHAR
	case lexer.BOOL_TYPE:
		return value.BOOL
	default:
		return value.NULL
	}
}

func logicOpFromToken(t lexer.TokenType) ast.LogicOp {
	if t == lexer.AND_OP {
		return ast.LogicAnd
	}
	return ast.LogicOr
}

func compOpFromToken(t lexer.TokenType) ast.CompOp {
	switch t {
	case lexer.EQ_OP:
		return ast.CompEq
	case lexer.NEQ_OP:
		return ast.CompNeq
	case lexer.GT_OP:
		return ast.CompGT
	default:
		return ast.CompLT
	}
}

func arithOpFromToken(t lexer.TokenType) ast.ArithOp {
	switch t {
	case lexer.PLUS_OP:
		return ast.ArithAdd
	case lexer.MINUS_OP:
		return ast.ArithSub
	case lexer.MUL_OP:
		return ast.ArithMul
	case lexer.DIV_OP:
		return ast.ArithDiv
	case lexer.MOD_OP:
		return ast.ArithMod
	default:
		return ast.ArithPow
	}
}
