package parser

import (
	"gorpl/internal/errors"
	"gorpl/internal/ir"
	"gorpl/internal/lexer"
)

// Parser is a recursive-descent parser from tokens straight to IR.
//
// Grammar:
//
//	program := LOPEN? instr* RCLOSE? EOF
//	instr   := NUMBER | DUP | DROP | SWAP
//	        |  PLUS | MINUS | STAR | SLASH | CARET
//	        |  GT | LT | GE | LE | EQ | NE
//	        |  IF THEN instr* (ELSE instr*)? END
//
// Delimiter rule: a leading << demands a matching >> before end of input,
// and a >> at the top level without a leading << is rejected. The first
// syntax violation is fatal; there is no recovery.
type Parser struct {
	tokens  []lexer.Token
	current int
}

// New creates a parser over a token stream, which must end with EOF.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseProgram parses a complete program into its IR instruction sequence.
func (p *Parser) ParseProgram() ([]ir.Instruction, error) {
	delimited := p.match(lexer.LOPEN)

	out := []ir.Instruction{}
	for !p.check(lexer.RCLOSE) && !p.check(lexer.EOF) {
		instr, err := p.parseInstr()
		if err != nil {
			return nil, err
		}
		out = append(out, instr)
	}

	if delimited {
		if err := p.expect(lexer.RCLOSE, "'>>'"); err != nil {
			return nil, err
		}
	} else if p.check(lexer.RCLOSE) {
		return nil, p.errorAtCurrent("unexpected '>>' without matching '<<'")
	}

	if err := p.expect(lexer.EOF, "end of input"); err != nil {
		return nil, err
	}
	return out, nil
}

// parseInstr dispatches on a single token of lookahead.
func (p *Parser) parseInstr() (ir.Instruction, error) {
	t := p.peek()
	switch t.Kind {
	case lexer.NUMBER:
		p.advance()
		return ir.PushConst{Value: t.Value}, nil
	case lexer.DUP:
		p.advance()
		return ir.Dup{}, nil
	case lexer.DROP:
		p.advance()
		return ir.Drop{}, nil
	case lexer.SWAP:
		p.advance()
		return ir.Swap{}, nil

	case lexer.PLUS:
		p.advance()
		return ir.BinOp{Kind: ir.Add}, nil
	case lexer.MINUS:
		p.advance()
		return ir.BinOp{Kind: ir.Sub}, nil
	case lexer.STAR:
		p.advance()
		return ir.BinOp{Kind: ir.Mul}, nil
	case lexer.SLASH:
		p.advance()
		return ir.BinOp{Kind: ir.Div}, nil
	case lexer.CARET:
		p.advance()
		return ir.BinOp{Kind: ir.Pow}, nil

	case lexer.GT:
		p.advance()
		return ir.CmpOp{Kind: ir.Gt}, nil
	case lexer.LT:
		p.advance()
		return ir.CmpOp{Kind: ir.Lt}, nil
	case lexer.GE:
		p.advance()
		return ir.CmpOp{Kind: ir.Ge}, nil
	case lexer.LE:
		p.advance()
		return ir.CmpOp{Kind: ir.Le}, nil
	case lexer.EQ:
		p.advance()
		return ir.CmpOp{Kind: ir.Eq}, nil
	case lexer.NE:
		p.advance()
		return ir.CmpOp{Kind: ir.Ne}, nil

	case lexer.IF:
		return p.parseIf()

	default:
		return nil, p.errorAtCurrent("unexpected token: " + t.Lexeme)
	}
}

// parseIf handles IF THEN instr* (ELSE instr*)? END. Branches recurse back
// into parseInstr, so conditionals nest without bound.
func (p *Parser) parseIf() (ir.Instruction, error) {
	if err := p.expect(lexer.IF, "'IF'"); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.THEN, "'THEN'"); err != nil {
		return nil, err
	}

	thenBranch := []ir.Instruction{}
	for !p.check(lexer.ELSE) && !p.check(lexer.END) {
		if p.check(lexer.EOF) {
			return nil, p.errorAtCurrent("expected 'END' but found: end of input")
		}
		instr, err := p.parseInstr()
		if err != nil {
			return nil, err
		}
		thenBranch = append(thenBranch, instr)
	}

	var elseBranch []ir.Instruction
	if p.match(lexer.ELSE) {
		elseBranch = []ir.Instruction{}
		for !p.check(lexer.END) {
			if p.check(lexer.EOF) {
				return nil, p.errorAtCurrent("expected 'END' but found: end of input")
			}
			instr, err := p.parseInstr()
			if err != nil {
				return nil, err
			}
			elseBranch = append(elseBranch, instr)
		}
	}

	if err := p.expect(lexer.END, "'END'"); err != nil {
		return nil, err
	}
	return ir.IfElse{Then: thenBranch, Else: elseBranch}, nil
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) advance() lexer.Token {
	t := p.tokens[p.current]
	if !p.check(lexer.EOF) {
		p.current++
	}
	return t
}

func (p *Parser) match(kind lexer.TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind lexer.TokenKind, what string) error {
	if !p.check(kind) {
		found := p.peek().Lexeme
		if p.check(lexer.EOF) {
			found = "end of input"
		}
		return p.errorAtCurrent("expected " + what + " but found: " + found)
	}
	p.advance()
	return nil
}

func (p *Parser) errorAtCurrent(message string) error {
	t := p.peek()
	return &errors.SyntaxError{
		Message: message,
		Lexeme:  t.Lexeme,
		Pos:     t.Span.Start,
	}
}
