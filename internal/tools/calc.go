// Copyright (c) 2025-2026 Palaver Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// =============================================================================
// EXPRESSION VALIDATION
// =============================================================================

// allowedChars is the full character set a calculator expression may contain.
// Anything outside this set is rejected before the parser ever runs, so the
// evaluator never sees identifiers, function calls, or other surprises.
const allowedChars = "0123456789.+-*/()% \t"

// ValidateExpression checks an expression against the allowed character set.
// It does not parse; a valid character set can still fail to evaluate.
func ValidateExpression(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return errors.New("empty expression")
	}
	for _, ch := range expr {
		if !strings.ContainsRune(allowedChars, ch) {
			return errors.New("invalid characters")
		}
	}
	return nil
}

// =============================================================================
// EVALUATOR
// =============================================================================

// EvaluateExpression validates and evaluates an arithmetic expression with
// standard operator precedence. Supported grammar:
//
//	expr   = term  { ("+" | "-") term }
//	term   = unary { ("*" | "/" | "%") unary }
//	unary  = { "+" | "-" } primary
//	primary = number | "(" expr ")"
//
// Division is floating point; "%" is math.Mod on the operands as given.
// There is deliberately no exponentiation, no variables, and no function
// calls: this is a closed grammar, not a general evaluator.
func EvaluateExpression(expr string) (float64, error) {
	if err := ValidateExpression(expr); err != nil {
		return 0, err
	}
	p := &exprParser{input: expr}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return 0, errors.New("unexpected character " + strconv.Quote(string(p.input[p.pos])))
	}
	return v, nil
}

// FormatResult renders an evaluation result the way a user wrote the math:
// integral values print without a decimal point ("1", not "1.000000").
func FormatResult(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// =============================================================================
// RECURSIVE-DESCENT PARSER
// =============================================================================

type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

// peek returns the next non-space byte without consuming it, or 0 at the end.
func (p *exprParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *exprParser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v += rhs
		case '-':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v -= rhs
		default:
			return v, nil
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	v, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			v *= rhs
		case '/':
			p.pos++
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, errors.New("division by zero")
			}
			v /= rhs
		case '%':
			p.pos++
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, errors.New("modulo by zero")
			}
			v = math.Mod(v, rhs)
		default:
			return v, nil
		}
	}
}

func (p *exprParser) parseUnary() (float64, error) {
	neg := false
	for {
		switch p.peek() {
		case '+':
			p.pos++
		case '-':
			p.pos++
			neg = !neg
		default:
			v, err := p.parsePrimary()
			if err != nil {
				return 0, err
			}
			if neg {
				v = -v
			}
			return v, nil
		}
	}
}

func (p *exprParser) parsePrimary() (float64, error) {
	ch := p.peek()
	switch {
	case ch == '(':
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, errors.New("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	case ch >= '0' && ch <= '9', ch == '.':
		return p.parseNumber()
	case ch == 0:
		return 0, errors.New("unexpected end of expression")
	default:
		return 0, errors.New("unexpected character " + strconv.Quote(string(ch)))
	}
}

func (p *exprParser) parseNumber() (float64, error) {
	p.skipSpace()
	start := p.pos
	seenDot := false
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if ch >= '0' && ch <= '9' {
			p.pos++
			continue
		}
		if ch == '.' && !seenDot {
			seenDot = true
			p.pos++
			continue
		}
		break
	}
	lit := p.input[start:p.pos]
	if lit == "" || lit == "." {
		return 0, errors.New("malformed number")
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, errors.New("malformed number " + strconv.Quote(lit))
	}
	return v, nil
}
