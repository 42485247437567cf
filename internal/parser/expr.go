package parser

import (
	"github.com/hashicorp/go-multierror"

	"github.com/samdecook/treewalk/internal/ast"
	"github.com/samdecook/treewalk/internal/token"
)

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment parses a logic_or, then if '=' follows, rewrites the already
// parsed LHS into the matching assignment-target node — the only three
// valid targets being a bare identifier, a Get, or an Index (spec.md
// section 4.1 plus the Index case added in SPEC_FULL.md). Any other LHS
// is a non-fatal parse error: it's reported but parsing continues with
// the already-parsed expr.
func (p *Parser) assignment() ast.Expr {
	expr := p.logicOr()

	if p.match(token.Equal) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.VarExpr:
			return ast.NewAssignExpr(target.Name, value)
		case *ast.GetExpr:
			return &ast.SetExpr{Object: target.Object, Name: target.Name, Value: value}
		case *ast.IndexExpr:
			return ast.NewIndexSetExpr(target.Callee, target.Bracket, target.Index, value)
		default:
			// Recorded directly rather than via errorAt, which panics and
			// would synchronize past the rest of the statement.
			p.errs = multierror.Append(p.errs, &ParseError{Line: equals.Line, Where: "at '" + equals.Lexeme + "'", Message: "Invalid assignment target."})
			return expr
		}
	}

	return expr
}

func (p *Parser) logicOr() ast.Expr {
	expr := p.logicAnd()
	for p.match(token.Or) {
		op := p.previous()
		right := p.logicAnd()
		expr = &ast.LogicExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) logicAnd() ast.Expr {
	expr := p.equality()
	for p.match(token.And) {
		op := p.previous()
		right := p.equality()
		expr = &ast.LogicExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.EqualEqual, token.BangEqual) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.Less, token.LessEqual, token.Greater, token.GreaterEqual) {
		op := p.previous()
		right := p.term()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.Plus, token.Minus) {
		op := p.previous()
		right := p.factor()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.Star, token.Slash) {
		op := p.previous()
		right := p.unary()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right := p.unary()
		return &ast.UnaryExpr{Op: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(token.LeftParen):
			expr = p.finishCall(expr)
		case p.match(token.Dot):
			name := p.consume(token.Identifier, "Expect property name after '.'.")
			expr = &ast.GetExpr{Object: expr, Name: name}
		case p.match(token.LeftBracket):
			bracket := p.previous()
			index := p.expression()
			p.consume(token.RightBracket, "Expect ']' after index.")
			expr = ast.NewIndexExpr(expr, bracket, index)
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		args = append(args, p.expression())
		for p.match(token.Comma) {
			if len(args) >= maxArgs {
				p.errorAtCurrent("Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
		}
	}
	paren := p.consume(token.RightParen, "Expect ')' after arguments.")
	return &ast.CallExpr{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.True):
		return &ast.LiteralExpr{Token: p.previous(), Value: "true"}
	case p.match(token.False):
		return &ast.LiteralExpr{Token: p.previous(), Value: "false"}
	case p.match(token.Nil):
		return &ast.LiteralExpr{Token: p.previous(), Value: "nil"}
	case p.match(token.Number):
		return &ast.LiteralExpr{Token: p.previous(), Value: p.previous().Literal}
	case p.match(token.String):
		return &ast.LiteralExpr{Token: p.previous(), Value: p.previous().Literal}
	case p.match(token.This):
		return ast.NewThisExpr(p.previous())
	case p.match(token.Super):
		keyword := p.previous()
		p.consume(token.Dot, "Expect '.' after 'super'.")
		method := p.consume(token.Identifier, "Expect superclass method name.")
		return ast.NewSuperExpr(keyword, method)
	case p.match(token.Identifier):
		return ast.NewVarExpr(p.previous())
	case p.match(token.LeftParen):
		inner := p.expression()
		p.consume(token.RightParen, "Expect ')' after expression.")
		return &ast.GroupingExpr{Inner: inner}
	case p.match(token.LeftBracket):
		var elements []ast.Expr
		if !p.check(token.RightBracket) {
			elements = append(elements, p.expression())
			for p.match(token.Comma) {
				elements = append(elements, p.expression())
			}
		}
		p.consume(token.RightBracket, "Expect ']' after array elements.")
		return &ast.ArrayExpr{Elements: elements}
	default:
		p.errorAtCurrent("Expect expression.")
		panic(synchronize{}) // unreachable: errorAtCurrent always panics
	}
}
