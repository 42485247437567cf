// Package parser implements the recursive-descent parser described in
// spec.md section 4.1, producing the ast package's node types.
package parser

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/samdecook/treewalk/internal/ast"
	"github.com/samdecook/treewalk/internal/token"
)

const maxArgs = 255

// ParseError is a single synchronized parse failure.
type ParseError struct {
	Line    int
	Where   string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[line %d] Error %s: %s", e.Line, e.Where, e.Message)
}

// synchronize is a sentinel panic value used to unwind out of whatever
// production failed, back to Parser.declaration's recovery loop — the
// teacher's parser reported and os.Exit(65)'d immediately; spec.md section
// 4.1 instead requires synchronizing and continuing, so failures must
// unwind without returning through every caller's zero-value Stmt/Expr.
type synchronize struct{ err *ParseError }

// Parser turns a token stream into a Program, aggregating every
// synchronized error into one *multierror.Error (spec.md section 4.1's
// "boolean indicating whether any error was reported", generalized to
// carry the messages instead of just a flag).
type Parser struct {
	tokens []token.Token
	idx    int
	errs   *multierror.Error
}

// New returns a Parser over tokens (expected to end with an EOF token).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse returns the parsed declarations and the aggregated parse error
// (nil if none were reported).
func (p *Parser) Parse() (*ast.Program, error) {
	program := &ast.Program{}
	for !p.atEnd() {
		program.Decls = append(program.Decls, p.declaration())
	}
	if p.errs != nil {
		return program, p.errs.ErrorOrNil()
	}
	return program, nil
}

func (p *Parser) declaration() (decl ast.Stmt) {
	defer p.recover(&decl)

	switch {
	case p.match(token.Class):
		return p.classDecl()
	case p.match(token.Fun):
		return p.function("function")
	case p.match(token.Var):
		return p.varDecl()
	default:
		return p.statement()
	}
}

// recover catches a synchronize panic, records the error, advances past
// the offending statement, and leaves *decl as an ExpressionStmt over a
// nil-safe placeholder literal so the caller's slice append stays
// well-typed. The placeholder is never evaluated: a non-nil p.errs means
// Run is never invoked (spec.md section 4.1).
func (p *Parser) recover(decl *ast.Stmt) {
	if r := recover(); r != nil {
		sync, ok := r.(synchronize)
		if !ok {
			panic(r)
		}
		p.errs = multierror.Append(p.errs, sync.err)
		*decl = &ast.ExpressionStmt{Expr: &ast.LiteralExpr{Value: "nil"}}
		p.synchronizeTokens()
	}
}

func (p *Parser) synchronizeTokens() {
	for !p.atEnd() {
		if p.previous().Type == token.Semicolon {
			return
		}
		switch p.current().Type {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

func (p *Parser) classDecl() ast.Stmt {
	name := p.consume(token.Identifier, "Expect class name.")

	var superclass *ast.VarExpr
	if p.match(token.Less) {
		p.consume(token.Identifier, "Expect superclass name.")
		superclass = ast.NewVarExpr(p.previous())
	}

	p.consume(token.LeftBrace, "Expect '{' before class body.")
	var methods []*ast.FunctionStmt
	for !p.check(token.RightBrace) && !p.atEnd() {
		methods = append(methods, p.function("method"))
	}
	p.consume(token.RightBrace, "Expect '}' after class body.")

	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) function(kind string) *ast.FunctionStmt {
	name := p.consume(token.Identifier, "Expect "+kind+" name.")
	p.consume(token.LeftParen, "Expect '(' after "+kind+" name.")

	var params []token.Token
	if !p.check(token.RightParen) {
		params = append(params, p.consume(token.Identifier, "Expect parameter name."))
		for p.match(token.Comma) {
			if len(params) >= maxArgs {
				p.errorAtCurrent("Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.Identifier, "Expect parameter name."))
		}
	}
	p.consume(token.RightParen, "Expect ')' after parameters.")

	p.consume(token.LeftBrace, "Expect '{' before "+kind+" body.")
	body := p.block()

	return &ast.FunctionStmt{Name: name, Params: params, Body: body, IsInitializer: kind == "method" && name.Lexeme == "init"}
}

func (p *Parser) varDecl() ast.Stmt {
	name := p.consume(token.Identifier, "Expect variable name.")

	var initializer ast.Expr
	if p.match(token.Equal) {
		initializer = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after variable declaration.")
	return &ast.VarDeclStmt{Name: name, Initializer: initializer}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.For):
		return p.forStmt()
	case p.match(token.If):
		return p.ifStmt()
	case p.match(token.Print):
		return p.printStmt()
	case p.match(token.Return):
		return p.returnStmt()
	case p.match(token.While):
		return p.whileStmt()
	case p.match(token.LeftBrace):
		return &ast.BlockStmt{Decls: p.block()}
	default:
		return p.exprStmt()
	}
}

func (p *Parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.Semicolon, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expr: expr}
}

func (p *Parser) printStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.Semicolon, "Expect ';' after value.")
	return &ast.PrintStmt{Expr: expr}
}

func (p *Parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) ifStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RightParen, "Expect ')' after if condition.")
	then := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.Else) {
		elseBranch = p.statement()
	}
	return &ast.IfStmt{Condition: cond, Then: then, Else: elseBranch}
}

func (p *Parser) whileStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RightParen, "Expect ')' after condition.")
	body := p.statement()
	return &ast.WhileStmt{Condition: cond, Body: body}
}

// forStmt desugars `for (I; C; U) B` into `{ I; while (C) { B; U; } }`, per
// spec.md section 4.1.
func (p *Parser) forStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(token.Semicolon):
		initializer = nil
	case p.match(token.Var):
		initializer = p.varDecl()
	default:
		initializer = p.exprStmt()
	}

	var condition ast.Expr
	if !p.check(token.Semicolon) {
		condition = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.RightParen) {
		increment = p.expression()
	}
	p.consume(token.RightParen, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &ast.BlockStmt{Decls: []ast.Stmt{body, &ast.ExpressionStmt{Expr: increment}}}
	}
	if condition == nil {
		condition = &ast.LiteralExpr{Token: token.Token{Type: token.True}, Value: "true"}
	}
	body = &ast.WhileStmt{Condition: condition, Body: body}
	if initializer != nil {
		body = &ast.BlockStmt{Decls: []ast.Stmt{initializer, body}}
	}
	return body
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.atEnd() {
		stmts = append(stmts, p.declaration())
	}
	p.consume(token.RightBrace, "Expect '}' after block.")
	return stmts
}
