// Package parser implements the recursive-descent parser for Lox.
//
// The parser works over the full token sequence with one-token lookahead
// (peek/peekPrev/peekNext) plus a bounded forward scan to split class
// members into variables and methods. Parse errors raise an internal panic
// that is recovered at the declaration boundary, where synchronize() skips
// to a likely statement start and parsing continues.
package parser

import (
	log "github.com/sirupsen/logrus"

	"github.com/defpis/golox/internal/ast"
	"github.com/defpis/golox/internal/errors"
	"github.com/defpis/golox/internal/lexer"
)

// parseError is the panic value used to unwind to the declaration boundary.
// The diagnostic has already been recorded when it is raised.
type parseError struct{}

// Parser parses a token sequence into an AST.
type Parser struct {
	tokens  []lexer.Token
	current int
	errors  []*errors.Diagnostic
}

// New creates a Parser over the given lexer's token stream.
func New(l *lexer.Lexer) *Parser {
	return &Parser{tokens: l.ScanTokens()}
}

// NewFromTokens creates a Parser over an already-scanned token sequence.
// The sequence must end with an EOF token.
func NewFromTokens(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns the parse errors accumulated so far.
func (p *Parser) Errors() []*errors.Diagnostic {
	return p.errors
}

// ParseProgram parses the whole token sequence. Declarations that failed to
// parse are dropped from the program; the errors remain available through
// Errors().
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}

	return program
}

// declaration parses one declaration, recovering from parse errors by
// synchronizing to the next statement boundary.
func (p *Parser) declaration() (stmt ast.Statement) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	if p.match(lexer.CLASS) {
		return p.classDeclaration()
	}
	if p.match(lexer.FUN) {
		return p.funDeclaration("function")
	}
	if p.match(lexer.VAR) {
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *Parser) classDeclaration() ast.Statement {
	name := p.consume(lexer.IDENTIFIER, "Expect class name.")

	var superclass *ast.VariableExpr
	if p.match(lexer.LESS) {
		p.consume(lexer.IDENTIFIER, "Expect superclass name.")
		superclass = &ast.VariableExpr{Name: p.peekPrev()}
	}

	p.consume(lexer.LEFT_BRACE, "Expect '{' before class body.")

	var instance, static ast.ClassAttributes

	for !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		p.classMember(&instance, &static)
	}

	p.consume(lexer.RIGHT_BRACE, "Expect '}' after class body.")

	return &ast.ClassStmt{Name: name, Superclass: superclass, Instance: instance, Static: static}
}

// classMember parses one member of a class body. A forward scan decides the
// member form: a ';' before any '{' means a variable, a '{' means a method.
// Errors recover locally so the rest of the body still parses.
func (p *Parser) classMember(instance, static *ast.ClassAttributes) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			p.synchronize()
		}
	}()

	start := p.current
	for !p.isAtEnd() {
		if p.peek().Type == lexer.SEMICOLON {
			p.current = start
			variable := p.varDeclaration()
			if variable.Modifier == ast.ModifierStatic {
				static.Variables = append(static.Variables, variable)
			} else {
				instance.Variables = append(instance.Variables, variable)
			}
			return
		}

		if p.peek().Type == lexer.LEFT_BRACE {
			p.current = start
			method := p.funDeclaration("method")
			if method.Modifier == ast.ModifierStatic {
				static.Methods = append(static.Methods, method)
			} else {
				instance.Methods = append(instance.Methods, method)
			}
			return
		}

		p.current++
	}
}

func (p *Parser) funDeclaration(kind string) *ast.FunStmt {
	modifier := ast.ModifierNone
	if p.match(lexer.STATIC) {
		modifier = ast.ModifierStatic
	} else if p.match(lexer.GETTER) {
		modifier = ast.ModifierGetter
	} else if p.match(lexer.SETTER) {
		modifier = ast.ModifierSetter
	}

	name := p.consume(lexer.IDENTIFIER, "Expect "+kind+" name.")
	p.consume(lexer.LEFT_PAREN, "Expect '(' after "+kind+" name.")

	var params []lexer.Token
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(params) >= 255 {
				panic(p.error(p.peek(), "Can't have more than 255 parameters."))
			}
			params = append(params, p.consume(lexer.IDENTIFIER, "Expect parameter name."))
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}

	if modifier == ast.ModifierGetter && len(params) != 0 {
		panic(p.error(p.peek(), "'getter' method should have no parameters."))
	}
	if modifier == ast.ModifierSetter && len(params) != 1 {
		panic(p.error(p.peek(), "'setter' method should have only one parameter."))
	}

	p.consume(lexer.RIGHT_PAREN, "Expect ')' after parameters.")
	p.consume(lexer.LEFT_BRACE, "Expect '{' before "+kind+" body.")
	body := p.blockStatement()

	return &ast.FunStmt{Name: name, Params: params, Body: body, Modifier: modifier}
}

func (p *Parser) varDeclaration() *ast.VarStmt {
	modifier := ast.ModifierNone
	if p.match(lexer.STATIC) {
		modifier = ast.ModifierStatic
	}

	name := p.consume(lexer.IDENTIFIER, "Expect variable name.")

	var initializer ast.Expression
	if p.match(lexer.EQUAL) {
		initializer = p.expression()
	}

	p.consume(lexer.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.VarStmt{Name: name, Initializer: initializer, Modifier: modifier}
}

func (p *Parser) statement() ast.Statement {
	if p.match(lexer.FOR) {
		return p.forStatement()
	}
	if p.match(lexer.WHILE) {
		return p.whileStatement()
	}
	if p.match(lexer.IF) {
		return p.ifStatement()
	}
	if p.match(lexer.RETURN) {
		return p.returnStatement()
	}
	if p.match(lexer.PRINT) {
		return p.printStatement()
	}
	if p.match(lexer.LEFT_BRACE) {
		return p.blockStatement()
	}
	return p.exprStatement()
}

// forStatement desugars `for (init; cond; incr) body` into nested blocks and
// a while loop, preserving source-order side effects.
func (p *Parser) forStatement() ast.Statement {
	p.consume(lexer.LEFT_PAREN, "Expect '(' after 'for'.")

	var initializer ast.Statement
	if p.match(lexer.SEMICOLON) {
		// no initializer
	} else if p.match(lexer.VAR) {
		initializer = p.varDeclaration()
	} else {
		initializer = p.exprStatement()
	}

	var condition ast.Expression
	if !p.check(lexer.SEMICOLON) {
		condition = p.expression()
	}
	p.consume(lexer.SEMICOLON, "Expect ';' after loop condition.")

	var increment ast.Expression
	if !p.check(lexer.RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(lexer.RIGHT_PAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &ast.BlockStmt{Statements: []ast.Statement{body, &ast.ExpressionStmt{Expression: increment}}}
	}

	if condition == nil {
		condition = &ast.LiteralExpr{Value: true}
	}

	body = &ast.WhileStmt{Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.BlockStmt{Statements: []ast.Statement{initializer, body}}
	}

	return body
}

func (p *Parser) whileStatement() ast.Statement {
	p.consume(lexer.LEFT_PAREN, "Expect '(' after 'while'.")
	condition := p.expression()
	p.consume(lexer.RIGHT_PAREN, "Expect ')' after while condition.")
	body := p.statement()

	return &ast.WhileStmt{Condition: condition, Body: body}
}

func (p *Parser) ifStatement() ast.Statement {
	p.consume(lexer.LEFT_PAREN, "Expect '(' after 'if'.")
	condition := p.expression()
	p.consume(lexer.RIGHT_PAREN, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch ast.Statement
	if p.match(lexer.ELSE) {
		elseBranch = p.statement()
	}

	return &ast.IfStmt{Condition: condition, Then: thenBranch, Else: elseBranch}
}

func (p *Parser) returnStatement() ast.Statement {
	keyword := p.peekPrev()
	var value ast.Expression
	if !p.check(lexer.SEMICOLON) {
		value = p.expression()
	}
	p.consume(lexer.SEMICOLON, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) printStatement() ast.Statement {
	expr := p.expression()
	p.consume(lexer.SEMICOLON, "Expect ';' after expression.")
	return &ast.PrintStmt{Expression: expr}
}

func (p *Parser) exprStatement() ast.Statement {
	expr := p.expression()
	p.consume(lexer.SEMICOLON, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expression: expr}
}

func (p *Parser) blockStatement() *ast.BlockStmt {
	var statements []ast.Statement

	for !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}

	p.consume(lexer.RIGHT_BRACE, "Expect '}' after block.")
	return &ast.BlockStmt{Statements: statements}
}

// synchronize skips tokens until a likely statement boundary: just past a
// ';' (also consuming a stray '}'), or right before a statement keyword.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.peekPrev().Type == lexer.SEMICOLON {
			if p.peek().Type == lexer.RIGHT_BRACE {
				p.advance()
			}
			log.Debugf("synchronize: resuming at %s", p.peek())
			return
		}
		if p.peekPrev().Type == lexer.RIGHT_BRACE {
			log.Debugf("synchronize: resuming at %s", p.peek())
			return
		}

		switch p.peek().Type {
		case lexer.CLASS, lexer.FUN, lexer.VAR, lexer.FOR,
			lexer.IF, lexer.WHILE, lexer.PRINT, lexer.RETURN:
			log.Debugf("synchronize: resuming at %s", p.peek())
			return
		}

		p.advance()
	}
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.peekPrev()
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t lexer.TokenType, message string) lexer.Token {
	if p.check(t) {
		return p.advance()
	}
	panic(p.error(p.peek(), message))
}

func (p *Parser) check(t lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) peekPrev() lexer.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) peekNext() lexer.Token {
	return p.tokens[p.current+1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.EOF
}

// error records a diagnostic and returns the panic value that unwinds to the
// nearest recovery point.
func (p *Parser) error(token lexer.Token, message string) parseError {
	p.errors = append(p.errors, errors.AtToken(token, message))
	return parseError{}
}
