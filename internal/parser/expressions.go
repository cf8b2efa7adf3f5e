package parser

import (
	"github.com/defpis/golox/internal/ast"
	"github.com/defpis/golox/internal/lexer"
)

// Precedence, lowest to highest:
// assignment → or → and → equality → comparison → term → factor → exp → unary → call → primary

func (p *Parser) expression() ast.Expression {
	return p.assignment()
}

// assignment parses `=` and the compound forms, rewriting `a OP= v` into
// `a = a OP v`. The left side must be a variable or property access.
func (p *Parser) assignment() ast.Expression {
	expr := p.or()

	if p.match(lexer.EQUAL, lexer.MINUS_EQUAL, lexer.PLUS_EQUAL, lexer.SLASH_EQUAL, lexer.STAR_EQUAL) {
		op := p.peekPrev()
		value := p.assignment()

		switch op.Type {
		case lexer.MINUS_EQUAL:
			value = desugarCompound(expr, op, lexer.MINUS, "-", value)
		case lexer.PLUS_EQUAL:
			value = desugarCompound(expr, op, lexer.PLUS, "+", value)
		case lexer.SLASH_EQUAL:
			value = desugarCompound(expr, op, lexer.SLASH, "/", value)
		case lexer.STAR_EQUAL:
			value = desugarCompound(expr, op, lexer.STAR, "*", value)
		}

		if target, ok := expr.(*ast.VariableExpr); ok {
			return &ast.AssignExpr{Name: target.Name, Value: value, ReturnOriginal: false}
		}
		if target, ok := expr.(*ast.GetExpr); ok {
			return &ast.SetExpr{Object: target.Object, Name: target.Name, Value: value, ReturnOriginal: false}
		}

		panic(p.error(op, "Invalid assignment target."))
	}

	return expr
}

// desugarCompound synthesizes the Binary node for `a OP= v` → `a = a OP v`.
func desugarCompound(target ast.Expression, op lexer.Token, binType lexer.TokenType, lexeme string, value ast.Expression) ast.Expression {
	binOp := lexer.Token{Type: binType, Lexeme: lexeme, Literal: nil, Line: op.Line}
	return &ast.BinaryExpr{Left: target, Operator: binOp, Right: value}
}

func (p *Parser) or() ast.Expression {
	expr := p.and()

	for p.match(lexer.OR) {
		op := p.peekPrev()
		right := p.and()
		expr = &ast.LogicalExpr{Left: expr, Operator: op, Right: right}
	}

	return expr
}

func (p *Parser) and() ast.Expression {
	expr := p.equality()

	for p.match(lexer.AND) {
		op := p.peekPrev()
		right := p.equality()
		expr = &ast.LogicalExpr{Left: expr, Operator: op, Right: right}
	}

	return expr
}

func (p *Parser) equality() ast.Expression {
	expr := p.comparison()

	for p.match(lexer.BANG_EQUAL, lexer.EQUAL_EQUAL) {
		op := p.peekPrev()
		right := p.comparison()
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}

	return expr
}

func (p *Parser) comparison() ast.Expression {
	expr := p.term()

	for p.match(lexer.GREATER, lexer.GREATER_EQUAL, lexer.LESS, lexer.LESS_EQUAL) {
		op := p.peekPrev()
		right := p.term()
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}

	return expr
}

func (p *Parser) term() ast.Expression {
	expr := p.factor()

	for p.match(lexer.MINUS, lexer.PLUS) {
		op := p.peekPrev()
		right := p.factor()
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}

	return expr
}

func (p *Parser) factor() ast.Expression {
	expr := p.exp()

	for p.match(lexer.SLASH, lexer.STAR) {
		op := p.peekPrev()
		right := p.exp()
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}

	return expr
}

func (p *Parser) exp() ast.Expression {
	expr := p.unary()

	for p.match(lexer.STAR_STAR) {
		op := p.peekPrev()
		right := p.unary()
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}

	return expr
}

func (p *Parser) unary() ast.Expression {
	if p.match(lexer.BANG) {
		op := p.peekPrev()
		right := p.unary()
		return &ast.UnaryExpr{Operator: op, Right: right}
	}

	// --a / ++a desugar to a = a - 1 / a = a + 1
	if p.match(lexer.MINUS_MINUS, lexer.PLUS_PLUS) {
		op := p.peekPrev()
		expr := p.call()
		return p.desugarStep(expr, op, false)
	}

	if p.match(lexer.PLUS, lexer.MINUS) {
		op := p.peekPrev()
		right := p.call()
		return &ast.UnaryExpr{Operator: op, Right: right}
	}

	expr := p.call()

	// a-- / a++ desugar the same way but evaluate to the original value
	if p.match(lexer.MINUS_MINUS, lexer.PLUS_PLUS) {
		op := p.peekPrev()
		return p.desugarStep(expr, op, true)
	}

	return expr
}

// desugarStep rewrites prefix/postfix increment and decrement into an
// assignment of `expr ± 1`. The operand must be a variable or property.
func (p *Parser) desugarStep(expr ast.Expression, op lexer.Token, returnOriginal bool) ast.Expression {
	var binOp lexer.Token
	if op.Type == lexer.MINUS_MINUS {
		binOp = lexer.Token{Type: lexer.MINUS, Lexeme: "-", Literal: nil, Line: op.Line}
	} else {
		binOp = lexer.Token{Type: lexer.PLUS, Lexeme: "+", Literal: nil, Line: op.Line}
	}

	one := &ast.LiteralExpr{Value: float64(1)}
	value := &ast.BinaryExpr{Left: expr, Operator: binOp, Right: one}

	if target, ok := expr.(*ast.VariableExpr); ok {
		return &ast.AssignExpr{Name: target.Name, Value: value, ReturnOriginal: returnOriginal}
	}
	if target, ok := expr.(*ast.GetExpr); ok {
		return &ast.SetExpr{Object: target.Object, Name: target.Name, Value: value, ReturnOriginal: returnOriginal}
	}

	position := "after"
	if returnOriginal {
		position = "before"
	}
	panic(p.error(op, "Expect variable "+position+" '"+op.Lexeme+"'."))
}

func (p *Parser) call() ast.Expression {
	expr := p.primary()

	for {
		if p.match(lexer.LEFT_PAREN) {
			expr = p.finishCall(expr)
		} else if p.match(lexer.DOT) {
			name := p.consume(lexer.IDENTIFIER, "Expect property name after '.'.")
			expr = &ast.GetExpr{Object: expr, Name: name}
		} else {
			break
		}
	}

	return expr
}

func (p *Parser) finishCall(callee ast.Expression) ast.Expression {
	var arguments []ast.Expression

	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(arguments) >= 255 {
				panic(p.error(p.peek(), "Can't have more than 255 arguments."))
			}
			arguments = append(arguments, p.expression())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}

	paren := p.consume(lexer.RIGHT_PAREN, "Expect ')' after arguments.")

	return &ast.CallExpr{Callee: callee, Paren: paren, Arguments: arguments}
}

func (p *Parser) primary() ast.Expression {
	if p.match(lexer.SUPER) {
		keyword := p.peekPrev()
		p.consume(lexer.DOT, "Expect '.' after 'super'.")
		method := p.consume(lexer.IDENTIFIER, "Expect superclass method name.")
		return &ast.SuperExpr{Keyword: keyword, Method: method}
	}
	if p.match(lexer.THIS) {
		return &ast.ThisExpr{Keyword: p.peekPrev()}
	}
	if p.match(lexer.FALSE) {
		return &ast.LiteralExpr{Value: false}
	}
	if p.match(lexer.TRUE) {
		return &ast.LiteralExpr{Value: true}
	}
	if p.match(lexer.NIL) {
		return &ast.LiteralExpr{Value: nil}
	}
	if p.match(lexer.STRING, lexer.NUMBER) {
		return &ast.LiteralExpr{Value: p.peekPrev().Literal}
	}
	if p.match(lexer.IDENTIFIER) {
		return &ast.VariableExpr{Name: p.peekPrev()}
	}
	if p.match(lexer.LEFT_PAREN) {
		expr := p.expression()
		p.consume(lexer.RIGHT_PAREN, "Expect ')' after expression.")
		return &ast.GroupingExpr{Expression: expr}
	}

	panic(p.error(p.peek(), "Expect expression."))
}
