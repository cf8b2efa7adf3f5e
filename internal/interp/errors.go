package interp

import (
	"fmt"

	"github.com/defpis/golox/internal/lexer"
)

// RuntimeError is an error raised during evaluation, carrying the offending
// token for line and lexeme context.
type RuntimeError struct {
	Token   lexer.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// newRuntimeError creates a RuntimeError for a token.
func newRuntimeError(token lexer.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: token, Message: fmt.Sprintf(format, args...)}
}

// returnSignal is the control signal that unwinds statement execution up to
// the nearest user-function call boundary, carrying the return value. It
// travels through ordinary error returns, so environment restoration in
// executeBlock covers it the same way it covers runtime errors.
type returnSignal struct {
	value Value
}

func (r *returnSignal) Error() string {
	return "return outside of function"
}
