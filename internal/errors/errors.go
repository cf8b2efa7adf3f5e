// Package errors provides diagnostic values and their textual rendering for
// the golox pipeline. Every stage reports problems as Diagnostics; the
// driver renders them to stderr in the form
//
//	[line L] <Kind>[ at '<lexeme>'|at end]: <message>
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/defpis/golox/internal/lexer"
)

// Kind distinguishes errors from warnings. Warnings never affect exit codes.
type Kind string

const (
	KindError Kind = "Error"
	KindWarn  Kind = "Warn"
)

// Diagnostic is a single reported problem with its source line and, when
// available, the offending lexeme context.
type Diagnostic struct {
	Line    int
	Where   string
	Message string
	Kind    Kind
}

// NewError creates an error diagnostic with no lexeme context.
func NewError(line int, message string) *Diagnostic {
	return &Diagnostic{Line: line, Message: message, Kind: KindError}
}

// AtToken creates an error diagnostic anchored to a token, rendering
// " at '<lexeme>'" or " at end" for EOF.
func AtToken(token lexer.Token, message string) *Diagnostic {
	return &Diagnostic{Line: token.Line, Where: tokenWhere(token), Message: message, Kind: KindError}
}

// WarnAtToken creates a warning diagnostic anchored to a token.
func WarnAtToken(token lexer.Token, message string) *Diagnostic {
	return &Diagnostic{Line: token.Line, Where: tokenWhere(token), Message: message, Kind: KindWarn}
}

func tokenWhere(token lexer.Token) string {
	if token.Type == lexer.EOF {
		return " at end"
	}
	return " at '" + token.Lexeme + "'"
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return d.Format(false)
}

func (d *Diagnostic) String() string {
	return d.Format(false)
}

// Format renders the diagnostic. With color enabled the kind is highlighted
// for terminal output: errors red, warnings yellow.
func (d *Diagnostic) Format(colored bool) string {
	kind := string(d.Kind)
	if colored {
		switch d.Kind {
		case KindWarn:
			kind = color.New(color.FgYellow, color.Bold).Sprint(kind)
		default:
			kind = color.New(color.FgRed, color.Bold).Sprint(kind)
		}
	}
	return fmt.Sprintf("[line %d] %s%s: %s", d.Line, kind, d.Where, d.Message)
}

// FormatAll renders diagnostics one per line.
func FormatAll(diags []*Diagnostic, colored bool) string {
	var sb strings.Builder
	for _, d := range diags {
		sb.WriteString(d.Format(colored))
		sb.WriteString("\n")
	}
	return sb.String()
}
