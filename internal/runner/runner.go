// Package runner wires the pipeline stages together: scanner → parser →
// resolver → interpreter. A Runner owns one interpreter, so global state
// survives across REPL inputs, while Reset clears the per-run state in
// between.
package runner

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"

	"github.com/defpis/golox/internal/errors"
	"github.com/defpis/golox/internal/interp"
	"github.com/defpis/golox/internal/lexer"
	"github.com/defpis/golox/internal/parser"
	"github.com/defpis/golox/internal/resolver"
)

// Runner executes source texts against a persistent interpreter.
type Runner struct {
	interpreter *interp.Interpreter
	errOut      io.Writer
	colored     bool
	hadError    bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithColor enables colored diagnostics.
func WithColor(colored bool) Option {
	return func(r *Runner) {
		r.colored = colored
	}
}

// New creates a Runner writing program output to out and diagnostics to
// errOut.
func New(out, errOut io.Writer, opts ...Option) *Runner {
	r := &Runner{
		interpreter: interp.New(out),
		errOut:      errOut,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HadError reports whether any run since the last Reset reported an error.
func (r *Runner) HadError() bool {
	return r.hadError
}

// Reset clears the error latch between REPL inputs. Each Run already
// resolves with a fresh resolver, so the next input starts from an empty
// resolution map; global bindings survive.
func (r *Runner) Reset() {
	r.hadError = false
}

// Run executes one source text as a whole program. All diagnostics are
// written to the error writer; the returned error aggregates them for
// callers that need an exit status.
func (r *Runner) Run(source string) error {
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()

	var result *multierror.Error

	for _, lexErr := range l.Errors() {
		d := errors.NewError(lexErr.Line, lexErr.Message)
		r.report(d)
		result = multierror.Append(result, d)
	}

	for _, d := range p.Errors() {
		r.report(d)
		result = multierror.Append(result, d)
	}

	if result.ErrorOrNil() != nil {
		return result.ErrorOrNil()
	}

	log.Debugf("parsed %d statements", len(program.Statements))

	res := resolver.New()
	locals := res.Resolve(program)

	for _, d := range res.Warnings() {
		r.report(d)
	}
	for _, d := range res.Errors() {
		r.report(d)
		result = multierror.Append(result, d)
	}

	if result.ErrorOrNil() != nil {
		return result.ErrorOrNil()
	}

	log.Debugf("resolved %d local references", len(locals))

	if err := r.interpreter.Interpret(program, locals); err != nil {
		var runtimeErr *interp.RuntimeError
		if stderrors.As(err, &runtimeErr) {
			d := errors.AtToken(runtimeErr.Token, runtimeErr.Message)
			r.report(d)
			return d
		}
		r.hadError = true
		fmt.Fprintln(r.errOut, err)
		return err
	}

	return nil
}

func (r *Runner) report(d *errors.Diagnostic) {
	if d.Kind == errors.KindError {
		r.hadError = true
	}
	fmt.Fprintln(r.errOut, d.Format(r.colored))
}
