package interp

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/defpis/golox/internal/lexer"
	"github.com/defpis/golox/internal/parser"
	"github.com/defpis/golox/internal/resolver"
)

// TestScriptFixtures runs every Lox script under testdata/fixtures and
// snapshots its output with go-snaps.
func TestScriptFixtures(t *testing.T) {
	pattern := filepath.Join("testdata", "fixtures", "*.lox")
	files, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(files) == 0 {
		t.Fatalf("no fixtures found under %s", pattern)
	}
	sort.Strings(files)

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".lox")
		t.Run(name, func(t *testing.T) {
			content, err := os.ReadFile(file)
			if err != nil {
				t.Fatalf("failed to read fixture: %v", err)
			}

			p := parser.New(lexer.New(string(content)))
			program := p.ParseProgram()
			if errs := p.Errors(); len(errs) > 0 {
				t.Fatalf("fixture %s has parse errors: %v", name, errs)
			}

			r := resolver.New()
			locals := r.Resolve(program)
			if errs := r.Errors(); len(errs) > 0 {
				t.Fatalf("fixture %s has static errors: %v", name, errs)
			}

			var buf bytes.Buffer
			i := New(&buf)
			if err := i.Interpret(program, locals); err != nil {
				t.Fatalf("fixture %s failed: %v", name, err)
			}

			snaps.MatchSnapshot(t, buf.String())
		})
	}
}
