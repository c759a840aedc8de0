package analyzer

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// String renders the analysis as the human-readable report printed by the
// CLI. Queries come first, then inserts, each numbered in source order;
// every emitted query is semicolon terminated so it can be copied straight
// into a database shell.
func (a *Analysis) String() string {
	var b strings.Builder
	for i, qa := range a.Queries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "query %d: %s;\n", i+1, qa.Statement)
		if len(qa.Steps) == 0 {
			b.WriteString("  no count steps: not a plain SELECT\n")
			continue
		}
		for j, step := range qa.Steps {
			fmt.Fprintf(&b, "  step %d: %s;\n", j+1, step)
		}
	}
	for i, ia := range a.Inserts {
		if i > 0 || len(a.Queries) > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "insert %d: %s;\n", i+1, ia.Statement)
		fmt.Fprintf(&b, "  target count:  %s;\n", ia.TargetCount)
		fmt.Fprintf(&b, "  payload count: %s;\n", ia.PayloadCount)
	}
	if a.Empty() {
		return "no queries or inserts found\n"
	}
	return b.String()
}

// Render writes the report to w.
func (a *Analysis) Render(w io.Writer) error {
	if _, err := io.WriteString(w, a.String()); err != nil {
		return errors.Wrap(err, "failed to write analysis report")
	}
	return nil
}

// Empty reports whether the analysis has nothing to show.
func (a *Analysis) Empty() bool {
	return len(a.Queries) == 0 && len(a.Inserts) == 0
}
