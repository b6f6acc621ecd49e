package schemaerr

import (
	"fmt"
	"strings"
)

// Formatter renders diagnostics for human consumption. The formatter is an
// explicit capability selected at startup, never ambient process state.
type Formatter interface {
	Format(d Diagnostic) string
}

// PlainFormatter renders the bare message text.
type PlainFormatter struct{}

func (PlainFormatter) Format(d Diagnostic) string { return d.Message() }

// DecoratedFormatter prefixes the kind tag and can append a documentation
// link per diagnostic kind.
type DecoratedFormatter struct {
	// DocsBase, when set, is joined with the kind slug to form a help URL.
	DocsBase string
}

func (f DecoratedFormatter) Format(d Diagnostic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "error[%s]: %s", d.Kind, d.Message())
	if f.DocsBase != "" {
		fmt.Fprintf(&b, "\n  see: %s/%s", strings.TrimRight(f.DocsBase, "/"), d.Kind)
	}
	return b.String()
}

// FormatAll renders each diagnostic on its own line.
func FormatAll(f Formatter, ds []Diagnostic) string {
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = f.Format(d)
	}
	return strings.Join(lines, "\n")
}
