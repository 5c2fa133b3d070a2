// Package diagformat renders source.Diagnostic values for a terminal:
// a file:line:column header, the offending source line, and a caret
// pointing at the column, grounded on the teacher's
// internal/errors.CompilerError.Format/FormatWithContext. The core
// packages never import this one (§6): it is consumed only by cmd/nilo.
package diagformat

import (
	"fmt"
	"strings"

	"github.com/nilolang/nilo/internal/source"
)

// sourceSet is a file's full text, addressed by path, so a diagnostic
// can be rendered with the line it points at.
type sourceSet map[string]string

// SourceSet builds a sourceSet from path -> full text, as read by the
// CLI's filesystem.
func SourceSet(files map[string]string) sourceSet { return sourceSet(files) }

func (s sourceSet) line(file string, lineNum int) string {
	text, ok := s[file]
	if !ok {
		return ""
	}
	lines := strings.Split(text, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// Format renders one diagnostic without color, in the same
// header/source-line/caret shape as the teacher's CompilerError.Format.
func Format(d source.Diagnostic, files sourceSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s:%d:%d\n", d.Severity, d.File, d.Range.Start.Line, d.Range.Start.Column)

	line := files.line(d.File, d.Range.Start.Line)
	if line != "" {
		gutter := fmt.Sprintf("%4d | ", d.Range.Start.Line)
		b.WriteString(gutter)
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", len(gutter)+d.Range.Start.Column-1))
		b.WriteString(caretSpan(d.Range))
		b.WriteString("\n")
	}

	b.WriteString(d.Message)
	return b.String()
}

// caretSpan draws one caret per column the range covers when it starts
// and ends on the same line; a zero-width or multi-line range gets a
// single caret, so it still points at something.
func caretSpan(rng source.FileRange) string {
	width := 1
	if rng.End.Line == rng.Start.Line && rng.End.Column > rng.Start.Column {
		width = rng.End.Column - rng.Start.Column
	}
	return strings.Repeat("^", width)
}

// FormatAll renders every diagnostic in order, one per paragraph,
// prefixed with a summary line once there is more than one - matching
// the teacher's FormatErrors for a multi-error batch.
func FormatAll(diags []source.Diagnostic, files sourceSet) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return Format(diags[0], files)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d diagnostics:\n\n", len(diags))
	for i, d := range diags {
		fmt.Fprintf(&b, "[%d/%d] ", i+1, len(diags))
		b.WriteString(Format(d, files))
		if i < len(diags)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}
