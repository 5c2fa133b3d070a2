package source

import "sort"

// Severity classifies a Diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Diagnostic is a single compiler-reported finding: severity, message,
// the file it applies to, and the range within that file.
type Diagnostic struct {
	Severity Severity
	Message  string
	File     string
	Range    FileRange
}

// NewError builds an error-severity diagnostic at rng in file.
func NewError(file string, rng FileRange, message string) Diagnostic {
	return Diagnostic{Severity: SeverityError, Message: message, File: file, Range: rng}
}

// SortByModuleThenPosition sorts diagnostics first by the module id that
// owns their file (per moduleOf), then by source position within the
// file. This implements the ordering guarantee of §5/§7: diagnostics are
// emitted in module-load order, then in source order within a module.
func SortByModuleThenPosition(diags []Diagnostic, moduleOf func(file string) int) {
	sort.SliceStable(diags, func(i, j int) bool {
		mi, mj := moduleOf(diags[i].File), moduleOf(diags[j].File)
		if mi != mj {
			return mi < mj
		}
		return diags[i].Range.Start.Less(diags[j].Range.Start)
	})
}
