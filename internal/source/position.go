// Package source defines the position, range, and diagnostic primitives
// shared by every stage of the frontend, plus the lazy character stream
// the lexer reads from.
package source

import "fmt"

// FilePosition identifies a single point in a source file: the file path,
// a 1-based line, and a 1-based column.
type FilePosition struct {
	File   string
	Line   int
	Column int
}

// NewFilePosition returns the position at the start of a file.
func NewFilePosition(file string) FilePosition {
	return FilePosition{File: file, Line: 1, Column: 1}
}

// Advance returns the position reached after consuming ch. A newline moves
// to column 1 of the next line; any other character advances one column.
func (p FilePosition) Advance(ch rune) FilePosition {
	if ch == '\n' {
		return FilePosition{File: p.File, Line: p.Line + 1, Column: 1}
	}
	return FilePosition{File: p.File, Line: p.Line, Column: p.Column + 1}
}

// Less reports whether p comes strictly before other in (line, column)
// lexicographic order. Files are assumed equal; callers compare within a
// single file.
func (p FilePosition) Less(other FilePosition) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// LessEq reports p.Less(other) || p == other.
func (p FilePosition) LessEq(other FilePosition) bool {
	return p == other || p.Less(other)
}

func (p FilePosition) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// FileRange spans from Start (inclusive) to End (exclusive).
type FileRange struct {
	Start FilePosition
	End   FilePosition
}

// RangeFromImage forms the range covering image, starting at start.
func RangeFromImage(start FilePosition, image string) FileRange {
	end := start
	for _, ch := range image {
		end = end.Advance(ch)
	}
	return FileRange{Start: start, End: end}
}

// Union returns the smallest range covering both a and b. Both must share
// the same file.
func Union(a, b FileRange) FileRange {
	start := a.Start
	if b.Start.Less(start) {
		start = b.Start
	}
	end := a.End
	if end.Less(b.End) {
		end = b.End
	}
	return FileRange{Start: start, End: end}
}

func (r FileRange) String() string {
	return fmt.Sprintf("%s-%d:%d", r.Start, r.End.Line, r.End.Column)
}
