package source

import "sort"

// File represents a single source file's contents together with a
// precomputed table of line-start offsets. The host analyzer context owns
// exactly one of these per file and records it on the binder's FileInfo;
// diagnostics carry byte spans, which the renderer (the CLI here) converts
// to line/column ranges with this table.
type File struct {
	path string
	text []byte
	// lineStarts[i] is the byte offset at which line i+1 (1-indexed) begins.
	lineStarts []int
}

// NewFile constructs a File and eagerly computes its line table.
func NewFile(path string, text []byte) *File {
	lineStarts := []int{0}

	for i, b := range text {
		if b == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}

	return &File{path, text, lineStarts}
}

// Path returns the file's source path.
func (f *File) Path() string { return f.path }

// Text returns the raw file contents.
func (f *File) Text() []byte { return f.text }

// LineCount returns the number of lines in the file.
func (f *File) LineCount() int { return len(f.lineStarts) }

// lineOf returns the 1-indexed line number containing the given byte offset.
func (f *File) lineOf(offset int) int {
	// Find the last line-start offset <= offset.
	i := sort.Search(len(f.lineStarts), func(i int) bool {
		return f.lineStarts[i] > offset
	})

	return i
}

// ToRange converts a byte Span into a 1-indexed line/column Range.
func (f *File) ToRange(span Span) Range {
	startLine := f.lineOf(span.Start())
	endLine := f.lineOf(span.End())

	return Range{
		StartLine:   startLine,
		StartColumn: span.Start() - f.lineStarts[startLine-1] + 1,
		EndLine:     endLine,
		EndColumn:   span.End() - f.lineStarts[endLine-1] + 1,
	}
}

// Line returns the raw text of the given 1-indexed line number.
func (f *File) Line(number int) string {
	start := f.lineStarts[number-1]
	end := len(f.text)

	if number < len(f.lineStarts) {
		end = f.lineStarts[number] - 1
	}

	return string(f.text[start:end])
}
