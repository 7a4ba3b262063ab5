package util

import "strings"

// Path represents a dotted module path, such as the "a.b.c" appearing in
// "import a.b.c" or "from a.b import c".  It is deliberately the same
// head/tail/dehead shape as a filesystem or tree path, since the import
// loader-action tree (see pkg/binder) walks it one segment at a time in
// exactly the way a module loader resolving "a.b.c" would: bind "a", then
// descend into "b", then into "c".
type Path struct {
	segments []string
}

// NewPath constructs a dotted path from its segments, e.g.
// NewPath("a", "b", "c") models "a.b.c".
func NewPath(segments ...string) Path {
	return Path{segments}
}

// ParsePath splits a "."-joined module name into a Path.
func ParsePath(dotted string) Path {
	return Path{strings.Split(dotted, ".")}
}

// Depth returns the number of segments in this path.
func (p Path) Depth() uint {
	return uint(len(p.segments))
}

// Head returns the first (outermost) segment, e.g. "a" for "a.b.c".
func (p Path) Head() string {
	return p.segments[0]
}

// Tail returns the last (innermost) segment, e.g. "c" for "a.b.c".
func (p Path) Tail() string {
	return p.segments[len(p.segments)-1]
}

// Dehead returns the path with its first segment removed, e.g. "b.c" for
// "a.b.c".  Used when descending one loader-action level at a time.
func (p Path) Dehead() Path {
	return Path{p.segments[1:]}
}

// Extend returns this path with a new innermost segment appended.
func (p Path) Extend(tail string) Path {
	segments := make([]string, len(p.segments), len(p.segments)+1)
	copy(segments, p.segments)

	return Path{append(segments, tail)}
}

// Segments returns the raw segment list.
func (p Path) Segments() []string {
	return p.segments
}

// String renders the path in its original dotted form.
func (p Path) String() string {
	return strings.Join(p.segments, ".")
}

// Equals determines whether two paths are identical.
func (p Path) Equals(other Path) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}

	for i := range p.segments {
		if p.segments[i] != other.segments[i] {
			return false
		}
	}

	return true
}
