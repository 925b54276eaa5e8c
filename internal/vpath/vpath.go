// Package vpath models the slash-separated virtual paths users address
// their folders and files with. Paths are always relative to the owner's
// root folder; a leading slash carries no meaning. Segments are opaque
// names, so "." and ".." receive no special treatment.
package vpath

import (
	"strings"

	"github.com/arcziwoda/skylock-sub000/internal/domain"
)

// MaxLength caps the raw input, matching the varchar(255) name columns.
const MaxLength = 255

// Path is an ordered sequence of non-empty segment names. The zero value
// is the root.
type Path struct {
	segments []string
}

// Root returns the empty path, denoting the owner's root folder itself.
func Root() Path {
	return Path{}
}

// Parse normalizes raw into a Path. A single leading and trailing slash
// are stripped; "" and "/" parse to the root. Inputs longer than
// MaxLength or containing empty interior segments fail with
// domain.ErrInvalidPath.
func Parse(raw string) (Path, error) {
	if len(raw) > MaxLength {
		return Path{}, domain.ErrInvalidPath
	}

	trimmed := strings.TrimPrefix(raw, "/")
	trimmed = strings.TrimSuffix(trimmed, "/")
	if trimmed == "" {
		return Path{}, nil
	}

	segments := strings.Split(trimmed, "/")
	for _, segment := range segments {
		if segment == "" {
			return Path{}, domain.ErrInvalidPath
		}
	}

	return Path{segments: segments}, nil
}

// Join appends a segment, returning the child path.
func (p Path) Join(name string) Path {
	segments := make([]string, 0, len(p.segments)+1)
	segments = append(segments, p.segments...)
	segments = append(segments, name)
	return Path{segments: segments}
}

// Parent strips the final segment. Calling it on the root fails with
// domain.ErrForbidden, since the root has no parent.
func (p Path) Parent() (Path, error) {
	if p.IsRoot() {
		return Path{}, domain.ErrForbidden
	}
	return Path{segments: p.segments[:len(p.segments)-1]}, nil
}

// Name returns the final segment, or "" for the root.
func (p Path) Name() string {
	if p.IsRoot() {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// IsRoot reports whether the path denotes the root folder itself.
func (p Path) IsRoot() bool {
	return len(p.segments) == 0
}

// Segments returns the segment names in order. The returned slice must
// not be mutated.
func (p Path) Segments() []string {
	return p.segments
}

func (p Path) String() string {
	return strings.Join(p.segments, "/")
}
