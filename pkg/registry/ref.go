// Package registry implements the catalog, bundle and install machinery
// shared by the Claude Code agent, skill and permission-profile managers.
// Item sources are fs.FS backed so bundled definitions ship embedded in
// the binary while tests point at temporary directories.
package registry

import "strings"

// Ref identifies an item by base name plus an optional namespace. The
// namespace is a selection and display mechanism only: it disambiguates
// items with overlapping base names in listings and bundle resolution,
// and is stripped again before anything is written to disk.
type Ref struct {
	Namespace string // "" for the default catalog
	Name      string // base name without extension
}

// ParseRef parses a display name such as "epic/foo" or "foo".
func ParseRef(display string) Ref {
	if ns, name, ok := strings.Cut(display, "/"); ok {
		return Ref{Namespace: ns, Name: name}
	}
	return Ref{Name: display}
}

// Display returns the namespace-prefixed form used in listings and
// bundle definitions.
func (r Ref) Display() string {
	if r.Namespace == "" {
		return r.Name
	}
	return r.Namespace + "/" + r.Name
}

// IsNamespaced reports whether the ref belongs to a namespaced catalog.
func (r Ref) IsNamespaced() bool {
	return r.Namespace != ""
}
