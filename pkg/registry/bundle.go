package registry

import (
	"fmt"
	"sort"
	"strings"
)

// Dynamic bundle names that always expand to the live contents of the
// default catalog at resolution time.
const (
	BundleAll     = "all"
	BundleDefault = "default"
)

// BundleNotFoundError reports a request for a bundle that has no
// dynamic, namespace or static handler.
type BundleNotFoundError struct {
	Bundle string
	Known  []string
}

func (e *BundleNotFoundError) Error() string {
	return fmt.Sprintf("unknown bundle %q (available: %s)", e.Bundle, strings.Join(e.Known, ", "))
}

// Resolver maps bundle names to ordered item refs. The dynamic names
// ("all", "default") and the namespace names re-scan their catalogs on
// every Resolve call, so a newly bundled file joins them on the next
// run without registration.
type Resolver struct {
	defaultSource Source
	namespaces    []Source
	static        map[string][]string
}

// NewResolver builds a resolver over a default source, zero or more
// namespaced sources (resolvable by their namespace name) and a set of
// statically declared bundles. A static bundle may be empty; resolving
// one succeeds with no refs.
func NewResolver(defaultSource Source, namespaces []Source, static map[string][]string) *Resolver {
	return &Resolver{
		defaultSource: defaultSource,
		namespaces:    namespaces,
		static:        static,
	}
}

// Resolve expands a bundle name into item refs. Duplicate names in a
// static bundle are kept; an unknown bundle name is a user error
// reported with the list of valid names.
func (r *Resolver) Resolve(bundle string) ([]Ref, error) {
	switch bundle {
	case BundleAll, BundleDefault:
		return sortedRefs(Scan(r.defaultSource)), nil
	}

	for _, src := range r.namespaces {
		if src.Namespace == bundle {
			return sortedRefs(Scan(src)), nil
		}
	}

	if names, ok := r.static[bundle]; ok {
		refs := make([]Ref, 0, len(names))
		for _, name := range names {
			refs = append(refs, ParseRef(name))
		}
		return refs, nil
	}

	return nil, &BundleNotFoundError{Bundle: bundle, Known: r.Known()}
}

// Known returns every resolvable bundle name in lexical order.
func (r *Resolver) Known() []string {
	names := []string{BundleAll, BundleDefault}
	for _, src := range r.namespaces {
		names = append(names, src.Namespace)
	}
	for name := range r.static {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedRefs(catalog map[string]Item) []Ref {
	refs := make([]Ref, 0, len(catalog))
	for _, name := range SortedNames(catalog) {
		refs = append(refs, catalog[name].Ref)
	}
	return refs
}
