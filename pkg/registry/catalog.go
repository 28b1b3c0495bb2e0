package registry

import (
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Source describes one flat directory of definition files inside a
// filesystem, optionally tagged with a namespace.
type Source struct {
	FS        fs.FS
	Dir       string
	Ext       string // extension filter including the dot, e.g. ".md"
	Namespace string // "" for the default catalog
}

// Item is a named, file-backed unit of configuration discovered by a
// catalog scan. The source file is read-only; only the installer writes.
type Item struct {
	Ref  Ref
	Path string // path of the source file within its filesystem
	Ext  string // extension of the source file, including the dot
	fsys fs.FS
}

// Content reads the item's source file.
func (it Item) Content() ([]byte, error) {
	return fs.ReadFile(it.fsys, it.Path)
}

// Scan lists the items of a single source directory, keyed by display
// name. A missing directory is normal (optional bundles) and yields an
// empty catalog rather than an error. Subdirectories are not entered.
func Scan(src Source) map[string]Item {
	items := make(map[string]Item)

	entries, err := fs.ReadDir(src.FS, src.Dir)
	if err != nil {
		return items
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, src.Ext) {
			continue
		}

		ref := Ref{Namespace: src.Namespace, Name: strings.TrimSuffix(name, src.Ext)}
		items[ref.Display()] = Item{
			Ref:  ref,
			Path: path.Join(src.Dir, name),
			Ext:  src.Ext,
			fsys: src.FS,
		}
	}

	return items
}

// Merge combines catalogs into one. Namespaced entries carry their
// prefix in the key, so a namespaced item can never shadow a default
// entry of the same base name.
func Merge(catalogs ...map[string]Item) map[string]Item {
	merged := make(map[string]Item)
	for _, catalog := range catalogs {
		for name, item := range catalog {
			merged[name] = item
		}
	}
	return merged
}

// SortedNames returns the catalog's display names in lexical order.
func SortedNames(catalog map[string]Item) []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
