package registry

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Outcome is the per-item result of an install or remove attempt.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeInstalled
	OutcomeSkipped
	OutcomeRemoved
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInstalled:
		return "installed"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeRemoved:
		return "removed"
	case OutcomeNotFound:
		return "not found"
	default:
		return "none"
	}
}

// Installer copies catalog items into a target directory and deletes
// them again. It is the only component that writes to or removes from
// the installed-items directory.
type Installer struct {
	TargetDir string

	// NormalizeExt forces every installed file to a single extension
	// (the skill-family installers always write .md). Empty preserves
	// the source extension (the agent and profile installers).
	NormalizeExt string

	// ListExts are the extensions recognized when reading installed
	// state, which also drives the default overwrite-skip check.
	ListExts []string
}

// Install writes an item into the target directory under its unprefixed
// base name, creating the directory if needed. With force=false an
// already-installed item of the same name is left untouched and the
// attempt reports OutcomeSkipped. force=true overwrites unconditionally.
func (i *Installer) Install(item Item, force bool) (Outcome, error) {
	if err := os.MkdirAll(i.TargetDir, 0o755); err != nil {
		return OutcomeNone, errors.Wrap(err, "failed to create target directory")
	}

	if !force {
		if _, exists := i.Installed()[item.Ref.Name]; exists {
			return OutcomeSkipped, nil
		}
	}

	ext := item.Ext
	if i.NormalizeExt != "" {
		ext = i.NormalizeExt
	}

	content, err := item.Content()
	if err != nil {
		return OutcomeNone, errors.Wrapf(err, "failed to read source for %q", item.Ref.Display())
	}

	target := filepath.Join(i.TargetDir, item.Ref.Name+ext)
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return OutcomeNone, errors.Wrapf(err, "failed to write %q", target)
	}

	return OutcomeInstalled, nil
}

// Remove deletes the installed file for name. Absence is reported as
// OutcomeNotFound, not an error, so batch removals can tolerate it.
func (i *Installer) Remove(name string) (Outcome, error) {
	path, ok := i.Installed()[name]
	if !ok {
		return OutcomeNotFound, nil
	}

	if err := os.Remove(path); err != nil {
		return OutcomeNone, errors.Wrapf(err, "failed to remove %q", name)
	}

	return OutcomeRemoved, nil
}

// Installed enumerates the items currently present in the target
// directory, keyed by base name. Recomputed from disk on every call.
func (i *Installer) Installed() map[string]string {
	return ListInstalled(i.TargetDir, i.ListExts...)
}

// ListInstalled enumerates the files under dir with one of the given
// extensions, keyed by base name. A missing directory yields an empty
// map, same as an empty source catalog.
func ListInstalled(dir string, exts ...string) map[string]string {
	installed := make(map[string]string)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return installed
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if !slices.Contains(exts, ext) {
			continue
		}
		installed[strings.TrimSuffix(entry.Name(), ext)] = filepath.Join(dir, entry.Name())
	}

	return installed
}

// Result reports the outcome of one item within a batch operation.
type Result struct {
	Name    string
	Outcome Outcome
	Err     error
}

// InstallBatch installs every ref through the installer selected by
// route, in resolver order. A missing name yields OutcomeNotFound and
// processing continues; filesystem failures are aggregated and the rest
// of the batch still runs.
func InstallBatch(available map[string]Item, route func(Ref) *Installer, refs []Ref, force bool) ([]Result, error) {
	results := make([]Result, 0, len(refs))
	var merr *multierror.Error

	for _, ref := range refs {
		item, ok := available[ref.Display()]
		if !ok {
			results = append(results, Result{Name: ref.Display(), Outcome: OutcomeNotFound})
			continue
		}

		outcome, err := route(ref).Install(item, force)
		if err != nil {
			merr = multierror.Append(merr, err)
		}
		results = append(results, Result{Name: ref.Name, Outcome: outcome, Err: err})
	}

	return results, merr.ErrorOrNil()
}

// RemoveBatch removes every named item through the installer selected
// by route, tolerating absent names.
func RemoveBatch(route func(Ref) *Installer, refs []Ref) ([]Result, error) {
	results := make([]Result, 0, len(refs))
	var merr *multierror.Error

	for _, ref := range refs {
		outcome, err := route(ref).Remove(ref.Name)
		if err != nil {
			merr = multierror.Append(merr, err)
		}
		results = append(results, Result{Name: ref.Name, Outcome: outcome, Err: err})
	}

	return results, merr.ErrorOrNil()
}
