package claude

import (
	"bytes"
	"os"

	"github.com/pkg/errors"

	"github.com/aspies/asutils/pkg/registry"
)

// ProfileManager installs permission profiles and manages the active
// one. Installed profiles live as individual YAML files; the active
// profile is a plain copy at DefaultProfilePath, which is what Claude
// Code actually reads.
type ProfileManager struct {
	cfg       Config
	installer *registry.Installer
}

func NewProfileManager(cfg Config) *ProfileManager {
	return &ProfileManager{
		cfg: cfg,
		installer: &registry.Installer{
			TargetDir: cfg.ProfilesDir,
			ListExts:  []string{".yaml"},
		},
	}
}

func (m *ProfileManager) source() registry.Source {
	return registry.Source{FS: m.cfg.Source, Dir: "profiles", Ext: ".yaml"}
}

// Available returns the bundled profile catalog.
func (m *ProfileManager) Available() map[string]registry.Item {
	return registry.Scan(m.source())
}

// Installed enumerates the profiles directory.
func (m *ProfileManager) Installed() map[string]string {
	return m.installer.Installed()
}

// Add installs the named profiles.
func (m *ProfileManager) Add(refs []registry.Ref, force bool) ([]registry.Result, error) {
	return registry.InstallBatch(m.Available(), m.route, refs, force)
}

// AddAll installs every bundled profile.
func (m *ProfileManager) AddAll(force bool) ([]registry.Result, error) {
	refs := make([]registry.Ref, 0)
	for _, name := range sortedKeys(m.Available()) {
		refs = append(refs, registry.ParseRef(name))
	}
	return m.Add(refs, force)
}

// Remove deletes installed profiles by name.
func (m *ProfileManager) Remove(refs []registry.Ref) ([]registry.Result, error) {
	return registry.RemoveBatch(m.route, refs)
}

// SetDefault copies an installed profile over the active profile path.
// The profile must already be installed; bundled-but-uninstalled names
// are rejected so the active copy always tracks an editable file.
func (m *ProfileManager) SetDefault(name string) error {
	path, ok := m.Installed()[name]
	if !ok {
		return errors.Errorf("profile %q is not installed (run 'asutils claude permission add' first)", name)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read profile %q", name)
	}

	if err := os.WriteFile(m.cfg.DefaultProfilePath, content, 0o644); err != nil {
		return errors.Wrap(err, "failed to write default profile")
	}
	return nil
}

// CurrentDefault reports which installed profile the active copy
// matches, byte for byte. Returns "" when no default is set, and
// "(modified)" when the active copy matches no installed profile.
func (m *ProfileManager) CurrentDefault() string {
	current, err := os.ReadFile(m.cfg.DefaultProfilePath)
	if err != nil {
		return ""
	}

	for name, path := range m.Installed() {
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if bytes.Equal(current, content) {
			return name
		}
	}
	return "(modified)"
}

func (m *ProfileManager) route(registry.Ref) *registry.Installer {
	return m.installer
}
