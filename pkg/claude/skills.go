package claude

import (
	"github.com/aspies/asutils/pkg/registry"
)

// Static skill bundles. "minimal" is intentionally empty; the dynamic
// "all"/"default" and the "epic"/"commands" namespaces come from the
// catalogs themselves.
var skillBundles = map[string][]string{
	"minimal": {},
	"dev":     {"claude-hooks"},
}

// SkillManager installs skills and slash commands. Plain skills land in
// the skills directory under their own name; epic skills and bundled
// commands both land in the commands directory with their namespace
// prefix stripped. Everything is written as .md regardless of source
// extension.
type SkillManager struct {
	cfg      Config
	skills   *registry.Installer
	commands *registry.Installer
	resolver *registry.Resolver
}

func NewSkillManager(cfg Config) *SkillManager {
	m := &SkillManager{
		cfg: cfg,
		skills: &registry.Installer{
			TargetDir:    cfg.SkillsDir,
			NormalizeExt: ".md",
			ListExts:     []string{".md"},
		},
		commands: &registry.Installer{
			TargetDir:    cfg.CommandsDir,
			NormalizeExt: ".md",
			ListExts:     []string{".md"},
		},
	}
	m.resolver = registry.NewResolver(
		m.defaultSource(),
		[]registry.Source{m.epicSource(), m.commandsSource()},
		skillBundles,
	)
	return m
}

func (m *SkillManager) defaultSource() registry.Source {
	return registry.Source{FS: m.cfg.Source, Dir: "skills", Ext: ".md"}
}

func (m *SkillManager) epicSource() registry.Source {
	return registry.Source{FS: m.cfg.Source, Dir: "skills/epic", Ext: ".md", Namespace: NamespaceEpic}
}

func (m *SkillManager) commandsSource() registry.Source {
	return registry.Source{FS: m.cfg.Source, Dir: "commands", Ext: ".md", Namespace: NamespaceCommands}
}

// Bundled returns the default (non-epic) skill catalog.
func (m *SkillManager) Bundled() map[string]registry.Item {
	return registry.Scan(m.defaultSource())
}

// Epic returns the epic skill catalog, keyed with the epic/ prefix.
func (m *SkillManager) Epic() map[string]registry.Item {
	return registry.Scan(m.epicSource())
}

// Commands returns the bundled slash command catalog, keyed with the
// commands/ prefix.
func (m *SkillManager) Commands() map[string]registry.Item {
	return registry.Scan(m.commandsSource())
}

// Available returns every installable skill and command.
func (m *SkillManager) Available() map[string]registry.Item {
	return registry.Merge(m.Bundled(), m.Epic(), m.Commands())
}

// InstalledSkills enumerates the skills directory.
func (m *SkillManager) InstalledSkills() map[string]string {
	return m.skills.Installed()
}

// InstalledCommands enumerates the commands directory.
func (m *SkillManager) InstalledCommands() map[string]string {
	return m.commands.Installed()
}

// Lookup finds a skill or command by display name.
func (m *SkillManager) Lookup(name string) (registry.Item, bool) {
	item, ok := m.Available()[name]
	return item, ok
}

// Bundles returns every resolvable bundle name.
func (m *SkillManager) Bundles() []string {
	return m.resolver.Known()
}

// Resolve expands a skill bundle name into refs.
func (m *SkillManager) Resolve(bundle string) ([]registry.Ref, error) {
	return m.resolver.Resolve(bundle)
}

// Add installs the given refs, routing namespaced ones to the commands
// directory.
func (m *SkillManager) Add(refs []registry.Ref, force bool) ([]registry.Result, error) {
	return registry.InstallBatch(m.Available(), m.route, refs, force)
}

// AddBundle resolves a bundle and installs its members.
func (m *SkillManager) AddBundle(bundle string, force bool) ([]registry.Result, error) {
	refs, err := m.Resolve(bundle)
	if err != nil {
		return nil, err
	}
	return m.Add(refs, force)
}

// Remove deletes installed skills or commands by ref.
func (m *SkillManager) Remove(refs []registry.Ref) ([]registry.Result, error) {
	return registry.RemoveBatch(m.route, refs)
}

// RemoveAllSkills deletes every installed skill. The commands directory
// is left alone; it may hold commands the user wrote.
func (m *SkillManager) RemoveAllSkills() ([]registry.Result, error) {
	refs := make([]registry.Ref, 0)
	for _, name := range sortedKeys(m.InstalledSkills()) {
		refs = append(refs, registry.Ref{Name: name})
	}
	return m.Remove(refs)
}

// CommandAttribution classifies an installed command name for listings.
func (m *SkillManager) CommandAttribution(name string) string {
	if _, ok := m.Epic()[registry.Ref{Namespace: NamespaceEpic, Name: name}.Display()]; ok {
		return SourceEpic
	}
	if _, ok := m.Commands()[registry.Ref{Namespace: NamespaceCommands, Name: name}.Display()]; ok {
		return SourceBundled
	}
	return SourceCustom
}

// SkillAttribution classifies an installed skill name for listings.
func (m *SkillManager) SkillAttribution(name string) string {
	if _, ok := m.Bundled()[name]; ok {
		return SourceBundled
	}
	return SourceCustom
}

// route sends epic skills and bundled commands to the commands
// directory, everything else to the skills directory.
func (m *SkillManager) route(ref registry.Ref) *registry.Installer {
	if ref.IsNamespaced() {
		return m.commands
	}
	return m.skills
}
