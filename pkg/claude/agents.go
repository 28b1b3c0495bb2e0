package claude

import (
	"github.com/aspies/asutils/pkg/registry"
)

// Namespace names used by the bundled definition tree.
const (
	NamespaceEpic     = "epic"
	NamespaceCommands = "commands"
)

// Source attribution values reported by listings.
const (
	SourceBundled = "bundled"
	SourceEpic    = "epic"
	SourceCustom  = "custom"
)

// AgentManager installs custom agent definitions into the Claude Code
// agents directory. Default agents are YAML, epic agents are markdown
// with frontmatter; both keep their source extension on install.
type AgentManager struct {
	cfg       Config
	installer *registry.Installer
	resolver  *registry.Resolver
}

func NewAgentManager(cfg Config) *AgentManager {
	m := &AgentManager{
		cfg: cfg,
		installer: &registry.Installer{
			TargetDir: cfg.AgentsDir,
			ListExts:  []string{".yaml", ".md"},
		},
	}
	m.resolver = registry.NewResolver(m.defaultSource(), []registry.Source{m.epicSource()}, nil)
	return m
}

func (m *AgentManager) defaultSource() registry.Source {
	return registry.Source{FS: m.cfg.Source, Dir: "agents", Ext: ".yaml"}
}

func (m *AgentManager) epicSource() registry.Source {
	return registry.Source{FS: m.cfg.Source, Dir: "agents/epic", Ext: ".md", Namespace: NamespaceEpic}
}

// Bundled returns the default (non-epic) agent catalog.
func (m *AgentManager) Bundled() map[string]registry.Item {
	return registry.Scan(m.defaultSource())
}

// Epic returns the epic agent catalog, keyed with the epic/ prefix.
func (m *AgentManager) Epic() map[string]registry.Item {
	return registry.Scan(m.epicSource())
}

// Available returns every installable agent across both catalogs.
func (m *AgentManager) Available() map[string]registry.Item {
	return registry.Merge(m.Bundled(), m.Epic())
}

// Installed enumerates the agents directory, both extensions.
func (m *AgentManager) Installed() map[string]string {
	return m.installer.Installed()
}

// Lookup finds an agent by display name. A bare name that only exists in
// the epic catalog resolves there, so "ue-reviewer" works without the
// epic/ prefix.
func (m *AgentManager) Lookup(name string) (registry.Item, bool) {
	available := m.Available()
	if item, ok := available[name]; ok {
		return item, true
	}
	if item, ok := available[registry.Ref{Namespace: NamespaceEpic, Name: name}.Display()]; ok {
		return item, true
	}
	return registry.Item{}, false
}

// Resolve expands an agent bundle name ("all", "default" or "epic").
func (m *AgentManager) Resolve(bundle string) ([]registry.Ref, error) {
	return m.resolver.Resolve(bundle)
}

// Add installs the given refs, skipping names already present unless
// force is set.
func (m *AgentManager) Add(refs []registry.Ref, force bool) ([]registry.Result, error) {
	return registry.InstallBatch(m.Available(), m.route, refs, force)
}

// AddBundle resolves a bundle and installs its members.
func (m *AgentManager) AddBundle(bundle string, force bool) ([]registry.Result, error) {
	refs, err := m.Resolve(bundle)
	if err != nil {
		return nil, err
	}
	return m.Add(refs, force)
}

// Remove deletes installed agents by base name.
func (m *AgentManager) Remove(refs []registry.Ref) ([]registry.Result, error) {
	return registry.RemoveBatch(m.route, refs)
}

// RemoveAll deletes every installed agent.
func (m *AgentManager) RemoveAll() ([]registry.Result, error) {
	refs := make([]registry.Ref, 0)
	for _, name := range sortedKeys(m.Installed()) {
		refs = append(refs, registry.Ref{Name: name})
	}
	return m.Remove(refs)
}

// Attribution classifies an installed agent name for listings.
func (m *AgentManager) Attribution(name string) string {
	if _, ok := m.Bundled()[name]; ok {
		return SourceBundled
	}
	if _, ok := m.Epic()[registry.Ref{Namespace: NamespaceEpic, Name: name}.Display()]; ok {
		return SourceEpic
	}
	return SourceCustom
}

func (m *AgentManager) route(registry.Ref) *registry.Installer {
	return m.installer
}
