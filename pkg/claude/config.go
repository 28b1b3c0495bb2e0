package claude

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// Config locates the bundled definition source and the target directories
// under the user's Claude Code home. Tests substitute temp directories and
// an fstest.MapFS source.
type Config struct {
	// Source is the bundled definition tree, normally Assets().
	Source fs.FS

	AgentsDir   string
	SkillsDir   string
	CommandsDir string
	ProfilesDir string

	// DefaultProfilePath is where the active permission profile lives.
	DefaultProfilePath string
}

// DefaultConfig points at the embedded assets and ~/.claude.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to locate home directory")
	}

	claudeDir := filepath.Join(home, ".claude")
	return Config{
		Source:             Assets(),
		AgentsDir:          filepath.Join(claudeDir, "agents"),
		SkillsDir:          filepath.Join(claudeDir, "skills"),
		CommandsDir:        filepath.Join(claudeDir, "commands"),
		ProfilesDir:        filepath.Join(claudeDir, "permission-profiles"),
		DefaultProfilePath: filepath.Join(claudeDir, "permission-profile.yaml"),
	}, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
