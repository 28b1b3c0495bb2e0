// Package claude manages the Claude Code artifacts asutils ships: custom
// agents, skills, slash commands and permission profiles. Bundled
// definitions are embedded in the binary and installed into the user's
// ~/.claude tree through the registry installer.
package claude

import (
	"embed"
	"io/fs"
)

//go:embed all:assets
var assetsFS embed.FS

// Assets returns the bundled definition tree: agents/ (plus agents/epic/),
// skills/ (plus skills/epic/), commands/ and profiles/.
func Assets() fs.FS {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		// The assets directory is embedded at build time; a failure
		// here means the binary itself is broken.
		panic(err)
	}
	return sub
}
