package p4

import (
	"context"
	"strconv"
	"strings"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
)

// Client exposes the wrapped p4 operations.
type Client struct {
	runner *Runner
}

func NewClient() *Client {
	return &Client{runner: &Runner{Timeout: defaultTimeout}}
}

// File is one depot file as reported by `p4 files`.
type File struct {
	Path     string `json:"path"`
	Revision string `json:"revision,omitempty"`
}

// Revision is one entry of a file's change history.
type Revision struct {
	Revision    string `json:"revision"`
	Change      string `json:"change"`
	Action      string `json:"action"`
	Date        string `json:"date"`
	User        string `json:"user"`
	Description string `json:"description"`
}

// Changelist is the summary form of `p4 describe -s`.
type Changelist struct {
	Number      int64    `json:"changelist"`
	User        string   `json:"user"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Files       []string `json:"files"`
}

// Mapping is a depot-to-workspace path mapping from `p4 where`.
type Mapping struct {
	Depot  string `json:"depot"`
	Client string `json:"client"`
	Local  string `json:"local"`
	Mapped bool   `json:"mapped"`
}

// Branch is one top-level directory under a depot root, classified by
// naming convention.
type Branch struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

// Dirs lists the directories directly under a depot path or alias.
func (c *Client) Dirs(ctx context.Context, depotPath string) ([]string, error) {
	path := wildcardPath(ResolveDepotPath(depotPath))
	out, err := c.runner.Run(ctx, "dirs", path)
	if err != nil {
		return nil, err
	}
	return parseDirs(out), nil
}

// Files lists up to limit files directly under a depot path or alias.
func (c *Client) Files(ctx context.Context, depotPath string, limit int) ([]File, error) {
	path := wildcardPath(ResolveDepotPath(depotPath))
	out, err := c.runner.Run(ctx, "files", "-m", strconv.Itoa(limit), path)
	if err != nil {
		return nil, err
	}
	return parseFiles(out), nil
}

// SearchFiles finds files matching pattern within scope. A bare
// filename pattern searches recursively; a pattern with directory
// components is appended to the scope; a full //depot pattern is used
// as-is.
func (c *Client) SearchFiles(ctx context.Context, pattern, scope string, limit int) ([]File, error) {
	path := searchPath(pattern, ResolveDepotPath(scope))
	out, err := c.runner.Run(ctx, "files", "-m", strconv.Itoa(limit), path)
	if err != nil {
		return nil, err
	}
	return parseFiles(out), nil
}

// FileInfo returns the fstat fields for one depot file.
func (c *Client) FileInfo(ctx context.Context, depotPath string) (map[string]string, error) {
	path := ResolveDepotPath(depotPath)
	out, err := c.runner.Run(ctx, "fstat", path)
	if err != nil {
		return nil, err
	}

	info := parseFstat(out)
	info["path"] = path
	return info, nil
}

// FileLog returns up to limit history entries for one depot file,
// newest first.
func (c *Client) FileLog(ctx context.Context, depotPath string, limit int) ([]Revision, error) {
	path := ResolveDepotPath(depotPath)
	out, err := c.runner.Run(ctx, "filelog", "-m", strconv.Itoa(limit), path)
	if err != nil {
		return nil, err
	}
	return parseFileLog(out), nil
}

// Describe returns the summary of one changelist.
func (c *Client) Describe(ctx context.Context, cl int64) (*Changelist, error) {
	out, err := c.runner.Run(ctx, "describe", "-s", strconv.FormatInt(cl, 10))
	if err != nil {
		return nil, err
	}

	info := parseDescribe(out)
	info.Number = cl
	return info, nil
}

// Where maps a depot path into the current workspace.
func (c *Client) Where(ctx context.Context, depotPath string) (*Mapping, error) {
	path := ResolveDepotPath(depotPath)
	out, err := c.runner.Run(ctx, "where", path)
	if err != nil {
		return nil, err
	}
	return parseWhere(path, out), nil
}

// Print returns the contents of a depot file, optionally at a specific
// revision.
func (c *Client) Print(ctx context.Context, depotPath string, revision int) (string, error) {
	path := ResolveDepotPath(depotPath)
	if revision > 0 {
		path += "@" + strconv.Itoa(revision)
	}

	runner := &Runner{Timeout: printTimeout}
	return runner.Run(ctx, "print", "-q", path)
}

// Branches lists the top-level directories under a depot root,
// classified main/dev/release/other and optionally filtered by a glob
// pattern such as "Dev-*".
func (c *Client) Branches(ctx context.Context, depot, filter string) ([]Branch, error) {
	var matcher glob.Glob
	if filter != "" {
		var err error
		matcher, err = glob.Compile(filter)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid filter %q", filter)
		}
	}

	root := branchRoot(depot)
	out, err := c.runner.Run(ctx, "dirs", root+"/*")
	if err != nil {
		return nil, err
	}

	var branches []Branch
	for _, path := range parseDirs(out) {
		name := path[strings.LastIndex(path, "/")+1:]
		if matcher != nil && !matcher.Match(name) {
			continue
		}
		branches = append(branches, Branch{Name: name, Path: path, Type: classifyBranch(name)})
	}
	return branches, nil
}

// wildcardPath appends /* unless the path already carries a wildcard.
func wildcardPath(path string) string {
	if strings.HasSuffix(path, "/*") || strings.HasSuffix(path, "/...") {
		return path
	}
	return strings.TrimRight(path, "/") + "/*"
}

// searchPath builds the p4 files argument per the pattern placement
// rules documented on SearchFiles.
func searchPath(pattern, scope string) string {
	switch {
	case strings.HasPrefix(pattern, "//"):
		return pattern
	case strings.Contains(pattern, "/"):
		return strings.TrimRight(scope, "/") + "/" + pattern
	default:
		return strings.TrimRight(scope, "/") + "/.../" + pattern
	}
}

// branchRoot reduces a depot name, alias or full path to its root, e.g.
// "fn" -> //Fortnite and "//UE5/Main/Engine" -> //UE5.
func branchRoot(depot string) string {
	if resolved, ok := DepotAliases[strings.ToLower(depot)]; ok {
		depot = resolved
	}
	if strings.HasPrefix(depot, "//") {
		parts := strings.Split(strings.TrimRight(depot, "/"), "/")
		if len(parts) > 2 {
			return "//" + parts[2]
		}
		return depot
	}
	return "//" + depot
}

func classifyBranch(name string) string {
	switch {
	case name == "Main":
		return "main"
	case strings.HasPrefix(name, "Dev-"):
		return "dev"
	case strings.HasPrefix(name, "Release-"):
		return "release"
	default:
		return "other"
	}
}

func parseDirs(out string) []string {
	var dirs []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "error") {
			continue
		}
		dirs = append(dirs, line)
	}
	return dirs
}

// parseFiles parses `p4 files` lines of the form
// //path/file#rev - action change 12345 (type).
func parseFiles(out string) []File {
	var files []File
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "error") || strings.Contains(line, " - no such file") {
			continue
		}

		path, rest, ok := strings.Cut(line, "#")
		if !ok {
			continue
		}
		rev, _, _ := strings.Cut(rest, " - ")
		files = append(files, File{Path: path, Revision: rev})
	}
	return files
}

// parseFstat parses `... key value` lines into a map.
func parseFstat(out string) map[string]string {
	info := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		rest, ok := strings.CutPrefix(line, "... ")
		if !ok {
			continue
		}
		key, value, ok := strings.Cut(rest, " ")
		if !ok {
			continue
		}
		info[key] = value
	}
	return info
}

var filelogActions = map[string]bool{
	"edit":      true,
	"add":       true,
	"delete":    true,
	"branch":    true,
	"integrate": true,
}

// parseFileLog parses `p4 filelog` output. Revision lines look like
// ... #5 change 12345 edit on 2024/01/15 by user@workspace (text)
// and are followed by tab-indented description lines.
func parseFileLog(out string) []Revision {
	var (
		history []Revision
		current *Revision
	)

	flush := func() {
		if current != nil {
			history = append(history, *current)
			current = nil
		}
	}

	for _, raw := range strings.Split(strings.TrimSpace(out), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if rest, ok := strings.CutPrefix(line, "... #"); ok {
			flush()
			parts := strings.Fields(rest)
			current = &Revision{}
			if len(parts) > 0 {
				current.Revision = parts[0]
			}
			for i, part := range parts {
				switch {
				case part == "change" && i+1 < len(parts):
					current.Change = parts[i+1]
				case part == "on" && i+1 < len(parts):
					current.Date = parts[i+1]
				case part == "by" && i+1 < len(parts):
					current.User = parts[i+1]
				case filelogActions[part]:
					current.Action = part
				}
			}
			continue
		}

		if current != nil && strings.HasPrefix(raw, "\t") {
			if current.Description != "" {
				current.Description += " "
			}
			current.Description += line
		}
	}

	flush()
	return history
}

// parseDescribe parses `p4 describe -s` output. The header line is
// Change 12345 by user@workspace on 2024/01/15, followed by the
// tab-indented description and `... //path#rev action` file lines.
func parseDescribe(out string) *Changelist {
	info := &Changelist{Files: []string{}}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) == 0 {
		return info
	}

	parts := strings.Fields(lines[0])
	for i, part := range parts {
		switch {
		case part == "by" && i+1 < len(parts):
			info.User = parts[i+1]
		case part == "on" && i+1 < len(parts):
			info.Date = parts[i+1]
		}
	}

	for _, line := range lines[1:] {
		switch {
		case strings.HasPrefix(line, "\t"):
			// Description only runs until the first file line.
			if len(info.Files) == 0 {
				if info.Description != "" {
					info.Description += "\n"
				}
				info.Description += strings.TrimSpace(line)
			}
		case strings.HasPrefix(line, "..."):
			info.Files = append(info.Files, strings.TrimSpace(line[3:]))
		}
	}
	return info
}

// parseWhere parses `p4 where` output: depot, client and local paths
// separated by spaces. A leading - means the path is unmapped.
func parseWhere(path, out string) *Mapping {
	parts := strings.Fields(strings.TrimSpace(out))
	if len(parts) >= 3 {
		return &Mapping{Depot: parts[0], Client: parts[1], Local: parts[2], Mapped: true}
	}
	return &Mapping{Depot: path}
}
