package registry

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver(fsys fstest.MapFS) *Resolver {
	defaultSrc := Source{FS: fsys, Dir: "skills", Ext: ".md"}
	epicSrc := Source{FS: fsys, Dir: "skills/epic", Ext: ".md", Namespace: "epic"}

	return NewResolver(defaultSrc, []Source{epicSrc}, map[string][]string{
		"minimal": {},
		"dev":     {"claude-hooks"},
	})
}

func TestResolveDynamic(t *testing.T) {
	fsys := fstest.MapFS{
		"skills/claude-hooks.md": {Data: []byte("a")},
		"skills/commit-style.md": {Data: []byte("b")},
	}
	r := testResolver(fsys)

	for _, bundle := range []string{"all", "default"} {
		refs, err := r.Resolve(bundle)
		require.NoError(t, err)
		assert.Equal(t, []Ref{{Name: "claude-hooks"}, {Name: "commit-style"}}, refs, "bundle %q", bundle)
	}
}

func TestResolveDynamicIsLive(t *testing.T) {
	dir := t.TempDir()
	skillsDir := filepath.Join(dir, "skills")
	require.NoError(t, os.MkdirAll(skillsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(skillsDir, "one.md"), []byte("1"), 0o644))

	r := NewResolver(Source{FS: os.DirFS(dir), Dir: "skills", Ext: ".md"}, nil, nil)

	refs, err := r.Resolve("all")
	require.NoError(t, err)
	assert.Len(t, refs, 1)

	// A file added between two resolutions joins the bundle with no
	// other state change.
	require.NoError(t, os.WriteFile(filepath.Join(skillsDir, "two.md"), []byte("2"), 0o644))

	refs, err = r.Resolve("all")
	require.NoError(t, err)
	assert.Len(t, refs, 2)
}

func TestResolveNamespace(t *testing.T) {
	fsys := fstest.MapFS{
		"skills/epic/jira.md":       {Data: []byte("j")},
		"skills/epic/confluence.md": {Data: []byte("c")},
	}
	r := testResolver(fsys)

	refs, err := r.Resolve("epic")
	require.NoError(t, err)
	assert.Equal(t, []Ref{
		{Namespace: "epic", Name: "confluence"},
		{Namespace: "epic", Name: "jira"},
	}, refs)
}

func TestResolveStatic(t *testing.T) {
	r := testResolver(fstest.MapFS{})

	refs, err := r.Resolve("dev")
	require.NoError(t, err)
	assert.Equal(t, []Ref{{Name: "claude-hooks"}}, refs)
}

func TestResolveEmptyStaticBundleIsNotAnError(t *testing.T) {
	r := testResolver(fstest.MapFS{})

	refs, err := r.Resolve("minimal")
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestResolveUnknownBundle(t *testing.T) {
	r := testResolver(fstest.MapFS{
		"skills/something.md": {Data: []byte("x")},
	})

	_, err := r.Resolve("not-a-real-bundle")
	require.Error(t, err)

	var notFound *BundleNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "not-a-real-bundle", notFound.Bundle)
	assert.Equal(t, []string{"all", "default", "dev", "epic", "minimal"}, notFound.Known)
	assert.Contains(t, err.Error(), "available: all, default, dev, epic, minimal")
}

func TestResolveKeepsDuplicates(t *testing.T) {
	r := NewResolver(Source{FS: fstest.MapFS{}, Dir: "skills", Ext: ".md"}, nil, map[string][]string{
		"twice": {"foo", "foo"},
	})

	refs, err := r.Resolve("twice")
	require.NoError(t, err)
	assert.Equal(t, []Ref{{Name: "foo"}, {Name: "foo"}}, refs)
}
