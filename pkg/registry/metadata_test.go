package registry

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemFrom(t *testing.T, ext, content string) Item {
	t.Helper()

	fsys := fstest.MapFS{
		"defs/item" + ext: {Data: []byte(content)},
	}
	catalog := Scan(Source{FS: fsys, Dir: "defs", Ext: ext})
	item, ok := catalog["item"]
	require.True(t, ok)
	return item
}

func TestDescriptionFromYAML(t *testing.T) {
	item := itemFrom(t, ".yaml", "name: code-reviewer\ndescription: Reviews diffs for style issues\n")

	assert.Equal(t, "Reviews diffs for style issues", item.Description())
}

func TestDescriptionFromFrontmatter(t *testing.T) {
	item := itemFrom(t, ".md", "---\nname: jira\ndescription: Look up JIRA tickets\n---\n# Body\n")

	assert.Equal(t, "Look up JIRA tickets", item.Description())
}

func TestDescriptionNoFrontmatter(t *testing.T) {
	item := itemFrom(t, ".md", "# Just a markdown file\n\nNo frontmatter here.\n")

	assert.Equal(t, "", item.Description())
}

func TestDescriptionMalformedYAML(t *testing.T) {
	item := itemFrom(t, ".yaml", "description: [unclosed\n  broken: yes\n")

	assert.Equal(t, "", item.Description())
}

func TestDescriptionMalformedFrontmatter(t *testing.T) {
	item := itemFrom(t, ".md", "---\ndescription: [unclosed\n---\nbody\n")

	assert.Equal(t, "", item.Description())
}

func TestMalformedItemDoesNotBreakListing(t *testing.T) {
	fsys := fstest.MapFS{
		"defs/good.yaml": {Data: []byte("description: fine\n")},
		"defs/bad.yaml":  {Data: []byte(": [broken\n")},
	}

	catalog := Scan(Source{FS: fsys, Dir: "defs", Ext: ".yaml"})

	require.Len(t, catalog, 2)
	assert.Equal(t, "fine", catalog["good"].Description())
	assert.Equal(t, "", catalog["bad"].Description())
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "summary", FirstLine("summary\ndetail line\nmore"))
	assert.Equal(t, "single", FirstLine("single"))
	assert.Equal(t, "", FirstLine(""))
}
