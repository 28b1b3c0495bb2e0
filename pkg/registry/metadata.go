package registry

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
	"gopkg.in/yaml.v3"
)

// Description extracts the human-readable description of an item. YAML
// files are parsed whole; markdown files contribute their frontmatter.
// Malformed metadata degrades to an empty string so a single bad file
// cannot break catalog listings.
func (it Item) Description() string {
	content, err := it.Content()
	if err != nil {
		return ""
	}

	switch it.Ext {
	case ".yaml", ".yml":
		return yamlDescription(content)
	default:
		return frontmatterDescription(content)
	}
}

func yamlDescription(content []byte) string {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return ""
	}
	desc, _ := doc["description"].(string)
	return desc
}

func frontmatterDescription(content []byte) string {
	// Files without a leading frontmatter delimiter simply have no metadata.
	if !bytes.HasPrefix(content, []byte("---")) {
		return ""
	}

	md := goldmark.New(goldmark.WithExtensions(meta.Meta))

	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return ""
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return ""
	}

	desc, _ := metaData["description"].(string)
	return desc
}

// FirstLine truncates a multi-line description for summary display.
func FirstLine(desc string) string {
	if idx := strings.IndexByte(desc, '\n'); idx != -1 {
		return desc[:idx]
	}
	return desc
}
