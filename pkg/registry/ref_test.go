package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		display string
		want    Ref
	}{
		{"claude-hooks", Ref{Name: "claude-hooks"}},
		{"epic/jira", Ref{Namespace: "epic", Name: "jira"}},
		{"commands/create-jira", Ref{Namespace: "commands", Name: "create-jira"}},
		{"a/b/c", Ref{Namespace: "a", Name: "b/c"}},
		{"", Ref{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRef(tt.display), "display %q", tt.display)
	}
}

func TestRefDisplay(t *testing.T) {
	assert.Equal(t, "jira", Ref{Name: "jira"}.Display())
	assert.Equal(t, "epic/jira", Ref{Namespace: "epic", Name: "jira"}.Display())
}

func TestRefRoundTrip(t *testing.T) {
	for _, display := range []string{"foo", "epic/foo", "commands/bar-baz"} {
		assert.Equal(t, display, ParseRef(display).Display())
	}
}

func TestRefIsNamespaced(t *testing.T) {
	assert.False(t, Ref{Name: "foo"}.IsNamespaced())
	assert.True(t, Ref{Namespace: "epic", Name: "foo"}.IsNamespaced())
}
