package presenter

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newTestPresenter() (*TerminalPresenter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewWithOptions(&out, &errOut, ColorNever), &out, &errOut
}

func TestSuccess(t *testing.T) {
	p, out, _ := newTestPresenter()

	p.Success("installed 'code-reviewer'")

	assert.Contains(t, out.String(), "✓ installed 'code-reviewer'")
}

func TestWarning(t *testing.T) {
	p, out, _ := newTestPresenter()

	p.Warning("'claude-hooks' already installed")

	assert.Contains(t, out.String(), "⚠ 'claude-hooks' already installed")
}

func TestErrorWithContext(t *testing.T) {
	p, _, errOut := newTestPresenter()

	p.Error(errors.New("boom"), "failed to install agent")

	assert.Contains(t, errOut.String(), "[ERROR] failed to install agent: boom")
}

func TestErrorNil(t *testing.T) {
	p, _, errOut := newTestPresenter()

	p.Error(nil, "should not print")

	assert.Empty(t, errOut.String())
}

func TestSection(t *testing.T) {
	p, out, _ := newTestPresenter()

	p.Section("Bundled Skills")

	assert.Contains(t, out.String(), "Bundled Skills\n--------------\n")
}

func TestQuietSuppressesOutput(t *testing.T) {
	p, out, errOut := newTestPresenter()
	p.SetQuiet(true)

	p.Success("hidden")
	p.Warning("hidden")
	p.Info("hidden")
	p.Section("hidden")
	p.Separator()

	assert.Empty(t, out.String())

	// Errors are never suppressed
	p.Error(errors.New("boom"), "")
	assert.Contains(t, errOut.String(), "boom")
}
