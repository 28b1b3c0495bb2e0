package p4

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunnerMissingBinary(t *testing.T) {
	// An empty PATH guarantees p4 cannot be found regardless of the
	// host environment.
	t.Setenv("PATH", t.TempDir())

	runner := &Runner{}
	_, err := runner.Run(context.Background(), "info")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestEnvConfigPrefersEnvironment(t *testing.T) {
	t.Setenv("P4PORT", "perforce:1666")
	t.Setenv("P4USER", "jdoe")
	t.Setenv("P4CLIENT", "")
	t.Setenv("P4CONFIG", "")

	config := EnvConfig(context.Background())
	assert.Equal(t, "perforce:1666", config["P4PORT"])
	assert.Equal(t, "jdoe", config["P4USER"])
	assert.NotContains(t, config, "P4CLIENT")
}
