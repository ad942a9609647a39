package config

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestResetConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[cli]\ndefault_limit = 12\n"), 0o644))

	require.NoError(t, ResetConfig(path))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[prediction]
auto_space = false
multi_tap_timeout_ms = 400
sentence_separators = ".!?"

[dict]
user_dict_path = "user.db"
min_learn_count = 5
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.Prediction.AutoSpace)
	assert.True(t, cfg.Prediction.AutoComplete, "untouched keys keep defaults")
	assert.Equal(t, 400, cfg.Prediction.MultiTapTimeoutMs)
	assert.Equal(t, ".!?", cfg.Prediction.SentenceSeparators)
	assert.Equal(t, "user.db", cfg.Dict.UserDictPath)
	assert.Equal(t, 5, cfg.Dict.MinLearnCount)
	assert.Equal(t, DefaultConfig().Server, cfg.Server)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	// show_suggestions has the wrong type, so a strict decode fails
	data := `
[prediction]
show_suggestions = "yes"
double_space_to_period = false

[cli]
default_limit = 9
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Prediction.ShowSuggestions)
	assert.False(t, cfg.Prediction.DoubleSpaceToPeriod)
	assert.Equal(t, 9, cfg.CLI.DefaultLimit)
}

func TestLoadConfigGarbageFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[[not toml"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, SaveConfig(DefaultConfig(), path))

	w, err := NewWatcher(path)
	require.NoError(t, err)

	var reloaded atomic.Int32
	w.OnChange(func(c *Config) {
		if !c.Prediction.AutoSpace {
			reloaded.Add(1)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	cfg := DefaultConfig()
	cfg.Prediction.AutoSpace = false
	require.Eventually(t, func() bool {
		// rewrite until the watcher has been registered and picks it up
		_ = SaveConfig(cfg, path)
		return reloaded.Load() > 0
	}, 5*time.Second, 200*time.Millisecond)

	assert.False(t, w.Config().Prediction.AutoSpace)
}
