package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedisum/summarybot/internal/config"
	"github.com/spf13/viper"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blocklist.txt"), []byte("spamcorp.example\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "template.txt"),
		[]byte("**%s** (%s)\n\n%d%% | %s\n\n%s"), 0o644))

	t.Setenv("INSTANCE_URL", "lemmy.example")
	t.Setenv("BOT_USERNAME", "bot")
	t.Setenv("BOT_PASSWORD", "secret")
	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)
	cfg.Store.File.Path = filepath.Join(dir, "processed_posts.txt")
	cfg.Blocklist.Path = filepath.Join(dir, "blocklist.txt")
	cfg.Template.Path = filepath.Join(dir, "template.txt")
	cfg.Logging.File.Path = "" // console only in tests
	cfg.Ops.Enabled = false
	return cfg
}

func TestNewWiresFileBackedServices(t *testing.T) {
	cfg := testConfig(t)

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Logger())
	assert.NotNil(t, a.runner)
	assert.FileExists(t, cfg.Store.File.Path, "processed-post log is created eagerly")
}

func TestNewRejectsMissingBlocklist(t *testing.T) {
	cfg := testConfig(t)
	cfg.Blocklist.Path = filepath.Join(t.TempDir(), "absent.txt")

	_, err := New(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocklist")
}

func TestNewRejectsUnknownStoreProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Provider = "redis"

	_, err := New(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store provider")
}
