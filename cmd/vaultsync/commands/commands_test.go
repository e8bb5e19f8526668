package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/vaultsync/internal/config"
	verrors "git.home.luguber.info/inful/vaultsync/internal/errors"
)

func writeNote(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Source.Path = filepath.Join(root, "vault")
	cfg.Destination.Path = filepath.Join(root, "site", "content", "posts")
	cfg.Ledger.Path = filepath.Join(root, "state", "ledger.db")
	return cfg
}

func TestRunSync_PublishesSharedNotesWithSinks(t *testing.T) {
	cfg := testConfig(t)
	cfg.Ledger.Enabled = true
	cfg.Metrics.Textfile = filepath.Join(t.TempDir(), "vaultsync.prom")

	writeNote(t, cfg.Source.Path, "blog/hello.md", "---\nshare: true\ntitle: Hello\n---\nBody\n")
	writeNote(t, cfg.Source.Path, "journal/private.md", "---\nshare: false\n---\nSecret\n")

	var out bytes.Buffer
	stats, err := RunSync(context.Background(), cfg, false, &out)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Synced)
	assert.Equal(t, 1, stats.Skipped)
	assert.FileExists(t, filepath.Join(cfg.Destination.Path, "hello.md"))
	assert.NoFileExists(t, filepath.Join(cfg.Destination.Path, "private.md"))
	assert.Contains(t, out.String(), "synced: hello.md")
	assert.FileExists(t, cfg.Metrics.Textfile)

	var history bytes.Buffer
	require.NoError(t, RunHistory(context.Background(), cfg, 5, "", &history))
	assert.Contains(t, history.String(), stats.RunID)

	var docs bytes.Buffer
	require.NoError(t, RunHistory(context.Background(), cfg, 5, stats.RunID, &docs))
	assert.Contains(t, docs.String(), "blog/hello.md")
	assert.Contains(t, docs.String(), "journal/private.md")
}

func TestRunSync_MissingVault(t *testing.T) {
	cfg := testConfig(t)

	_, err := RunSync(context.Background(), cfg, false, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, verrors.IsCategory(err, verrors.CategorySource))
	assert.Equal(t, 3, verrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestPullVault_WithoutGitConfig(t *testing.T) {
	cfg := testConfig(t)

	require.NoError(t, PullVault(context.Background(), cfg, false))

	err := PullVault(context.Background(), cfg, true)
	require.Error(t, err)
	assert.True(t, verrors.IsCategory(err, verrors.CategoryConfig))
}

func TestPullVault_SkipsWhenPullDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Source.Git = &config.GitConfig{URL: filepath.Join(t.TempDir(), "missing.git")}

	require.NoError(t, PullVault(context.Background(), cfg, false))

	err := PullVault(context.Background(), cfg, true)
	require.Error(t, err)
	assert.True(t, verrors.IsCategory(err, verrors.CategoryGit))
}

func TestNewSyncer_UnreachableNATSDisablesNotifications(t *testing.T) {
	cfg := testConfig(t)
	cfg.Notify.NATSURL = "nats://127.0.0.1:1"
	writeNote(t, cfg.Source.Path, "a.md", "+++\nshare = true\n+++\n")

	syncer, closeSinks, err := NewSyncer(cfg, &bytes.Buffer{})
	require.NoError(t, err)
	defer closeSinks()

	stats, err := syncer.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Synced)
}

func TestNewSyncer_LedgerOpenFailure(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	cfg.Ledger.Enabled = true
	cfg.Ledger.Path = filepath.Join(blocker, "ledger.db")

	_, closeSinks, err := NewSyncer(cfg, &bytes.Buffer{})
	closeSinks()
	require.Error(t, err)
	assert.True(t, verrors.IsCategory(err, verrors.CategoryLedger))
}

func TestRunHistory_MissingLedger(t *testing.T) {
	cfg := testConfig(t)

	err := RunHistory(context.Background(), cfg, 10, "", &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, verrors.IsCategory(err, verrors.CategoryLedger))
	assert.NoFileExists(t, cfg.Ledger.Path)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LoggingConfig{Level: "warn", Format: "json"}, false)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "shown", rec["msg"])

	buf.Reset()
	logger = newLogger(&buf, config.LoggingConfig{Level: "error", Format: "text"}, true)
	logger.Debug("debug line")
	assert.Contains(t, buf.String(), "msg=\"debug line\"")
}

func TestRunInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vaultsync.yaml")

	require.NoError(t, RunInit(path, false))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Ledger.Enabled)

	require.Error(t, RunInit(path, false))
	require.NoError(t, RunInit(path, true))
}

func TestCLI_DefaultsToSync(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"--source", "notes", "--pull"})
	require.NoError(t, err)
	assert.Equal(t, "sync", ctx.Command())
	assert.True(t, cli.Sync.Pull)
	assert.True(t, filepath.IsAbs(cli.Sync.Source))

	ctx, err = parser.Parse([]string{"history", "-n", "3"})
	require.NoError(t, err)
	assert.Equal(t, "history", ctx.Command())
	assert.Equal(t, 3, cli.History.Limit)
}
