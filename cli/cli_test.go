package cli

import (
	"bytes"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"gyangroup/config"
	"gyangroup/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "gyangroup dev (built unknown)\n", out.String())
}

func TestMigrateCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "data", "site.db")
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("database:\n  url: sqlite://"+dbPath+"\nlog:\n  level: error\n"), 0o644))

	root := newRootCmd()
	root.SetArgs([]string{"migrate", "--config", cfgPath})
	require.NoError(t, root.Execute())

	_, err := os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestMigrateCommand_BadConfig(t *testing.T) {
	t.Setenv("GYAN_DATABASE_URL", "mysql://nope")

	root := newRootCmd()
	root.SetArgs([]string{"migrate"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration error")
}

func TestNewServer(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	conn, err := db.Open("sqlite://:memory:", logger)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	t.Cleanup(func() { db.Close(conn) })

	uploadDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(uploadDir, "logo.txt"), []byte("logo"), 0o644))

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 3000, BodyLimitMB: 1, CORSOrigins: []string{"https://gyangroup.example"}},
		Upload: config.UploadConfig{Dir: uploadDir, PublicURL: "/uploads"},
		Cache:  config.CacheConfig{Enabled: true},
	}
	srv, err := NewServer(cfg, conn, logger)
	require.NoError(t, err)
	require.NotNil(t, srv.Hub)

	resp, err := srv.App.Test(httptest.NewRequest("GET", "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	req := httptest.NewRequest("GET", "/api/categories", nil)
	req.Header.Set("Origin", "https://gyangroup.example")
	resp, err = srv.App.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "https://gyangroup.example", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, err = srv.App.Test(httptest.NewRequest("GET", "/uploads/logo.txt", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "logo", string(body))
}
