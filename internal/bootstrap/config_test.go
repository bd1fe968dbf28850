package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "SERVER_PORT=9090\nREDIS_URL=redis:6379\nLOCAL_CORS=true\nLOCK_TTL_SECONDS=3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("AI_SERVICE_ADDR", "ai:8082")

	cfg, err := Setup(path)
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.ServerPort)
	require.Equal(t, "redis:6379", cfg.RedisUrl)
	require.True(t, cfg.IsLocalCors)
	require.Equal(t, 3*time.Second, cfg.LockTTL())
	require.Equal(t, "ai:8082", cfg.AIServiceAddr)
	require.Equal(t, "signal_siege", cfg.MongoDatabase)
	require.Equal(t, 24*time.Hour, cfg.SnapshotTTL())
	require.Equal(t, "mongo", cfg.Storage)
	require.Equal(t, 10, cfg.RateLimitBurst)
}

func TestSetupMissingFile(t *testing.T) {
	_, err := Setup(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}
