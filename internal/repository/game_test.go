package repo

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/UnveiledSafe8/SignalSiege/internal/bootstrap"
	"github.com/UnveiledSafe8/SignalSiege/internal/domain/game"
)

func TestDecodeCached(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	r, err := NewGameRepository(bootstrap.Config{}, zap.New(core).Sugar(), nil, nil)
	require.NoError(t, err)
	defer r.Close()

	data, err := r.codec.Encode(cachedGame{Game: game.Game{GameKey: "k"}, Snapshot: game.Record{Height: 3}})
	require.NoError(t, err)
	doc, ok := r.decodeCached("k", data)
	require.True(t, ok)
	require.Equal(t, "k", doc.GameKey)
	require.Equal(t, 3, doc.Snapshot.Height)
	require.Zero(t, logs.Len())

	_, ok = r.decodeCached("k", []byte("not zstd"))
	require.False(t, ok)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, "dropping unreadable cached game", entry.Message)
	logged, found := entry.ContextMap()["error"]
	require.True(t, found)
	require.Contains(t, fmt.Sprint(logged), "decompress snapshot")
}
