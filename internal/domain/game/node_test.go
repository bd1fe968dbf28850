package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	errs "github.com/UnveiledSafe8/SignalSiege/internal/errors"
)

func TestNodeCapture(t *testing.T) {
	t.Run("territory only", func(t *testing.T) {
		n := &Node{ID: "0.0"}
		require.NoError(t, n.Capture(Black, false))
		require.Equal(t, Black, n.Controlled)
		require.False(t, n.HasRouter())
	})

	t.Run("with router", func(t *testing.T) {
		n := &Node{ID: "0.0"}
		require.NoError(t, n.Capture(White, true))
		require.Equal(t, White, n.Controlled)
		require.Equal(t, White, n.RouterOwner)
		require.True(t, n.HasRouter())
	})

	t.Run("already controlled", func(t *testing.T) {
		n := &Node{ID: "0.0", Controlled: Black}
		err := n.Capture(White, true)
		require.ErrorIs(t, err, errs.ErrAlreadyControlled)
		require.Equal(t, Black, n.Controlled)
		require.False(t, n.HasRouter())
	})
}

func TestNodeUncaptureAndDestroy(t *testing.T) {
	n := &Node{ID: "1.1", RouterOwner: Black, Controlled: Black}
	require.NoError(t, n.Destroy())
	require.Equal(t, NoColor, n.Controlled)
	require.Equal(t, NoColor, n.RouterOwner)
	require.ErrorIs(t, n.Destroy(), errs.ErrNotControlled)

	n = &Node{ID: "1.1", Controlled: White}
	require.NoError(t, n.Uncapture())
	require.Equal(t, NoColor, n.Controlled)
	require.ErrorIs(t, n.Uncapture(), errs.ErrNotControlled)
}

func TestNodeIDCoords(t *testing.T) {
	row, col, err := NewNodeID(12, 3).Coords()
	require.NoError(t, err)
	require.Equal(t, 12, row)
	require.Equal(t, 3, col)

	for _, bad := range []NodeID{"", "12", "a.1", "1.b", Pass} {
		_, _, err := bad.Coords()
		require.Error(t, err, "id %q", bad)
	}
}

func TestGraphCloneIsIndependent(t *testing.T) {
	g := GenerateMap(3, 3, true)
	cp := g.Clone()
	require.NoError(t, cp["1.1"].Capture(Black, true))
	require.False(t, g["1.1"].HasRouter())
	require.Equal(t, g["1.1"].Neighbors, cp["1.1"].Neighbors)
}
