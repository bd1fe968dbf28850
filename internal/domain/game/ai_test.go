package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	errs "github.com/UnveiledSafe8/SignalSiege/internal/errors"
)

func TestNewAIRejectsUnknownDifficulty(t *testing.T) {
	_, err := NewAI(NewPlayer(White), Self)
	require.ErrorIs(t, err, errs.ErrUnknownDifficulty)
	_, err = NewAI(NewPlayer(White), Difficulty("nightmare"))
	require.ErrorIs(t, err, errs.ErrUnknownDifficulty)
}

func TestAIMoveRequiresAITurn(t *testing.T) {
	g := newTestGame(t, Easy, 5, 5)
	_, err := g.AIMove()
	require.ErrorIs(t, err, errs.ErrNotAITurn)

	ok, err := MakeAIMove(g)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 0, g.TotalTurns())
}

func TestEasyAIPlaysLegalMove(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		g, err := CreateGame(Easy, 5, 5, true, WithColorOrder(Black, White), WithRand(rand.New(rand.NewSource(seed))))
		require.NoError(t, err)
		play(t, g, "2.2")

		legal := g.LegalMoves()
		before := g.Snapshot()
		move, err := g.AIMove()
		require.NoError(t, err)
		require.Equal(t, before, g.Snapshot(), "choosing a move must not mutate the game")
		require.Contains(t, legal, move)

		ok, err := MakeAIMove(g)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, Black, g.CurrentPlayer().Color)
		requireScoresConsistent(t, g)
	}
}

func TestEasyAIChooseMoveDoesNotMutateInput(t *testing.T) {
	g := newTestGame(t, Easy, 4, 4)
	play(t, g, "0.0")
	before := g.Snapshot()
	move, err := g.ais[White].ChooseMove(g)
	require.NoError(t, err)
	require.NotEqual(t, Pass, move)
	require.Equal(t, before, g.Snapshot())
}

func TestAIPassesWhenAheadAfterOpponentPass(t *testing.T) {
	g := newTestGame(t, Easy, 5, 5)
	require.Equal(t, 0.5, g.Player(White).Score)

	play(t, g, "pass")
	move, err := g.AIMove()
	require.NoError(t, err)
	require.Equal(t, Pass, move)

	ok, err := MakeAIMove(g)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, IsGameOver(g))
}

func TestHigherTiersAlwaysPass(t *testing.T) {
	for _, d := range []Difficulty{Medium, Hard, VeryHard, Insane} {
		g := newTestGame(t, d, 6, 6)
		play(t, g, "3.3")
		move, err := g.AIMove()
		require.NoError(t, err, d)
		require.Equal(t, Pass, move, d)
	}
}

func TestEasyAIPassesWithoutLegalMoves(t *testing.T) {
	g := newTestGame(t, Easy, 3, 3)
	rec := g.Snapshot()
	for id, n := range rec.Graph {
		n.RouterOwner, n.Controlled = Black, Black
		rec.Graph[id] = n
	}
	rec.Players[Black] = PlayerRecord{Color: Black, Score: 9, Opponent: White}
	rec.Turns[totalTurnsKey] = 1
	rec.Turns[string(Black)] = 1

	full, err := Restore(rec, WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	require.True(t, full.IsAITurn())
	require.Empty(t, full.LegalMoves())

	move, err := full.AIMove()
	require.NoError(t, err)
	require.Equal(t, Pass, move)
}

func TestEasyRankPrefersCaptures(t *testing.T) {
	g := newTestGame(t, Easy, 5, 5)
	// white at 0.0 with black about to close the corner
	play(t, g, "2.2", "0.0", "0.1", "4.4")
	require.Equal(t, Black, g.CurrentPlayer().Color)
	// 1.0 captures the white corner router
	ai := &AI{Player: g.Player(Black), Difficulty: Easy, choose: easyMove}

	capture, ok, err := rankMove(ai, g, "1.0")
	require.NoError(t, err)
	require.True(t, ok)
	quiet, ok, err := rankMove(ai, g, "2.0")
	require.NoError(t, err)
	require.True(t, ok)
	require.Greater(t, capture, quiet)
}
