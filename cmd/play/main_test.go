package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/UnveiledSafe8/SignalSiege/internal/domain/game"
)

func TestRunUntilBothPass(t *testing.T) {
	g, err := game.CreateGame(game.Self, 3, 3, true,
		game.WithColorOrder(game.Black, game.White), game.WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run(g, strings.NewReader("1.1\n1.1\npass\npass\n"), &out))

	require.True(t, game.IsGameOver(g))
	require.Contains(t, out.String(), `"1.1" is not a legal move`)
	require.Contains(t, out.String(), "Black wins")
}

func TestRunAgainstPassingAI(t *testing.T) {
	g, err := game.CreateGame(game.Hard, 3, 3, true,
		game.WithColorOrder(game.Black, game.White), game.WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run(g, strings.NewReader("pass\n"), &out))
	require.Contains(t, out.String(), "White plays pass")
	require.Contains(t, out.String(), "game over")
}

func TestRunStopsOnClosedInput(t *testing.T) {
	g, err := game.CreateGame(game.Self, 3, 3, true)
	require.NoError(t, err)
	require.NoError(t, run(g, strings.NewReader(""), &bytes.Buffer{}))
	require.False(t, game.IsGameOver(g))
}
