// Command play runs a game in the terminal against the AI or another person
// at the same keyboard.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"github.com/UnveiledSafe8/SignalSiege/internal/domain/game"
)

func main() {
	difficulty := pflag.StringP("difficulty", "d", string(game.Easy), "easy, medium, hard, very_hard, insane, self or random")
	height := pflag.IntP("height", "H", 9, "board height")
	width := pflag.IntP("width", "W", 9, "board width")
	full := pflag.Bool("full", true, "connect every cell to its orthogonal neighbours")
	seed := pflag.Uint64("seed", 0, "random seed, 0 picks one from the clock")
	pflag.Parse()

	zl, err := zap.NewDevelopment()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	logger := zl.Sugar()
	defer func() { _ = logger.Sync() }()

	d, err := game.ParseDifficulty(*difficulty)
	if err != nil {
		logger.Fatal(err)
	}
	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	g, err := game.CreateGame(d, *height, *width, *full, game.WithRand(rand.New(rand.NewSource(*seed))))
	if err != nil {
		logger.Fatal(err)
	}

	if err := run(g, os.Stdin, os.Stdout); err != nil {
		logger.Fatal(err)
	}
}

func run(g *game.GameState, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "difficulty %s, komi %v to %s\n", g.Difficulty(), g.Komi(), g.Order()[1])
	scanner := bufio.NewScanner(in)
	for !game.IsGameOver(g) {
		if g.IsAITurn() {
			color := g.CurrentPlayer().Color
			move, err := g.AIMove()
			if err != nil {
				return err
			}
			if _, err := game.MakePlayerMove(g, move); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s plays %s\n", color, move)
			continue
		}

		fmt.Fprintf(out, "\n%s\n\n%s to move (row.col or pass): ", g, g.CurrentPlayer().Color)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ok, err := game.MakePlayerMove(g, game.ParseMove(line))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(out, "%q is not a legal move\n", line)
		}
	}

	res := g.Result()
	fmt.Fprintf(out, "\n%s\n\ngame over: ", g)
	if res.Winner == game.NoColor {
		fmt.Fprintln(out, "draw")
	} else {
		fmt.Fprintf(out, "%s wins\n", res.Winner)
	}
	return nil
}
