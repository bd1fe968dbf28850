package game

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/UnveiledSafe8/SignalSiege/internal/domain/game"
	aiRPC "github.com/UnveiledSafe8/SignalSiege/microservices/proto"
)

// MoveChooser picks the AI move for a game whose turn belongs to the AI.
type MoveChooser interface {
	ChooseMove(ctx context.Context, state *game.GameState) (game.NodeID, error)
}

// LocalChooser runs the AI in process.
type LocalChooser struct{}

func (LocalChooser) ChooseMove(_ context.Context, state *game.GameState) (game.NodeID, error) {
	return state.AIMove()
}

// RemoteChooser asks the AI service over gRPC.
type RemoteChooser struct {
	client  aiRPC.RouterAIClient
	timeout time.Duration
}

func NewRemoteChooser(client aiRPC.RouterAIClient, timeout time.Duration) *RemoteChooser {
	return &RemoteChooser{client: client, timeout: timeout}
}

func (r *RemoteChooser) ChooseMove(ctx context.Context, state *game.GameState) (game.NodeID, error) {
	snapshot, err := json.Marshal(state.Snapshot())
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	resp, err := r.client.ChooseMove(ctx, wrapperspb.Bytes(snapshot))
	if err != nil {
		return "", fmt.Errorf("remote ai: %w", err)
	}
	return game.ParseMove(resp.GetValue()), nil
}
