package usecase

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/UnveiledSafe8/SignalSiege/internal/domain/game"
	aiRPC "github.com/UnveiledSafe8/SignalSiege/microservices/proto"
)

type RouterAIUseCase struct {
	log  *zap.SugaredLogger
	opts []game.Option
	aiRPC.UnimplementedRouterAIServer
}

func NewRouterAIUseCase(log *zap.SugaredLogger, opts ...game.Option) *RouterAIUseCase {
	return &RouterAIUseCase{
		log:  log,
		opts: opts,
	}
}

func (r *RouterAIUseCase) ChooseMove(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	var rec game.Record
	if err := json.Unmarshal(in.GetValue(), &rec); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "decode snapshot: %v", err)
	}
	state, err := game.Restore(rec, r.opts...)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "restore snapshot: %v", err)
	}
	if !state.IsAITurn() {
		return nil, status.Error(codes.FailedPrecondition, "it is not the AI's turn")
	}

	move, err := state.AIMove()
	if err != nil {
		r.log.Errorw("ai move failed", "difficulty", state.Difficulty(), "error", err)
		return nil, status.Errorf(codes.Internal, "choose move: %v", err)
	}
	r.log.Debugw("ai move chosen", "difficulty", state.Difficulty(), "move", move)
	return wrapperspb.String(string(move)), nil
}
