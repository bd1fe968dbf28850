package main

import (
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/UnveiledSafe8/SignalSiege/internal/bootstrap"
	aiRPC "github.com/UnveiledSafe8/SignalSiege/microservices/proto"
	"github.com/UnveiledSafe8/SignalSiege/microservices/usecase"
)

func main() {
	logger := NewLogger()
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Errorw("Failed to setup configuration", "error", err)
		return
	}

	lis, err := net.Listen("tcp", ":"+cfg.AIServicePort)
	if err != nil {
		logger.Fatalw("cant listen port", "error", err)
	}

	server := grpc.NewServer()
	aiRPC.RegisterRouterAIServer(server, usecase.NewRouterAIUseCase(logger))
	logger.Infof("starting AI server at :%s", cfg.AIServicePort)
	if err := server.Serve(lis); err != nil {
		logger.Fatalw("AI server stopped", "error", err)
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	return logger.Sugar()
}
