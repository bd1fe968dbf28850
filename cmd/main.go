package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/UnveiledSafe8/SignalSiege/internal/adapters"
	"github.com/UnveiledSafe8/SignalSiege/internal/bootstrap"
	gameDelivery "github.com/UnveiledSafe8/SignalSiege/internal/delivery/game"
	ownMiddleware "github.com/UnveiledSafe8/SignalSiege/internal/middleware"
	repo "github.com/UnveiledSafe8/SignalSiege/internal/repository"
	gameuc "github.com/UnveiledSafe8/SignalSiege/internal/usecase/game"
	aiRPC "github.com/UnveiledSafe8/SignalSiege/microservices/proto"
)

const remoteAITimeout = 5 * time.Second

type mainDeliveryHandler struct {
	game *gameDelivery.GameHandler
}

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	logger := NewLogger()
	defer func() { _ = logger.Sync() }()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Errorw("Failed to setup configuration", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore := initGameStore(ctx, logger, *cfg)
	defer closeStore()

	chooser, closeChooser := initMoveChooser(logger, *cfg)
	defer closeChooser()

	r := chi.NewRouter()
	handlers := &mainDeliveryHandler{
		game: gameDelivery.NewGameHandler(logger, gameuc.NewGameUseCase(store, chooser, logger)),
	}
	handlers.Router(r, *cfg)

	srv := &http.Server{Addr: ":" + cfg.ServerPort, Handler: r}
	go handleShutdown(cancel, srv, logger)

	logger.Infof("Server is running on port %s", cfg.ServerPort)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalw("Failed to start server", "error", err)
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, cfg bootstrap.Config) {
	if cfg.IsLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.RateLimitPerSecond > 0 {
		r.Use(ownMiddleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst).Handler)
	}

	h.game.Routes(r)
}

// initGameStore connects to Mongo and Redis, or keeps games in memory when
// STORAGE=memory.
func initGameStore(ctx context.Context, log *zap.SugaredLogger, cfg bootstrap.Config) (gameuc.GameStore, func()) {
	if cfg.Storage == "memory" {
		store, err := repo.NewMemoryGameRepository(log)
		if err != nil {
			log.Fatalw("Failed to create memory storage", "error", err)
		}
		log.Warn("Games are kept in memory and will be lost on restart")
		return store, store.Close
	}

	databaseAdapters := initDatabaseAdapters(ctx, log, cfg)
	store, err := repo.NewGameRepository(cfg, log, databaseAdapters.redisAdapter.GetClient(), databaseAdapters.mongoAdapter.Database)
	if err != nil {
		log.Fatalw("Failed to create game repository", "error", err)
	}
	return store, func() {
		store.Close()
		closeCtx := context.WithoutCancel(ctx)
		_ = databaseAdapters.mongoAdapter.Close(closeCtx)
		_ = databaseAdapters.redisAdapter.Close(closeCtx)
	}
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg bootstrap.Config) *dataBaseAdapters {
	mongoAdapter := adapters.NewAdapterMongo(&cfg)
	if err := mongoAdapter.Init(ctx); err != nil {
		log.Fatalw("Failed to initialize MongoDB", "error", err)
	}

	redisAdapter := adapters.NewAdapterRedis(&cfg)
	if err := redisAdapter.Init(ctx); err != nil {
		log.Fatalw("Failed to initialize Redis", "error", err)
	}

	log.Info("Database adapters initialized")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}
}

// initMoveChooser uses the AI service when AI_SERVICE_ADDR is set and the
// in-process AI otherwise.
func initMoveChooser(log *zap.SugaredLogger, cfg bootstrap.Config) (gameuc.MoveChooser, func()) {
	if cfg.AIServiceAddr == "" {
		return gameuc.LocalChooser{}, func() {}
	}
	conn, err := grpc.NewClient(cfg.AIServiceAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalw("Failed to dial AI service", "error", err)
	}
	log.Infof("Using AI service at %s", cfg.AIServiceAddr)
	return gameuc.NewRemoteChooser(aiRPC.NewRouterAIClient(conn), remoteAITimeout), func() { _ = conn.Close() }
}

func handleShutdown(cancelFunc context.CancelFunc, srv *http.Server, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warnw("Server shutdown failed", "error", err)
	}
	cancelFunc()
}
