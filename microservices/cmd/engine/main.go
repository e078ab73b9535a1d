package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"go_engine/internal/adapters"
	"go_engine/internal/bootstrap"
	repo "go_engine/internal/repository"
	gameuc "go_engine/internal/usecase/game"
	enginerpc "go_engine/microservices/proto"
	"go_engine/microservices/usecase"
)

func main() {
	logger := NewLogger()
	defer func() { _ = logger.Sync() }()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Errorw("failed to set up configuration", "error", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoAdapter := adapters.NewAdapterMongo(cfg, logger)
	if err := mongoAdapter.Init(ctx); err != nil {
		logger.Fatalw("failed to initialize MongoDB", "error", err)
	}
	defer mongoAdapter.Close(context.Background())

	redisAdapter := adapters.NewAdapterRedis(cfg, logger)
	if err := redisAdapter.Init(ctx); err != nil {
		logger.Fatalw("failed to initialize Redis", "error", err)
	}
	defer redisAdapter.Close(context.Background())

	store := repo.NewGameRepository(*cfg, logger, redisAdapter.GetClient(), mongoAdapter.Database)
	games := gameuc.NewGameUseCase(store, logger, gameuc.Defaults{
		BoardSize:    cfg.DefaultBoardSize,
		Komi:         cfg.DefaultKomi,
		MaxBoardSize: cfg.MaxBoardSize,
	})

	lis, err := net.Listen("tcp", ":"+cfg.RpcPort)
	if err != nil {
		logger.Fatalw("cannot listen", "port", cfg.RpcPort, "error", err)
	}

	server := grpc.NewServer(grpc.ChainUnaryInterceptor(enginerpc.RecoverUnary(logger)))
	enginerpc.RegisterGameServiceServer(server, usecase.NewEngineServer(games, logger))

	go func() {
		<-ctx.Done()
		logger.Info("received shutdown signal")
		server.GracefulStop()
	}()

	logger.Infow("gRPC server is running", "port", cfg.RpcPort)
	if err := server.Serve(lis); err != nil {
		logger.Errorw("gRPC server stopped", "error", err)
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}
