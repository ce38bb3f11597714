package app

import (
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"github.com/director74/shopag/inventory-service/config"
	grpccontroller "github.com/director74/shopag/inventory-service/internal/controller/grpc"
	"github.com/director74/shopag/inventory-service/internal/usecase"
	"github.com/director74/shopag/pkg/inventorypb"
)

// App приложение мок-сервиса инвентаря
type App struct {
	config     *config.Config
	grpcServer *grpc.Server
}

// NewApp собирает приложение: use case, gRPC контроллер и сервер
func NewApp(cfg *config.Config) (*App, error) {
	inventoryUseCase := usecase.NewInventoryUseCase(nil)
	inventoryServer := grpccontroller.NewInventoryServer(inventoryUseCase)

	grpcServer := grpc.NewServer()
	inventorypb.RegisterInventoryServiceServer(grpcServer, inventoryServer)

	return &App{
		config:     cfg,
		grpcServer: grpcServer,
	}, nil
}

// Run запускает gRPC сервер и блокирует до сигнала завершения
func (a *App) Run() error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", a.config.GRPCPort))
	if err != nil {
		return fmt.Errorf("не удалось открыть порт %s: %w", a.config.GRPCPort, err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Mock Inventory Service (gRPC) запускается на порту %s...", a.config.GRPCPort)
		errCh <- a.grpcServer.Serve(listener)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Printf("Получен сигнал: %v, останавливаем gRPC сервер...", sig)
		a.grpcServer.GracefulStop()
		return nil
	}
}
