package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/director74/shopag/pkg/messaging"
	"github.com/director74/shopag/wms-service/config"
	rabbitmqController "github.com/director74/shopag/wms-service/internal/controller/rabbitmq"
	"github.com/director74/shopag/wms-service/internal/usecase"
)

// App приложение мок-сервиса WMS
type App struct {
	config              *config.Config
	instructionConsumer *rabbitmqController.InstructionConsumer
	broker              messaging.MessageBroker
}

// NewApp собирает приложение: соединение для публикаций, складской цикл
// и слушатель инструкций
func NewApp(cfg *config.Config) (*App, error) {
	// Отдельное соединение для публикации статусов: слушатель инструкций
	// держит свое и переподключает его самостоятельно
	broker, err := messaging.InitRabbitMQ(cfg.RabbitMQ)
	if err != nil {
		return nil, err
	}

	if err := messaging.SetupQueues(broker, usecase.StatusQueue); err != nil {
		broker.Close()
		return nil, err
	}

	fulfillment := usecase.NewFulfillmentUseCase(broker, nil)
	instructionConsumer := rabbitmqController.NewInstructionConsumer(cfg.RabbitMQ, fulfillment)

	return &App{
		config:              cfg,
		instructionConsumer: instructionConsumer,
		broker:              broker,
	}, nil
}

// Run запускает слушатель инструкций и блокирует до сигнала завершения
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.instructionConsumer.Run(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Получен сигнал завершения, закрываем приложение...")
	cancel()

	if err := a.broker.Close(); err != nil {
		return err
	}

	log.Println("Приложение успешно завершено")
	return nil
}
