package app

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/director74/shopag/integration-service/config"
	httpController "github.com/director74/shopag/integration-service/internal/controller/http"
	rabbitmqController "github.com/director74/shopag/integration-service/internal/controller/rabbitmq"
	"github.com/director74/shopag/integration-service/internal/usecase"
	"github.com/director74/shopag/integration-service/internal/usecase/grpcapi"
	"github.com/director74/shopag/integration-service/internal/usecase/webapi"
	"github.com/director74/shopag/integration-service/internal/usecase/wmsapi"
	"github.com/director74/shopag/pkg/errors"
)

// App представляет приложение
type App struct {
	config         *config.Config
	httpServer     *http.Server
	statusConsumer *rabbitmqController.StatusConsumer
	logFile        *os.File
}

func NewApp(cfg *config.Config) (*App, error) {
	var logFile *os.File

	// Человекочитаемый лог дублируется в файл (append-only); файл не является
	// авторитетным хранилищем состояния
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("ВНИМАНИЕ: не удалось открыть лог-файл %s: %v. Пишем только в stdout.", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
			logFile = f
		}
	}

	// Фабрики адаптеров: каждый прогон саги получает свои экземпляры
	// и освобождает их на выходе
	newInventory := func() (usecase.InventoryGateway, error) {
		return grpcapi.NewInventoryClient(cfg.Services.InventoryURL)
	}
	newPayment := func() usecase.PaymentGateway {
		return webapi.NewPaymentClient(cfg.Services.PaymentURL)
	}
	newShipment := func() (usecase.ShipmentGateway, error) {
		return wmsapi.NewWMSClient(cfg.RabbitMQ)
	}

	saga := usecase.NewSagaOrchestrator(newInventory, newPayment, newShipment, nil)
	orderUseCase := usecase.NewOrderUseCase(saga, nil)

	orderHandler := httpController.NewOrderHandler(orderUseCase)
	statusConsumer := rabbitmqController.NewStatusConsumer(cfg.RabbitMQ)

	// Инициализируем Gin роутер
	router := gin.Default()

	// Добавляем middleware для обработки ошибок и восстановления после паники
	router.Use(errors.RecoveryMiddleware())
	router.Use(errors.ErrorMiddleware())

	// Настраиваем обработчики для 404 и 405 ошибок
	router.NoRoute(errors.NotFoundHandler())
	router.NoMethod(errors.MethodNotAllowedHandler())

	orderHandler.RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	return &App{
		config:         cfg,
		httpServer:     httpServer,
		statusConsumer: statusConsumer,
		logFile:        logFile,
	}, nil
}

// Run запускает приложение
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Println("Интеграционный сервис стартует...")

	// Слушатель статусов WMS: независимая фоновая задача на все время
	// жизни процесса
	go a.statusConsumer.Run(ctx)

	// Запускаем HTTP сервер в горутине
	go func() {
		log.Printf("HTTP сервер запущен на порту %s", a.config.HTTP.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Ошибка запуска HTTP сервера: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Получен сигнал завершения, закрываем приложение...")
	cancel()

	return a.Shutdown()
}

// Shutdown корректно завершает работу приложения.
// Саги в полете не дожидаются: при остановке процесса они теряются.
func (a *App) Shutdown() error {
	errGroup := errors.NewErrorGroup()

	if a.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := a.httpServer.Shutdown(ctx); err != nil {
			errGroup.AddPrefix(err, "ошибка при закрытии HTTP сервера")
		}
	}

	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			errGroup.AddPrefix(err, "ошибка при закрытии лог-файла")
		}
	}

	if errGroup.HasErrors() {
		errors.LogError(errGroup, "Shutdown")
		return errGroup
	}

	log.Println("Приложение успешно завершено")
	return nil
}
