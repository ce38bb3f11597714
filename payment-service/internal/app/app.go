package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/director74/shopag/payment-service/config"
	httpController "github.com/director74/shopag/payment-service/internal/controller/http"
	"github.com/director74/shopag/payment-service/internal/usecase"
	"github.com/director74/shopag/pkg/errors"
)

// App приложение мок-сервиса платежей
type App struct {
	config     *config.Config
	httpServer *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	paymentUseCase := usecase.NewPaymentUseCase(nil)
	paymentHandler := httpController.NewPaymentHandler(paymentUseCase)

	router := gin.Default()
	router.Use(errors.RecoveryMiddleware())
	router.Use(errors.ErrorMiddleware())
	router.NoRoute(errors.NotFoundHandler())
	router.NoMethod(errors.MethodNotAllowedHandler())

	paymentHandler.RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: router,
		// WriteTimeout не ставим: сценарий tok_timeout_ должен висеть дольше
		// клиентского таймаута чтения
		ReadTimeout: cfg.HTTP.ReadTimeout,
	}

	return &App{
		config:     cfg,
		httpServer: httpServer,
	}, nil
}

// Run запускает HTTP сервер и блокирует до сигнала завершения
func (a *App) Run() error {
	go func() {
		log.Printf("Mock Payment Service (REST) запущен на порту %s", a.config.HTTP.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Ошибка запуска HTTP сервера: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Получен сигнал завершения, закрываем приложение...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		return errors.AppendPrefix(err, "ошибка при закрытии HTTP сервера")
	}

	log.Println("Приложение успешно завершено")
	return nil
}
