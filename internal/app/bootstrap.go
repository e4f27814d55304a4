package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Gunvolt24/wb_records/config"
	cachemem "github.com/Gunvolt24/wb_records/internal/cache/memory"
	"github.com/Gunvolt24/wb_records/internal/kafka"
	"github.com/Gunvolt24/wb_records/internal/ports"
	"github.com/Gunvolt24/wb_records/internal/repo/session"
	rest "github.com/Gunvolt24/wb_records/internal/transport/http"
	"github.com/Gunvolt24/wb_records/internal/usecase"
	"github.com/Gunvolt24/wb_records/pkg/logger"
	"github.com/Gunvolt24/wb_records/pkg/metrics"
	"github.com/Gunvolt24/wb_records/pkg/telemetry"
)

// App — собранное приложение и его внешние интерфейсы (HTTP, consumer).
type App struct {
	Logger          ports.Logger          // логгер
	HTTPServer      *http.Server          // HTTP-сервер
	MetricsServer   *http.Server          // отдельный /metrics (может быть nil)
	KafkaConsumer   ports.MessageConsumer // консьюмер сообщений
	gracefulTimeout time.Duration         // время ожидания завершения HTTP-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// provenanceURI — источник сообщений для атрибута provenance.uri.
func provenanceURI(k config.Kafka) string {
	broker := ""
	if len(k.Brokers) > 0 {
		broker = strings.TrimSpace(k.Brokers[0])
	}
	return "kafka://" + broker + "/" + k.Topic
}

// metricsServer — отдельный listener для /metrics, если адрес задан и отличается от HTTP.
func metricsServer(cfg *config.Config) *http.Server {
	if cfg.Metrics.Addr == "" || cfg.Metrics.Addr == cfg.HTTP.Addr {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:              cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}
	closeLogger := func() {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, telemetry.TracingConfig{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
			Attributes: map[string]string{
				"messaging.destination": cfg.Kafka.Topic,
				"records.writer_format": cfg.Consumer.WriterFormat,
			},
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Хранилище выходных юнитов.
	stores, err := NewStores(ctx, cfg, logg)
	if err != nil {
		_ = shutdownTrace(context.Background())
		closeLogger()
		return nil, func() {}, err
	}

	// Клиент брокера и пайплайн.
	kafkaCfg := kafka.ConsumerConfig{
		Brokers:      cfg.Kafka.Brokers,
		GroupID:      cfg.Kafka.GroupID,
		Topic:        cfg.Kafka.Topic,
		StartOffset:  cfg.Kafka.StartOffset,
		PollInterval: cfg.Kafka.PollInterval,
		IdleInterval: cfg.Kafka.IdleInterval,
		RetryInitial: cfg.Kafka.RetryInitial,
		RetryMax:     cfg.Kafka.RetryMax,
		BacklogWarn:  cfg.Kafka.BacklogWarn,
	}
	client := kafka.NewClient(&kafkaCfg)

	pipe, err := NewPipeline(cfg.Consumer, client, session.NewFactory(stores.Writer), provenanceURI(cfg.Kafka), logg)
	if err != nil {
		_ = client.Close()
		stores.Close()
		_ = shutdownTrace(context.Background())
		closeLogger()
		return nil, func() {}, err
	}
	consumer := kafka.NewConsumer(&kafkaCfg, client, pipe.Processor, logg)
	logg.Infof(ctx, "pipeline ready reader=%s writer=%s subscription=%s async=%t max_messages=%d",
		cfg.Consumer.ReaderFormat, cfg.Consumer.WriterFormat, cfg.Consumer.Subscription,
		cfg.Consumer.Async, cfg.Consumer.MaxMessages)

	// Чтение юнитов: сервис + кэш.
	unitCache := cachemem.NewLRUCacheTTL(cfg.Cache.Capacity, cfg.Cache.TTL)
	unitService := usecase.NewUnitService(stores.Reader, unitCache, logg)

	// Прогрев кэша
	if n := cfg.Cache.WarmUpN; n > 0 {
		if err := unitService.WarmUpCache(ctx, n); err != nil {
			logg.Warnf(ctx, "warm-up cache failed: %v", err)
		}
	}

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(unitService, logg, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(httpHandler, "", otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		MetricsServer:   metricsServer(cfg),
		KafkaConsumer:   consumer,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if err := consumer.Close(); err != nil {
			logg.Warnf(ctx, "kafka consumer close error: %v", err)
		}
		// после остановки консьюмера: дождаться уже поставленных подтверждений
		pipe.Close()
		stores.Close()
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		closeLogger()
	}

	return app, cleanup, nil
}

// Run — запускает HTTP-сервер(ы) и консьюмера; ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 3)

	// Запуск консьюмера.
	go func() {
		a.Logger.Infof(ctx, "kafka consumer starting")
		if err := a.KafkaConsumer.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	// Запуск HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if a.MetricsServer != nil {
		go func() {
			a.Logger.Infof(ctx, "metrics server starting (addr=%s)", a.MetricsServer.Addr)
			if err := a.MetricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}
	if a.MetricsServer != nil {
		if err := a.MetricsServer.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warnf(ctx, "metrics server shutdown failed: %v", err)
		}
	}

	// Остановка Kafka-консьюмера
	if err := a.KafkaConsumer.Close(); err != nil {
		a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
