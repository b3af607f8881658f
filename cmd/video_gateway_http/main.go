package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lam0glia/video-gateway/bootstrap"
	"github.com/lam0glia/video-gateway/domain"
	"github.com/lam0glia/video-gateway/event"
	"github.com/lam0glia/video-gateway/http/handler"
	"github.com/lam0glia/video-gateway/http/route"
	"github.com/lam0glia/video-gateway/queue"
	"github.com/lam0glia/video-gateway/repository"
	"github.com/lam0glia/video-gateway/service"
	"github.com/lam0glia/video-gateway/use_case"
	"github.com/lam0glia/video-gateway/worker"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 15 * time.Second

func main() {
	app, err := bootstrap.NewApp()
	if err != nil {
		logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		logger.Fatal().Err(err).Msg("Microservice failed to start.")
	}

	logger := app.Logger
	env := app.Env

	sinks := []domain.ViewPublisher{
		event.NewBreaker(
			event.DefaultBreakerConfig("rabbitmq-viewed"),
			queue.NewViewed(app.ViewedChannel),
			logger,
		),
	}
	if app.RedisClient != nil {
		sinks = append(sinks, queue.NewViewedRedis(app.RedisClient))
	}

	dispatcher := worker.NewViewDispatcher(
		event.NewMultiPublisher(sinks...),
		env.PublishQueueSize,
		env.PublishTimeout,
		logger,
		app.Metrics,
	)
	go dispatcher.Run()

	storage := repository.NewVideo(
		repository.NewHTTPClient(env.DownstreamDialTimeout, env.DownstreamHeaderTimeout),
		env.VideoStorageURL,
	)

	h := handler.NewHandler(
		handler.NewVideo(
			use_case.NewViewVideo(storage, dispatcher),
			app.Metrics,
		),
	)

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", env.HTTPPortNumber),
		Handler: route.Setup(
			h,
			env.EnvironmentName,
			service.NewSonyflakeUID(app.SonyFlake),
			logger,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Int("port", env.HTTPPortNumber).Msg("Microservice online")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	var metricsSrv *http.Server
	if env.MetricsPortNumber > 0 {
		metricsSrv = &http.Server{
			Addr:              fmt.Sprintf(":%d", env.MetricsPortNumber),
			Handler:           app.Metrics.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			logger.Info().Int("port", env.MetricsPortNumber).Msg("metrics listening")
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("metrics listen")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	if metricsSrv != nil {
		metricsSrv.Shutdown(shutdownCtx)
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("drain viewed events")
	}
	if err := app.Close(); err != nil {
		logger.Error().Err(err).Msg("close connections")
	}
}
