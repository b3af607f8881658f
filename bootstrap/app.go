package bootstrap

import (
	"errors"
	"fmt"

	"github.com/lam0glia/video-gateway/event"
	"github.com/lam0glia/video-gateway/internal"
	"github.com/lam0glia/video-gateway/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sony/sonyflake"
)

type App struct {
	Env                *Env
	Logger             zerolog.Logger
	RabbitMQConnection *amqp.Connection
	ViewedChannel      *event.ViewedChannel
	RedisClient        *redis.Client
	SonyFlake          *sonyflake.Sonyflake
	Metrics            *metrics.Metrics
}

// NewApp loads configuration and opens every long-lived resource. The broker
// connection and the viewed exchange must be ready before it returns.
func NewApp() (*App, error) {
	var (
		err error
		app App
	)

	app.Env, err = newEnv()
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	app.Logger, err = internal.NewLogger(app.Env.IsProduction(), app.Env.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	app.RabbitMQConnection, err = event.Connect(app.Env.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("create rabbitmq connection: %w", err)
	}

	app.ViewedChannel, err = event.NewViewedChannel(app.RabbitMQConnection, app.Logger)
	if err != nil {
		app.RabbitMQConnection.Close()
		return nil, fmt.Errorf("setup viewed exchange: %w", err)
	}

	if app.Env.RedisURL != "" {
		app.RedisClient, err = newRedis(app.Env.RedisURL)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("create redis connection: %w", err)
		}
	}

	app.SonyFlake, err = newUIDGenerator(app.Env.UIDGeneratorStartTime, app.Env.MachineID)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("new uid generator: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.Metrics = metrics.New(reg)

	return &app, nil
}

// Close releases the broker and redis connections.
func (a *App) Close() error {
	var errs []error

	if a.ViewedChannel != nil {
		errs = append(errs, a.ViewedChannel.Close())
	}
	if a.RabbitMQConnection != nil && !a.RabbitMQConnection.IsClosed() {
		errs = append(errs, a.RabbitMQConnection.Close())
	}
	if a.RedisClient != nil {
		errs = append(errs, a.RedisClient.Close())
	}

	return errors.Join(errs...)
}
