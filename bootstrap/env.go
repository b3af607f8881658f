package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/lam0glia/video-gateway/domain"
)

const (
	ProductionEnvironmentName  = "production"
	DevelopmentEnvironmentName = "development"
)

const dotEnvFile = ".env"

type Env struct {
	HTTPPortNumber          int           `env:"PORT" env-required:"true"`
	RabbitMQURL             string        `env:"RABBIT" env-required:"true"`
	VideoStorageURL         string        `env:"VIDEO_STORAGE_URL" env-default:"http://video-storage"`
	EnvironmentName         string        `env:"ENVIRONMENT_NAME" env-default:"development"`
	LogLevel                string        `env:"LOG_LEVEL" env-default:"info"`
	DownstreamDialTimeout   time.Duration `env:"DOWNSTREAM_DIAL_TIMEOUT" env-default:"5s"`
	DownstreamHeaderTimeout time.Duration `env:"DOWNSTREAM_HEADER_TIMEOUT" env-default:"10s"`
	PublishTimeout          time.Duration `env:"PUBLISH_TIMEOUT" env-default:"5s"`
	PublishQueueSize        int           `env:"PUBLISH_QUEUE_SIZE" env-default:"1024"`
	MetricsPortNumber       int           `env:"METRICS_PORT" env-default:"0"`
	RedisURL                string        `env:"REDIS_URL"`
	UIDGeneratorStartTime   string        `env:"UNIQUE_ID_GENERATOR_START_TIME" env-default:"2024-06-13"`
	MachineID               uint16        `env:"MACHINE_ID" env-default:"1"`
}

// newEnv reads the optional .env file and then the process environment,
// which takes precedence.
func newEnv() (*Env, error) {
	var env Env

	err := cleanenv.ReadConfig(dotEnvFile, &env)
	if errors.Is(err, fs.ErrNotExist) {
		err = cleanenv.ReadEnv(&env)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}

	if strings.TrimSpace(env.RabbitMQURL) == "" {
		return nil, fmt.Errorf("%w: RABBIT must not be empty", domain.ErrConfiguration)
	}

	if env.HTTPPortNumber <= 0 {
		return nil, fmt.Errorf("%w: PORT must be a positive number", domain.ErrConfiguration)
	}

	if !slices.Contains(
		[]string{DevelopmentEnvironmentName, ProductionEnvironmentName},
		env.EnvironmentName,
	) {
		return nil, fmt.Errorf(
			"%w: ENVIRONMENT_NAME must be one of %s or %s",
			domain.ErrConfiguration,
			ProductionEnvironmentName,
			DevelopmentEnvironmentName,
		)
	}

	if env.PublishQueueSize < 1 {
		return nil, fmt.Errorf("%w: PUBLISH_QUEUE_SIZE must be positive", domain.ErrConfiguration)
	}

	return &env, nil
}

func (e *Env) IsProduction() bool {
	return e.EnvironmentName == ProductionEnvironmentName
}
