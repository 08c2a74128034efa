package config

import (
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	DBDriver   string `env:"DB_DRIVER" env-default:"mysql"`
	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"3306"`
	DBUser     string `env:"DB_USER" env-default:"taskuser"`
	DBPassword string `env:"DB_PASSWORD" env-default:"taskpassword"`
	DBName     string `env:"DB_NAME" env-default:"task_tracker"`
	JWTSecret  string `env:"JWT_SECRET_KEY" env-default:"default-secret-key-change-me"`
	GinMode    string `env:"GIN_MODE" env-default:"debug"`
	Port       string `env:"PORT" env-default:"8080"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
