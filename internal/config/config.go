package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Storage  Storage `yaml:"storage"`
}

type Storage struct {
	Type          string `yaml:"type" env:"STORAGE_TYPE" env-default:"file"`
	KnowledgeFile string `yaml:"knowledge-file" env:"KNOWLEDGE_FILE" env-default:"conocimiento_gato.json"`
	SQLitePath    string `yaml:"sqlite-path" env:"SQLITE_PATH" env-default:"conocimiento_gato.db"`
	Redis         Redis  `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations from the config.yml file.
// A missing file is fine, defaults apply; an unreadable one is not.
func MustLoad(path string) *Config {
	config := &Config{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = cleanenv.ReadEnv(config); err != nil {
			panic(fmt.Errorf("unable to read environment config: %w", err))
		}

		return config
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
