package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации сервера симуляции
type Config struct {
	World  WorldConfig  `yaml:"world"`
	Server ServerConfig `yaml:"server"`
}

type WorldConfig struct {
	Seed         uint64 `yaml:"seed"`
	ViewDistance int    `yaml:"view_distance"`
	Height       int    `yaml:"height_chunks"`
	Generators   int    `yaml:"generators"`
}

type ServerConfig struct {
	MetricsPort int    `yaml:"metrics_port"`
	ReplayPath  string `yaml:"replay_path"`
}

// GetSeed возвращает мировой сид с приоритетом: config -> env -> default
func (w *WorldConfig) GetSeed() uint64 {
	if w.Seed != 0 {
		return w.Seed
	}
	if envVal := os.Getenv("VOXEL_SEED"); envVal != "" {
		if seed, err := strconv.ParseUint(envVal, 10, 64); err == nil {
			return seed
		}
	}
	return 42
}

// GetViewDistance возвращает дистанцию видимости в чанках
func (w *WorldConfig) GetViewDistance() int {
	return getIntWithEnvFallback(w.ViewDistance, "VOXEL_VIEW_DISTANCE", 12)
}

// GetHeight возвращает высоту мира в чанках
func (w *WorldConfig) GetHeight() int {
	return getIntWithEnvFallback(w.Height, "VOXEL_HEIGHT_CHUNKS", 16)
}

// GetGenerators возвращает число генераторов (0 — по числу ядер)
func (w *WorldConfig) GetGenerators() int {
	return getIntWithEnvFallback(w.Generators, "VOXEL_GENERATORS", 0)
}

// GetMetricsPort возвращает порт Prometheus метрик
func (s *ServerConfig) GetMetricsPort() int {
	return getIntWithEnvFallback(s.MetricsPort, "VOXEL_METRICS_PORT", 2112)
}

// GetReplayPath возвращает путь журнала сообщений ("" — не писать)
func (s *ServerConfig) GetReplayPath() string {
	if s.ReplayPath != "" {
		return s.ReplayPath
	}
	return os.Getenv("VOXEL_REPLAY_PATH")
}

// getIntWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getIntWithEnvFallback(configValue int, envVar string, defaultValue int) int {
	if configValue > 0 {
		return configValue
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if value, err := strconv.Atoi(envVal); err == nil && value > 0 {
			return value
		}
	}

	return defaultValue
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV VOXEL_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("VOXEL_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
