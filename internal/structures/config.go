package structures

import "time"

type Server struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required|uint|min:1"`
	Compress bool   `yaml:"compress"`
}

type BackendConfig struct {
	BaseURL          string        `yaml:"baseUrl" validate:"required|fullUrl"`
	Timeout          time.Duration `yaml:"timeout" validate:"required|min:1"`
	BarcodesEndpoint string        `yaml:"barcodesEndpoint"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required"`
}

type ScannerConfig struct {
	Cooldown time.Duration `yaml:"cooldown"`
}

type SessionsConfig struct {
	IdleTTL       time.Duration `yaml:"idleTTL" validate:"required|min:1"`
	SweepInterval time.Duration `yaml:"sweepInterval" validate:"required|min:1"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size" validate:"max:1024"` // MB
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server         `yaml:"webServer"`
	Backend   BackendConfig  `yaml:"backend"`
	Logger    LoggerConfig   `yaml:"logger"`
	Scanner   ScannerConfig  `yaml:"scanner"`
	Sessions  SessionsConfig `yaml:"sessions"`
	Cache     CacheConfig    `yaml:"cache"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}
