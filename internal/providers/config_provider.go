package providers

import (
	"fmt"
	"path/filepath"
	"rollcall/internal/scanner"
	"rollcall/internal/structures"
	"strings"

	"github.com/spf13/viper"
)

const AppName = "Rollcall"

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8080)
	v.SetDefault("webServer.compress", true)
	v.SetDefault("backend.timeout", "15s")
	v.SetDefault("backend.barcodesEndpoint", "/api/barcodes")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("scanner.cooldown", scanner.DefaultCooldown.String())
	v.SetDefault("sessions.idleTTL", "30m")
	v.SetDefault("sessions.sweepInterval", "1m")
	v.SetDefault("cache.ttl", "10s")
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	_ = v.BindEnv("logger.level", "ROLLCALL_LOG_LEVEL")
	_ = v.BindEnv("backend.baseUrl", "ROLLCALL_BACKEND_URL")
	_ = v.BindEnv("cache.enabled", "ROLLCALL_CACHE_ENABLED")
	_ = v.BindEnv("cache.size", "ROLLCALL_CACHE_SIZE")
	_ = v.BindEnv("scanner.cooldown", "ROLLCALL_SCAN_COOLDOWN")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
