package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"aad/internal/structures"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "AAD_LOG_LEVEL")
	viper.BindEnv("upstream.clientID", "AAD_CLIENT_ID")
	viper.BindEnv("upstream.clientSecret", "AAD_CLIENT_SECRET")
	viper.BindEnv("upstream.refreshToken", "AAD_REFRESH_TOKEN")
	viper.BindEnv("upstream.concurrency", "AAD_FETCH_CONCURRENCY")
	viper.BindEnv("cache.enabled", "AAD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "AAD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	applyDefaults(&conf)

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "AttendanceAggregationDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

// applyDefaults fills the upstream and display sections with the vendor's
// documented limits when the config omits them.
func applyDefaults(conf *structures.Config) {
	up := &conf.Upstream
	if up.CheckinPath == "" {
		up.CheckinPath = "/api/v2/checkin/query"
	}
	if up.PageSize <= 0 {
		up.PageSize = 200
	}
	if up.MaxPages <= 0 {
		up.MaxPages = 10
	}
	if up.SegmentWidth <= 0 {
		up.SegmentWidth = 6 * time.Hour
	}
	if up.RequestDelay <= 0 {
		up.RequestDelay = time.Second
	}
	if up.RetryDelay <= 0 {
		up.RetryDelay = 5 * time.Second
	}
	if up.MaxRetries <= 0 {
		up.MaxRetries = 3
	}
	if up.Concurrency <= 0 {
		up.Concurrency = 1
	}
	if up.Timeout <= 0 {
		up.Timeout = 30 * time.Second
	}
	if conf.Display.ZoneName == "" {
		conf.Display.ZoneName = "UTC+7"
	}
	if conf.Display.UTCOffset == 0 {
		conf.Display.UTCOffset = 7 * time.Hour
	}
	if conf.Cache.TTL <= 0 {
		conf.Cache.TTL = 30 * time.Second
	}
}
