package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required"`
}

type UpstreamConfig struct {
	BaseURL      string        `yaml:"baseURL" validate:"required|fullUrl"`
	CheckinPath  string        `yaml:"checkinPath"`
	TokenURL     string        `yaml:"tokenURL" validate:"required|fullUrl"`
	ClientID     string        `yaml:"clientID"`
	ClientSecret string        `yaml:"clientSecret"`
	RefreshToken string        `yaml:"refreshToken"`
	PageSize     int           `yaml:"pageSize"`
	MaxPages     int           `yaml:"maxPages"`
	SegmentWidth time.Duration `yaml:"segmentWidth"`
	RequestDelay time.Duration `yaml:"requestDelay"`
	RetryDelay   time.Duration `yaml:"retryDelay"`
	MaxRetries   int           `yaml:"maxRetries"`
	Concurrency  int           `yaml:"concurrency"`
	Timeout      time.Duration `yaml:"timeout"`
}

type DisplayConfig struct {
	ZoneName  string        `yaml:"zoneName"`
	UTCOffset time.Duration `yaml:"utcOffset"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	Upstream  UpstreamConfig `yaml:"upstream"`
	Display   DisplayConfig  `yaml:"display"`
	WebServer Server         `yaml:"webServer"`
	Logger    LoggerConfig   `yaml:"logger"`
	Cache     CacheConfig    `yaml:"cache"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}
