package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Pg               Pg            `yaml:"pg"`
	HttpPort         int           `yaml:"http_port"`
	JwtTTL           time.Duration `yaml:"jwt_ttl"`
	LogLevel         string        `yaml:"log_level"`
	LogJSON          bool          `yaml:"log_json"`
	MaxBodyLen       int           `yaml:"max_body_len"`      // content/comment body length limit
	ReplyDepthCap    int           `yaml:"reply_depth_cap"`   // presentation-only: deeper comments render but can't be replied to
	EventBufferSize  int           `yaml:"event_buffer_size"` // per-subscription channel capacity
	NotificationPage int           `yaml:"notification_page"` // page size for the notification feed
	SecureCookies    bool          `yaml:"secure_cookies"`
	AllowedOrigins   []string      `yaml:"allowed_origins"`
}

type Pg struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	User   string `yaml:"user"`
	Dbname string `yaml:"dbname"`
}

type Private struct {
	JwtKey     string `yaml:"jwt_key"`
	PgPassword string `yaml:"pg_password"`
}

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)

	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyDefaults()
	return cfg
}

func (s *Config) applyDefaults() {
	if s.Public.MaxBodyLen == 0 {
		s.Public.MaxBodyLen = 10000
	}
	if s.Public.ReplyDepthCap == 0 {
		s.Public.ReplyDepthCap = 3
	}
	if s.Public.EventBufferSize == 0 {
		s.Public.EventBufferSize = 64
	}
	if s.Public.NotificationPage == 0 {
		s.Public.NotificationPage = 50
	}
	if s.Public.HttpPort == 0 {
		s.Public.HttpPort = 8080
	}
}
