package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel    string      `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort    string      `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort  string      `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Redis       Redis       `yaml:"redis" env-prefix:"REDIS_"`
	Matchmaking Matchmaking `yaml:"matchmaking" env-prefix:"MATCHMAKING_"`
	Websocket   Websocket   `yaml:"websocket" env-prefix:"WEBSOCKET_"`
}

// Redis configures the live-state mirror, which is off unless enabled.
type Redis struct {
	Enabled     bool          `yaml:"enabled" env:"ENABLED"`
	Host        string        `yaml:"host" env:"HOST" env-default:"localhost"`
	Port        string        `yaml:"port" env:"PORT" env-default:"6379"`
	Password    string        `yaml:"password" env:"PASSWORD"`
	DB          int           `yaml:"db" env:"DB" env-default:"0"`
	SnapshotTTL time.Duration `yaml:"snapshot-ttl" env:"SNAPSHOT_TTL" env-default:"1h"`
	// MirrorBuffer is how many snapshots may wait for the redis writer.
	MirrorBuffer int `yaml:"mirror-buffer" env:"MIRROR_BUFFER" env-default:"1024"`
}

type Matchmaking struct {
	MaxWait       time.Duration `yaml:"max-wait" env:"MAX_WAIT" env-default:"0s"`
	SweepInterval time.Duration `yaml:"sweep-interval" env:"SWEEP_INTERVAL" env-default:"5s"`
}

type Websocket struct {
	SendBuffer     int           `yaml:"send-buffer" env:"SEND_BUFFER" env-default:"64"`
	WriteWait      time.Duration `yaml:"write-wait" env:"WRITE_WAIT" env-default:"10s"`
	PongWait       time.Duration `yaml:"pong-wait" env:"PONG_WAIT" env-default:"60s"`
	MaxMessageSize int64         `yaml:"max-message-size" env:"MAX_MESSAGE_SIZE" env-default:"4096"`
	AllowedOrigins []string      `yaml:"allowed-origins" env:"ALLOWED_ORIGINS" env-default:"*"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load reads path and applies environment overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
