package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env             string        `env:"ENV" envDefault:"prod"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort        string        `env:"HTTP_PORT" envDefault:"8080"`
	ProxyUrl        string        `env:"PROXY_URL" envDefault:""`
	SearchTimeout   time.Duration `env:"SEARCH_TIMEOUT" envDefault:"30s"`
	DownloadTimeout time.Duration `env:"DOWNLOAD_TIMEOUT" envDefault:"120s"`
	Zlib            Zlib
	Session         Session
	Redis           Redis
	BasicAuth       BasicAuth
	Bestsellers     Bestsellers
}

type Zlib struct {
	BaseUrl    string `env:"ZLIB_BASE_URL" envDefault:"https://z-lib.fm"`
	SearchPath string `env:"ZLIB_SEARCH_PATH" envDefault:"/s/"`
}

// Session describes where the persisted login cookies come from. The login
// itself happens in an external browser-automation step, this service only
// reads its output.
type Session struct {
	Source     string `env:"SESSION_SOURCE" envDefault:"file"`
	CookieFile string `env:"SESSION_COOKIE_FILE" envDefault:"zlib_cookies.json"`
	RedisKey   string `env:"SESSION_REDIS_KEY" envDefault:"zlib:cookies"`
}

type Redis struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type BasicAuth struct {
	User     string `env:"BASIC_AUTH_USER" envDefault:""`
	Password string `env:"BASIC_AUTH_PASSWORD" envDefault:""`
}

type Bestsellers struct {
	ApiUrl string `env:"BESTSELLERS_API_URL" envDefault:""`
}

func MustLoad() *Config {
	_ = godotenv.Load(".env")

	cfg := &Config{}

	opts := env.Options{RequiredIfNoDef: true}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		log.Fatalf("parse config error: %s", err)
	}

	return cfg
}
