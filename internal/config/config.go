package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env        string
	ServerAddr string
	LogLevel   string
	LogFormat  string

	StorageDriver string
	StorageDir    string
	StorageQuota  int
	MongoURI      string
	MongoDB       string
	RedisURL      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SQLitePath    string

	AdminPassword string
	SessionSecret string
	// SessionSecretGenerated is set when no secret was configured and a
	// random one was made for this process.
	SessionSecretGenerated bool
	SessionTTL             time.Duration
	SessionSweepCron       string
	CookieSecure           bool

	FrontendOrigin     string
	RateLimitUploads   int
	RateLimitWindowSec int

	ContentFile        string
	CarouselFrame      time.Duration
	ImageProbeAttempts uint
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("server_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("storage_driver", "file")
	v.SetDefault("storage_dir", "data")
	v.SetDefault("storage_quota", 5*1024*1024)
	v.SetDefault("mongo_uri", "mongodb://localhost:27017/portfolio")
	v.SetDefault("mongo_db", "")
	v.SetDefault("redis_url", "")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("sqlite_path", "data/portfolio.db")

	v.SetDefault("admin_password", "")
	v.SetDefault("session_secret", "")
	v.SetDefault("session_ttl_minutes", 120)
	v.SetDefault("session_sweep_cron", "@every 5m")
	v.SetDefault("cookie_secure", false)

	v.SetDefault("frontend_origin", "http://localhost:3000")
	v.SetDefault("rate_limit_uploads", 30)
	v.SetDefault("rate_limit_window_sec", 60)

	v.SetDefault("content_file", "")
	v.SetDefault("carousel_frame_ms", 16)
	v.SetDefault("image_probe_attempts", 2)
}

// Load reads defaults, then .env and config.toml from the working directory
// when present, then the environment.
func Load() (*Config, error) {
	return load(".")
}

func load(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for _, f := range []struct{ name, typ string }{{".env", "env"}, {"config.toml", "toml"}} {
		path := dir + string(os.PathSeparator) + f.name
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v.SetConfigFile(path)
		v.SetConfigType(f.typ)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", f.name, err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	mongoURI := v.GetString("mongo_uri")
	mongoDB := v.GetString("mongo_db")
	if mongoDB == "" {
		mongoDB = mongoDBFromURI(mongoURI)
	}
	if mongoDB == "" {
		mongoDB = "portfolio"
	}

	cfg := &Config{
		Env:        v.GetString("app_env"),
		ServerAddr: v.GetString("server_addr"),
		LogLevel:   strings.ToLower(v.GetString("log_level")),
		LogFormat:  strings.ToLower(v.GetString("log_format")),

		StorageDriver: strings.ToLower(v.GetString("storage_driver")),
		StorageDir:    v.GetString("storage_dir"),
		StorageQuota:  v.GetInt("storage_quota"),
		MongoURI:      mongoURI,
		MongoDB:       mongoDB,
		RedisURL:      v.GetString("redis_url"),
		RedisAddr:     v.GetString("redis_addr"),
		RedisPassword: v.GetString("redis_password"),
		RedisDB:       v.GetInt("redis_db"),
		SQLitePath:    v.GetString("sqlite_path"),

		AdminPassword:    v.GetString("admin_password"),
		SessionSecret:    v.GetString("session_secret"),
		SessionTTL:       time.Duration(v.GetInt("session_ttl_minutes")) * time.Minute,
		SessionSweepCron: v.GetString("session_sweep_cron"),
		CookieSecure:     v.GetBool("cookie_secure"),

		FrontendOrigin:     v.GetString("frontend_origin"),
		RateLimitUploads:   v.GetInt("rate_limit_uploads"),
		RateLimitWindowSec: v.GetInt("rate_limit_window_sec"),

		ContentFile:        v.GetString("content_file"),
		CarouselFrame:      time.Duration(v.GetInt("carousel_frame_ms")) * time.Millisecond,
		ImageProbeAttempts: v.GetUint("image_probe_attempts"),
	}

	if cfg.SessionSecret == "" {
		if cfg.Env == "production" {
			return nil, errors.New("SESSION_SECRET is required in production")
		}
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.SessionSecret = secret
		cfg.SessionSecretGenerated = true
	}
	if cfg.CarouselFrame <= 0 {
		return nil, errors.New("CAROUSEL_FRAME_MS must be positive")
	}
	if cfg.RateLimitUploads < 0 || cfg.RateLimitWindowSec <= 0 {
		return nil, errors.New("RATE_LIMIT_UPLOADS must not be negative and RATE_LIMIT_WINDOW_SEC must be positive")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func mongoDBFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	db := strings.Trim(u.Path, "/")
	if db == "" {
		return ""
	}
	if idx := strings.Index(db, "/"); idx >= 0 {
		db = db[:idx]
	}
	return db
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("session secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
