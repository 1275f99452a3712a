package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type Log struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type Game struct {
	Defaults mines.GameParams
	MaxCells int
}

type Session struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

type RateLimit struct {
	Requests int
	Window   time.Duration
	// TrustedProxies are the peers whose X-Forwarded-For header is believed.
	TrustedProxies []netip.Prefix
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Config struct {
	Addr        string
	Development bool
	Log         Log
	Game        Game
	Session     Session
	RateLimit   RateLimit
	Redis       Redis
	CorsOrigins []string
}

// Load reads the configuration from the environment. Variables from envFile
// are loaded first without overriding ones already set; a missing envFile is
// not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("unable to load %s: %w", envFile, err)
		}
	}

	var l lookup
	cfg := &Config{
		Addr:        l.String("APP_ADDR", ":8080"),
		Development: l.Bool("DEVELOPMENT", false),
		Log: Log{
			File:       l.String("LOG_FILE", ""),
			MaxSizeMB:  l.Int("LOG_MAX_SIZE_MB", 50),
			MaxBackups: l.Int("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: l.Int("LOG_MAX_AGE_DAYS", 28),
		},
		Game: Game{
			Defaults: mines.GameParams{
				Width:     l.Int("GAME_WIDTH", 20),
				Height:    l.Int("GAME_HEIGHT", 15),
				MineCount: l.Int("GAME_MINE_COUNT", 50),
			},
			MaxCells: l.Int("GAME_MAX_CELLS", 256*256),
		},
		Session: Session{
			TTL:           l.Duration("SESSION_TTL", time.Hour),
			SweepInterval: l.Duration("SESSION_SWEEP_INTERVAL", time.Minute),
		},
		RateLimit: RateLimit{
			Requests: l.Int("RATE_LIMIT", 120),
			Window:   l.Duration("RATE_WINDOW", time.Minute),

			TrustedProxies: l.Prefixes("TRUSTED_PROXIES"),
		},
		Redis: Redis{
			Addr:     l.String("REDIS_ADDR", ""),
			Password: l.String("REDIS_PASSWORD", ""),
			DB:       l.Int("REDIS_DB", 0),
		},
		CorsOrigins: l.List("CORS_ORIGINS"),
	}
	if l.err != nil {
		return nil, l.err
	}

	if err := cfg.Game.Defaults.Validate(); err != nil {
		return nil, fmt.Errorf("invalid default game: %w", err)
	}
	if cfg.Session.TTL <= 0 || cfg.Session.SweepInterval <= 0 {
		return nil, fmt.Errorf("SESSION_TTL and SESSION_SWEEP_INTERVAL must be positive")
	}

	return cfg, nil
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"addr":              c.Addr,
		"development":       c.Development,
		"log_file":          c.Log.File,
		"game_defaults":     c.Game.Defaults.Seed(),
		"game_max_cells":    c.Game.MaxCells,
		"session_ttl":       c.Session.TTL.String(),
		"session_sweep":     c.Session.SweepInterval.String(),
		"rate_limit":        c.RateLimit.Requests,
		"rate_limit_window": c.RateLimit.Window.String(),
		"trusted_proxies":   len(c.RateLimit.TrustedProxies),
		"redis_addr":        c.Redis.Addr,
		"cors_origins":      c.CorsOrigins,
	}
}

// lookup reads typed env variables and keeps the first parse error.
type lookup struct {
	err error
}

func (l *lookup) String(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func (l *lookup) List(key string) []string {
	var list []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			list = append(list, v)
		}
	}
	return list
}

// Prefixes reads a comma-separated list of CIDR prefixes. A bare address
// stands for itself.
func (l *lookup) Prefixes(key string) []netip.Prefix {
	var prefixes []netip.Prefix
	for _, v := range l.List(key) {
		var (
			p   netip.Prefix
			err error
		)
		if strings.Contains(v, "/") {
			p, err = netip.ParsePrefix(v)
		} else {
			var addr netip.Addr
			if addr, err = netip.ParseAddr(v); err == nil {
				p = netip.PrefixFrom(addr, addr.BitLen())
			}
		}
		if err != nil {
			if l.err == nil {
				l.err = fmt.Errorf("unable to parse %s: %w", key, err)
			}
			continue
		}
		prefixes = append(prefixes, p.Masked())
	}
	return prefixes
}

// Bool treats anything but "0" as true.
func (l *lookup) Bool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	return v != "0"
}

func (l *lookup) Int(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil && l.err == nil {
		l.err = fmt.Errorf("unable to convert %s to int: %w", key, err)
	}
	return n
}

func (l *lookup) Duration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil && l.err == nil {
		l.err = fmt.Errorf("unable to parse %s: %w", key, err)
	}
	return d
}
