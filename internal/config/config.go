// Package config loads the opsboard TOML configuration.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/opsboard/pkg/drag"
	"github.com/matzehuels/opsboard/pkg/errors"
	"github.com/matzehuels/opsboard/pkg/store"
)

// appName is used for config and state directories.
const appName = "opsboard"

// Config is the top-level TOML structure.
type Config struct {
	Store  StoreConfig  `toml:"store"`
	Drag   DragConfig   `toml:"drag"`
	Board  BoardConfig  `toml:"board"`
	Server ServerConfig `toml:"server"`
}

// StoreConfig selects where card orders are persisted.
type StoreConfig struct {
	Backend string      `toml:"backend"` // file | memory | redis | mongo | null
	Dir     string      `toml:"dir"`     // file backend; empty selects the state dir
	Prefix  string      `toml:"prefix"`  // key prefix
	Redis   RedisConfig `toml:"redis"`
	Mongo   MongoConfig `toml:"mongo"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

type DragConfig struct {
	ActivationDistance float64 `toml:"activation_distance"`
}

type BoardConfig struct {
	PruneOnLoad bool `toml:"prune_on_load"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

const defaultConfigTOML = `# opsboard configuration

[store]
# file | memory | redis | mongo | null
backend = "file"
dir = ""
prefix = "opsboard:"

[store.redis]
addr = "localhost:6379"
password = ""
db = 0

[store.mongo]
uri = "mongodb://localhost:27017"
database = "opsboard"
collection = "card_orders"

[drag]
# pointer travel before a press becomes a drag; 0 starts dragging on press
activation_distance = 8

[board]
prune_on_load = true

[server]
addr = "127.0.0.1:8080"
`

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Backend: store.BackendFile,
			Prefix:  store.DefaultPrefix,
			Redis:   RedisConfig{Addr: "localhost:6379"},
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   "opsboard",
				Collection: "card_orders",
			},
		},
		Drag:   DragConfig{ActivationDistance: drag.DefaultActivationDistance},
		Board:  BoardConfig{PruneOnLoad: true},
		Server: ServerConfig{Addr: "127.0.0.1:8080"},
	}
}

// Dir returns the config directory, using XDG_CONFIG_HOME or falling back
// to ~/.config.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, appName), nil
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// StateDir returns the directory for persisted card orders, using
// XDG_STATE_HOME or falling back to ~/.local/state.
func StateDir() (string, error) {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", appName), nil
}

// Load reads the config at path. An empty path selects Path(). A missing
// file yields the defaults; it is not created.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return Default(), err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse parses TOML bytes on top of the defaults and normalizes the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return Normalize(cfg), nil
}

// Validate rejects values that cannot be normalized.
func (c Config) Validate() error {
	backend := strings.ToLower(strings.TrimSpace(c.Store.Backend))
	if backend == "" {
		return nil
	}
	for _, b := range store.Backends {
		if b == backend {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q (supported: %s)",
		c.Store.Backend, strings.Join(store.Backends, ", "))
}

// Normalize fills blanks with defaults and clamps out-of-range values.
func Normalize(c Config) Config {
	def := Default()

	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	if c.Store.Backend == "" {
		c.Store.Backend = def.Store.Backend
	}
	c.Store.Dir = strings.TrimSpace(c.Store.Dir)
	if c.Store.Prefix == "" {
		c.Store.Prefix = def.Store.Prefix
	}
	if c.Store.Redis.Addr == "" {
		c.Store.Redis.Addr = def.Store.Redis.Addr
	}
	if c.Store.Redis.DB < 0 || c.Store.Redis.DB > 15 {
		c.Store.Redis.DB = 0
	}
	if c.Store.Mongo.URI == "" {
		c.Store.Mongo.URI = def.Store.Mongo.URI
	}
	if c.Store.Mongo.Database == "" {
		c.Store.Mongo.Database = def.Store.Mongo.Database
	}
	if c.Store.Mongo.Collection == "" {
		c.Store.Mongo.Collection = def.Store.Mongo.Collection
	}

	if c.Drag.ActivationDistance < 0 || c.Drag.ActivationDistance > 100 {
		c.Drag.ActivationDistance = def.Drag.ActivationDistance
	}

	if strings.TrimSpace(c.Server.Addr) == "" {
		c.Server.Addr = def.Server.Addr
	}
	return c
}

// StoreConfig converts the store section into a store.Config, resolving the
// file backend directory.
func (c Config) StoreConfig() (store.Config, error) {
	dir := c.Store.Dir
	if dir == "" && c.Store.Backend == store.BackendFile {
		state, err := StateDir()
		if err != nil {
			return store.Config{}, fmt.Errorf("state dir: %w", err)
		}
		dir = filepath.Join(state, "orders")
	}
	return store.Config{
		Backend: c.Store.Backend,
		Dir:     dir,
		Redis: store.RedisConfig{
			Addr:        c.Store.Redis.Addr,
			Password:    c.Store.Redis.Password,
			DB:          c.Store.Redis.DB,
			DialTimeout: 2 * time.Second,
		},
		Mongo: store.MongoConfig{
			URI:        c.Store.Mongo.URI,
			Database:   c.Store.Mongo.Database,
			Collection: c.Store.Mongo.Collection,
		},
	}, nil
}

// DragOptions converts the drag section into drag.Options. A configured
// distance of 0 activates on press.
func (c Config) DragOptions(logger *log.Logger) drag.Options {
	d := c.Drag.ActivationDistance
	if d == 0 {
		d = -1
	}
	return drag.Options{ActivationDistance: d, Logger: logger}
}

// Encode renders c as TOML.
func Encode(c Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDefault writes the commented default config to path unless a file
// already exists there.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTOML), 0o644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}
