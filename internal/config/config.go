// Package config loads roster.yaml / roster.toml into a Config.
package config

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/aretw0/roster/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFiles are probed, in order, when no explicit path is given.
var DefaultFiles = []string{"roster.yaml", "roster.yml", "roster.toml"}

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config is the host configuration shared by every command.
type Config struct {
	LogLevel  string   `mapstructure:"log_level"`
	LogFormat string   `mapstructure:"log_format"`
	Session   string   `mapstructure:"session"`
	IDs       string   `mapstructure:"ids"`
	Store     Store    `mapstructure:"store"`
	HTTP      HTTP     `mapstructure:"http"`
	Seed      []string `mapstructure:"seed"`

	// Source is the file the config was read from, empty for defaults.
	Source string `mapstructure:"-"`
}

// Store selects the snapshot backend.
type Store struct {
	Backend       string        `mapstructure:"backend"`
	Path          string        `mapstructure:"path"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl"`

	// EncryptionKey seals snapshots with AES-256-GCM when set (32 bytes, hex or base64).
	// FallbackKeys still open snapshots sealed before a key rotation.
	EncryptionKey string   `mapstructure:"encryption_key"`
	FallbackKeys  []string `mapstructure:"fallback_keys"`

	// Redact lists regular expressions masked out of contact names before saving.
	Redact []string `mapstructure:"redact"`
}

// Keys decodes EncryptionKey and FallbackKeys. The active key is nil when encryption is off.
func (s Store) Keys() (active []byte, fallback [][]byte, err error) {
	if s.EncryptionKey == "" {
		if len(s.FallbackKeys) > 0 {
			return nil, nil, errors.New("store.fallback_keys: set without store.encryption_key")
		}
		return nil, nil, nil
	}
	if active, err = decodeKey(s.EncryptionKey); err != nil {
		return nil, nil, fmt.Errorf("store.encryption_key: %w", err)
	}
	for i, k := range s.FallbackKeys {
		key, err := decodeKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("store.fallback_keys[%d]: %w", i, err)
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

func decodeKey(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if key, err := hex.DecodeString(s); err == nil && len(key) == 32 {
		return key, nil
	}
	if key, err := base64.StdEncoding.DecodeString(s); err == nil && len(key) == 32 {
		return key, nil
	}
	return nil, errors.New("want 32 bytes as hex or base64")
}

// HTTP configures the serve command.
type HTTP struct {
	Addr string `mapstructure:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		LogFormat: "text",
		Session:   "default",
		IDs:       "uuid",
		Store: Store{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
		},
		HTTP: HTTP{Addr: ":8080"},
	}
}

// Load reads path, or the first of DefaultFiles that exists when path is empty.
// A missing default file yields Default(); a missing explicit path is an error.
func Load(path string) (Config, error) {
	if path == "" {
		for _, candidate := range DefaultFiles {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

// Parse decodes data in the given format ("yaml", "yml" or "toml") over Default().
func Parse(data []byte, format string) (Config, error) {
	raw := map[string]any{}
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("parse yaml: %w", err)
		}
	case "toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return Config{}, fmt.Errorf("parse toml: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", format)
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("decode: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate reports settings no command can work with.
func (c Config) Validate() error {
	var errs []error
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("store.backend: unknown backend %q", c.Store.Backend))
	}
	switch c.IDs {
	case "uuid", "incrementing":
	default:
		errs = append(errs, fmt.Errorf("ids: unknown generator %q", c.IDs))
	}
	if c.Store.TTL < 0 {
		errs = append(errs, errors.New("store.ttl: must not be negative"))
	}
	if _, _, err := c.Store.Keys(); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.Session) == "" {
		errs = append(errs, errors.New("session: must not be empty"))
	}
	return errors.Join(errs...)
}

// SeedContacts turns the seed names into contacts with stable ids seed-1, seed-2...
func (c Config) SeedContacts() []domain.Contact {
	contacts := make([]domain.Contact, 0, len(c.Seed))
	for i, name := range c.Seed {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		contacts = append(contacts, domain.Contact{ID: domain.ID(fmt.Sprintf("seed-%d", i+1)), Name: name})
	}
	return contacts
}
