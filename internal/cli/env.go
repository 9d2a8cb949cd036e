package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/roster"
	"github.com/aretw0/roster/internal/adapters/file"
	"github.com/aretw0/roster/internal/config"
	"github.com/aretw0/roster/internal/logging"
	"github.com/aretw0/roster/pkg/adapters/memory"
	"github.com/aretw0/roster/pkg/adapters/redis"
	"github.com/aretw0/roster/pkg/domain"
	"github.com/aretw0/roster/pkg/idgen"
	"github.com/aretw0/roster/pkg/observability"
	"github.com/aretw0/roster/pkg/persistence/middleware"
	"github.com/aretw0/roster/pkg/ports"
	"github.com/aretw0/roster/pkg/session"
)

// Env is the wired host shared by every command: config, logger, snapshot
// store and, for the redis backend, a distributed locker.
type Env struct {
	Config config.Config
	Logger *slog.Logger
	Store  ports.StateStore
	Locker ports.DistributedLocker
	IDs    ports.IDGenerator

	closers []io.Closer
}

// NewEnv builds the host described by cfg. Logs go to logOut.
func NewEnv(cfg config.Config, logOut io.Writer) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := logging.FromConfig(logOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	ids, err := idgen.Parse(cfg.IDs)
	if err != nil {
		return nil, err
	}

	env := &Env{Config: cfg, Logger: logger, IDs: ids}
	switch cfg.Store.Backend {
	case config.BackendMemory:
		env.Store = memory.NewStore()
	case config.BackendFile:
		env.Store = file.New(cfg.Store.Path)
	case config.BackendRedis:
		rs := redis.New(cfg.Store.RedisAddr, cfg.Store.RedisPassword, cfg.Store.RedisDB, redis.WithTTL(cfg.Store.TTL))
		env.Store = rs
		env.Locker = redis.NewLocker(rs.Client(), redis.DefaultPrefix)
		env.closers = append(env.closers, rs)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	mws, err := storeMiddleware(cfg.Store)
	if err != nil {
		_ = env.Close()
		return nil, err
	}
	env.Store = middleware.Chain(env.Store, mws...)
	logger.Debug("environment ready", "backend", cfg.Store.Backend, "config", cfg.Source)
	return env, nil
}

// storeMiddleware builds the snapshot decorators: redaction runs first so
// masked names are what gets sealed.
func storeMiddleware(cfg config.Store) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if len(cfg.Redact) > 0 {
		pii, err := middleware.NewPIIMiddleware(cfg.Redact)
		if err != nil {
			return nil, fmt.Errorf("store.redact: %w", err)
		}
		mws = append(mws, pii)
	}
	active, fallback, err := cfg.Keys()
	if err != nil {
		return nil, err
	}
	if active != nil {
		enc, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: active, FallbackKeys: fallback})
		if err != nil {
			return nil, err
		}
		mws = append(mws, enc)
	}
	return mws, nil
}

// Close releases backend connections.
func (e *Env) Close() error {
	var first error
	for _, c := range e.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// StoreOptions are the roster.Store options every session of this host uses.
func (e *Env) StoreOptions(hooks ...domain.LifecycleHooks) []roster.Option {
	hooks = append([]domain.LifecycleHooks{observability.LogHooks(e.Logger)}, hooks...)
	return []roster.Option{
		roster.WithLogger(e.Logger),
		roster.WithIDGenerator(e.IDs),
		roster.WithInitialContacts(e.Config.SeedContacts()...),
		roster.WithLifecycleHooks(observability.Merge(hooks...)),
	}
}

// Sessions returns a session manager over the host's store.
func (e *Env) Sessions(hooks ...domain.LifecycleHooks) *session.Manager {
	opts := []session.Option{
		session.WithLogger(e.Logger),
		session.WithStoreOptions(e.StoreOptions(hooks...)...),
	}
	if e.Locker != nil {
		opts = append(opts, session.WithLocker(e.Locker))
	}
	return session.NewManager(e.Store, opts...)
}

// OpenStore resumes (or starts) the configured session as a roster.Store.
func (e *Env) OpenStore(ctx context.Context, sessionID string) (*roster.Store, error) {
	opts := append(e.StoreOptions(), roster.WithStateStore(e.Store, sessionID))
	return roster.New(ctx, opts...)
}
