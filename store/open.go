package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	KindMemory = "memory"
	KindRedis  = "redis"
	KindEtcd   = "etcd"
)

// Options selects and addresses a backend.
type Options struct {
	Kind        string        `yaml:"kind"`
	Addr        string        `yaml:"addr"`
	Password    string        `yaml:"password"`
	DB          int           `yaml:"db"`
	Endpoints   []string      `yaml:"endpoints"`
	DialTimeout time.Duration `yaml:"dialTimeout"`
}

func (o Options) Validate() error {
	switch o.Kind {
	case KindMemory:
	case KindRedis:
		if o.Addr == "" {
			return fmt.Errorf("store: redis needs an address")
		}
	case KindEtcd:
		if len(o.Endpoints) == 0 {
			return fmt.Errorf("store: etcd needs at least one endpoint")
		}
	default:
		return fmt.Errorf("store: unknown kind %q", o.Kind)
	}
	return nil
}

// Open connects the configured backend and checks that it answers.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (Backend, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	var b Backend
	switch opts.Kind {
	case KindMemory:
		return NewMemory(), nil
	case KindRedis:
		b = NewRedis(redis.NewClient(&redis.Options{
			Addr:        opts.Addr,
			Password:    opts.Password,
			DB:          opts.DB,
			DialTimeout: opts.DialTimeout,
		}))
	case KindEtcd:
		cli, err := DialEtcd(opts.Endpoints, opts.DialTimeout, logger.Named("etcd"))
		if err != nil {
			return nil, err
		}
		b = NewEtcd(cli)
	}
	if err := b.Ping(ctx); err != nil {
		b.Close()
		return nil, fmt.Errorf("store %s unreachable: %w", opts.Kind, err)
	}
	logger.Info("connected to backing store", zap.String("kind", opts.Kind))
	return b, nil
}
