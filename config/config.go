// Package config holds the settings of an assetd instance. Values come from
// Default, then an optional YAML file, then explicitly set command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/smartinsert/assetcache"
	"github.com/smartinsert/assetcache/store"
	"github.com/smartinsert/assetcache/utils"
)

type Cache struct {
	MaxEntries        int           `yaml:"maxEntries"`
	Shards            int           `yaml:"shards"`
	ExpireAfterAccess time.Duration `yaml:"expireAfterAccess"`
	ExpireAfterWrite  time.Duration `yaml:"expireAfterWrite"`
}

type Pool struct {
	Workers    int `yaml:"workers"`
	MaxWorkers int `yaml:"maxWorkers"`
	QueueSize  int `yaml:"queueSize"`
}

// Registry enables etcd based registration and peer discovery.
type Registry struct {
	Enabled   bool          `yaml:"enabled"`
	Endpoints []string      `yaml:"endpoints"`
	Service   string        `yaml:"service"`
	TTL       time.Duration `yaml:"ttl"`
}

type Seed struct {
	Enabled bool  `yaml:"enabled"`
	Count   int   `yaml:"count"`
	Random  int64 `yaml:"random"`
}

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type Config struct {
	// Instance tags responses. Defaults to the advertised address.
	Instance string `yaml:"instance"`
	// ListenAddr is where the gRPC server binds; AdvertiseAddr is what peers dial.
	ListenAddr    string `yaml:"listenAddr"`
	AdvertiseAddr string `yaml:"advertiseAddr"`
	MetricsAddr   string `yaml:"metricsAddr"`

	Cache     Cache                `yaml:"cache"`
	Pool      Pool                 `yaml:"pool"`
	Partition assetcache.Partition `yaml:"partition"`

	SubBatchSize   int           `yaml:"subBatchSize"`
	Peers          []string      `yaml:"peers"`
	PeerTimeout    time.Duration `yaml:"peerTimeout"`
	FanoutTimeout  time.Duration `yaml:"fanoutTimeout"`
	HealthInterval time.Duration `yaml:"healthInterval"`

	Store    store.Options `yaml:"store"`
	Registry Registry      `yaml:"registry"`
	Seed     Seed          `yaml:"seed"`
	Log      Log           `yaml:"log"`
}

func Default() Config {
	return Config{
		ListenAddr:  ":9090",
		MetricsAddr: ":9100",
		Cache: Cache{
			MaxEntries:        30000,
			Shards:            16,
			ExpireAfterAccess: 30 * time.Minute,
			ExpireAfterWrite:  60 * time.Minute,
		},
		Pool: Pool{Workers: 10, MaxWorkers: 20, QueueSize: 1000},
		Partition: assetcache.Partition{
			Index:       0,
			Total:       1,
			PerInstance: 30000,
		},
		SubBatchSize:   assetcache.DefaultSubBatchSize,
		PeerTimeout:    2 * time.Second,
		FanoutTimeout:  5 * time.Second,
		HealthInterval: 10 * time.Second,
		Store: store.Options{
			Kind:        store.KindRedis,
			Addr:        "localhost:6379",
			Endpoints:   []string{"localhost:2379"},
			DialTimeout: 5 * time.Second,
		},
		Registry: Registry{
			Endpoints: []string{"localhost:2379"},
			Service:   "assetcache",
			TTL:       10 * time.Second,
		},
		Seed: Seed{Count: 100000, Random: 1},
		Log:  Log{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Advertise is the address peers and the registry know this instance by.
func (c Config) Advertise() string {
	if c.AdvertiseAddr != "" {
		return c.AdvertiseAddr
	}
	return c.ListenAddr
}

// InstanceName falls back to the advertised address.
func (c Config) InstanceName() string {
	if c.Instance != "" {
		return c.Instance
	}
	return c.Advertise()
}

func (c Config) Validate() error {
	var errs []error
	if err := c.Partition.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Cache.MaxEntries < 1 {
		errs = append(errs, fmt.Errorf("cache.maxEntries must be positive, got %d", c.Cache.MaxEntries))
	}
	if c.Cache.ExpireAfterAccess < 0 || c.Cache.ExpireAfterWrite < 0 {
		errs = append(errs, errors.New("cache expiry durations must not be negative"))
	}
	if c.Pool.Workers < 1 {
		errs = append(errs, fmt.Errorf("pool.workers must be positive, got %d", c.Pool.Workers))
	}
	if c.Pool.MaxWorkers != 0 && c.Pool.MaxWorkers < c.Pool.Workers {
		errs = append(errs, fmt.Errorf("pool.maxWorkers %d below pool.workers %d", c.Pool.MaxWorkers, c.Pool.Workers))
	}
	if c.Pool.QueueSize < 0 {
		errs = append(errs, fmt.Errorf("pool.queueSize must not be negative, got %d", c.Pool.QueueSize))
	}
	if c.SubBatchSize < 1 {
		errs = append(errs, fmt.Errorf("subBatchSize must be positive, got %d", c.SubBatchSize))
	}
	for _, p := range c.Peers {
		if err := utils.ValidatePeerAddr(p); err != nil {
			errs = append(errs, fmt.Errorf("peer: %w", err))
		}
	}
	if c.AdvertiseAddr != "" {
		if err := utils.ValidatePeerAddr(c.AdvertiseAddr); err != nil {
			errs = append(errs, fmt.Errorf("advertiseAddr: %w", err))
		}
	}
	if err := c.Store.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Registry.Enabled && len(c.Registry.Endpoints) == 0 {
		errs = append(errs, errors.New("registry enabled without endpoints"))
	}
	return errors.Join(errs...)
}

// Override copies the flags explicitly set in set onto c. set must have been
// populated by BindFlags.
func (c *Config) Override(set *pflag.FlagSet) error {
	target := pflag.NewFlagSet("override", pflag.ContinueOnError)
	c.BindFlags(target)
	var err error
	set.Visit(func(f *pflag.Flag) {
		dst := target.Lookup(f.Name)
		if dst == nil || err != nil {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			err = dst.Value.(pflag.SliceValue).Replace(sv.GetSlice())
			return
		}
		err = dst.Value.Set(f.Value.String())
	})
	return err
}

// BindFlags registers command line overrides for the most common settings.
// Only flags the user sets take effect, so they layer over a loaded file.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Instance, "instance", c.Instance, "instance name reported in responses")
	fs.StringVar(&c.ListenAddr, "listen", c.ListenAddr, "gRPC listen address")
	fs.StringVar(&c.AdvertiseAddr, "advertise", c.AdvertiseAddr, "address peers use to reach this instance")
	fs.StringVar(&c.MetricsAddr, "metrics-addr", c.MetricsAddr, "prometheus listen address, empty disables")

	fs.IntVar(&c.Cache.MaxEntries, "cache-max-entries", c.Cache.MaxEntries, "local cache capacity")
	fs.DurationVar(&c.Cache.ExpireAfterAccess, "cache-expire-after-access", c.Cache.ExpireAfterAccess, "idle expiry")
	fs.DurationVar(&c.Cache.ExpireAfterWrite, "cache-expire-after-write", c.Cache.ExpireAfterWrite, "age expiry")

	fs.IntVar(&c.Pool.Workers, "workers", c.Pool.Workers, "core worker goroutines")
	fs.IntVar(&c.Pool.MaxWorkers, "max-workers", c.Pool.MaxWorkers, "worker limit including burst workers")
	fs.IntVar(&c.Pool.QueueSize, "queue-size", c.Pool.QueueSize, "pending sub-batch capacity")

	fs.IntVar(&c.Partition.Index, "instance-index", c.Partition.Index, "position of this instance in the fleet")
	fs.IntVar(&c.Partition.Total, "total-instances", c.Partition.Total, "fleet size")
	fs.IntVar(&c.Partition.PerInstance, "assets-per-instance", c.Partition.PerInstance, "records pre-warmed per instance")

	fs.IntVar(&c.SubBatchSize, "sub-batch-size", c.SubBatchSize, "default sub-batch size")
	fs.StringSliceVar(&c.Peers, "peers", c.Peers, "ordered peer addresses")
	fs.DurationVar(&c.PeerTimeout, "peer-timeout", c.PeerTimeout, "deadline of one peer call")
	fs.DurationVar(&c.FanoutTimeout, "fanout-timeout", c.FanoutTimeout, "deadline of a whole fan-out")

	fs.StringVar(&c.Store.Kind, "store", c.Store.Kind, "backing store: redis, etcd or memory")
	fs.StringVar(&c.Store.Addr, "redis-addr", c.Store.Addr, "redis address")
	fs.StringSliceVar(&c.Store.Endpoints, "etcd-endpoints", c.Store.Endpoints, "etcd endpoints of the backing store")

	fs.BoolVar(&c.Registry.Enabled, "registry", c.Registry.Enabled, "register in etcd and discover peers there")
	fs.StringSliceVar(&c.Registry.Endpoints, "registry-endpoints", c.Registry.Endpoints, "etcd endpoints of the registry")

	fs.BoolVar(&c.Seed.Enabled, "seed", c.Seed.Enabled, "generate data when the store holds fewer records than seed-count")
	fs.IntVar(&c.Seed.Count, "seed-count", c.Seed.Count, "records to generate")

	fs.StringVar(&c.Log.Level, "log-level", c.Log.Level, "debug, info, warn or error")
	fs.BoolVar(&c.Log.Development, "log-dev", c.Log.Development, "human readable logs")
}
