package mount

import (
	"time"

	"github.com/mwantia/kvfs/data"
	"github.com/mwantia/kvfs/log"
	"github.com/mwantia/kvfs/mount/backend"
	"github.com/mwantia/kvfs/mount/backend/memory"
	"github.com/mwantia/kvfs/system"
)

const (
	DefaultSpeedTestFiles = 1000
	// DefaultSpeedTestDoublings doubles the seed string to 81920 bytes.
	DefaultSpeedTestDoublings = 13
)

type Options struct {
	Host    int
	HasHost bool

	Storage backend.Factory
	Logger  *log.Logger
	Cycles  system.CycleCounter

	SpeedTestFiles     int
	SpeedTestDoublings int
}

type Option func(*Options) error

func newDefaultOptions() *Options {
	return &Options{
		Storage:            memory.NewFactory(),
		Logger:             log.Nop(),
		Cycles:             system.NewCycleCounter(time.Now()),
		SpeedTestFiles:     DefaultSpeedTestFiles,
		SpeedTestDoublings: DefaultSpeedTestDoublings,
	}
}

// WithHost records the registry index of the filesystem this one gets mounted in.
func WithHost(index int) Option {
	return func(o *Options) error {
		if index < 0 {
			return data.Invalid("host index %d is negative", index)
		}
		o.Host = index
		o.HasHost = true
		return nil
	}
}

func WithStorage(factory backend.Factory) Option {
	return func(o *Options) error {
		if factory == nil {
			return data.Invalid("storage factory is nil")
		}
		o.Storage = factory
		return nil
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(o *Options) error {
		if logger != nil {
			o.Logger = logger
		}
		return nil
	}
}

func WithCycleCounter(cycles system.CycleCounter) Option {
	return func(o *Options) error {
		if cycles != nil {
			o.Cycles = cycles
		}
		return nil
	}
}

func WithSpeedTestFiles(n int) Option {
	return func(o *Options) error {
		if n <= 0 {
			return data.Invalid("speedtest file count must be positive, got %d", n)
		}
		o.SpeedTestFiles = n
		return nil
	}
}

func WithSpeedTestDoublings(n int) Option {
	return func(o *Options) error {
		if n < 0 {
			return data.Invalid("speedtest doublings must not be negative, got %d", n)
		}
		o.SpeedTestDoublings = n
		return nil
	}
}
