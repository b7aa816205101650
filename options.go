package vfs

import (
	"github.com/mwantia/kvfs/cmd"
	"github.com/mwantia/kvfs/data"
	"github.com/mwantia/kvfs/log"
	"github.com/mwantia/kvfs/metrics"
	"github.com/mwantia/kvfs/mount"
	"github.com/mwantia/kvfs/mounts"
	"github.com/mwantia/kvfs/system"
)

type VirtualFileSystemOptions struct {
	LogLevel      log.LogLevel
	LogFile       string
	NoTerminalLog bool
	Logger        *log.Logger

	Metrics       *metrics.Metrics
	StorageDriver string
	Collaborators system.Collaborators
	Commands      []cmd.Command
}

type VirtualFileSystemOption func(*VirtualFileSystemOptions) error

func newDefaultVirtualFileSystemOptions() *VirtualFileSystemOptions {
	return &VirtualFileSystemOptions{
		LogLevel: log.Info,
	}
}

func newVirtualFileSystemOptions(opts ...VirtualFileSystemOption) (*VirtualFileSystemOptions, error) {
	options := newDefaultVirtualFileSystemOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	options.Collaborators = options.Collaborators.WithDefaults()
	return options, nil
}

// mountOptions are applied to every filesystem created through the registry.
func (o *VirtualFileSystemOptions) mountOptions(logger *log.Logger) ([]mount.Option, error) {
	factory, err := mounts.StorageFactory(o.StorageDriver)
	if err != nil {
		return nil, err
	}

	return []mount.Option{
		mount.WithStorage(factory),
		mount.WithLogger(logger),
		mount.WithCycleCounter(o.Collaborators.Cycles),
	}, nil
}

func WithLogLevel(logLevel log.LogLevel) VirtualFileSystemOption {
	return func(opts *VirtualFileSystemOptions) error {
		opts.LogLevel = logLevel
		return nil
	}
}

func WithoutTerminalLog() VirtualFileSystemOption {
	return func(opts *VirtualFileSystemOptions) error {
		opts.NoTerminalLog = true
		return nil
	}
}

func WithLogFile(logFile string) VirtualFileSystemOption {
	return func(opts *VirtualFileSystemOptions) error {
		opts.LogFile = logFile
		return nil
	}
}

// WithLogger replaces the logger built from level and file options.
// The registry does not close a logger it did not create.
func WithLogger(logger *log.Logger) VirtualFileSystemOption {
	return func(opts *VirtualFileSystemOptions) error {
		if logger == nil {
			return data.Invalid("logger is nil")
		}
		opts.Logger = logger
		return nil
	}
}

func WithMetrics(m *metrics.Metrics) VirtualFileSystemOption {
	return func(opts *VirtualFileSystemOptions) error {
		opts.Metrics = m
		return nil
	}
}

// WithStorage selects the entry storage driver for every filesystem the registry creates.
func WithStorage(driver string) VirtualFileSystemOption {
	return func(opts *VirtualFileSystemOptions) error {
		if _, err := mounts.StorageFactory(driver); err != nil {
			return err
		}
		opts.StorageDriver = driver
		return nil
	}
}

func WithCollaborators(collab system.Collaborators) VirtualFileSystemOption {
	return func(opts *VirtualFileSystemOptions) error {
		opts.Collaborators = collab
		return nil
	}
}

// WithCommands registers additional commands next to the builtins.
func WithCommands(commands ...cmd.Command) VirtualFileSystemOption {
	return func(opts *VirtualFileSystemOptions) error {
		opts.Commands = append(opts.Commands, commands...)
		return nil
	}
}
