package golden

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/golden/compare"
	"github.com/gogpu/golden/host"
)

// Mode selects whether references are verified or rewritten.
type Mode uint8

const (
	// ModeVerify compares against stored references. This is the default.
	ModeVerify Mode = iota

	// ModeRecord overwrites references with the rendered candidates.
	ModeRecord
)

func (m Mode) String() string {
	if m == ModeRecord {
		return "record"
	}
	return "verify"
}

// UpdateEnv is the environment variable read by ModeFromEnv.
const UpdateEnv = "GOLDEN_UPDATE"

// ModeFromEnv returns ModeRecord when GOLDEN_UPDATE is "1", "true" or
// "record", and ModeVerify otherwise.
func ModeFromEnv() Mode {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(UpdateEnv))) {
	case "1", "true", "record":
		return ModeRecord
	default:
		return ModeVerify
	}
}

// FileNameFactory maps a logical name and configuration to a reference path
// relative to the base directory. It must be deterministic.
type FileNameFactory func(name string, cfg Configuration) string

// AssetPrimer preloads resources a session needs before rasterization.
// It runs once per request, before the final settle pass.
type AssetPrimer func(ctx context.Context, s host.Session) error

// Option configures a Config during creation.
//
// Example:
//
//	cfg, err := golden.NewConfig(
//		golden.WithBaseDir("testdata/goldens"),
//		golden.WithMode(golden.ModeFromEnv()),
//	)
type Option func(*configOptions)

// configOptions holds optional settings collected before NewConfig
// validates them.
type configOptions struct {
	baseDir    string
	fileName   FileNameFactory
	primer     AssetPrimer
	mode       Mode
	failureDir string
	differ     compare.Differ
	store      compare.Store
	skip       func() bool
	defaults   []Configuration
	logger     *slog.Logger
}

// DefaultBaseDir is used when WithBaseDir is not given.
const DefaultBaseDir = "testdata/goldens"

func defaultOptions() configOptions {
	return configOptions{
		baseDir:  DefaultBaseDir,
		fileName: DefaultFileName,
		mode:     ModeVerify,
	}
}

// WithBaseDir sets the directory reference images are stored under.
func WithBaseDir(dir string) Option {
	return func(o *configOptions) {
		o.baseDir = dir
	}
}

// WithFileNameFactory replaces DefaultFileName.
func WithFileNameFactory(f FileNameFactory) Option {
	return func(o *configOptions) {
		o.fileName = f
	}
}

// WithAssetPrimer registers a hook run before each rasterization.
func WithAssetPrimer(p AssetPrimer) Option {
	return func(o *configOptions) {
		o.primer = p
	}
}

// WithMode selects verify or record mode.
func WithMode(m Mode) Option {
	return func(o *configOptions) {
		o.mode = m
	}
}

// WithFailureDir sets where mismatch artifacts are written. By default they
// go to a directory next to the base directory, named after it with a
// "-failures" suffix.
func WithFailureDir(dir string) Option {
	return func(o *configOptions) {
		o.failureDir = dir
	}
}

// WithDiffer replaces the exact pixel comparison.
//
// Example:
//
//	golden.WithDiffer(compare.PixelDiffer{Threshold: 0.5, ChannelTolerance: 2})
func WithDiffer(d compare.Differ) Option {
	return func(o *configOptions) {
		o.differ = d
	}
}

// WithStore replaces the file store rooted at the base directory.
func WithStore(s compare.Store) Option {
	return func(o *configOptions) {
		o.store = s
	}
}

// WithSkip registers a predicate; Assert skips the test when it returns
// true.
func WithSkip(skip func() bool) Option {
	return func(o *configOptions) {
		o.skip = skip
	}
}

// WithDefaultConfigurations sets the configurations MultiScreen uses when
// given none. Defaults to DefaultDevices.
func WithDefaultConfigurations(cfgs ...Configuration) Option {
	return func(o *configOptions) {
		o.defaults = append([]Configuration(nil), cfgs...)
	}
}

// WithLogger sets the logger used by matchers built from the Config.
// Defaults to the package Logger at the time a Matcher is created.
func WithLogger(l *slog.Logger) Option {
	return func(o *configOptions) {
		o.logger = l
	}
}
