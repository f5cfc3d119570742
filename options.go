package stream

import (
	"log/slog"
	"os"

	"github.com/input-output-hk/catalyst-forge-libs/stream/fs"
	"github.com/input-output-hk/catalyst-forge-libs/stream/fs/billy"
)

// defaultPerm is applied to files created by ModeCreate.
const defaultPerm os.FileMode = 0o666

// options holds configuration for CreateOnFile.
type options struct {
	filesystem fs.Filesystem
	logger     *slog.Logger
	perm       os.FileMode
}

// Option is a functional option for configuring CreateOnFile.
type Option func(*options)

// WithFilesystem opens the file through fsys instead of the native filesystem.
// If fsys is nil, the native filesystem is used.
func WithFilesystem(fsys fs.Filesystem) Option {
	return func(opts *options) {
		opts.filesystem = fsys
	}
}

// WithLogger configures the stream with a custom logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// WithPerm sets the permission bits of files created by ModeCreate.
func WithPerm(perm os.FileMode) Option {
	return func(opts *options) {
		opts.perm = perm
	}
}

// defaultOptions returns the default configuration options.
func defaultOptions() *options {
	return &options{
		filesystem: nil, // Native filesystem
		logger:     nil, // No default logger
		perm:       defaultPerm,
	}
}

// applyOptions applies opts and fills in defaults for unset fields.
func applyOptions(o *options, opts []Option) {
	for _, opt := range opts {
		opt(o)
	}
	if o.filesystem == nil {
		o.filesystem = billy.NewBaseOSFS()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
}
