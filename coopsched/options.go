package coopsched

import (
	"github.com/joeycumines/logiface"
)

// coreOptions holds configuration options for Core creation.
type coreOptions struct {
	logger *logiface.Logger[logiface.Event]
}

// Option configures a Core instance.
type Option interface {
	applyCore(*coreOptions) error
}

// optionImpl implements Option.
type optionImpl struct {
	applyCoreFunc func(*coreOptions) error
}

func (o *optionImpl) applyCore(opts *coreOptions) error {
	return o.applyCoreFunc(opts)
}

// WithLogger attaches a structured logger to the scheduler. A nil logger
// disables logging (the default).
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *coreOptions) error {
		opts.logger = logger
		return nil
	}}
}

// resolveOptions applies Option instances to coreOptions.
func resolveOptions(opts []Option) (*coreOptions, error) {
	cfg := &coreOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue // Skip nil options gracefully
		}
		if err := opt.applyCore(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
