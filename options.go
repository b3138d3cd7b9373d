// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package wakeloop

import (
	"github.com/joeycumines/logiface"
)

// execOptions holds configuration options for Executor creation.
type execOptions struct {
	idle   IdleHook
	logger *logiface.Logger[logiface.Event]
	ec     ExecutionContext
}

// --- Executor Options ---

// Option configures an Executor instance.
type Option interface {
	applyExec(*execOptions) error
}

// optionImpl implements Option.
type optionImpl struct {
	applyExecFunc func(*execOptions) error
}

func (o *optionImpl) applyExec(opts *execOptions) error {
	return o.applyExecFunc(opts)
}

// WithIdleHook selects the "halt until interrupt" primitive. This is the
// one piece of build-time configuration the core has: choose per target
// (see [EventIdleHook], EventfdIdleHook, [SpinIdleHook]).
// Defaults to a fresh [EventIdleHook].
func WithIdleHook(hook IdleHook) Option {
	return &optionImpl{func(opts *execOptions) error {
		if hook == nil {
			return ErrNilIdleHook
		}
		opts.idle = hook
		return nil
	}}
}

// WithLogger attaches a structured logger to the executor. A nil logger
// disables logging (the default); the fluent builder is level-gated, so a
// disabled or nil logger costs nothing on the hot path.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *execOptions) error {
		opts.logger = logger
		return nil
	}}
}

// WithExecutionContext sets the opaque context value handed to the
// scheduler core at wake-callback registration. Defaults to nil.
func WithExecutionContext(ec ExecutionContext) Option {
	return &optionImpl{func(opts *execOptions) error {
		opts.ec = ec
		return nil
	}}
}

// resolveOptions applies Option instances to execOptions.
func resolveOptions(opts []Option) (*execOptions, error) {
	cfg := &execOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue // Skip nil options gracefully
		}
		if err := opt.applyExec(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.idle == nil {
		cfg.idle = NewEventIdleHook()
	}
	return cfg, nil
}
