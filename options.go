// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunaygrid

import (
	"errors"

	"github.com/2dChan/delaunaygrid/geom"
	"go.uber.org/zap"
)

// Options configures a Generator.
type Options struct {
	// Step is the discretization step every predicate truncates to.
	Step float64
	// Circumsphere selects the formulation used for element circumspheres.
	// The seed facet always uses geom.CayleyMenger.
	Circumsphere geom.CircumsphereMethod
	// RoundInput snaps input coordinates to multiples of Step on copy-in.
	RoundInput bool
	Logger     *zap.Logger
	// Metrics is optional; nil disables instrumentation.
	Metrics *Metrics
}

// Option sets a field of Options, returning an error for invalid values.
type Option func(*Options) error

func defaultOptions() Options {
	return Options{
		Step:         geom.DefaultStep,
		Circumsphere: geom.LinearSolve,
		Logger:       zap.NewNop(),
	}
}

// WithDiscretizationStep sets the predicate truncation step.
// The step must lie in (0, 1).
func WithDiscretizationStep(step float64) Option {
	return func(o *Options) error {
		if step <= 0 || step >= 1 {
			return errors.New("delaunaygrid: discretization step must be in (0, 1)")
		}
		o.Step = step
		return nil
	}
}

// WithCircumsphere selects the element circumsphere formulation.
func WithCircumsphere(m geom.CircumsphereMethod) Option {
	return func(o *Options) error {
		if m != geom.LinearSolve && m != geom.CayleyMenger {
			return errors.New("delaunaygrid: unknown circumsphere method")
		}
		o.Circumsphere = m
		return nil
	}
}

// WithRoundedInput rounds every input coordinate to the discretization step.
func WithRoundedInput() Option {
	return func(o *Options) error {
		o.RoundInput = true
		return nil
	}
}

// WithLogger sets the logger. Steps are logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) error {
		if l == nil {
			return errors.New("delaunaygrid: logger must not be nil")
		}
		o.Logger = l
		return nil
	}
}

// WithMetrics enables instrumentation through m.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) error {
		if m == nil {
			return errors.New("delaunaygrid: metrics must not be nil")
		}
		o.Metrics = m
		return nil
	}
}
