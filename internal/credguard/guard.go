// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package credguard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tfctl/awssso/internal/log"
)

const (
	headlineSessionExpired = "AWS SSO session expired!"
	headlineTokenExpired   = "Temporary credentials expired!"
)

// Normalizer converts credential failures into *CredentialError. It holds no
// mutable state and may be shared by any number of goroutines.
type Normalizer struct {
	profile string
	stderr  io.Writer
	observe func(Classification)
}

// Option customizes a Normalizer.
type Option func(*Normalizer)

// WithStderr redirects the remediation message. Defaults to os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(n *Normalizer) { n.stderr = w }
}

// WithObserver registers fn to be called with the classification of every
// failure the Normalizer inspects. fn must be safe for concurrent use.
func WithObserver(fn func(Classification)) Option {
	return func(n *Normalizer) { n.observe = fn }
}

// New returns a Normalizer whose messages point at profile.
func New(profile string, opts ...Option) *Normalizer {
	n := &Normalizer{
		profile: profile,
		stderr:  os.Stderr,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Profile returns the profile named in remediation messages.
func (n *Normalizer) Profile() string {
	if n == nil {
		return ""
	}
	return n.profile
}

// Normalize returns a *CredentialError for token retrieval and expired token
// failures and err itself for everything else. A chain that already holds a
// CredentialError is returned as is and not reported a second time.
func (n *Normalizer) Normalize(err error) error {
	if err == nil || n == nil {
		return err
	}

	var credErr *CredentialError
	if errors.As(err, &credErr) {
		return err
	}

	c := Classify(err)
	if n.observe != nil {
		n.observe(c)
	}

	var headline string
	switch c.Kind {
	case KindTokenRetrieval:
		headline = headlineSessionExpired
	case KindExpiredToken:
		headline = headlineTokenExpired
	default:
		log.Debugf("error passed through: kind=%s, code=%s", c.Kind, c.Code)
		return err
	}

	credErr = newCredentialError(c.Kind, n.profile, headline, err)
	log.Debugf("credential error: kind=%s, profile=%s, cause=%v", c.Kind, n.profile, err)
	if n.stderr != nil {
		fmt.Fprintln(n.stderr, credErr.msg)
	}
	return credErr
}

// Operation is a unit of work that can be guarded.
type Operation[T any] interface {
	Execute(ctx context.Context) (T, error)
}

// Func adapts a plain function to Operation.
type Func[T any] func(ctx context.Context) (T, error)

// Execute calls f.
func (f Func[T]) Execute(ctx context.Context) (T, error) { return f(ctx) }

// Do runs op and normalizes its error. On success the result is returned
// exactly as op produced it.
func Do[T any](ctx context.Context, n *Normalizer, op func(context.Context) (T, error)) (T, error) {
	result, err := op(ctx)
	if err != nil {
		var zero T
		return zero, n.Normalize(err)
	}
	return result, nil
}

// Run is Do for operations that return only an error.
func Run(ctx context.Context, n *Normalizer, op func(context.Context) error) error {
	return n.Normalize(op(ctx))
}

// Wrap returns op guarded by n, with the same shape as op.
func Wrap[T any](n *Normalizer, op Operation[T]) Func[T] {
	return func(ctx context.Context) (T, error) {
		return Do(ctx, n, op.Execute)
	}
}
