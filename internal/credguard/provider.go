// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package credguard

import (
	"context"
	"errors"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"

	"github.com/tfctl/awssso/internal/log"
)

// RetrievalError reports that a credentials provider could not produce
// credentials. The SSO bearer token path returns plain errors, so the
// provider chain is wrapped to give every such failure a type.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return "failed to retrieve credentials: " + e.Err.Error()
}

// Unwrap returns the provider's error.
func (e *RetrievalError) Unwrap() error { return e.Err }

// GuardProvider returns p with every non-cancellation Retrieve failure
// wrapped in a *RetrievalError.
func GuardProvider(p awsv2.CredentialsProvider) awsv2.CredentialsProvider {
	if p == nil {
		return nil
	}
	return &guardedProvider{provider: p}
}

type guardedProvider struct {
	provider awsv2.CredentialsProvider
}

func (g *guardedProvider) Retrieve(ctx context.Context) (awsv2.Credentials, error) {
	creds, err := g.provider.Retrieve(ctx)
	if err == nil {
		return creds, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return creds, err
	}
	log.Debugf("credential retrieval failed: provider=%T, err=%v", g.provider, err)
	return creds, &RetrievalError{Err: err}
}
