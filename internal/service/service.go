// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	awsx "github.com/tfctl/awssso/internal/aws"
	"github.com/tfctl/awssso/internal/credguard"
	"github.com/tfctl/awssso/internal/log"
)

// Settings selects the identity and endpoint a Service talks to.
type Settings struct {
	Profile  string
	Region   string
	Endpoint string
}

// Service runs AWS operations for one profile.
type Service struct {
	clients awsx.Clients
	guard   *credguard.Normalizer
	now     func() time.Time
}

// New returns a Service over the given clients. guard may be shared with
// other Services.
func New(clients awsx.Clients, guard *credguard.Normalizer) *Service {
	return &Service{
		clients: clients,
		guard:   guard,
		now:     time.Now,
	}
}

// Open loads the AWS config for s and builds a Service whose normalizer
// names s.Profile in its remediation messages.
func Open(ctx context.Context, s Settings, guardOpts ...credguard.Option) (*Service, error) {
	cfgOpts := []awsx.Option{awsx.WithProfile(s.Profile)}
	if s.Region != "" {
		cfgOpts = append(cfgOpts, awsx.WithRegion(s.Region))
	}
	if s.Endpoint != "" {
		cfgOpts = append(cfgOpts, awsx.WithEndpoint(s.Endpoint))
	}

	cfg, err := awsx.LoadAWSConfig(ctx, cfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for profile %s: %w", s.Profile, err)
	}

	return New(awsx.NewClients(cfg), credguard.New(s.Profile, guardOpts...)), nil
}

// Profile returns the profile this Service authenticates as.
func (s *Service) Profile() string {
	return s.guard.Profile()
}

// Identity describes the principal behind the active credentials.
type Identity struct {
	AccountID string `json:"account_id"`
	UserARN   string `json:"user_arn"`
	UserID    string `json:"user_id"`
	Profile   string `json:"profile"`
}

// CallerIdentity returns the account, ARN and user id of the current
// credentials. It is the cheapest call that proves the session is valid.
func (s *Service) CallerIdentity(ctx context.Context) (Identity, error) {
	return credguard.Do(ctx, s.guard, func(ctx context.Context) (Identity, error) {
		out, err := s.clients.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
		if err != nil {
			log.Debugf("sts get caller identity: err=%v", err)
			return Identity{}, err
		}
		return Identity{
			AccountID: awsv2.ToString(out.Account),
			UserARN:   awsv2.ToString(out.Arn),
			UserID:    awsv2.ToString(out.UserId),
			Profile:   s.Profile(),
		}, nil
	})
}
