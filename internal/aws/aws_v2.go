// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"os"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"

	cfgfile "github.com/tfctl/awssso/internal/config"
	"github.com/tfctl/awssso/internal/credguard"
	"github.com/tfctl/awssso/internal/log"
	"github.com/tfctl/awssso/internal/version"
)

// DefaultProfile is used when no profile is given on the command line, in
// AWS_PROFILE, or in the config file.
const DefaultProfile = "my-dev"

// options holds optional overrides for AWS config loading.
type options struct {
	profile  string
	region   string
	endpoint string
}

// Option customizes how AWS config is loaded.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, SSO token cache, IMDS, etc.).
type Option func(*options)

// LoadAWSConfig loads AWS SDK v2 config. By default it inherits the shell's
// AWS setup (AWS_PROFILE, shared config, env, IMDS). Options can override
// profile, region and endpoint without changing callers.
//
// Loading never contacts AWS; an expired SSO session surfaces on the first
// API call, not here. Credential retrieval failures carry a
// *credguard.RetrievalError.
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log.Debugf("opts applied: profile=%s, region=%s, endpoint=%s", o.profile, o.region, o.endpoint)

	loadOpts := []func(*config.LoadOptions) error{
		config.WithAppID(version.AppID()),
	}
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.endpoint != "" {
		loadOpts = append(loadOpts, config.WithBaseEndpoint(o.endpoint))
	}
	log.Debugf("loadOpts built: len=%d", len(loadOpts))

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		log.Debugf("config load err: err=%v", err)
		return awsv2.Config{}, err
	}
	log.Debugf("config loaded: region=%s", cfg.Region)

	if cfg.Credentials != nil {
		cfg.Credentials = credguard.GuardProvider(cfg.Credentials)
	}
	return cfg, nil
}

// ResolveProfile returns explicit when set, else AWS_PROFILE, else the
// "profile" key of the config file, else DefaultProfile.
func ResolveProfile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv("AWS_PROFILE"); p != "" {
		return p
	}
	if p, err := cfgfile.GetString("profile"); err == nil && p != "" {
		return p
	}
	return DefaultProfile
}

// WithProfile sets the shared config profile. Defaults to AWS_PROFILE/env chain.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override. Defaults to env/profile/metadata chain.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithEndpoint points every service client at a single base URL, e.g. a
// LocalStack instance.
func WithEndpoint(url string) Option {
	return func(o *options) { o.endpoint = url }
}
