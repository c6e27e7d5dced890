// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/awssso/internal/config"
	"github.com/tfctl/awssso/internal/log"
	"github.com/tfctl/awssso/internal/output"
)

// EnvEndpoint points every client at a single base URL, e.g. LocalStack.
const EnvEndpoint = "AWSSSO_ENDPOINT"

// newSchemaFlag returns a fresh "schema" flag. Flags carry parse state so
// each command gets its own.
func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "list the attributes available to --attrs",
		HideDefault: true,
	}
}

// NewGlobalFlags returns the output shaping flags shared by every command
// that prints a result set.
func NewGlobalFlags() (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   configBool("color"),
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml, raw)",
			Value:   output.FormatText,
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:   "padding",
			Usage:  "cell padding for text output",
			Value:  2,
			Hidden: true,
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   configBool("titles"),
		},
	}

	return
}

// configBool returns the config file default for a boolean output flag.
func configBool(key string) bool {
	v, err := config.GetBool(key, false)
	if err != nil {
		log.Debugf("config default ignored: key=%s, err=%v", key, err)
	}
	return v
}

// NewProfileFlag constructs the root "profile" flag. When cfgPath names a
// config file, "<ns>.profile" and then "profile" are read from it after the
// environment.
func NewProfileFlag(ns, cfgPath string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage:   "AWS SSO profile to authenticate as",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("AWS_PROFILE"),
		),
	}

	if cfgPath != "" {
		flag = NameSpacedValueChainFlagFromConfigFile(ns, cfgPath, flag)
	}

	return
}

// NewRegionFlag constructs the root "region" flag. An empty value leaves the
// region to the profile.
func NewRegionFlag(ns, cfgPath string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "region",
		Aliases: []string{"r"},
		Usage:   "AWS region. Overrides the profile",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("AWS_REGION"),
		),
	}

	if cfgPath != "" {
		flag = NameSpacedValueChainFlagFromConfigFile(ns, cfgPath, flag)
	}

	return
}

// NewEndpointFlag constructs the root "endpoint" flag.
func NewEndpointFlag(ns, cfgPath string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:   "endpoint",
		Usage:  "base URL for every AWS service, e.g. http://localhost:4566",
		Hidden: true,
		Sources: cli.NewValueSourceChain(
			cli.EnvVar(EnvEndpoint),
		),
	}

	if cfgPath != "" {
		flag = NameSpacedValueChainFlagFromConfigFile(ns, cfgPath, flag)
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain. An empty ns adds only the global
// source.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	if ns != "" {
		src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
		flag.Sources.Chain = append(flag.Sources.Chain, src)
	}

	src := yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
