// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/awssso/internal/filters"
	"github.com/tfctl/awssso/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator rejects malformed --attrs and --filter values before
// any AWS call is made.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if a := c.String("attrs"); a != "" {
		if _, err := BuildAttrs(c, ""); err != nil {
			return err
		}
	}
	if f := c.String("filter"); f != "" {
		for _, spec := range strings.Split(f, filters.Delim()) {
			if strings.TrimSpace(spec) == "" {
				continue
			}
			if _, err := filters.ParseFilter(spec); err != nil {
				return fmt.Errorf("invalid --filter: %w", err)
			}
		}
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{
		output.FormatText, output.FormatJSON, output.FormatRaw, output.FormatYAML,
	}
	s, _ := value.(string)
	if !slices.Contains(validOutputFlagValues, s) {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

func NonNegativeValidator(value any) error {
	if n, ok := value.(int); ok && n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// RangeValidator returns a validator accepting ints in [lo, hi].
func RangeValidator(lo, hi int) FlagValidatorType {
	return func(value any) error {
		n, ok := value.(int)
		if !ok {
			return nil
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}
