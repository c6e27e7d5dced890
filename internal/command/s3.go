// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"reflect"
	"unicode/utf8"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tfctl/awssso/internal/log"
	"github.com/tfctl/awssso/internal/service"
)

// ErrBinaryToTerminal is returned by s3 get when a non-text object would be
// written to a terminal.
var ErrBinaryToTerminal = errors.New("refusing to write binary object to a terminal, use --out")

func s3CommandBuilder() *cli.Command {
	return &cli.Command{
		Name:  "s3",
		Usage: "S3 buckets and objects",
		Commands: []*cli.Command{
			(&QueryCommandBuilder{
				Name:      "buckets",
				Usage:     "list buckets",
				UsageText: "awssso s3 buckets [options]",
				Action:    s3BucketsAction,
			}).Build(),
			(&QueryCommandBuilder{
				Name:      "ls",
				Usage:     "list objects in a bucket",
				UsageText: "awssso s3 ls BUCKET [options]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "prefix",
						Usage: "only list keys beginning with prefix",
					},
					&cli.IntFlag{
						Name:  "max-keys",
						Usage: "maximum number of objects to list",
						Value: service.DefaultMaxKeys,
						Validator: func(value int) error {
							return FlagValidators(value, RangeValidator(1, 1000))
						},
					},
				},
				Action: s3LsAction,
			}).Build(),
			(&QueryCommandBuilder{
				Name:      "put",
				Usage:     "upload a file, or stdin when FILE is -",
				UsageText: "awssso s3 put BUCKET KEY FILE|- [options]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "content-type",
						Usage: "content type of the object. Guessed from FILE when unset",
					},
				},
				Action: s3PutAction,
			}).Build(),
			{
				Name:      "get",
				Usage:     "download an object to stdout or a file",
				UsageText: "awssso s3 get BUCKET KEY [--out FILE]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "write the object to FILE instead of stdout",
					},
				},
				Action: s3GetAction,
			},
		},
	}
}

func s3BucketsAction(ctx context.Context, cmd *cli.Command) error {
	return NewQueryActionRunner(
		"s3 buckets",
		reflect.TypeOf(""),
		"",
		func(ctx context.Context, cmd *cli.Command, svc *service.Service) ([]string, error) {
			return svc.ListBuckets(ctx)
		},
	).Run(ctx, cmd)
}

func s3LsAction(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 1); err != nil {
		return err
	}

	return NewQueryActionRunner(
		"s3 ls",
		reflect.TypeOf(service.Object{}),
		"key,size::h,last_modified:modified:t,storage_class:class",
		func(ctx context.Context, cmd *cli.Command, svc *service.Service) ([]service.Object, error) {
			return svc.ListObjects(ctx, cmd.Args().Get(0), cmd.String("prefix"), int32(cmd.Int("max-keys")))
		},
	).Run(ctx, cmd)
}

func s3PutAction(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 3); err != nil {
		return err
	}
	bucket, key, file := cmd.Args().Get(0), cmd.Args().Get(1), cmd.Args().Get(2)

	content, err := readInput(cmd, file)
	if err != nil {
		return err
	}

	contentType := cmd.String("content-type")
	if contentType == "" && file != "-" {
		contentType = mime.TypeByExtension(filepath.Ext(file))
		log.Debugf("content type guessed: file=%s, type=%s", file, contentType)
	}

	return NewQueryActionRunner(
		"s3 put",
		reflect.TypeOf(service.Upload{}),
		"bucket,key,size,content_type:type",
		func(ctx context.Context, cmd *cli.Command, svc *service.Service) (service.Upload, error) {
			return svc.Upload(ctx, bucket, key, content, contentType)
		},
	).Run(ctx, cmd)
}

func s3GetAction(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 2); err != nil {
		return err
	}

	svc, err := OpenService(ctx, cmd)
	if err != nil {
		return err
	}

	data, err := svc.Download(ctx, cmd.Args().Get(0), cmd.Args().Get(1))
	if err != nil {
		return err
	}

	if out := cmd.String("out"); out != "" {
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		log.Debugf("object written: file=%s, size=%d", out, len(data))
		return nil
	}

	w := stdout(cmd)
	if isTerminal(w) && !utf8.Valid(data) {
		return ErrBinaryToTerminal
	}
	_, err = w.Write(data)
	return err
}

// readInput returns the content of file, or of the root reader when file is
// "-".
func readInput(cmd *cli.Command, file string) ([]byte, error) {
	if file != "-" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		return data, nil
	}

	var r io.Reader = os.Stdin
	if cmd.Root().Reader != nil {
		r = cmd.Root().Reader
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
