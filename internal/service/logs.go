// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	cwltypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"

	"github.com/tfctl/awssso/internal/credguard"
	"github.com/tfctl/awssso/internal/log"
)

// PutLogEvent writes message to group/stream, creating both if needed. The
// whole sequence is one guarded operation.
func (s *Service) PutLogEvent(ctx context.Context, group, stream, message string) error {
	return credguard.Run(ctx, s.guard, func(ctx context.Context) error {
		_, err := s.clients.Logs.CreateLogGroup(ctx, &cloudwatchlogs.CreateLogGroupInput{
			LogGroupName: awsv2.String(group),
		})
		if err != nil && !alreadyExists(err) {
			return err
		}

		_, err = s.clients.Logs.CreateLogStream(ctx, &cloudwatchlogs.CreateLogStreamInput{
			LogGroupName:  awsv2.String(group),
			LogStreamName: awsv2.String(stream),
		})
		if err != nil && !alreadyExists(err) {
			return err
		}

		_, err = s.clients.Logs.PutLogEvents(ctx, &cloudwatchlogs.PutLogEventsInput{
			LogGroupName:  awsv2.String(group),
			LogStreamName: awsv2.String(stream),
			LogEvents: []cwltypes.InputLogEvent{{
				Message:   awsv2.String(message),
				Timestamp: awsv2.Int64(s.now().UnixMilli()),
			}},
		})
		if err != nil {
			return err
		}
		log.Debugf("logs put event: group=%s, stream=%s", group, stream)
		return nil
	})
}

func alreadyExists(err error) bool {
	var exists *cwltypes.ResourceAlreadyExistsException
	return errors.As(err, &exists)
}
