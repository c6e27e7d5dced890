// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package service

import (
	"context"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials/ssocreds"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	cwltypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/awssso/internal/credguard"
)

func TestPutLogEvent(t *testing.T) {
	tests := []struct {
		name      string
		groupErr  error
		streamErr error
	}{
		{name: "fresh group and stream"},
		{name: "group exists", groupErr: &cwltypes.ResourceAlreadyExistsException{}},
		{
			name:      "both exist",
			groupErr:  &cwltypes.ResourceAlreadyExistsException{},
			streamErr: sdkFailure("CloudWatch Logs", "CreateLogStream", &cwltypes.ResourceAlreadyExistsException{}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, f := newTestService(t)
			f.logs.On("CreateLogGroup", mock.Anything, mock.Anything).
				Return(&cloudwatchlogs.CreateLogGroupOutput{}, tt.groupErr)
			f.logs.On("CreateLogStream", mock.Anything, mock.Anything).
				Return(&cloudwatchlogs.CreateLogStreamOutput{}, tt.streamErr)
			f.logs.On("PutLogEvents", mock.Anything, mock.MatchedBy(func(in *cloudwatchlogs.PutLogEventsInput) bool {
				return len(in.LogEvents) == 1 &&
					awsv2.ToString(in.LogEvents[0].Message) == "hello" &&
					awsv2.ToInt64(in.LogEvents[0].Timestamp) == fixedNow.UnixMilli() &&
					awsv2.ToString(in.LogGroupName) == "/awssso/demo" &&
					awsv2.ToString(in.LogStreamName) == "cli"
			})).Return(&cloudwatchlogs.PutLogEventsOutput{}, nil)

			require.NoError(t, svc.PutLogEvent(context.Background(), "/awssso/demo", "cli", "hello"))
		})
	}
}

func TestPutLogEvent_CreateGroupFails(t *testing.T) {
	svc, f := newTestService(t)
	cause := &smithy.GenericAPIError{Code: "AccessDeniedException"}
	f.logs.On("CreateLogGroup", mock.Anything, mock.Anything).Return(nil, cause)

	err := svc.PutLogEvent(context.Background(), "/awssso/demo", "cli", "hello")

	assert.Same(t, cause, err)
	f.logs.AssertNotCalled(t, "PutLogEvents", mock.Anything, mock.Anything)
}

func TestPutLogEvent_SessionExpired(t *testing.T) {
	svc, f := newTestService(t)
	f.logs.On("CreateLogGroup", mock.Anything, mock.Anything).
		Return(nil, sdkFailure("CloudWatch Logs", "CreateLogGroup", &ssocreds.InvalidTokenError{}))

	err := svc.PutLogEvent(context.Background(), "/awssso/demo", "cli", "hello")

	assert.ErrorIs(t, err, credguard.ErrCredentials)
	assert.Equal(t, "AWS SSO session expired!\nPlease run: aws sso login --profile my-dev\n", f.stderr.String())
	f.logs.AssertNotCalled(t, "CreateLogStream", mock.Anything, mock.Anything)
}
