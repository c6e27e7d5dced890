// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials/ssocreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/awssso/internal/credguard"
)

// sdkFailure wraps cause the way the SDK reports a failed operation.
func sdkFailure(service, op string, cause error) error {
	return &smithy.OperationError{ServiceID: service, OperationName: op, Err: cause}
}

func TestCallerIdentity(t *testing.T) {
	svc, f := newTestService(t)
	f.sts.On("GetCallerIdentity", mock.Anything, mock.Anything).Return(&sts.GetCallerIdentityOutput{
		Account: awsv2.String("123456789012"),
		Arn:     awsv2.String("arn:aws:sts::123456789012:assumed-role/ReadOnly/jdoe"),
		UserId:  awsv2.String("AROAEXAMPLE:jdoe"),
	}, nil)

	id, err := svc.CallerIdentity(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Identity{
		AccountID: "123456789012",
		UserARN:   "arn:aws:sts::123456789012:assumed-role/ReadOnly/jdoe",
		UserID:    "AROAEXAMPLE:jdoe",
		Profile:   "my-dev",
	}, id)
	assert.Empty(t, f.stderr.String())
}

func TestCallerIdentity_CredentialFailures(t *testing.T) {
	tests := []struct {
		name     string
		cause    error
		kind     credguard.Kind
		headline string
	}{
		{
			name: "sso token missing",
			cause: sdkFailure("STS", "GetCallerIdentity",
				fmt.Errorf("failed to refresh cached credentials, %w",
					&ssocreds.InvalidTokenError{Err: errors.New("token expired")})),
			kind:     credguard.KindTokenRetrieval,
			headline: "AWS SSO session expired!",
		},
		{
			name: "expired token",
			cause: sdkFailure("STS", "GetCallerIdentity",
				&smithy.GenericAPIError{Code: "ExpiredToken", Message: "The security token included in the request is expired"}),
			kind:     credguard.KindExpiredToken,
			headline: "Temporary credentials expired!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, f := newTestService(t)
			f.sts.On("GetCallerIdentity", mock.Anything, mock.Anything).Return(nil, tt.cause)

			id, err := svc.CallerIdentity(context.Background())

			assert.Equal(t, Identity{}, id)
			require.ErrorIs(t, err, credguard.ErrCredentials)
			var credErr *credguard.CredentialError
			require.ErrorAs(t, err, &credErr)
			assert.Equal(t, tt.kind, credErr.Kind())
			assert.Equal(t, tt.headline+"\nPlease run: aws sso login --profile my-dev", err.Error())
			assert.Equal(t, tt.headline+"\nPlease run: aws sso login --profile my-dev\n", f.stderr.String())
		})
	}
}

func TestCallerIdentity_OtherFailurePassesThrough(t *testing.T) {
	svc, f := newTestService(t)
	cause := sdkFailure("STS", "GetCallerIdentity",
		&smithy.GenericAPIError{Code: "AccessDenied", Message: "no"})
	f.sts.On("GetCallerIdentity", mock.Anything, mock.Anything).Return(nil, cause)

	_, err := svc.CallerIdentity(context.Background())

	assert.Same(t, cause, err)
	assert.NotErrorIs(t, err, credguard.ErrCredentials)
	assert.Empty(t, f.stderr.String())
}

func TestProfile(t *testing.T) {
	svc, _ := newTestService(t)
	assert.Equal(t, "my-dev", svc.Profile())
}
