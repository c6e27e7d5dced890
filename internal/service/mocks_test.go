// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/mock"

	awsx "github.com/tfctl/awssso/internal/aws"
	"github.com/tfctl/awssso/internal/credguard"
)

// result pulls a typed value and error out of mock arguments. A nil first
// return is allowed.
func result[T any](args mock.Arguments) (T, error) {
	v, _ := args.Get(0).(T)
	return v, args.Error(1)
}

type mockSTS struct{ mock.Mock }

func (m *mockSTS) GetCallerIdentity(ctx context.Context, in *sts.GetCallerIdentityInput, _ ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return result[*sts.GetCallerIdentityOutput](m.Called(ctx, in))
}

type mockS3 struct{ mock.Mock }

func (m *mockS3) ListBuckets(ctx context.Context, in *s3v2.ListBucketsInput, _ ...func(*s3v2.Options)) (*s3v2.ListBucketsOutput, error) {
	return result[*s3v2.ListBucketsOutput](m.Called(ctx, in))
}

func (m *mockS3) ListObjectsV2(ctx context.Context, in *s3v2.ListObjectsV2Input, _ ...func(*s3v2.Options)) (*s3v2.ListObjectsV2Output, error) {
	return result[*s3v2.ListObjectsV2Output](m.Called(ctx, in))
}

func (m *mockS3) PutObject(ctx context.Context, in *s3v2.PutObjectInput, _ ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error) {
	return result[*s3v2.PutObjectOutput](m.Called(ctx, in))
}

func (m *mockS3) GetObject(ctx context.Context, in *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	return result[*s3v2.GetObjectOutput](m.Called(ctx, in))
}

type mockDynamoDB struct{ mock.Mock }

func (m *mockDynamoDB) ListTables(ctx context.Context, in *dynamodb.ListTablesInput, _ ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error) {
	return result[*dynamodb.ListTablesOutput](m.Called(ctx, in))
}

func (m *mockDynamoDB) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return result[*dynamodb.PutItemOutput](m.Called(ctx, in))
}

func (m *mockDynamoDB) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return result[*dynamodb.GetItemOutput](m.Called(ctx, in))
}

func (m *mockDynamoDB) Query(ctx context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return result[*dynamodb.QueryOutput](m.Called(ctx, in))
}

type mockSQS struct{ mock.Mock }

func (m *mockSQS) SendMessage(ctx context.Context, in *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	return result[*sqs.SendMessageOutput](m.Called(ctx, in))
}

func (m *mockSQS) ReceiveMessage(ctx context.Context, in *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	return result[*sqs.ReceiveMessageOutput](m.Called(ctx, in))
}

func (m *mockSQS) DeleteMessage(ctx context.Context, in *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	return result[*sqs.DeleteMessageOutput](m.Called(ctx, in))
}

type mockSNS struct{ mock.Mock }

func (m *mockSNS) Publish(ctx context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return result[*sns.PublishOutput](m.Called(ctx, in))
}

type mockLogs struct{ mock.Mock }

func (m *mockLogs) CreateLogGroup(ctx context.Context, in *cloudwatchlogs.CreateLogGroupInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogGroupOutput, error) {
	return result[*cloudwatchlogs.CreateLogGroupOutput](m.Called(ctx, in))
}

func (m *mockLogs) CreateLogStream(ctx context.Context, in *cloudwatchlogs.CreateLogStreamInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error) {
	return result[*cloudwatchlogs.CreateLogStreamOutput](m.Called(ctx, in))
}

func (m *mockLogs) PutLogEvents(ctx context.Context, in *cloudwatchlogs.PutLogEventsInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error) {
	return result[*cloudwatchlogs.PutLogEventsOutput](m.Called(ctx, in))
}

type fakes struct {
	sts    *mockSTS
	s3     *mockS3
	ddb    *mockDynamoDB
	sqs    *mockSQS
	sns    *mockSNS
	logs   *mockLogs
	stderr *bytes.Buffer
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// newTestService returns a Service for profile "my-dev" backed by mocks and
// a clock frozen at fixedNow.
func newTestService(t *testing.T) (*Service, *fakes) {
	t.Helper()
	f := &fakes{
		sts:    new(mockSTS),
		s3:     new(mockS3),
		ddb:    new(mockDynamoDB),
		sqs:    new(mockSQS),
		sns:    new(mockSNS),
		logs:   new(mockLogs),
		stderr: new(bytes.Buffer),
	}
	svc := New(awsx.Clients{
		STS:      f.sts,
		S3:       f.s3,
		DynamoDB: f.ddb,
		SQS:      f.sqs,
		SNS:      f.sns,
		Logs:     f.logs,
	}, credguard.New("my-dev", credguard.WithStderr(f.stderr)))
	svc.now = func() time.Time { return fixedNow }

	t.Cleanup(func() {
		f.sts.AssertExpectations(t)
		f.s3.AssertExpectations(t)
		f.ddb.AssertExpectations(t)
		f.sqs.AssertExpectations(t)
		f.sns.AssertExpectations(t)
		f.logs.AssertExpectations(t)
	})
	return svc, f
}
