// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/require"

	awsx "github.com/tfctl/awssso/internal/aws"
	"github.com/tfctl/awssso/internal/config"
	"github.com/tfctl/awssso/internal/credguard"
	"github.com/tfctl/awssso/internal/meta"
	"github.com/tfctl/awssso/internal/service"
)

// stubAWS implements every client interface with canned answers. Inputs of
// interest are recorded for assertions.
type stubAWS struct {
	mu sync.Mutex

	identityErr error
	buckets     []string
	bucketsErr  error
	objects     []s3types.Object
	body        string
	tables      []string
	tablesErr   error
	item        map[string]ddbtypes.AttributeValue
	messageID   string

	putObject   *s3v2.PutObjectInput
	putBody     string
	putItem     *dynamodb.PutItemInput
	sendMessage *sqs.SendMessageInput
	publish     *sns.PublishInput
	logEvents   *cloudwatchlogs.PutLogEventsInput
}

func (s *stubAWS) GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	if s.identityErr != nil {
		return nil, s.identityErr
	}
	return &sts.GetCallerIdentityOutput{
		Account: awsv2.String("123456789012"),
		Arn:     awsv2.String("arn:aws:sts::123456789012:assumed-role/dev/ada"),
		UserId:  awsv2.String("AROAEXAMPLE:ada"),
	}, nil
}

func (s *stubAWS) ListBuckets(context.Context, *s3v2.ListBucketsInput, ...func(*s3v2.Options)) (*s3v2.ListBucketsOutput, error) {
	if s.bucketsErr != nil {
		return nil, s.bucketsErr
	}
	out := &s3v2.ListBucketsOutput{}
	for _, b := range s.buckets {
		out.Buckets = append(out.Buckets, s3types.Bucket{Name: awsv2.String(b)})
	}
	return out, nil
}

func (s *stubAWS) ListObjectsV2(context.Context, *s3v2.ListObjectsV2Input, ...func(*s3v2.Options)) (*s3v2.ListObjectsV2Output, error) {
	return &s3v2.ListObjectsV2Output{Contents: s.objects}, nil
}

func (s *stubAWS) PutObject(_ context.Context, in *s3v2.PutObjectInput, _ ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error) {
	body, _ := io.ReadAll(in.Body)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putObject, s.putBody = in, string(body)
	return &s3v2.PutObjectOutput{}, nil
}

func (s *stubAWS) GetObject(context.Context, *s3v2.GetObjectInput, ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	return &s3v2.GetObjectOutput{Body: io.NopCloser(strings.NewReader(s.body))}, nil
}

func (s *stubAWS) ListTables(context.Context, *dynamodb.ListTablesInput, ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error) {
	if s.tablesErr != nil {
		return nil, s.tablesErr
	}
	return &dynamodb.ListTablesOutput{TableNames: s.tables}, nil
}

func (s *stubAWS) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putItem = in
	return &dynamodb.PutItemOutput{}, nil
}

func (s *stubAWS) GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: s.item}, nil
}

func (s *stubAWS) Query(context.Context, *dynamodb.QueryInput, ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	var items []map[string]ddbtypes.AttributeValue
	if s.item != nil {
		items = append(items, s.item)
	}
	return &dynamodb.QueryOutput{Items: items}, nil
}

func (s *stubAWS) SendMessage(_ context.Context, in *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendMessage = in
	return &sqs.SendMessageOutput{MessageId: awsv2.String(s.messageID)}, nil
}

func (s *stubAWS) ReceiveMessage(context.Context, *sqs.ReceiveMessageInput, ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	return &sqs.ReceiveMessageOutput{}, nil
}

func (s *stubAWS) DeleteMessage(context.Context, *sqs.DeleteMessageInput, ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	return &sqs.DeleteMessageOutput{}, nil
}

func (s *stubAWS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publish = in
	return &sns.PublishOutput{MessageId: awsv2.String(s.messageID)}, nil
}

func (s *stubAWS) CreateLogGroup(context.Context, *cloudwatchlogs.CreateLogGroupInput, ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogGroupOutput, error) {
	return &cloudwatchlogs.CreateLogGroupOutput{}, nil
}

func (s *stubAWS) CreateLogStream(context.Context, *cloudwatchlogs.CreateLogStreamInput, ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error) {
	return &cloudwatchlogs.CreateLogStreamOutput{}, nil
}

func (s *stubAWS) PutLogEvents(_ context.Context, in *cloudwatchlogs.PutLogEventsInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logEvents = in
	return &cloudwatchlogs.PutLogEventsOutput{}, nil
}

// runResult is what one invocation of the app produced.
type runResult struct {
	stdout   string
	stderr   string
	err      error
	settings service.Settings
}

// runApp runs awssso with args against stub. stdin feeds "-" arguments.
func runApp(t *testing.T, stub *stubAWS, stdin string, args ...string) runResult {
	t.Helper()
	return runAppWithConfig(t, stub, config.Type{}, stdin, args...)
}

// runAppWithConfig is runApp with a loaded config file.
func runAppWithConfig(t *testing.T, stub *stubAWS, cfg config.Type, stdin string, args ...string) runResult {
	t.Helper()
	for _, key := range []string{"AWS_PROFILE", "AWS_REGION", EnvEndpoint, "AWSSSO_ADDR"} {
		// Setenv restores the original value on cleanup; the variable must be
		// absent, not empty, for config file sources to be consulted.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	var res runResult
	m := meta.Meta{
		Args:    append([]string{"awssso"}, args...),
		Config:  cfg,
		Context: context.Background(),
		NewService: func(_ context.Context, s service.Settings, opts ...credguard.Option) (*service.Service, error) {
			res.settings = s
			clients := awsx.Clients{
				STS:      stub,
				S3:       stub,
				DynamoDB: stub,
				SQS:      stub,
				SNS:      stub,
				Logs:     stub,
			}
			return service.New(clients, credguard.New(s.Profile, opts...)), nil
		},
	}

	var stdout, stderr bytes.Buffer
	app := NewApp(m)
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.Reader = strings.NewReader(stdin)

	res.err = app.Run(context.Background(), m.Args)
	res.stdout, res.stderr = stdout.String(), stderr.String()
	return res
}
