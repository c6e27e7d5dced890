// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/tfctl/awssso/internal/log"
)

// STSAPI is the subset of the STS client awssso calls.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// S3API is the subset of the S3 client awssso calls.
type S3API interface {
	ListBuckets(ctx context.Context, params *s3v2.ListBucketsInput, optFns ...func(*s3v2.Options)) (*s3v2.ListBucketsOutput, error)
	ListObjectsV2(ctx context.Context, params *s3v2.ListObjectsV2Input, optFns ...func(*s3v2.Options)) (*s3v2.ListObjectsV2Output, error)
	PutObject(ctx context.Context, params *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// DynamoDBAPI is the subset of the DynamoDB client awssso calls. It also
// satisfies dynamodb.ListTablesAPIClient so the SDK paginator can drive it.
type DynamoDBAPI interface {
	ListTables(ctx context.Context, params *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// SQSAPI is the subset of the SQS client awssso calls.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// SNSAPI is the subset of the SNS client awssso calls.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// LogsAPI is the subset of the CloudWatch Logs client awssso calls.
type LogsAPI interface {
	CreateLogGroup(ctx context.Context, params *cloudwatchlogs.CreateLogGroupInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogGroupOutput, error)
	CreateLogStream(ctx context.Context, params *cloudwatchlogs.CreateLogStreamInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error)
	PutLogEvents(ctx context.Context, params *cloudwatchlogs.PutLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error)
}

var (
	_ STSAPI                       = (*sts.Client)(nil)
	_ S3API                        = (*s3v2.Client)(nil)
	_ DynamoDBAPI                  = (*dynamodb.Client)(nil)
	_ dynamodb.ListTablesAPIClient = (DynamoDBAPI)(nil)
	_ SQSAPI                       = (*sqs.Client)(nil)
	_ SNSAPI                       = (*sns.Client)(nil)
	_ LogsAPI                      = (*cloudwatchlogs.Client)(nil)
)

// Clients bundles one client per service. Tests fill it with fakes.
type Clients struct {
	STS      STSAPI
	S3       S3API
	DynamoDB DynamoDBAPI
	SQS      SQSAPI
	SNS      SNSAPI
	Logs     LogsAPI
}

// NewClients constructs every service client from cfg. Construction is
// local; no request is sent until a client method is called.
func NewClients(cfg awsv2.Config) Clients {
	var s3Opts []func(*s3v2.Options)
	if cfg.BaseEndpoint != nil {
		s3Opts = append(s3Opts, WithS3PathStyle())
	}

	c := Clients{
		STS:      sts.NewFromConfig(cfg),
		S3:       NewS3(cfg, s3Opts...),
		DynamoDB: dynamodb.NewFromConfig(cfg),
		SQS:      sqs.NewFromConfig(cfg),
		SNS:      sns.NewFromConfig(cfg),
		Logs:     cloudwatchlogs.NewFromConfig(cfg),
	}
	log.Debugf("clients created: region=%s", cfg.Region)
	return c
}

// NewS3 constructs a v2 S3 client from the provided config. Additional service
// options can be supplied via optFns.
func NewS3(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *s3v2.Client {
	client := s3v2.NewFromConfig(cfg, optFns...)
	log.Debugf("s3 client created")
	return client
}

// WithS3PathStyle forces path-style addressing, which S3-compatible
// endpoints such as LocalStack or MinIO require.
func WithS3PathStyle() func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		o.UsePathStyle = true
	}
}
