// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

//go:build integration
// +build integration

package aws

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadIntegrationConfig uses AWS_PROFILE (an SSO profile that has been
// logged in with `aws sso login`) or the default chain.
func loadIntegrationConfig(t *testing.T) awsv2.Config {
	t.Helper()
	cfg, err := LoadAWSConfig(context.Background(),
		WithProfile(os.Getenv("AWS_PROFILE")),
		WithRegion("us-east-1"),
	)
	require.NoError(t, err)
	return cfg
}

// TestIntegration_CallerIdentity verifies the loaded credentials resolve to
// a real identity.
func TestIntegration_CallerIdentity(t *testing.T) {
	cfg := loadIntegrationConfig(t)
	c := NewClients(cfg)

	out, err := c.STS.GetCallerIdentity(context.Background(), &sts.GetCallerIdentityInput{})
	require.NoError(t, err)
	assert.NotEmpty(t, awsv2.ToString(out.Account))
	assert.NotEmpty(t, awsv2.ToString(out.Arn))
}

// TestIntegration_S3PutGetDelete verifies real S3 bucket operations using
// the configured profile.
func TestIntegration_S3PutGetDelete(t *testing.T) {
	ctx := context.Background()
	client := NewS3(loadIntegrationConfig(t))

	bucketName := fmt.Sprintf("awssso-test-%d", time.Now().UnixNano())
	testKey := "test-object.txt"
	testData := []byte("Hello from awssso!")

	_, err := client.CreateBucket(ctx, &s3v2.CreateBucketInput{
		Bucket: awsv2.String(bucketName),
	})
	require.NoError(t, err)
	defer func() {
		_, _ = client.DeleteObject(ctx, &s3v2.DeleteObjectInput{
			Bucket: awsv2.String(bucketName),
			Key:    awsv2.String(testKey),
		})
		_, _ = client.DeleteBucket(ctx, &s3v2.DeleteBucketInput{
			Bucket: awsv2.String(bucketName),
		})
	}()

	_, err = client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket: awsv2.String(bucketName),
		Key:    awsv2.String(testKey),
		Body:   bytes.NewReader(testData),
	})
	require.NoError(t, err)

	result, err := client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(bucketName),
		Key:    awsv2.String(testKey),
	})
	require.NoError(t, err)
	defer result.Body.Close()

	body, err := io.ReadAll(result.Body)
	require.NoError(t, err)
	assert.Equal(t, testData, body)
}
