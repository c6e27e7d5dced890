// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"bytes"
	"context"
	"io"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/awssso/internal/credguard"
	"github.com/tfctl/awssso/internal/log"
)

const (
	// DefaultMaxKeys caps a single ListObjects page.
	DefaultMaxKeys = 100
	// DefaultContentType is used by Upload when none is given.
	DefaultContentType = "application/octet-stream"
	// defaultStorageClass is reported when S3 omits the class.
	defaultStorageClass = "STANDARD"
)

// Object is one entry of a bucket listing.
type Object struct {
	Key          string `json:"key"`
	Size         int64  `json:"size"`
	LastModified string `json:"last_modified"`
	StorageClass string `json:"storage_class"`
}

// Upload describes an object written by Upload.
type Upload struct {
	Bucket      string `json:"bucket"`
	Key         string `json:"key"`
	Size        int    `json:"size"`
	ContentType string `json:"content_type"`
}

// ListBuckets returns the names of all buckets visible to the credentials.
func (s *Service) ListBuckets(ctx context.Context) ([]string, error) {
	return credguard.Do(ctx, s.guard, func(ctx context.Context) ([]string, error) {
		out, err := s.clients.S3.ListBuckets(ctx, &s3v2.ListBucketsInput{})
		if err != nil {
			return nil, err
		}

		names := make([]string, 0, len(out.Buckets))
		for _, b := range out.Buckets {
			names = append(names, awsv2.ToString(b.Name))
		}
		log.Debugf("s3 list buckets: count=%d", len(names))
		return names, nil
	})
}

// ListObjects returns up to maxKeys objects under prefix. Only the first
// page is returned; maxKeys <= 0 means DefaultMaxKeys.
func (s *Service) ListObjects(ctx context.Context, bucket, prefix string, maxKeys int32) ([]Object, error) {
	if maxKeys <= 0 {
		maxKeys = DefaultMaxKeys
	}

	return credguard.Do(ctx, s.guard, func(ctx context.Context) ([]Object, error) {
		in := &s3v2.ListObjectsV2Input{
			Bucket:  awsv2.String(bucket),
			MaxKeys: awsv2.Int32(maxKeys),
		}
		if prefix != "" {
			in.Prefix = awsv2.String(prefix)
		}

		out, err := s.clients.S3.ListObjectsV2(ctx, in)
		if err != nil {
			return nil, err
		}

		objects := make([]Object, 0, len(out.Contents))
		for _, o := range out.Contents {
			obj := Object{
				Key:          awsv2.ToString(o.Key),
				Size:         awsv2.ToInt64(o.Size),
				StorageClass: string(o.StorageClass),
			}
			if o.LastModified != nil {
				obj.LastModified = o.LastModified.UTC().Format(time.RFC3339)
			}
			if obj.StorageClass == "" {
				obj.StorageClass = defaultStorageClass
			}
			objects = append(objects, obj)
		}
		log.Debugf("s3 list objects: bucket=%s, prefix=%s, count=%d", bucket, prefix, len(objects))
		return objects, nil
	})
}

// Upload writes content to bucket/key.
func (s *Service) Upload(ctx context.Context, bucket, key string, content []byte, contentType string) (Upload, error) {
	if contentType == "" {
		contentType = DefaultContentType
	}

	return credguard.Do(ctx, s.guard, func(ctx context.Context) (Upload, error) {
		_, err := s.clients.S3.PutObject(ctx, &s3v2.PutObjectInput{
			Bucket:      awsv2.String(bucket),
			Key:         awsv2.String(key),
			Body:        bytes.NewReader(content),
			ContentType: awsv2.String(contentType),
		})
		if err != nil {
			return Upload{}, err
		}
		log.Debugf("s3 put object: bucket=%s, key=%s, size=%d", bucket, key, len(content))
		return Upload{
			Bucket:      bucket,
			Key:         key,
			Size:        len(content),
			ContentType: contentType,
		}, nil
	})
}

// Download returns the full body of bucket/key.
func (s *Service) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	return credguard.Do(ctx, s.guard, func(ctx context.Context) ([]byte, error) {
		out, err := s.clients.S3.GetObject(ctx, &s3v2.GetObjectInput{
			Bucket: awsv2.String(bucket),
			Key:    awsv2.String(key),
		})
		if err != nil {
			return nil, err
		}
		defer out.Body.Close()

		data, err := io.ReadAll(out.Body)
		if err != nil {
			return nil, err
		}
		log.Debugf("s3 get object: bucket=%s, key=%s, size=%d", bucket, key, len(data))
		return data, nil
	})
}
