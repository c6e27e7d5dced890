// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"encoding/base64"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/tfctl/awssso/internal/credguard"
	"github.com/tfctl/awssso/internal/log"
)

const (
	// DefaultMaxMessages is the largest batch SQS will return.
	DefaultMaxMessages = 10
	// DefaultWaitSeconds is the long-poll wait used by the CLI.
	DefaultWaitSeconds = 20

	attrTypeString = "String"
)

// Message is one received SQS message.
type Message struct {
	MessageID         string            `json:"message_id"`
	ReceiptHandle     string            `json:"receipt_handle"`
	Body              string            `json:"body"`
	Attributes        map[string]string `json:"attributes,omitempty"`
	MessageAttributes map[string]string `json:"message_attributes,omitempty"`
}

// SendMessage enqueues body on queueURL and returns the message id. attrs
// are sent as String message attributes.
func (s *Service) SendMessage(ctx context.Context, queueURL, body string, attrs map[string]string) (string, error) {
	in := &sqs.SendMessageInput{
		QueueUrl:    awsv2.String(queueURL),
		MessageBody: awsv2.String(body),
	}
	if len(attrs) > 0 {
		in.MessageAttributes = make(map[string]sqstypes.MessageAttributeValue, len(attrs))
		for k, v := range attrs {
			in.MessageAttributes[k] = sqstypes.MessageAttributeValue{
				DataType:    awsv2.String(attrTypeString),
				StringValue: awsv2.String(v),
			}
		}
	}

	return credguard.Do(ctx, s.guard, func(ctx context.Context) (string, error) {
		out, err := s.clients.SQS.SendMessage(ctx, in)
		if err != nil {
			return "", err
		}
		log.Debugf("sqs send: queue=%s, id=%s", queueURL, awsv2.ToString(out.MessageId))
		return awsv2.ToString(out.MessageId), nil
	})
}

// ReceiveMessages long-polls queueURL for up to waitSeconds and returns at
// most maxMessages. maxMessages <= 0 means DefaultMaxMessages; waitSeconds of
// zero is a short poll.
func (s *Service) ReceiveMessages(ctx context.Context, queueURL string, maxMessages, waitSeconds int32) ([]Message, error) {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	if waitSeconds < 0 {
		waitSeconds = 0
	}

	return credguard.Do(ctx, s.guard, func(ctx context.Context) ([]Message, error) {
		out, err := s.clients.SQS.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:              awsv2.String(queueURL),
			MaxNumberOfMessages:   maxMessages,
			WaitTimeSeconds:       waitSeconds,
			MessageAttributeNames: []string{"All"},
		})
		if err != nil {
			return nil, err
		}

		msgs := make([]Message, 0, len(out.Messages))
		for _, m := range out.Messages {
			msgs = append(msgs, Message{
				MessageID:         awsv2.ToString(m.MessageId),
				ReceiptHandle:     awsv2.ToString(m.ReceiptHandle),
				Body:              awsv2.ToString(m.Body),
				Attributes:        m.Attributes,
				MessageAttributes: flattenAttributes(m.MessageAttributes),
			})
		}
		log.Debugf("sqs receive: queue=%s, count=%d", queueURL, len(msgs))
		return msgs, nil
	})
}

// DeleteMessage acknowledges a received message.
func (s *Service) DeleteMessage(ctx context.Context, queueURL, receiptHandle string) error {
	return credguard.Run(ctx, s.guard, func(ctx context.Context) error {
		_, err := s.clients.SQS.DeleteMessage(ctx, &sqs.DeleteMessageInput{
			QueueUrl:      awsv2.String(queueURL),
			ReceiptHandle: awsv2.String(receiptHandle),
		})
		return err
	})
}

// Publish sends message to topicARN and returns the message id. An empty
// subject is omitted.
func (s *Service) Publish(ctx context.Context, topicARN, message, subject string) (string, error) {
	in := &sns.PublishInput{
		TopicArn: awsv2.String(topicARN),
		Message:  awsv2.String(message),
	}
	if subject != "" {
		in.Subject = awsv2.String(subject)
	}

	return credguard.Do(ctx, s.guard, func(ctx context.Context) (string, error) {
		out, err := s.clients.SNS.Publish(ctx, in)
		if err != nil {
			return "", err
		}
		log.Debugf("sns publish: topic=%s, id=%s", topicARN, awsv2.ToString(out.MessageId))
		return awsv2.ToString(out.MessageId), nil
	})
}

// flattenAttributes keeps string and number values as is and base64 encodes
// binary ones.
func flattenAttributes(in map[string]sqstypes.MessageAttributeValue) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch {
		case v.StringValue != nil:
			out[k] = *v.StringValue
		case v.BinaryValue != nil:
			out[k] = base64.StdEncoding.EncodeToString(v.BinaryValue)
		default:
			out[k] = ""
		}
	}
	return out
}
