// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/tfctl/awssso/internal/credguard"
	"github.com/tfctl/awssso/internal/log"
)

// ListTables returns every table name in the region. Paging is left to the
// SDK paginator.
func (s *Service) ListTables(ctx context.Context) ([]string, error) {
	return credguard.Do(ctx, s.guard, func(ctx context.Context) ([]string, error) {
		var names []string
		paginator := dynamodb.NewListTablesPaginator(s.clients.DynamoDB, &dynamodb.ListTablesInput{})
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			names = append(names, page.TableNames...)
		}
		log.Debugf("dynamodb list tables: count=%d", len(names))
		return names, nil
	})
}

// PutItem writes item, a document of plain Go values, to table.
func (s *Service) PutItem(ctx context.Context, table string, item map[string]any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	return credguard.Run(ctx, s.guard, func(ctx context.Context) error {
		_, err := s.clients.DynamoDB.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: awsv2.String(table),
			Item:      av,
		})
		return err
	})
}

// GetItem returns the item with the given primary key, or nil when the table
// has no such item.
func (s *Service) GetItem(ctx context.Context, table string, key map[string]any) (map[string]any, error) {
	av, err := attributevalue.MarshalMap(key)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key: %w", err)
	}

	out, err := credguard.Do(ctx, s.guard, func(ctx context.Context) (*dynamodb.GetItemOutput, error) {
		return s.clients.DynamoDB.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: awsv2.String(table),
			Key:       av,
		})
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		log.Debugf("dynamodb get item: table=%s, found=false", table)
		return nil, nil
	}

	var item map[string]any
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return item, nil
}

// Query runs keyCondition against table with the given placeholder values,
// e.g. "pk = :pk" and {":pk": "user#1"}. Only the first page is returned.
func (s *Service) Query(ctx context.Context, table, keyCondition string, values map[string]any) ([]map[string]any, error) {
	av, err := attributevalue.MarshalMap(values)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal expression values: %w", err)
	}

	out, err := credguard.Do(ctx, s.guard, func(ctx context.Context) (*dynamodb.QueryOutput, error) {
		return s.clients.DynamoDB.Query(ctx, &dynamodb.QueryInput{
			TableName:                 awsv2.String(table),
			KeyConditionExpression:    awsv2.String(keyCondition),
			ExpressionAttributeValues: av,
		})
	})
	if err != nil {
		return nil, err
	}

	items := []map[string]any{}
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal items: %w", err)
	}
	log.Debugf("dynamodb query: table=%s, count=%d", table, len(items))
	return items, nil
}
