// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package service

import (
	"context"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials/ssocreds"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/awssso/internal/credguard"
)

func TestListTables_Paginates(t *testing.T) {
	svc, f := newTestService(t)
	f.ddb.On("ListTables", mock.Anything, mock.MatchedBy(func(in *dynamodb.ListTablesInput) bool {
		return in.ExclusiveStartTableName == nil
	})).Return(&dynamodb.ListTablesOutput{
		TableNames:             []string{"orders", "users"},
		LastEvaluatedTableName: awsv2.String("users"),
	}, nil).Once()
	f.ddb.On("ListTables", mock.Anything, mock.MatchedBy(func(in *dynamodb.ListTablesInput) bool {
		return awsv2.ToString(in.ExclusiveStartTableName) == "users"
	})).Return(&dynamodb.ListTablesOutput{
		TableNames: []string{"widgets"},
	}, nil).Once()

	names, err := svc.ListTables(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"orders", "users", "widgets"}, names)
}

func TestListTables_SessionExpired(t *testing.T) {
	svc, f := newTestService(t)
	f.ddb.On("ListTables", mock.Anything, mock.Anything).
		Return(nil, sdkFailure("DynamoDB", "ListTables", &ssocreds.InvalidTokenError{}))

	names, err := svc.ListTables(context.Background())

	assert.Nil(t, names)
	assert.ErrorIs(t, err, credguard.ErrCredentials)
	assert.Contains(t, f.stderr.String(), "AWS SSO session expired!")
}

func TestPutItem(t *testing.T) {
	svc, f := newTestService(t)
	f.ddb.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		pk, ok := in.Item["pk"].(*ddbtypes.AttributeValueMemberS)
		if !ok || pk.Value != "user#1" {
			return false
		}
		n, ok := in.Item["visits"].(*ddbtypes.AttributeValueMemberN)
		return ok && n.Value == "3" && awsv2.ToString(in.TableName) == "users"
	})).Return(&dynamodb.PutItemOutput{}, nil)

	err := svc.PutItem(context.Background(), "users", map[string]any{
		"pk":     "user#1",
		"visits": 3,
	})

	require.NoError(t, err)
}

func TestGetItem(t *testing.T) {
	svc, f := newTestService(t)
	f.ddb.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{
		Item: map[string]ddbtypes.AttributeValue{
			"pk":     &ddbtypes.AttributeValueMemberS{Value: "user#1"},
			"visits": &ddbtypes.AttributeValueMemberN{Value: "3"},
		},
	}, nil)

	item, err := svc.GetItem(context.Background(), "users", map[string]any{"pk": "user#1"})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"pk": "user#1", "visits": float64(3)}, item)
}

func TestGetItem_Absent(t *testing.T) {
	svc, f := newTestService(t)
	f.ddb.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

	item, err := svc.GetItem(context.Background(), "users", map[string]any{"pk": "nobody"})

	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestQuery(t *testing.T) {
	svc, f := newTestService(t)
	f.ddb.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		v, ok := in.ExpressionAttributeValues[":pk"].(*ddbtypes.AttributeValueMemberS)
		return ok && v.Value == "user#1" && awsv2.ToString(in.KeyConditionExpression) == "pk = :pk"
	})).Return(&dynamodb.QueryOutput{
		Items: []map[string]ddbtypes.AttributeValue{
			{"pk": &ddbtypes.AttributeValueMemberS{Value: "user#1"}, "sk": &ddbtypes.AttributeValueMemberS{Value: "a"}},
			{"pk": &ddbtypes.AttributeValueMemberS{Value: "user#1"}, "sk": &ddbtypes.AttributeValueMemberS{Value: "b"}},
		},
	}, nil)

	items, err := svc.Query(context.Background(), "users", "pk = :pk", map[string]any{":pk": "user#1"})

	require.NoError(t, err)
	assert.Equal(t, []map[string]any{
		{"pk": "user#1", "sk": "a"},
		{"pk": "user#1", "sk": "b"},
	}, items)
}

func TestQuery_NoItems(t *testing.T) {
	svc, f := newTestService(t)
	f.ddb.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{}, nil)

	items, err := svc.Query(context.Background(), "users", "pk = :pk", map[string]any{":pk": "x"})

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
