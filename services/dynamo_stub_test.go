package services

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"
)

// stubDynamoAPI satisfies DynamoAPI with canned behavior per call. Any
// nil function returns an empty successful output.
type stubDynamoAPI struct {
	getItemFn    func(input *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	putItemFn    func(input *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error)
	queryFn      func(input *dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	scanFn       func(input *dynamodb.ScanInput) (*dynamodb.ScanOutput, error)
	updateItemFn func(input *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error)
}

func (s *stubDynamoAPI) GetItem(ctx context.Context, input *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if s.getItemFn == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return s.getItemFn(input)
}

func (s *stubDynamoAPI) PutItem(ctx context.Context, input *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if s.putItemFn == nil {
		return &dynamodb.PutItemOutput{}, nil
	}
	return s.putItemFn(input)
}

func (s *stubDynamoAPI) Query(ctx context.Context, input *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if s.queryFn == nil {
		return &dynamodb.QueryOutput{}, nil
	}
	return s.queryFn(input)
}

func (s *stubDynamoAPI) Scan(ctx context.Context, input *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if s.scanFn == nil {
		return &dynamodb.ScanOutput{}, nil
	}
	return s.scanFn(input)
}

func (s *stubDynamoAPI) UpdateItem(ctx context.Context, input *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if s.updateItemFn == nil {
		return &dynamodb.UpdateItemOutput{}, nil
	}
	return s.updateItemFn(input)
}

// recordedPut captures one PutItem call for later inspection.
type recordedPut struct {
	Table string
	Item  map[string]types.AttributeValue
}

func mustMarshal(t *testing.T, v interface{}) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(v)
	require.NoError(t, err)
	return item
}
