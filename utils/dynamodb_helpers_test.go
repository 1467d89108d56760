package utils

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
)

func TestExtractString(t *testing.T) {
	item := map[string]types.AttributeValue{
		"name":  &types.AttributeValueMemberS{Value: "Kawiarnia Centrum"},
		"count": &types.AttributeValueMemberN{Value: "3"},
	}

	assert.Equal(t, "Kawiarnia Centrum", ExtractString(item, "name"))
	assert.Equal(t, "", ExtractString(item, "missing"))
	assert.Equal(t, "", ExtractString(item, "count"), "non-string attributes yield empty")
}

func TestExtractStringList(t *testing.T) {
	item := map[string]types.AttributeValue{
		"participants": &types.AttributeValueMemberL{Value: []types.AttributeValue{
			&types.AttributeValueMemberS{Value: "user-1"},
			&types.AttributeValueMemberN{Value: "42"},
			&types.AttributeValueMemberS{Value: "user-2"},
		}},
		"name": &types.AttributeValueMemberS{Value: "not a list"},
	}

	assert.Equal(t, []string{"user-1", "user-2"}, ExtractStringList(item, "participants"))
	assert.Nil(t, ExtractStringList(item, "missing"))
	assert.Nil(t, ExtractStringList(item, "name"))
}
