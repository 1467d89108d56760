package models

type Tag struct {
	TagID string `dynamodbav:"tagId" json:"tagId"`
	Name  string `dynamodbav:"name" json:"name"`
}

// TagsTable is the DynamoDB table name for business tags
const TagsTable = "Tags"
