package models

// Message is keyed by chatId (partition) + createdAt (sort).
type Message struct {
	ChatID    string `dynamodbav:"chatId" json:"chatId"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
	MessageID string `dynamodbav:"messageId" json:"messageId"`
	SenderID  string `dynamodbav:"senderId" json:"senderId"`
	Content   string `dynamodbav:"content" json:"content"`
	IsRead    bool   `dynamodbav:"isRead" json:"isRead"`
}

// MessagesTable is the DynamoDB table name for chat messages
const MessagesTable = "Messages"
