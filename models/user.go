package models

// User defines the structure for registered accounts
type User struct {
	UserID       string `dynamodbav:"userId" json:"userId"`
	FirstName    string `dynamodbav:"firstName" json:"firstName"`
	LastName     string `dynamodbav:"lastName" json:"lastName"`
	Email        string `dynamodbav:"email" json:"email"`
	PasswordHash string `dynamodbav:"passwordHash" json:"-"`
	CreatedAt    string `dynamodbav:"createdAt" json:"createdAt"`
}

// UsersTable is the DynamoDB table name for user accounts
const UsersTable = "Users"

// EmailIndex is the GSI used to look up accounts by email
const EmailIndex = "email-index"
