package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"adspot_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrEmailTaken marks registration attempts with an already used email.
var ErrEmailTaken = errors.New("email is already registered")

type UserService struct {
	Dynamo *DynamoService
}

type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Register creates an account with a bcrypt-hashed credential.
func (us *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if input.FirstName == "" || input.LastName == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: firstName, lastName and email are required", ErrInvalidInput)
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	taken, err := us.emailExists(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		UserID:       uuid.NewString(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := us.Dynamo.PutItem(ctx, models.UsersTable, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// GetUser retrieves an account by id.
func (us *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	item, err := us.Dynamo.GetItem(ctx, models.UsersTable, map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	})
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	return &user, nil
}

func (us *UserService) emailExists(ctx context.Context, email string) (bool, error) {
	keyCondition := "email = :email"
	expressionValues := map[string]types.AttributeValue{
		":email": &types.AttributeValueMemberS{Value: email},
	}

	items, err := us.Dynamo.QueryItemsWithIndex(ctx, models.UsersTable, models.EmailIndex, keyCondition, expressionValues, nil, 1)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return len(items) > 0, nil
}
