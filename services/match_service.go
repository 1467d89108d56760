package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"adspot_server/models"
	"adspot_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// candidateSampleSize bounds how many eligible businesses are collected
// before one is picked at random. Selection is uniform over the sample,
// not over the whole eligible pool, so large pools are not scanned to
// exhaustion on every call.
const candidateSampleSize = 10

var (
	// ErrMissingUserID marks calls that arrive without an acting user.
	ErrMissingUserID = errors.New("missing acting user id")

	// ErrInvalidDirection marks swipe directions outside {left, right}.
	ErrInvalidDirection = errors.New("direction must be 'left' or 'right'")

	// ErrInvalidInput wraps request validation failures so controllers
	// can report them as client errors.
	ErrInvalidInput = errors.New("invalid input")
)

type MatchService struct {
	Dynamo *DynamoService
}

// SwipeResult is the outcome of recording a swipe. ChatID and
// MatchedBusinessName are nil unless a match was made.
type SwipeResult struct {
	Matched             bool    `json:"matched"`
	ChatID              *string `json:"chatId"`
	MatchedBusinessName *string `json:"matchedBusinessName"`
}

// GetNextCandidate returns a business the user has not swiped yet, does
// not own, and that has at least one listing. A nil card with a nil
// error means the eligible pool is exhausted.
func (ms *MatchService) GetNextCandidate(ctx context.Context, userID string) (*models.BusinessCard, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	swiped, err := ms.swipedBusinessIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch swipe history: %w", err)
	}

	var businesses []models.Business
	err = ms.Dynamo.ScanWithFilter(ctx, models.BusinessesTable, func(item map[string]types.AttributeValue) bool {
		businessID := utils.ExtractString(item, "businessId")
		if _, seen := swiped[businessID]; seen {
			return false
		}
		return utils.ExtractString(item, "ownerId") != userID
	}, &businesses)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate businesses: %w", err)
	}

	// Keep only businesses with at least one listing, up to the sample bound.
	cards := make([]models.BusinessCard, 0, candidateSampleSize)
	for _, business := range businesses {
		adspaces, err := fetchAdspacesByBusiness(ctx, ms.Dynamo, business.BusinessID)
		if err != nil {
			return nil, err
		}
		if len(adspaces) == 0 {
			continue
		}
		cards = append(cards, models.BusinessCard{Business: business, Adspaces: adspaces})
		if len(cards) == candidateSampleSize {
			break
		}
	}

	if len(cards) == 0 {
		return nil, nil
	}

	card := cards[rand.Intn(len(cards))]
	return &card, nil
}

// RecordSwipe appends the swipe and, on a right swipe, creates a chat
// between the swiper and the business owner. Matching is unilateral: a
// right swipe is a match, no reciprocal swipe is required.
func (ms *MatchService) RecordSwipe(ctx context.Context, userID, targetBusinessID, direction string) (*SwipeResult, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if targetBusinessID == "" {
		return nil, fmt.Errorf("%w: targetBusinessId is required", ErrInvalidInput)
	}
	if direction != models.DirectionLeft && direction != models.DirectionRight {
		return nil, ErrInvalidDirection
	}

	swipe := models.Swipe{
		SwipeID:          uuid.NewString(),
		SwiperID:         userID,
		TargetBusinessID: targetBusinessID,
		Direction:        direction,
		CreatedAt:        time.Now().UTC().Format(time.RFC3339),
	}
	if err := ms.Dynamo.PutItem(ctx, models.SwipesTable, swipe); err != nil {
		return nil, fmt.Errorf("failed to record swipe: %w", err)
	}

	if direction == models.DirectionLeft {
		return &SwipeResult{Matched: false}, nil
	}

	item, err := ms.Dynamo.GetItem(ctx, models.BusinessesTable, map[string]types.AttributeValue{
		"businessId": &types.AttributeValueMemberS{Value: targetBusinessID},
	})
	if errors.Is(err, ErrItemNotFound) {
		// The target vanished between the card being shown and the
		// swipe landing. The swipe stays recorded, no match is made.
		log.Printf("⚠️ Right-swiped business %s no longer exists, skipping match", targetBusinessID)
		return &SwipeResult{Matched: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch target business: %w", err)
	}

	var business models.Business
	if err := attributevalue.UnmarshalMap(item, &business); err != nil {
		return nil, fmt.Errorf("failed to parse target business: %w", err)
	}

	adspaces, err := fetchAdspacesByBusiness(ctx, ms.Dynamo, business.BusinessID)
	if err != nil {
		return nil, err
	}

	chat := models.Chat{
		ChatID:       uuid.NewString(),
		Participants: []string{userID, business.OwnerID},
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if len(adspaces) > 0 {
		chat.AdspaceIDs = []string{adspaces[0].AdspaceID}
	}
	if err := ms.Dynamo.PutItem(ctx, models.ChatsTable, chat); err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}

	log.Printf("🎉 Instant match: user %s and business %q, chat %s", userID, business.Name, chat.ChatID)

	return &SwipeResult{
		Matched:             true,
		ChatID:              &chat.ChatID,
		MatchedBusinessName: &business.Name,
	}, nil
}

// swipedBusinessIDs collects the ids of every business the user has
// swiped, in either direction.
func (ms *MatchService) swipedBusinessIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	keyCondition := "swiperId = :swiper"
	expressionValues := map[string]types.AttributeValue{
		":swiper": &types.AttributeValueMemberS{Value: userID},
	}

	items, err := ms.Dynamo.QueryItemsWithIndex(ctx, models.SwipesTable, models.SwiperIndex, keyCondition, expressionValues, nil, 0)
	if err != nil {
		return nil, err
	}

	var swipes []models.Swipe
	if err := attributevalue.UnmarshalListOfMaps(items, &swipes); err != nil {
		return nil, fmt.Errorf("failed to parse swipes: %w", err)
	}

	swiped := make(map[string]struct{}, len(swipes))
	for _, s := range swipes {
		swiped[s.TargetBusinessID] = struct{}{}
	}
	return swiped, nil
}
