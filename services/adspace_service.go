package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"adspot_server/models"
	"adspot_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ErrNoBusiness marks listing creation by users who own no business.
var ErrNoBusiness = errors.New("user has no associated business")

// placeholderImageURL is used until an image is uploaded for a listing.
const placeholderImageURL = "https://placehold.co/96x128"

type AdspaceService struct {
	Dynamo *DynamoService
}

// AdspaceWithBusiness is a listing joined with its owning business.
type AdspaceWithBusiness struct {
	models.Adspace
	Business models.Business `json:"business"`
}

type CreateAdspaceInput struct {
	OwnerID           string   `json:"ownerId"`
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	TypeID            string   `json:"typeId"`
	MaxWidth          float64  `json:"maxWidth"`
	MaxHeight         float64  `json:"maxHeight"`
	IsBarterAvailable bool     `json:"isBarterAvailable"`
	PricePerWeek      *float64 `json:"pricePerWeek,omitempty"`
}

// CreateAdspace adds a listing under the caller's business.
func (as *AdspaceService) CreateAdspace(ctx context.Context, input CreateAdspaceInput) (*models.Adspace, error) {
	if input.OwnerID == "" {
		return nil, ErrMissingUserID
	}
	if input.Name == "" || input.TypeID == "" {
		return nil, fmt.Errorf("%w: name and typeId are required", ErrInvalidInput)
	}

	business, err := fetchBusinessByOwner(ctx, as.Dynamo, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, ErrNoBusiness
	}

	adspaceType, err := as.getType(ctx, input.TypeID)
	if err != nil {
		return nil, err
	}

	adspace := models.Adspace{
		AdspaceID:         uuid.NewString(),
		BusinessID:        business.BusinessID,
		Name:              input.Name,
		Description:       input.Description,
		Type:              *adspaceType,
		MaxWidth:          input.MaxWidth,
		MaxHeight:         input.MaxHeight,
		ImageURL:          placeholderImageURL,
		IsBarterAvailable: input.IsBarterAvailable,
		PricePerWeek:      input.PricePerWeek,
		InUse:             false,
		CreatedAt:         time.Now().UTC().Format(time.RFC3339),
	}
	if err := as.Dynamo.PutItem(ctx, models.AdspacesTable, adspace); err != nil {
		return nil, fmt.Errorf("failed to create adspace: %w", err)
	}

	return &adspace, nil
}

// ListAdspaces returns every listing joined with its business.
func (as *AdspaceService) ListAdspaces(ctx context.Context) ([]AdspaceWithBusiness, error) {
	var adspaces []models.Adspace
	if err := as.Dynamo.ScanWithFilter(ctx, models.AdspacesTable, nil, &adspaces); err != nil {
		return nil, fmt.Errorf("failed to fetch adspaces: %w", err)
	}
	return as.joinBusinesses(ctx, adspaces)
}

// ListByOwner returns the listings under the caller's business.
func (as *AdspaceService) ListByOwner(ctx context.Context, ownerID string) ([]AdspaceWithBusiness, error) {
	if ownerID == "" {
		return nil, ErrMissingUserID
	}

	business, err := fetchBusinessByOwner(ctx, as.Dynamo, ownerID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return []AdspaceWithBusiness{}, nil
	}

	adspaces, err := fetchAdspacesByBusiness(ctx, as.Dynamo, business.BusinessID)
	if err != nil {
		return nil, err
	}

	joined := make([]AdspaceWithBusiness, 0, len(adspaces))
	for _, adspace := range adspaces {
		joined = append(joined, AdspaceWithBusiness{Adspace: adspace, Business: *business})
	}
	return joined, nil
}

// GetAdspace returns a single listing with its business, or nil when it
// does not exist.
func (as *AdspaceService) GetAdspace(ctx context.Context, adspaceID string) (*AdspaceWithBusiness, error) {
	adspace, err := fetchAdspace(ctx, as.Dynamo, adspaceID)
	if errors.Is(err, ErrItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	business, err := fetchBusiness(ctx, as.Dynamo, adspace.BusinessID)
	if err != nil {
		return nil, err
	}

	return &AdspaceWithBusiness{Adspace: *adspace, Business: *business}, nil
}

// ListTypes returns the listing categories.
func (as *AdspaceService) ListTypes(ctx context.Context) ([]models.AdspaceType, error) {
	var adspaceTypes []models.AdspaceType
	if err := as.Dynamo.ScanWithFilter(ctx, models.AdspaceTypesTable, nil, &adspaceTypes); err != nil {
		return nil, fmt.Errorf("failed to fetch adspace types: %w", err)
	}
	return adspaceTypes, nil
}

func (as *AdspaceService) getType(ctx context.Context, typeID string) (*models.AdspaceType, error) {
	item, err := as.Dynamo.GetItem(ctx, models.AdspaceTypesTable, map[string]types.AttributeValue{
		"typeId": &types.AttributeValueMemberS{Value: typeID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch adspace type '%s': %w", typeID, err)
	}

	var adspaceType models.AdspaceType
	if err := attributevalue.UnmarshalMap(item, &adspaceType); err != nil {
		return nil, fmt.Errorf("failed to parse adspace type: %w", err)
	}
	return &adspaceType, nil
}

func (as *AdspaceService) joinBusinesses(ctx context.Context, adspaces []models.Adspace) ([]AdspaceWithBusiness, error) {
	businesses := map[string]*models.Business{}
	joined := make([]AdspaceWithBusiness, 0, len(adspaces))
	for _, adspace := range adspaces {
		business, ok := businesses[adspace.BusinessID]
		if !ok {
			var err error
			business, err = fetchBusiness(ctx, as.Dynamo, adspace.BusinessID)
			if err != nil {
				return nil, err
			}
			businesses[adspace.BusinessID] = business
		}
		joined = append(joined, AdspaceWithBusiness{Adspace: adspace, Business: *business})
	}
	return joined, nil
}

// fetchAdspace loads a single listing by id.
func fetchAdspace(ctx context.Context, dynamo *DynamoService, adspaceID string) (*models.Adspace, error) {
	item, err := dynamo.GetItem(ctx, models.AdspacesTable, map[string]types.AttributeValue{
		"adspaceId": &types.AttributeValueMemberS{Value: adspaceID},
	})
	if err != nil {
		return nil, err
	}

	var adspace models.Adspace
	if err := attributevalue.UnmarshalMap(item, &adspace); err != nil {
		return nil, fmt.Errorf("failed to parse adspace: %w", err)
	}
	return &adspace, nil
}

// fetchAdspacesByBusiness loads every listing of one business via the
// businessId GSI.
func fetchAdspacesByBusiness(ctx context.Context, dynamo *DynamoService, businessID string) ([]models.Adspace, error) {
	keyCondition := "businessId = :businessId"
	expressionValues := map[string]types.AttributeValue{
		":businessId": &types.AttributeValueMemberS{Value: businessID},
	}

	items, err := dynamo.QueryItemsWithIndex(ctx, models.AdspacesTable, models.BusinessIndex, keyCondition, expressionValues, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch adspaces for business '%s': %w", businessID, err)
	}

	var adspaces []models.Adspace
	if err := attributevalue.UnmarshalListOfMaps(items, &adspaces); err != nil {
		return nil, fmt.Errorf("failed to parse adspaces: %w", err)
	}
	return adspaces, nil
}

// fetchBusiness loads a single business by id.
func fetchBusiness(ctx context.Context, dynamo *DynamoService, businessID string) (*models.Business, error) {
	item, err := dynamo.GetItem(ctx, models.BusinessesTable, map[string]types.AttributeValue{
		"businessId": &types.AttributeValueMemberS{Value: businessID},
	})
	if err != nil {
		return nil, err
	}

	var business models.Business
	if err := attributevalue.UnmarshalMap(item, &business); err != nil {
		return nil, fmt.Errorf("failed to parse business: %w", err)
	}
	return &business, nil
}

// fetchBusinessByOwner returns the first business owned by ownerID, or
// nil when the user owns none. The marketplace assumes one business per
// owner.
func fetchBusinessByOwner(ctx context.Context, dynamo *DynamoService, ownerID string) (*models.Business, error) {
	var businesses []models.Business
	err := dynamo.ScanWithFilter(ctx, models.BusinessesTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "ownerId") == ownerID
	}, &businesses)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch business for owner '%s': %w", ownerID, err)
	}

	if len(businesses) == 0 {
		return nil, nil
	}
	return &businesses[0], nil
}
