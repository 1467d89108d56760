package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"adspot_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// nominatimBaseURL is the forward-geocoding endpoint; overridable in tests.
const nominatimBaseURL = "https://nominatim.openstreetmap.org/search"

type BusinessService struct {
	Dynamo *DynamoService

	// GeocodeBaseURL and HTTPClient default to Nominatim over a shared
	// client when left zero.
	GeocodeBaseURL string
	HTTPClient     *http.Client
}

type CreateBusinessInput struct {
	OwnerID     string   `json:"ownerId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	NIP         string   `json:"nip"`
	PKD         string   `json:"pkd"`
	TagIDs      []string `json:"tags"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Website     string   `json:"website,omitempty"`
}

// GeocodeResult mirrors the fields consumed from Nominatim.
type GeocodeResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// CreateBusiness registers a business with its tags denormalized onto
// the item.
func (bs *BusinessService) CreateBusiness(ctx context.Context, input CreateBusinessInput) (*models.Business, error) {
	if input.OwnerID == "" {
		return nil, ErrMissingUserID
	}
	if input.Name == "" || input.Address == "" {
		return nil, fmt.Errorf("%w: name and address are required", ErrInvalidInput)
	}

	tags := make([]models.Tag, 0, len(input.TagIDs))
	for _, tagID := range input.TagIDs {
		tag, err := bs.getTag(ctx, tagID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tag '%s': %w", tagID, err)
		}
		tags = append(tags, *tag)
	}

	business := models.Business{
		BusinessID:  uuid.NewString(),
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		NIP:         input.NIP,
		PKD:         input.PKD,
		Website:     input.Website,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Tags:        tags,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := bs.Dynamo.PutItem(ctx, models.BusinessesTable, business); err != nil {
		return nil, fmt.Errorf("failed to create business: %w", err)
	}

	return &business, nil
}

// ListBusinesses returns every business with its listings attached.
func (bs *BusinessService) ListBusinesses(ctx context.Context) ([]models.BusinessCard, error) {
	var businesses []models.Business
	if err := bs.Dynamo.ScanWithFilter(ctx, models.BusinessesTable, nil, &businesses); err != nil {
		return nil, fmt.Errorf("failed to fetch businesses: %w", err)
	}

	cards := make([]models.BusinessCard, 0, len(businesses))
	for _, business := range businesses {
		adspaces, err := fetchAdspacesByBusiness(ctx, bs.Dynamo, business.BusinessID)
		if err != nil {
			return nil, err
		}
		cards = append(cards, models.BusinessCard{Business: business, Adspaces: adspaces})
	}
	return cards, nil
}

// GetOwnBusiness returns the caller's business with listings, or nil
// when the user has not created one yet.
func (bs *BusinessService) GetOwnBusiness(ctx context.Context, ownerID string) (*models.BusinessCard, error) {
	if ownerID == "" {
		return nil, ErrMissingUserID
	}

	business, err := fetchBusinessByOwner(ctx, bs.Dynamo, ownerID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, nil
	}

	adspaces, err := fetchAdspacesByBusiness(ctx, bs.Dynamo, business.BusinessID)
	if err != nil {
		return nil, err
	}
	return &models.BusinessCard{Business: *business, Adspaces: adspaces}, nil
}

// ListTags returns all business tags.
func (bs *BusinessService) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := bs.Dynamo.ScanWithFilter(ctx, models.TagsTable, nil, &tags); err != nil {
		return nil, fmt.Errorf("failed to fetch tags: %w", err)
	}
	return tags, nil
}

// Geocode forward-geocodes an address through Nominatim. Upstream
// hiccups (non-200, non-JSON) degrade to an empty result set rather
// than failing the caller.
func (bs *BusinessService) Geocode(ctx context.Context, address string) ([]GeocodeResult, error) {
	if address == "" {
		return nil, fmt.Errorf("%w: address is required", ErrInvalidInput)
	}

	baseURL := bs.GeocodeBaseURL
	if baseURL == "" {
		baseURL = nominatimBaseURL
	}
	client := bs.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	requestURL := fmt.Sprintf("%s?format=json&q=%s&limit=1", baseURL, url.QueryEscape(address))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("Accept-Language", "pl,en-US;q=0.7,en;q=0.3")
	req.Header.Set("User-Agent", "adspot-server (marketplace geocoder)")

	resp, err := client.Do(req)
	if err != nil {
		log.Printf("❌ Geocoding request failed: %v", err)
		return []GeocodeResult{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("⚠️ Geocoder returned status %d for %q", resp.StatusCode, address)
		return []GeocodeResult{}, nil
	}
	if contentType := resp.Header.Get("Content-Type"); !strings.Contains(contentType, "application/json") {
		log.Printf("⚠️ Geocoder returned non-JSON content type %q", contentType)
		return []GeocodeResult{}, nil
	}

	var results []GeocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		log.Printf("❌ Failed to decode geocoder response: %v", err)
		return []GeocodeResult{}, nil
	}
	return results, nil
}

func (bs *BusinessService) getTag(ctx context.Context, tagID string) (*models.Tag, error) {
	item, err := bs.Dynamo.GetItem(ctx, models.TagsTable, map[string]types.AttributeValue{
		"tagId": &types.AttributeValueMemberS{Value: tagID},
	})
	if err != nil {
		return nil, err
	}

	var tag models.Tag
	if err := attributevalue.UnmarshalMap(item, &tag); err != nil {
		return nil, fmt.Errorf("failed to parse tag: %w", err)
	}
	return &tag, nil
}
