package models

// Adspace is a purchasable or barterable advertising listing belonging
// to a business. PricePerWeek is nil for barter-only listings.
type Adspace struct {
	AdspaceID         string      `dynamodbav:"adspaceId" json:"adspaceId"`
	BusinessID        string      `dynamodbav:"businessId" json:"businessId"`
	Name              string      `dynamodbav:"name" json:"name"`
	Description       string      `dynamodbav:"description,omitempty" json:"description,omitempty"`
	Type              AdspaceType `dynamodbav:"type" json:"type"`
	MaxWidth          float64     `dynamodbav:"maxWidth" json:"maxWidth"`
	MaxHeight         float64     `dynamodbav:"maxHeight" json:"maxHeight"`
	ImageURL          string      `dynamodbav:"imageUrl" json:"imageUrl"`
	IsBarterAvailable bool        `dynamodbav:"isBarterAvailable" json:"isBarterAvailable"`
	PricePerWeek      *float64    `dynamodbav:"pricePerWeek,omitempty" json:"pricePerWeek,omitempty"`
	InUse             bool        `dynamodbav:"inUse" json:"inUse"`
	CreatedAt         string      `dynamodbav:"createdAt" json:"createdAt"`
}

// AdspaceType categorizes listings (billboard, window, counter display, ...)
type AdspaceType struct {
	TypeID      string `dynamodbav:"typeId" json:"typeId"`
	Name        string `dynamodbav:"name" json:"name"`
	Description string `dynamodbav:"description,omitempty" json:"description,omitempty"`
}

// AdspacesTable is the DynamoDB table name for listings
const AdspacesTable = "Adspaces"

// AdspaceTypesTable is the DynamoDB table name for listing types
const AdspaceTypesTable = "AdspaceTypes"

// BusinessIndex is the GSI on Adspaces keyed by businessId
const BusinessIndex = "businessId-index"
