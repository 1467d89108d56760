package models

// Business is an advertiser/landlord entity offering ad spaces.
// Tags are stored denormalized on the item; adspaces live in their own
// table keyed back by businessId.
type Business struct {
	BusinessID  string  `dynamodbav:"businessId" json:"businessId"`
	OwnerID     string  `dynamodbav:"ownerId" json:"ownerId"`
	Name        string  `dynamodbav:"name" json:"name"`
	Description string  `dynamodbav:"description" json:"description"`
	Address     string  `dynamodbav:"address" json:"address"`
	NIP         string  `dynamodbav:"nip" json:"nip"`
	PKD         string  `dynamodbav:"pkd" json:"pkd"`
	Website     string  `dynamodbav:"website,omitempty" json:"website,omitempty"`
	ImageURL    string  `dynamodbav:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	LogoURL     string  `dynamodbav:"logoUrl,omitempty" json:"logoUrl,omitempty"`
	Latitude    float64 `dynamodbav:"latitude" json:"latitude"`
	Longitude   float64 `dynamodbav:"longitude" json:"longitude"`
	Tags        []Tag   `dynamodbav:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt   string  `dynamodbav:"createdAt" json:"createdAt"`
}

// BusinessCard is a business enriched with its listings, the shape
// returned to the swipe deck and the business listing endpoints.
type BusinessCard struct {
	Business
	Adspaces []Adspace `json:"adspaces"`
}

// BusinessesTable is the DynamoDB table name for businesses
const BusinessesTable = "Businesses"
