package models

// Swipe is an append-only preference signal from a user toward a
// business. Rows are never mutated or deleted, and nothing prevents the
// same user swiping the same business twice.
type Swipe struct {
	SwipeID          string `dynamodbav:"swipeId" json:"swipeId"`
	SwiperID         string `dynamodbav:"swiperId" json:"swiperId"` // used in GSI
	TargetBusinessID string `dynamodbav:"targetBusinessId" json:"targetBusinessId"`
	Direction        string `dynamodbav:"direction" json:"direction"` // left, right
	CreatedAt        string `dynamodbav:"createdAt" json:"createdAt"`
}

// SwipesTable is the DynamoDB table name for swipes
const SwipesTable = "Swipes"

// SwiperIndex is the GSI used to fetch everything a user has swiped
const SwiperIndex = "swiperId-index"

// Swipe directions
const (
	DirectionLeft  = "left"
	DirectionRight = "right"
)
