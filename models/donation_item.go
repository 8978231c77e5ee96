package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item statuses. The workflow is active -> pending -> completed but it is not enforced.
const (
	ItemStatusActive    = "active"
	ItemStatusPending   = "pending"
	ItemStatusCompleted = "completed"
)

type DonationItem struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty" db:"id"`
	Title          string             `json:"title" bson:"title" db:"title"`
	Description    string             `json:"description" bson:"description" db:"description"`
	Quantity       int                `json:"quantity" bson:"quantity" db:"quantity"`
	EstimatedValue float64            `json:"estimatedValue" bson:"estimatedValue" db:"estimated_value"`
	PickupAddress  string             `json:"pickupAddress" bson:"pickupAddress" db:"pickup_address"`
	Owner          string             `json:"owner" bson:"owner" db:"owner"`                               // homeowner email
	Volunteer      string             `json:"volunteer,omitempty" bson:"volunteer,omitempty" db:"volunteer"` // email of whoever accepted it
	Status         string             `json:"status" bson:"status" db:"status"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt" db:"created_at"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt" db:"updated_at"`
}
