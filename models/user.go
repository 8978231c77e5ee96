package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserType is the role tag stored on every User.
type UserType string

const (
	UserTypeHomeOwner UserType = "homeowner"
	UserTypeHead      UserType = "head"
	UserTypeVolunteer UserType = "volunteer"
)

// User is the login record shared by all roles. Role specific data lives in the
// profile collections and is linked back by Email.
type User struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty" db:"id"`
	Email    string             `json:"email" bson:"email" db:"email"`
	Password string             `json:"-" bson:"password" db:"password"`
	Type     UserType           `json:"type" bson:"type" db:"type"`
	Date     time.Time          `json:"date" bson:"date" db:"date"`
}
