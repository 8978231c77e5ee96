package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type HomeOwner struct {
	ID    primitive.ObjectID `json:"id" bson:"_id,omitempty" db:"id"`
	Email string             `json:"email" bson:"email" db:"email"`
	Name  string             `json:"name" bson:"name" db:"name"`
	Image string             `json:"image" bson:"image" db:"image"`
}

// NGOOwner is the profile of an NGO head. Volunteers holds the ids of the
// Volunteer profiles registered under the NGO.
type NGOOwner struct {
	ID             primitive.ObjectID   `json:"id" bson:"_id,omitempty" db:"id"`
	Email          string               `json:"email" bson:"email" db:"email"`
	Name           string               `json:"name" bson:"name" db:"name"`
	Image          string               `json:"image" bson:"image" db:"image"`
	NameNGO        string               `json:"nameNGO" bson:"nameNGO" db:"name_ngo"`
	DescriptionNGO string               `json:"descriptionNGO" bson:"descriptionNGO" db:"description_ngo"`
	Volunteers     []primitive.ObjectID `json:"volunteers" bson:"volunteers"`
}

type Volunteer struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty" db:"id"`
	Email   string             `json:"email" bson:"email" db:"email"`
	Name    string             `json:"name" bson:"name" db:"name"`
	Image   string             `json:"image" bson:"image" db:"image"`
	NameNGO string             `json:"nameNGO" bson:"nameNGO" db:"name_ngo"`
	HeadNGO primitive.ObjectID `json:"headNGO" bson:"headNGO" db:"head_ngo"`
}
