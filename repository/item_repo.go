package repository

import (
	"context"

	"givebridge/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ItemRepository interface {
	ListItemsByStatus(ctx context.Context, status string) ([]*models.DonationItem, error)
	GetItemByID(ctx context.Context, id primitive.ObjectID) (*models.DonationItem, error)
	CreateItem(ctx context.Context, item *models.DonationItem) error
	// SaveItem overwrites the stored item with the given one.
	SaveItem(ctx context.Context, item *models.DonationItem) error
}
