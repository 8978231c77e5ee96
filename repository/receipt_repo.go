package repository

import (
	"context"
	"fmt"

	"givebridge/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReceiptRepository provides methods to fetch data for receipt generation
type ReceiptRepository struct {
	ItemRepo ItemRepository
	UserRepo UserRepository
}

// NewReceiptRepository initializes a receipt repository
func NewReceiptRepository(itemRepo ItemRepository, userRepo UserRepository) *ReceiptRepository {
	return &ReceiptRepository{
		ItemRepo: itemRepo,
		UserRepo: userRepo,
	}
}

// GetReceiptData loads the item and the people involved in it. Returns (nil, nil)
// when the item does not exist. Missing profiles are left nil.
func (r *ReceiptRepository) GetReceiptData(ctx context.Context, itemID primitive.ObjectID) (*models.ReceiptData, error) {
	item, err := r.ItemRepo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("load item: %w", err)
	}
	if item == nil {
		return nil, nil
	}

	data := &models.ReceiptData{Item: item}

	if data.Donor, err = r.UserRepo.GetHomeOwnerByEmail(ctx, item.Owner); err != nil {
		return nil, fmt.Errorf("load donor: %w", err)
	}

	if item.Volunteer == "" {
		return data, nil
	}

	if data.Volunteer, err = r.UserRepo.GetVolunteerByEmail(ctx, item.Volunteer); err != nil {
		return nil, fmt.Errorf("load volunteer: %w", err)
	}
	if data.Volunteer != nil {
		data.NGO, err = r.UserRepo.GetNGOByName(ctx, data.Volunteer.NameNGO)
	} else {
		// heads can accept items themselves
		data.NGO, err = r.UserRepo.GetNGOByEmail(ctx, item.Volunteer)
	}
	if err != nil {
		return nil, fmt.Errorf("load ngo: %w", err)
	}
	return data, nil
}
