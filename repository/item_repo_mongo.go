package repository

import (
	"context"
	"fmt"
	"time"

	"givebridge/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoItemRepo struct {
	DB       *mongo.Client
	Database string
}

func NewMongoItemRepo(db *mongo.Client, database string) *MongoItemRepo {
	return &MongoItemRepo{DB: db, Database: database}
}

func (r *MongoItemRepo) items() *mongo.Collection {
	return r.DB.Database(r.Database).Collection(itemsCollection)
}

// ListItemsByStatus returns matching items, oldest first.
func (r *MongoItemRepo) ListItemsByStatus(ctx context.Context, status string) ([]*models.DonationItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := r.items().Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*models.DonationItem{}
	for cur.Next(ctx) {
		var item models.DonationItem
		if err := cur.Decode(&item); err != nil {
			return nil, err
		}
		out = append(out, &item)
	}
	return out, cur.Err()
}

func (r *MongoItemRepo) GetItemByID(ctx context.Context, id primitive.ObjectID) (*models.DonationItem, error) {
	item := &models.DonationItem{}
	if err := findOne(ctx, r.items(), bson.M{"_id": id}, item); err != nil {
		return nil, err
	}
	if item.ID.IsZero() {
		return nil, nil
	}
	return item, nil
}

func (r *MongoItemRepo) CreateItem(ctx context.Context, item *models.DonationItem) error {
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = item.CreatedAt
	}
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}

	_, err := r.items().InsertOne(ctx, item)
	return err
}

func (r *MongoItemRepo) SaveItem(ctx context.Context, item *models.DonationItem) error {
	res, err := r.items().ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("item %s not found", item.ID.Hex())
	}
	return nil
}
