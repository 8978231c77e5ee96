package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"givebridge/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostgresItemRepo struct {
	DB *sql.DB
}

func NewPostgresItemRepo(db *sql.DB) *PostgresItemRepo {
	return &PostgresItemRepo{DB: db}
}

const itemColumns = `id, title, description, quantity, estimated_value, pickup_address, owner, volunteer, status, created_at, updated_at`

func (r *PostgresItemRepo) ListItemsByStatus(ctx context.Context, status string) ([]*models.DonationItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE status=$1
		ORDER BY created_at
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.DonationItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *PostgresItemRepo) GetItemByID(ctx context.Context, id primitive.ObjectID) (*models.DonationItem, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id=$1`, id.Hex())
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return item, err
}

func (r *PostgresItemRepo) CreateItem(ctx context.Context, item *models.DonationItem) error {
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

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, item.ID.Hex(), item.Title, item.Description, item.Quantity, item.EstimatedValue,
		item.PickupAddress, item.Owner, nullString(item.Volunteer), item.Status, item.CreatedAt, item.UpdatedAt)
	return err
}

func (r *PostgresItemRepo) SaveItem(ctx context.Context, item *models.DonationItem) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE items
		SET title=$2, description=$3, quantity=$4, estimated_value=$5, pickup_address=$6,
			owner=$7, volunteer=$8, status=$9, updated_at=$10
		WHERE id=$1
	`, item.ID.Hex(), item.Title, item.Description, item.Quantity, item.EstimatedValue,
		item.PickupAddress, item.Owner, nullString(item.Volunteer), item.Status, item.UpdatedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("item %s not found", item.ID.Hex())
	}
	return nil
}

func scanItem(row rowScanner) (*models.DonationItem, error) {
	item := &models.DonationItem{}
	var id string
	var volunteer sql.NullString
	err := row.Scan(&id, &item.Title, &item.Description, &item.Quantity, &item.EstimatedValue,
		&item.PickupAddress, &item.Owner, &volunteer, &item.Status, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if item.ID, err = primitive.ObjectIDFromHex(id); err != nil {
		return nil, err
	}
	item.Volunteer = volunteer.String
	return item, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
