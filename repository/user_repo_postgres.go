package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"givebridge/models"

	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostgresUserRepo struct {
	DB *sql.DB
}

func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{DB: db}
}

// GetUserByEmail fetches user by email
func (r *PostgresUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	var id string
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, email, password, type, date
		FROM users
		WHERE email=$1
	`, email).Scan(&id, &user.Email, &user.Password, &user.Type, &user.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if user.ID, err = primitive.ObjectIDFromHex(id); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *PostgresUserRepo) ListHomeOwners(ctx context.Context) ([]*models.HomeOwner, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, email, name, image FROM homeowners ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.HomeOwner{}
	for rows.Next() {
		h, err := scanHomeOwner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *PostgresUserRepo) GetHomeOwnerByEmail(ctx context.Context, email string) (*models.HomeOwner, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT id, email, name, image FROM homeowners WHERE email=$1`, email)
	h, err := scanHomeOwner(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return h, err
}

const ngoSelect = `
	SELECT h.id, h.email, h.name, h.image, h.name_ngo, h.description_ngo,
		ARRAY(SELECT v.id FROM volunteers v WHERE v.head_ngo = h.id ORDER BY v.id)
	FROM ngo_heads h
`

func (r *PostgresUserRepo) GetNGOByName(ctx context.Context, nameNGO string) (*models.NGOOwner, error) {
	return r.getNGO(r.DB.QueryRowContext(ctx, ngoSelect+` WHERE h.name_ngo=$1`, nameNGO))
}

func (r *PostgresUserRepo) GetNGOByEmail(ctx context.Context, email string) (*models.NGOOwner, error) {
	return r.getNGO(r.DB.QueryRowContext(ctx, ngoSelect+` WHERE h.email=$1`, email))
}

func (r *PostgresUserRepo) getNGO(row *sql.Row) (*models.NGOOwner, error) {
	ngo := &models.NGOOwner{}
	var id string
	var volunteerIDs []string
	err := row.Scan(&id, &ngo.Email, &ngo.Name, &ngo.Image, &ngo.NameNGO, &ngo.DescriptionNGO, pq.Array(&volunteerIDs))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if ngo.ID, err = primitive.ObjectIDFromHex(id); err != nil {
		return nil, err
	}
	ngo.Volunteers = make([]primitive.ObjectID, 0, len(volunteerIDs))
	for _, v := range volunteerIDs {
		oid, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return nil, err
		}
		ngo.Volunteers = append(ngo.Volunteers, oid)
	}
	return ngo, nil
}

func (r *PostgresUserRepo) GetVolunteerByEmail(ctx context.Context, email string) (*models.Volunteer, error) {
	v := &models.Volunteer{}
	var id, head string
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, email, name, image, name_ngo, head_ngo
		FROM volunteers
		WHERE email=$1
	`, email).Scan(&id, &v.Email, &v.Name, &v.Image, &v.NameNGO, &head)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if v.ID, err = primitive.ObjectIDFromHex(id); err != nil {
		return nil, err
	}
	if v.HeadNGO, err = primitive.ObjectIDFromHex(head); err != nil {
		return nil, err
	}
	return v, nil
}

// CreateAccount inserts the user and its profile in one transaction. The NGO
// back-link is the head_ngo foreign key, so nothing extra is written for it.
func (r *PostgresUserRepo) CreateAccount(ctx context.Context, account *models.Account) error {
	if account == nil || account.User == nil {
		return errors.New("account without user")
	}
	assignIDs(account)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	u := account.User
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO users (id, email, password, type, date)
		VALUES ($1, $2, $3, $4, $5)
	`, u.ID.Hex(), u.Email, u.Password, u.Type, u.Date); err != nil {
		return mapPQError(err)
	}

	switch {
	case account.HomeOwner != nil:
		h := account.HomeOwner
		_, err = tx.ExecContext(ctx, `
			INSERT INTO homeowners (id, email, name, image) VALUES ($1, $2, $3, $4)
		`, h.ID.Hex(), h.Email, h.Name, h.Image)
	case account.NGOOwner != nil:
		n := account.NGOOwner
		_, err = tx.ExecContext(ctx, `
			INSERT INTO ngo_heads (id, email, name, image, name_ngo, description_ngo)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, n.ID.Hex(), n.Email, n.Name, n.Image, n.NameNGO, n.DescriptionNGO)
	case account.Volunteer != nil:
		v := account.Volunteer
		_, err = tx.ExecContext(ctx, `
			INSERT INTO volunteers (id, email, name, image, name_ngo, head_ngo)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, v.ID.Hex(), v.Email, v.Name, v.Image, v.NameNGO, v.HeadNGO.Hex())
	default:
		err = errors.New("account without profile")
	}
	if err != nil {
		return mapPQError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	if account.Volunteer != nil && account.NGO != nil {
		account.NGO.Volunteers = append(account.NGO.Volunteers, account.Volunteer.ID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHomeOwner(row rowScanner) (*models.HomeOwner, error) {
	h := &models.HomeOwner{}
	var id string
	if err := row.Scan(&id, &h.Email, &h.Name, &h.Image); err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	h.ID = oid
	return h, nil
}

// mapPQError turns unique violations into ErrDuplicate (ErrDuplicateNGO for the NGO name).
func mapPQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		if strings.Contains(pqErr.Constraint, "name_ngo") {
			return fmt.Errorf("%w: %s", ErrDuplicateNGO, pqErr.Message)
		}
		return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Message)
	}
	return err
}
