package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"givebridge/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	usersCollection      = "users"
	homeOwnersCollection = "homeowners"
	ngoHeadsCollection   = "ngoheads"
	volunteersCollection = "volunteers"
	itemsCollection      = "items"
)

type MongoUserRepo struct {
	DB       *mongo.Client
	Database string
}

func NewMongoUserRepo(db *mongo.Client, database string) *MongoUserRepo {
	return &MongoUserRepo{DB: db, Database: database}
}

func (r *MongoUserRepo) collection(name string) *mongo.Collection {
	return r.DB.Database(r.Database).Collection(name)
}

func (r *MongoUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	if err := findOne(ctx, r.collection(usersCollection), bson.M{"email": email}, user); err != nil {
		return nil, err
	}
	if user.ID.IsZero() {
		return nil, nil
	}
	return user, nil
}

func (r *MongoUserRepo) ListHomeOwners(ctx context.Context) ([]*models.HomeOwner, error) {
	cur, err := r.collection(homeOwnersCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*models.HomeOwner{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoUserRepo) GetHomeOwnerByEmail(ctx context.Context, email string) (*models.HomeOwner, error) {
	h := &models.HomeOwner{}
	if err := findOne(ctx, r.collection(homeOwnersCollection), bson.M{"email": email}, h); err != nil {
		return nil, err
	}
	if h.ID.IsZero() {
		return nil, nil
	}
	return h, nil
}

func (r *MongoUserRepo) GetNGOByName(ctx context.Context, nameNGO string) (*models.NGOOwner, error) {
	return r.getNGO(ctx, bson.M{"nameNGO": nameNGO})
}

func (r *MongoUserRepo) GetNGOByEmail(ctx context.Context, email string) (*models.NGOOwner, error) {
	return r.getNGO(ctx, bson.M{"email": email})
}

func (r *MongoUserRepo) getNGO(ctx context.Context, filter bson.M) (*models.NGOOwner, error) {
	ngo := &models.NGOOwner{}
	if err := findOne(ctx, r.collection(ngoHeadsCollection), filter, ngo); err != nil {
		return nil, err
	}
	if ngo.ID.IsZero() {
		return nil, nil
	}
	return ngo, nil
}

func (r *MongoUserRepo) GetVolunteerByEmail(ctx context.Context, email string) (*models.Volunteer, error) {
	v := &models.Volunteer{}
	if err := findOne(ctx, r.collection(volunteersCollection), bson.M{"email": email}, v); err != nil {
		return nil, err
	}
	if v.ID.IsZero() {
		return nil, nil
	}
	return v, nil
}

// CreateAccount runs the signup writes in a multi-document transaction, so the
// deployment has to be a replica set or sharded cluster.
func (r *MongoUserRepo) CreateAccount(ctx context.Context, account *models.Account) error {
	if account == nil || account.User == nil {
		return errors.New("account without user")
	}
	assignIDs(account)

	sess, err := r.DB.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.collection(usersCollection).InsertOne(sc, account.User); err != nil {
			return nil, err
		}

		switch {
		case account.HomeOwner != nil:
			_, err = r.collection(homeOwnersCollection).InsertOne(sc, account.HomeOwner)
		case account.NGOOwner != nil:
			_, err = r.collection(ngoHeadsCollection).InsertOne(sc, account.NGOOwner)
		case account.Volunteer != nil:
			_, err = r.collection(volunteersCollection).InsertOne(sc, account.Volunteer)
		default:
			err = errors.New("account without profile")
		}
		if err != nil {
			return nil, err
		}

		if account.Volunteer != nil && account.NGO != nil {
			res, err := r.collection(ngoHeadsCollection).UpdateOne(sc,
				bson.M{"_id": account.NGO.ID},
				bson.M{"$push": bson.M{"volunteers": account.Volunteer.ID}},
			)
			if err != nil {
				return nil, err
			}
			if res.MatchedCount == 0 {
				return nil, fmt.Errorf("ngo %s disappeared during signup", account.NGO.ID.Hex())
			}
		}
		return nil, nil
	})
	if err != nil {
		return mapDuplicateKey(err)
	}

	if account.Volunteer != nil && account.NGO != nil {
		account.NGO.Volunteers = append(account.NGO.Volunteers, account.Volunteer.ID)
	}
	return nil
}

// mapDuplicateKey turns E11000 errors into ErrDuplicate, or ErrDuplicateNGO
// when the nameNGO index rejected the write.
func mapDuplicateKey(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.HasErrorCode(11000) && strings.Contains(e.Message, "nameNGO") {
				return fmt.Errorf("%w: %v", ErrDuplicateNGO, err)
			}
		}
	}
	return fmt.Errorf("%w: %v", ErrDuplicate, err)
}

// assignIDs gives every new document its id up front so a retried transaction
// writes the same ids, and links a volunteer to its NGO.
func assignIDs(account *models.Account) {
	if account.User.ID.IsZero() {
		account.User.ID = primitive.NewObjectID()
	}
	if account.HomeOwner != nil && account.HomeOwner.ID.IsZero() {
		account.HomeOwner.ID = primitive.NewObjectID()
	}
	if account.NGOOwner != nil {
		if account.NGOOwner.ID.IsZero() {
			account.NGOOwner.ID = primitive.NewObjectID()
		}
		if account.NGOOwner.Volunteers == nil {
			account.NGOOwner.Volunteers = []primitive.ObjectID{}
		}
	}
	if account.Volunteer != nil {
		if account.Volunteer.ID.IsZero() {
			account.Volunteer.ID = primitive.NewObjectID()
		}
		if account.NGO != nil {
			account.Volunteer.HeadNGO = account.NGO.ID
		}
	}
}

// findOne decodes the first match into out and leaves out untouched when
// nothing matches.
func findOne(ctx context.Context, coll *mongo.Collection, filter interface{}, out interface{}) error {
	err := coll.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	return err
}
