package mongodb

import (
	"context"
	"time"

	"github.com/inkwellhq/inkwell"
	"github.com/inkwellhq/inkwell/apiserver/internal/users"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const createIndexTimeout = 5 * time.Second

type store struct {
	collection *mongo.Collection
}

// NewStore returns a MongoDB-based implementation of the users.Store
// interface. Username and email uniqueness are enforced by the database.
func NewStore(database *mongo.Database) (users.Store, error) {
	ctx, cancel :=
		context.WithTimeout(context.Background(), createIndexTimeout)
	defer cancel()
	unique := true
	collection := database.Collection("users")
	if _, err := collection.Indexes().CreateMany(
		ctx,
		[]mongo.IndexModel{
			{
				Keys: bson.M{
					"id": 1,
				},
				Options: &options.IndexOptions{
					Unique: &unique,
				},
			},
			{
				Keys: bson.M{
					"username": 1,
				},
				Options: &options.IndexOptions{
					Unique: &unique,
				},
			},
			{
				Keys: bson.M{
					"email": 1,
				},
				Options: &options.IndexOptions{
					Unique: &unique,
				},
			},
		},
	); err != nil {
		return nil, errors.Wrap(err, "error adding indexes to users collection")
	}
	return &store{
		collection: collection,
	}, nil
}

func (s *store) Create(ctx context.Context, user inkwell.User) error {
	if _, err := s.collection.InsertOne(ctx, user); err != nil {
		if writeException, ok := err.(mongo.WriteException); ok {
			if len(writeException.WriteErrors) == 1 &&
				writeException.WriteErrors[0].Code == 11000 {
				return inkwell.NewErrConflict(
					"User",
					"A user with that username or email already exists",
				)
			}
		}
		return errors.Wrapf(err, "error inserting new user %q", user.ID)
	}
	return nil
}

func (s *store) Get(ctx context.Context, id string) (inkwell.User, error) {
	user := inkwell.User{}
	res := s.collection.FindOne(ctx, bson.M{"id": id})
	if res.Err() == mongo.ErrNoDocuments {
		return user, inkwell.NewErrNotFound("User")
	}
	if res.Err() != nil {
		return user, errors.Wrapf(res.Err(), "error finding user %q", id)
	}
	if err := res.Decode(&user); err != nil {
		return user, errors.Wrapf(err, "error decoding user %q", id)
	}
	return user, nil
}

func (s *store) GetByEmail(
	ctx context.Context,
	email string,
) (inkwell.User, error) {
	user := inkwell.User{}
	res := s.collection.FindOne(ctx, bson.M{"email": email})
	if res.Err() == mongo.ErrNoDocuments {
		return user, inkwell.NewErrNotFound("User")
	}
	if res.Err() != nil {
		return user, errors.Wrapf(res.Err(), "error finding user by email")
	}
	if err := res.Decode(&user); err != nil {
		return user, errors.Wrap(err, "error decoding user")
	}
	return user, nil
}

func (s *store) GetSummaries(
	ctx context.Context,
	ids []string,
) (map[string]inkwell.UserSummary, error) {
	summaries := map[string]inkwell.UserSummary{}
	if len(ids) == 0 {
		return summaries, nil
	}
	findOptions := options.Find().SetProjection(
		bson.M{
			"id":       1,
			"username": 1,
			"fullName": 1,
			"avatar":   1,
		},
	)
	cur, err := s.collection.Find(
		ctx,
		bson.M{
			"id": bson.M{
				"$in": ids,
			},
		},
		findOptions,
	)
	if err != nil {
		return nil, errors.Wrap(err, "error finding users")
	}
	items := []inkwell.UserSummary{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, errors.Wrap(err, "error decoding users")
	}
	for _, item := range items {
		summaries[item.ID] = item
	}
	return summaries, nil
}

func (s *store) Update(
	ctx context.Context,
	id string,
	update inkwell.UserUpdate,
) (inkwell.User, error) {
	set := bson.M{}
	if update.FullName != nil {
		set["fullName"] = *update.FullName
	}
	if update.Bio != nil {
		set["bio"] = *update.Bio
	}
	if update.Avatar != nil {
		set["avatar"] = *update.Avatar
	}
	user := inkwell.User{}
	if len(set) == 0 {
		return s.Get(ctx, id)
	}
	res := s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if res.Err() == mongo.ErrNoDocuments {
		return user, inkwell.NewErrNotFound("User")
	}
	if res.Err() != nil {
		return user, errors.Wrapf(res.Err(), "error updating user %q", id)
	}
	if err := res.Decode(&user); err != nil {
		return user, errors.Wrapf(err, "error decoding user %q", id)
	}
	return user, nil
}

func (s *store) UpdatePassword(
	ctx context.Context,
	id string,
	passwordHash string,
) error {
	res, err := s.collection.UpdateOne(
		ctx,
		bson.M{"id": id},
		bson.M{
			"$set": bson.M{
				"password": passwordHash,
			},
		},
	)
	if err != nil {
		return errors.Wrapf(err, "error updating user %q", id)
	}
	if res.MatchedCount == 0 {
		return inkwell.NewErrNotFound("User")
	}
	return nil
}
