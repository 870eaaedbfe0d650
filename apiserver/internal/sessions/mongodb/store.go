package mongodb

import (
	"context"
	"time"

	"github.com/inkwellhq/inkwell/apiserver/internal/sessions"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const createIndexTimeout = 5 * time.Second

type store struct {
	collection *mongo.Collection
}

// NewStore returns a MongoDB-based implementation of the
// sessions.RevocationsStore interface. A TTL index reaps revocation records
// once the credentials they shadow have expired anyway.
func NewStore(database *mongo.Database) (sessions.RevocationsStore, error) {
	ctx, cancel :=
		context.WithTimeout(context.Background(), createIndexTimeout)
	defer cancel()
	unique := true
	var expireAfter int32
	collection := database.Collection("revoked_tokens")
	if _, err := collection.Indexes().CreateMany(
		ctx,
		[]mongo.IndexModel{
			{
				Keys: bson.M{
					"digest": 1,
				},
				Options: &options.IndexOptions{
					Unique: &unique,
				},
			},
			{
				Keys: bson.M{
					"expires": 1,
				},
				Options: &options.IndexOptions{
					ExpireAfterSeconds: &expireAfter,
				},
			},
		},
	); err != nil {
		return nil, errors.Wrap(
			err,
			"error adding indexes to revoked tokens collection",
		)
	}
	return &store{
		collection: collection,
	}, nil
}

type revocation struct {
	Digest  string    `bson:"digest"`
	Expires time.Time `bson:"expires"`
}

func (s *store) Revoke(
	ctx context.Context,
	digest string,
	expires time.Time,
) error {
	if _, err := s.collection.InsertOne(
		ctx,
		revocation{
			Digest:  digest,
			Expires: expires,
		},
	); err != nil {
		if writeException, ok := err.(mongo.WriteException); ok {
			if len(writeException.WriteErrors) == 1 &&
				writeException.WriteErrors[0].Code == 11000 {
				// Already revoked; logout is allowed to repeat.
				return nil
			}
		}
		return errors.Wrap(err, "error inserting token revocation")
	}
	return nil
}

func (s *store) IsRevoked(
	ctx context.Context,
	digest string,
) (bool, error) {
	res := s.collection.FindOne(ctx, bson.M{"digest": digest})
	if res.Err() == mongo.ErrNoDocuments {
		return false, nil
	}
	if res.Err() != nil {
		return false, errors.Wrap(res.Err(), "error finding token revocation")
	}
	return true, nil
}
