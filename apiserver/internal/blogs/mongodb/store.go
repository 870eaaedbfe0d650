package mongodb

import (
	"context"
	"time"

	"github.com/inkwellhq/inkwell"
	"github.com/inkwellhq/inkwell/apiserver/internal/blogs"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const createIndexTimeout = 5 * time.Second

type store struct {
	collection *mongo.Collection
}

// NewStore returns a MongoDB-based implementation of the blogs.Store
// interface. Full-text search is delegated to a text index over title and
// content.
func NewStore(database *mongo.Database) (blogs.Store, error) {
	ctx, cancel :=
		context.WithTimeout(context.Background(), createIndexTimeout)
	defer cancel()
	unique := true
	collection := database.Collection("blogs")
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
					"author": 1,
				},
			},
			{
				Keys: bson.M{
					"createdAt": -1,
				},
			},
			{
				Keys: bson.D{
					{Key: "title", Value: "text"},
					{Key: "content", Value: "text"},
				},
			},
		},
	); err != nil {
		return nil, errors.Wrap(err, "error adding indexes to blogs collection")
	}
	return &store{
		collection: collection,
	}, nil
}

func (s *store) Create(ctx context.Context, record blogs.Record) error {
	if _, err := s.collection.InsertOne(ctx, record); err != nil {
		return errors.Wrapf(err, "error inserting new blog %q", record.ID)
	}
	return nil
}

func (s *store) List(
	ctx context.Context,
	selector blogs.Selector,
	opts blogs.ListOptions,
) ([]blogs.Record, int64, error) {
	criteria := bson.M{}
	if selector.Search != "" {
		criteria["$text"] = bson.M{
			"$search": selector.Search,
		}
	}

	total, err := s.collection.CountDocuments(ctx, criteria)
	if err != nil {
		return nil, 0, errors.Wrap(err, "error counting blogs")
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.M{"createdAt": -1})
	findOptions.SetLimit(opts.Limit)
	findOptions.SetSkip((opts.Page - 1) * opts.Limit)
	cur, err := s.collection.Find(ctx, criteria, findOptions)
	if err != nil {
		return nil, 0, errors.Wrap(err, "error finding blogs")
	}
	records := []blogs.Record{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, 0, errors.Wrap(err, "error decoding blogs")
	}
	return records, total, nil
}

func (s *store) Get(ctx context.Context, id string) (blogs.Record, error) {
	record := blogs.Record{}
	res := s.collection.FindOne(ctx, bson.M{"id": id})
	if res.Err() == mongo.ErrNoDocuments {
		return record, inkwell.NewErrNotFound("Blog")
	}
	if res.Err() != nil {
		return record, errors.Wrapf(res.Err(), "error finding blog %q", id)
	}
	if err := res.Decode(&record); err != nil {
		return record, errors.Wrapf(err, "error decoding blog %q", id)
	}
	return record, nil
}

func (s *store) ListByAuthor(
	ctx context.Context,
	authorID string,
) ([]blogs.Record, error) {
	findOptions := options.Find()
	findOptions.SetSort(bson.M{"createdAt": -1})
	cur, err := s.collection.Find(
		ctx,
		bson.M{"author": authorID},
		findOptions,
	)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error finding blogs for author %q",
			authorID,
		)
	}
	records := []blogs.Record{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, errors.Wrap(err, "error decoding blogs")
	}
	return records, nil
}

func (s *store) Update(
	ctx context.Context,
	id string,
	update blogs.Update,
) (blogs.Record, error) {
	record := blogs.Record{}
	res := s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"id": id},
		bson.M{
			"$set": bson.M{
				"title":     update.Title,
				"content":   update.Content,
				"image":     update.Image,
				"tags":      update.Tags,
				"updatedAt": time.Now(),
			},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if res.Err() == mongo.ErrNoDocuments {
		return record, inkwell.NewErrNotFound("Blog")
	}
	if res.Err() != nil {
		return record, errors.Wrapf(res.Err(), "error updating blog %q", id)
	}
	if err := res.Decode(&record); err != nil {
		return record, errors.Wrapf(err, "error decoding blog %q", id)
	}
	return record, nil
}

func (s *store) Delete(ctx context.Context, id string) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return errors.Wrapf(err, "error deleting blog %q", id)
	}
	if res.DeletedCount == 0 {
		return inkwell.NewErrNotFound("Blog")
	}
	return nil
}

func (s *store) AddLike(
	ctx context.Context,
	id string,
	userID string,
) (blogs.Record, error) {
	return s.updateLikes(
		ctx,
		id,
		bson.M{
			"$addToSet": bson.M{
				"likes": userID,
			},
		},
	)
}

func (s *store) RemoveLike(
	ctx context.Context,
	id string,
	userID string,
) (blogs.Record, error) {
	return s.updateLikes(
		ctx,
		id,
		bson.M{
			"$pull": bson.M{
				"likes": userID,
			},
		},
	)
}

func (s *store) updateLikes(
	ctx context.Context,
	id string,
	update bson.M,
) (blogs.Record, error) {
	record := blogs.Record{}
	res := s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if res.Err() == mongo.ErrNoDocuments {
		return record, inkwell.NewErrNotFound("Blog")
	}
	if res.Err() != nil {
		return record, errors.Wrapf(res.Err(), "error updating blog %q", id)
	}
	if err := res.Decode(&record); err != nil {
		return record, errors.Wrapf(err, "error decoding blog %q", id)
	}
	return record, nil
}

func (s *store) AddComment(
	ctx context.Context,
	id string,
	comment blogs.CommentRecord,
) error {
	res, err := s.collection.UpdateOne(
		ctx,
		bson.M{"id": id},
		bson.M{
			"$push": bson.M{
				"comments": comment,
			},
		},
	)
	if err != nil {
		return errors.Wrapf(err, "error adding comment to blog %q", id)
	}
	if res.MatchedCount == 0 {
		return inkwell.NewErrNotFound("Blog")
	}
	return nil
}
