package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// BaseStore provides behavior common to all MongoDB-based stores.
type BaseStore struct {
	Database *mongo.Database
}

// CheckHealth pings the database, bounding the wait so that a wedged
// connection reports unhealthy rather than hanging the caller.
func (b *BaseStore) CheckHealth(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := b.Database.Client().Ping(
		pingCtx,
		readpref.Primary(),
	); err != nil {
		return errors.Wrap(err, "error pinging mongodb database")
	}
	return nil
}
