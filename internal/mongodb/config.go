package mongodb

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const envconfigPrefix = "MONGODB"

// config represents common configuration options for a MongoDB connection
type config struct {
	Host     string `envconfig:"HOST" required:"true"`
	Port     int    `envconfig:"PORT" default:"27017"`
	Database string `envconfig:"DATABASE" required:"true"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
}

// Database returns a connection to a MongoDB database specified by
// environment variables. MONGODB_CONNECTION_STRING, if set, takes precedence
// over the individual components.
func Database() (*mongo.Database, error) {
	connectionString := os.Getenv("MONGODB_CONNECTION_STRING")
	database := os.Getenv("MONGODB_DATABASE")
	if connectionString == "" {
		c := config{}
		if err := envconfig.Process(envconfigPrefix, &c); err != nil {
			return nil, errors.Wrap(
				err,
				"error getting mongo configuration from environment",
			)
		}
		if c.Username != "" {
			connectionString = fmt.Sprintf(
				"mongodb://%s:%s@%s:%d/%s",
				c.Username,
				c.Password,
				c.Host,
				c.Port,
				c.Database,
			)
		} else {
			connectionString = fmt.Sprintf(
				"mongodb://%s:%d/%s",
				c.Host,
				c.Port,
				c.Database,
			)
		}
		database = c.Database
	}

	connectCtx, connectCancel :=
		context.WithTimeout(context.Background(), 10*time.Second)
	defer connectCancel()
	client, err := mongo.Connect(
		connectCtx,
		options.Client().ApplyURI(connectionString).SetWriteConcern(
			writeconcern.Majority(),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "error connecting to mongo")
	}
	return client.Database(database), nil
}
