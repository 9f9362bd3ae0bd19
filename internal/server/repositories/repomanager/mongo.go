package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storyshare/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/storyshare/internal/server/repositories/stories"
	"github.com/dmitrijs2005/storyshare/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoRepositoryManager vends MongoDB-backed repositories over one database.
type MongoRepositoryManager struct {
	db       *mongo.Database
	users    *users.MongoRepository
	stories  *stories.MongoRepository
	contacts *contacts.MongoRepository
}

// OpenMongo connects to the deployment addressed by dsn and pings the primary.
func OpenMongo(ctx context.Context, dsn, dbName string) (*MongoRepositoryManager, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(dsn))
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return NewMongoRepositoryManager(client.Database(dbName)), nil
}

func NewMongoRepositoryManager(db *mongo.Database) *MongoRepositoryManager {
	return &MongoRepositoryManager{
		db:       db,
		users:    users.NewMongoRepository(db.Collection(users.CollectionName)),
		stories:  stories.NewMongoRepository(db.Collection(stories.CollectionName)),
		contacts: contacts.NewMongoRepository(db.Collection(contacts.CollectionName)),
	}
}

// RunMigrations creates the indexes the repositories rely on: the unique email
// index backs duplicate signup detection.
func (m *MongoRepositoryManager) RunMigrations(ctx context.Context) error {
	_, err := m.db.Collection(users.CollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users index: %w", err)
	}

	_, err = m.db.Collection(stories.CollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("stories index: %w", err)
	}

	return nil
}

func (m *MongoRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *MongoRepositoryManager) Stories() stories.Repository {
	return m.stories
}

func (m *MongoRepositoryManager) Contacts() contacts.Repository {
	return m.contacts
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.db.Client().Disconnect(ctx)
}
