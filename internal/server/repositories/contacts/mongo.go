package contacts

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storyshare/internal/server/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName is the MongoDB collection holding contact submissions.
const CollectionName = "contacts"

type contactDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Subject   string             `bson:"subject"`
	Message   string             `bson:"message"`
	CreatedAt time.Time          `bson:"created_at"`
}

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(collection *mongo.Collection) *MongoRepository {
	return &MongoRepository{collection: collection}
}

func (r *MongoRepository) Create(ctx context.Context, contact *models.Contact) error {
	doc := contactDocument{
		ID:        primitive.NewObjectID(),
		Name:      contact.Name,
		Email:     contact.Email,
		Subject:   contact.Subject,
		Message:   contact.Message,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	contact.ID = doc.ID.Hex()
	contact.CreatedAt = doc.CreatedAt
	return nil
}
