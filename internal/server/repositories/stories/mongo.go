package stories

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/storyshare/internal/common"
	"github.com/dmitrijs2005/storyshare/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection holding stories.
const CollectionName = "stories"

type storyDocument struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Title   string             `bson:"title"`
	Content string             `bson:"content"`
	Image   string             `bson:"image,omitempty"`
	Date    string             `bson:"date"`
	UserID  primitive.ObjectID `bson:"userId"`
}

func (d *storyDocument) toModel() *models.Story {
	return &models.Story{
		ID:      d.ID.Hex(),
		Title:   d.Title,
		Content: d.Content,
		Image:   d.Image,
		Date:    d.Date,
		UserID:  d.UserID.Hex(),
	}
}

// MongoRepository implements Repository over a MongoDB collection.
type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(collection *mongo.Collection) *MongoRepository {
	return &MongoRepository{collection: collection}
}

func (r *MongoRepository) ListByUser(ctx context.Context, userID string) ([]*models.Story, error) {
	result := make([]*models.Story, 0)

	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return result, nil
	}

	cur, err := r.collection.Find(ctx, bson.M{"userId": owner})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc storyDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		result = append(result, doc.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *MongoRepository) Create(ctx context.Context, story *models.Story) (*models.Story, error) {
	owner, err := primitive.ObjectIDFromHex(story.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id %q: %w", story.UserID, err)
	}

	doc := storyDocument{
		ID:      primitive.NewObjectID(),
		Title:   story.Title,
		Content: story.Content,
		Image:   story.Image,
		Date:    story.Date,
		UserID:  owner,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	story.ID = doc.ID.Hex()
	return story, nil
}

// UpdateOwned sets title and content, and image only when changes.Image is
// not empty.
func (r *MongoRepository) UpdateOwned(ctx context.Context, id, userID string, changes models.StoryChanges) (*models.Story, error) {
	filter, ok := ownedFilter(id, userID)
	if !ok {
		return nil, common.ErrorNotFound
	}

	set := bson.M{"title": changes.Title, "content": changes.Content}
	if changes.Image != "" {
		set["image"] = changes.Image
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc storyDocument
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return doc.toModel(), nil
}

func (r *MongoRepository) DeleteOwned(ctx context.Context, id, userID string) (*models.Story, error) {
	filter, ok := ownedFilter(id, userID)
	if !ok {
		return nil, common.ErrorNotFound
	}

	var doc storyDocument
	err := r.collection.FindOneAndDelete(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return doc.toModel(), nil
}

func ownedFilter(id, userID string) (bson.M, bool) {
	storyID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": storyID, "userId": owner}, true
}
