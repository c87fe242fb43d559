package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/tutorialhub/backend/internal/models"
)

// CollectionName is the tutorials collection in the configured database
const CollectionName = "tutorials"

type tutorialsRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewTutorialsRepository creates a new instance of the TutorialsRepository interface
func NewTutorialsRepository(db *mongo.Database, logger *zap.Logger) *tutorialsRepository {
	return &tutorialsRepository{
		collection: db.Collection(CollectionName),
		logger:     logger,
	}
}

// Create inserts a new tutorial and returns the stored document.
// The id and timestamps are assigned here; published is always false.
func (r *tutorialsRepository) Create(ctx context.Context, req *models.CreateTutorialRequest) (*models.Tutorial, error) {
	now := time.Now().UTC()
	tutorial := &models.Tutorial{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Description: req.Description,
		Published:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.collection.InsertOne(ctx, tutorial); err != nil {
		r.logger.Error("failed to insert tutorial", zap.Error(err))
		return nil, fmt.Errorf("failed to insert tutorial: %w", err)
	}

	return tutorial, nil
}

// GetAll retrieves all tutorials, optionally filtered by a case-insensitive
// title substring. The filter text is matched literally, not as a pattern.
func (r *tutorialsRepository) GetAll(ctx context.Context, titleFilter string) ([]models.Tutorial, error) {
	filter := bson.M{}
	if titleFilter != "" {
		filter["title"] = bson.M{"$regex": primitive.Regex{
			Pattern: regexp.QuoteMeta(titleFilter),
			Options: "i",
		}}
	}

	return r.find(ctx, filter)
}

// GetPublished retrieves all tutorials with the published flag set
func (r *tutorialsRepository) GetPublished(ctx context.Context) ([]models.Tutorial, error) {
	return r.find(ctx, bson.M{"published": true})
}

// find runs a filtered query ordered by creation time
func (r *tutorialsRepository) find(ctx context.Context, filter bson.M) ([]models.Tutorial, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("failed to query tutorials", zap.Error(err))
		return nil, fmt.Errorf("failed to query tutorials: %w", err)
	}
	defer cursor.Close(ctx)

	var tutorials []models.Tutorial
	if err := cursor.All(ctx, &tutorials); err != nil {
		r.logger.Error("failed to decode tutorials", zap.Error(err))
		return nil, fmt.Errorf("failed to decode tutorials: %w", err)
	}

	return tutorials, nil
}

// GetByID retrieves a tutorial by its id
func (r *tutorialsRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Tutorial, error) {
	var tutorial models.Tutorial
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tutorial)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("tutorial not found")
		}
		r.logger.Error("failed to query tutorial by id", zap.Error(err), zap.String("id", id.Hex()))
		return nil, fmt.Errorf("failed to query tutorial: %w", err)
	}

	return &tutorial, nil
}

// Update merges the supplied fields into an existing tutorial and returns
// the document as stored after the update.
func (r *tutorialsRepository) Update(ctx context.Context, id primitive.ObjectID, req *models.UpdateTutorialRequest) (*models.Tutorial, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Published != nil {
		set["published"] = *req.Published
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var tutorial models.Tutorial
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&tutorial)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("tutorial not found")
		}
		r.logger.Error("failed to update tutorial", zap.Error(err), zap.String("id", id.Hex()))
		return nil, fmt.Errorf("failed to update tutorial: %w", err)
	}

	return &tutorial, nil
}

// Delete removes a tutorial by its id
func (r *tutorialsRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("failed to delete tutorial", zap.Error(err), zap.String("id", id.Hex()))
		return fmt.Errorf("failed to delete tutorial: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("tutorial not found")
	}

	return nil
}

// DeleteAll clears the collection and reports how many documents were removed
func (r *tutorialsRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		r.logger.Error("failed to delete tutorials", zap.Error(err))
		return 0, fmt.Errorf("failed to delete tutorials: %w", err)
	}

	return result.DeletedCount, nil
}
