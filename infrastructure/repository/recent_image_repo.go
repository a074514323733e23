package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"photo-analyzer-go/domain/library"
)

// RecentImagesCollection is the collection holding recent image references.
const RecentImagesCollection = "recent_images"

// recentImageDocument is the MongoDB document structure for recent images.
type recentImageDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Path     string             `bson:"path"`
	Format   string             `bson:"format"`
	Width    int                `bson:"width"`
	Height   int                `bson:"height"`
	FileSize int64              `bson:"file_size"`
	OpenedAt time.Time          `bson:"opened_at"`
}

// MongoRecentImageRepository implements library.Repository using MongoDB.
type MongoRecentImageRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewMongoRecentImageRepository creates a new MongoDB-based recent images repository.
func NewMongoRecentImageRepository(db *MongoDB, logger *slog.Logger) *MongoRecentImageRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &MongoRecentImageRepository{
		collection: db.Collection(RecentImagesCollection),
		logger:     logger,
	}
}

// EnsureIndexes creates the unique path index and the recency index.
func (r *MongoRecentImageRepository) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "path", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "opened_at", Value: -1}},
		},
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("failed to create recent image indexes: %w", err)
	}
	return nil
}

// Upsert records an entry keyed by path.
func (r *MongoRecentImageRepository) Upsert(ctx context.Context, image *library.RecentImage) error {
	doc := recentImageToDocument(image)

	filter := bson.M{"path": doc.Path}
	update := bson.M{"$set": bson.M{
		"format":    doc.Format,
		"width":     doc.Width,
		"height":    doc.Height,
		"file_size": doc.FileSize,
		"opened_at": doc.OpenedAt,
	}}
	opts := options.Update().SetUpsert(true)

	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert recent image: %w", err)
	}

	if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
		image.ID = oid.Hex()
	}

	r.logger.Debug("Recent image recorded", "path", image.Path, "inserted", result.UpsertedCount > 0)
	return nil
}

// FindRecent returns up to limit entries, newest first.
func (r *MongoRecentImageRepository) FindRecent(ctx context.Context, limit int) ([]*library.RecentImage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "opened_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find recent images: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []recentImageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode recent images: %w", err)
	}

	images := make([]*library.RecentImage, len(docs))
	for i := range docs {
		images[i] = documentToRecentImage(&docs[i])
	}
	return images, nil
}

// DeleteByPath removes the entry for a path. Unknown paths are ignored.
func (r *MongoRecentImageRepository) DeleteByPath(ctx context.Context, path string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"path": path}); err != nil {
		return fmt.Errorf("failed to delete recent image: %w", err)
	}
	return nil
}

// DeleteAll removes every entry.
func (r *MongoRecentImageRepository) DeleteAll(ctx context.Context) error {
	result, err := r.collection.DeleteMany(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to clear recent images: %w", err)
	}
	r.logger.Info("Recent images cleared", "count", result.DeletedCount)
	return nil
}

func documentToRecentImage(doc *recentImageDocument) *library.RecentImage {
	return &library.RecentImage{
		ID:       doc.ID.Hex(),
		Path:     doc.Path,
		Format:   doc.Format,
		Width:    doc.Width,
		Height:   doc.Height,
		FileSize: doc.FileSize,
		OpenedAt: doc.OpenedAt,
	}
}

func recentImageToDocument(image *library.RecentImage) *recentImageDocument {
	doc := &recentImageDocument{
		Path:     image.Path,
		Format:   image.Format,
		Width:    image.Width,
		Height:   image.Height,
		FileSize: image.FileSize,
		OpenedAt: image.OpenedAt,
	}
	if image.ID != "" {
		if oid, err := primitive.ObjectIDFromHex(image.ID); err == nil {
			doc.ID = oid
		}
	}
	return doc
}

var _ library.Repository = (*MongoRecentImageRepository)(nil)
