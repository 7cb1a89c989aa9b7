package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ratetask/rating-platform/internal/core/domain"
	"github.com/ratetask/rating-platform/internal/core/ports"
)

const collectionRatings = "ratings"

type RatingRepository struct {
	col *mongo.Collection
}

func NewRatingRepository(db *mongo.Database) *RatingRepository {
	return &RatingRepository{col: db.Collection(collectionRatings)}
}

// Create inserts a new rating document and assigns its ID.
func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rating.ID = primitive.NewObjectID().Hex()
	_, err := r.col.InsertOne(ctx, rating)
	return err
}

func (r *RatingRepository) FindByID(ctx context.Context, id string) (*domain.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rating domain.Rating
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rating)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, err
	}
	return &rating, nil
}

func (r *RatingRepository) FindByConversation(ctx context.Context, conversationID string) (*domain.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rating domain.Rating
	err := r.col.FindOne(ctx, bson.M{"conversation_id": conversationID}).Decode(&rating)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, err
	}
	return &rating, nil
}

// Update merges the supplied fields onto the stored rating. The
// conversation_id is never part of the update document.
func (r *RatingRepository) Update(ctx context.Context, id string, update ports.RatingUpdate) (*domain.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if update.Accuracy != nil {
		set["accuracy"] = *update.Accuracy
	}
	if update.Clarity != nil {
		set["clarity"] = *update.Clarity
	}
	if update.Relevance != nil {
		set["relevance"] = *update.Relevance
	}
	if update.Consistency != nil {
		set["consistency"] = *update.Consistency
	}
	if update.Completeness != nil {
		set["completeness"] = *update.Completeness
	}
	if update.Comments != nil {
		set["comments"] = *update.Comments
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rating domain.Rating
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&rating)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, err
	}
	return &rating, nil
}

func (r *RatingRepository) FindByUser(ctx context.Context, userID string) ([]*domain.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ratings []*domain.Rating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

// EnsureIndexes creates necessary indexes on the ratings collection.
func (r *RatingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "conversation_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
