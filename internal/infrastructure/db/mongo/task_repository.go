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
)

const collectionTasks = "tasks"

type TaskRepository struct {
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(collectionTasks)}
}

// Create inserts a new task document and assigns its ID.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	t.ID = primitive.NewObjectID().Hex()
	_, err := r.col.InsertOne(ctx, t)
	return err
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Task
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// AdvanceTurn is a compare-and-swap on current_turn: the update only matches
// while the task still sits at fromTurn and is not completed, so two racing
// submissions can never both advance the same turn.
func (r *TaskRepository) AdvanceTurn(ctx context.Context, id string, fromTurn int) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "current_turn": fromTurn, "completed": false}
	update := bson.M{"$set": bson.M{"current_turn": fromTurn + 1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var t domain.Task
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Distinguish a lost race from a missing task.
			if _, findErr := r.FindByID(ctx, id); findErr != nil {
				return nil, findErr
			}
			return nil, domain.ErrTurnConflict
		}
		return nil, err
	}
	return &t, nil
}

// MarkCompleted flips the completed flag guarded by completed:false, making
// the transition happen at most once. An already-completed task is returned
// unchanged with transitioned false.
func (r *TaskRepository) MarkCompleted(ctx context.Context, id string, at time.Time) (*domain.Task, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "completed": false}
	update := bson.M{"$set": bson.M{"completed": true, "completed_at": at}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var t domain.Task
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&t)
	if err == nil {
		return &t, true, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, err
	}

	existing, findErr := r.FindByID(ctx, id)
	if findErr != nil {
		return nil, false, findErr
	}
	return existing, false, nil
}

// List returns all tasks ordered by creation time.
func (r *TaskRepository) List(ctx context.Context) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []*domain.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByUser returns the user's tasks, newest first.
func (r *TaskRepository) FindByUser(ctx context.Context, userID string) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []*domain.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// EnsureIndexes creates necessary indexes on the tasks collection.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
