package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/you/schedulo/domain"
)

// TaskRepositoryImpl implements domain.TaskRepository using MongoDB.
// Every filter includes the owning user id, so one user can never
// read or mutate another user's tasks.
type TaskRepositoryImpl struct {
	collection *mongo.Collection
}

// DBTask represents the stored shape of Task (with BSON tags).
type DBTask struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"user_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *mongo.Database) domain.TaskRepository {
	return &TaskRepositoryImpl{collection: db.Collection("tasks")}
}

// Create implements domain.TaskRepository
func (r *TaskRepositoryImpl) Create(ctx context.Context, task *domain.Task) error {
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, r.domainToDB(task))
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		task.ID = id
	}
	return nil
}

// FindByUser implements domain.TaskRepository
func (r *TaskRepositoryImpl) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*domain.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tasks := []*domain.Task{}
	for cursor.Next(ctx) {
		var dbTask DBTask
		if err := cursor.Decode(&dbTask); err != nil {
			return nil, err
		}
		tasks = append(tasks, r.dbToDomain(&dbTask))
	}
	return tasks, cursor.Err()
}

// FindByID implements domain.TaskRepository
func (r *TaskRepositoryImpl) FindByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Task, error) {
	var dbTask DBTask
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&dbTask)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbTask), nil
}

// Update implements domain.TaskRepository
func (r *TaskRepositoryImpl) Update(ctx context.Context, task *domain.Task) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": task.ID, "user_id": task.UserID},
		bson.M{"$set": bson.M{
			"title":       task.Title,
			"description": task.Description,
			"updated_at":  time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// Delete implements domain.TaskRepository
func (r *TaskRepositoryImpl) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// SetStatus implements domain.TaskRepository
func (r *TaskRepositoryImpl) SetStatus(ctx context.Context, id, userID primitive.ObjectID, status string) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepositoryImpl) domainToDB(task *domain.Task) *DBTask {
	return &DBTask{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func (r *TaskRepositoryImpl) dbToDomain(dbTask *DBTask) *domain.Task {
	return &domain.Task{
		ID:          dbTask.ID,
		UserID:      dbTask.UserID,
		Title:       dbTask.Title,
		Description: dbTask.Description,
		Status:      dbTask.Status,
		CreatedAt:   dbTask.CreatedAt,
		UpdatedAt:   dbTask.UpdatedAt,
	}
}
