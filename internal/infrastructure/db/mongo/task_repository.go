package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/studytrack/tracker/internal/core/domain"
)

type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(collectionTasks)}
}

type taskDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	DueDate     *time.Time         `bson:"due_date,omitempty"`
	Priority    string             `bson:"priority"`
	Status      string             `bson:"status"`
	CreatedBy   string             `bson:"created_by"`
	SessionID   string             `bson:"session_id,omitempty"`
	DocumentRef string             `bson:"document_ref,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func toTaskDoc(t *domain.Task) taskDoc {
	doc := taskDoc{
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		CreatedBy:   t.CreatedBy,
		SessionID:   t.SessionID,
		DocumentRef: t.DocumentRef,
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
	if t.DueDate != nil {
		due := t.DueDate.UTC()
		doc.DueDate = &due
	}
	return doc
}

func (d taskDoc) toDomain() *domain.Task {
	t := &domain.Task{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Priority:    domain.TaskPriority(d.Priority),
		Status:      domain.TaskStatus(d.Status),
		CreatedBy:   d.CreatedBy,
		SessionID:   d.SessionID,
		DocumentRef: d.DocumentRef,
		CreatedAt:   utc(d.CreatedAt),
		UpdatedAt:   utc(d.UpdatedAt),
	}
	if d.DueDate != nil {
		due := d.DueDate.UTC()
		t.DueDate = &due
	}
	return t
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	var doc taskDoc
	found, err := findOne(ctx, r.coll, bson.M{"_id": oid}, &doc)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrTaskNotFound
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) ListByCreator(ctx context.Context, userID string) ([]*domain.Task, error) {
	return r.list(ctx, bson.M{"created_by": userID})
}

func (r *TaskRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.Task, error) {
	return r.list(ctx, bson.M{"session_id": sessionID})
}

func (r *TaskRepository) list(ctx context.Context, filter bson.M) ([]*domain.Task, error) {
	docs, err := findAll[taskDoc](ctx, r.coll, filter, bson.D{{Key: "created_at", Value: 1}})
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Task, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	doc := toTaskDoc(task)
	oid, err := insert(ctx, r.coll, doc)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	oid, ok := objectID(task.ID)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	doc := toTaskDoc(task)
	doc.ID = oid

	matched, err := replaceByID(ctx, r.coll, oid, doc)
	if err != nil {
		return nil, fmt.Errorf("replace task: %w", err)
	}
	if !matched {
		return nil, domain.ErrTaskNotFound
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}
	return deleteByFilter(ctx, r.coll, bson.M{"_id": oid})
}
