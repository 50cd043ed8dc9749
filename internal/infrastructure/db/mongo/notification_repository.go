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

type NotificationRepository struct {
	coll *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{coll: db.Collection(collectionNotifications)}
}

type notificationDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Message   string             `bson:"message"`
	UserID    string             `bson:"user_id"`
	Type      string             `bson:"notification_type"`
	IsRead    bool               `bson:"is_read"`
	CreatedAt time.Time          `bson:"created_at"`
}

func toNotificationDoc(n *domain.Notification) notificationDoc {
	return notificationDoc{
		Title:     n.Title,
		Message:   n.Message,
		UserID:    n.RecipientID,
		Type:      string(n.Type),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.UTC(),
	}
}

func (d notificationDoc) toDomain() *domain.Notification {
	return &domain.Notification{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Message:     d.Message,
		RecipientID: d.UserID,
		Type:        domain.NotificationType(d.Type),
		IsRead:      d.IsRead,
		CreatedAt:   utc(d.CreatedAt),
	}
}

func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrNotificationNotFound
	}
	var doc notificationDoc
	found, err := findOne(ctx, r.coll, bson.M{"_id": oid}, &doc)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrNotificationNotFound
	}
	return doc.toDomain(), nil
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, userID string) ([]*domain.Notification, error) {
	docs, err := findAll[notificationDoc](ctx, r.coll, bson.M{"user_id": userID}, bson.D{{Key: "created_at", Value: -1}})
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Notification, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	doc := toNotificationDoc(n)
	oid, err := insert(ctx, r.coll, doc)
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *NotificationRepository) Update(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	oid, ok := objectID(n.ID)
	if !ok {
		return nil, domain.ErrNotificationNotFound
	}
	doc := toNotificationDoc(n)
	doc.ID = oid

	matched, err := replaceByID(ctx, r.coll, oid, doc)
	if err != nil {
		return nil, fmt.Errorf("replace notification: %w", err)
	}
	if !matched {
		return nil, domain.ErrNotificationNotFound
	}
	return doc.toDomain(), nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}
	return deleteByFilter(ctx, r.coll, bson.M{"_id": oid})
}
