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

type SessionRepository struct {
	coll *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{coll: db.Collection(collectionSessions)}
}

type sessionDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	CreatedBy string             `bson:"created_by"`
	StartTime time.Time          `bson:"start_time"`
	EndTime   time.Time          `bson:"end_time"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func toSessionDoc(s *domain.Session) sessionDoc {
	return sessionDoc{
		Name:      s.Name,
		CreatedBy: s.CreatedBy,
		StartTime: s.StartTime.UTC(),
		EndTime:   s.EndTime.UTC(),
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt.UTC(),
		UpdatedAt: s.UpdatedAt.UTC(),
	}
}

func (d sessionDoc) toDomain() *domain.Session {
	return &domain.Session{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		CreatedBy: d.CreatedBy,
		StartTime: utc(d.StartTime),
		EndTime:   utc(d.EndTime),
		Status:    domain.SessionStatus(d.Status),
		CreatedAt: utc(d.CreatedAt),
		UpdatedAt: utc(d.UpdatedAt),
	}
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	var doc sessionDoc
	found, err := findOne(ctx, r.coll, bson.M{"_id": oid}, &doc)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrSessionNotFound
	}
	return doc.toDomain(), nil
}

func (r *SessionRepository) ListByCreator(ctx context.Context, userID string) ([]*domain.Session, error) {
	docs, err := findAll[sessionDoc](ctx, r.coll, bson.M{"created_by": userID}, bson.D{{Key: "start_time", Value: 1}})
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Session, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	doc := toSessionDoc(session)
	oid, err := insert(ctx, r.coll, doc)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *SessionRepository) Update(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	oid, ok := objectID(session.ID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	doc := toSessionDoc(session)
	doc.ID = oid

	matched, err := replaceByID(ctx, r.coll, oid, doc)
	if err != nil {
		return nil, fmt.Errorf("replace session: %w", err)
	}
	if !matched {
		return nil, domain.ErrSessionNotFound
	}
	return doc.toDomain(), nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}
	return deleteByFilter(ctx, r.coll, bson.M{"_id": oid})
}

// MembershipRepository stores one document per (session, user) pair; the
// unique index on that pair turns a repeated join into domain.ErrDuplicate.
type MembershipRepository struct {
	coll *mongo.Collection
}

func NewMembershipRepository(db *mongo.Database) *MembershipRepository {
	return &MembershipRepository{coll: db.Collection(collectionMemberships)}
}

type membershipDoc struct {
	UserID    string    `bson:"user_id"`
	SessionID string    `bson:"session_id"`
	Role      string    `bson:"role"`
	JoinedAt  time.Time `bson:"joined_at"`
}

func (d membershipDoc) toDomain() *domain.Membership {
	return &domain.Membership{
		UserID:    d.UserID,
		SessionID: d.SessionID,
		Role:      d.Role,
		JoinedAt:  utc(d.JoinedAt),
	}
}

func (r *MembershipRepository) Add(ctx context.Context, m *domain.Membership) (*domain.Membership, error) {
	doc := membershipDoc{
		UserID:    m.UserID,
		SessionID: m.SessionID,
		Role:      m.Role,
		JoinedAt:  m.JoinedAt.UTC(),
	}
	if _, err := insert(ctx, r.coll, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("insert membership: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MembershipRepository) Remove(ctx context.Context, sessionID, userID string) (bool, error) {
	return deleteByFilter(ctx, r.coll, bson.M{"session_id": sessionID, "user_id": userID})
}

func (r *MembershipRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.Membership, error) {
	return r.list(ctx, bson.M{"session_id": sessionID})
}

func (r *MembershipRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Membership, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *MembershipRepository) list(ctx context.Context, filter bson.M) ([]*domain.Membership, error) {
	docs, err := findAll[membershipDoc](ctx, r.coll, filter, bson.D{{Key: "joined_at", Value: 1}})
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Membership, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
