package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/studytrack/tracker/internal/core/domain"
)

type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(collectionRoles)}
}

type roleDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	NameKey     string             `bson:"name_key"`
	Description string             `bson:"description"`
	Permissions []string           `bson:"permissions"`
	IsActive    bool               `bson:"is_active"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func toRoleDoc(r *domain.Role) roleDoc {
	perms := r.Permissions
	if perms == nil {
		perms = []string{}
	}
	return roleDoc{
		Name:        r.Name,
		NameKey:     strings.ToLower(strings.TrimSpace(r.Name)),
		Description: r.Description,
		Permissions: perms,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

func (d roleDoc) toDomain() *domain.Role {
	perms := d.Permissions
	if perms == nil {
		perms = []string{}
	}
	return &domain.Role{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Permissions: perms,
		IsActive:    d.IsActive,
		CreatedAt:   utc(d.CreatedAt),
		UpdatedAt:   utc(d.UpdatedAt),
	}
}

func (r *RoleRepository) GetByID(ctx context.Context, id string) (*domain.Role, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return r.getOne(ctx, bson.M{"_id": oid})
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.getOne(ctx, bson.M{"name_key": strings.ToLower(strings.TrimSpace(name))})
}

func (r *RoleRepository) getOne(ctx context.Context, filter bson.M) (*domain.Role, error) {
	var doc roleDoc
	found, err := findOne(ctx, r.coll, filter, &doc)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrRoleNotFound
	}
	return doc.toDomain(), nil
}

func (r *RoleRepository) ListActive(ctx context.Context) ([]*domain.Role, error) {
	docs, err := findAll[roleDoc](ctx, r.coll, bson.M{"is_active": true}, bson.D{{Key: "name", Value: 1}})
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Role, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	doc := toRoleDoc(role)
	oid, err := insert(ctx, r.coll, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("insert role: %w", err)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	oid, ok := objectID(role.ID)
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	doc := toRoleDoc(role)
	doc.ID = oid

	matched, err := replaceByID(ctx, r.coll, oid, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("replace role: %w", err)
	}
	if !matched {
		return nil, domain.ErrRoleNotFound
	}
	return doc.toDomain(), nil
}

func (r *RoleRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}
	return deleteByFilter(ctx, r.coll, bson.M{"_id": oid})
}
