package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studytrack/tracker/internal/core/domain"
)

func TestObjectID(t *testing.T) {
	oid := primitive.NewObjectID()

	got, ok := objectID(oid.Hex())
	require.True(t, ok)
	assert.Equal(t, oid, got)

	for _, bad := range []string{"", "999", "not-an-object-id", oid.Hex() + "00"} {
		_, ok := objectID(bad)
		assert.False(t, ok, bad)
	}
}

func TestUserDoc_FoldsKeys(t *testing.T) {
	local := time.FixedZone("CET", 3600)
	created := time.Date(2026, 3, 10, 10, 0, 0, 0, local)

	doc := toUserDoc(&domain.User{
		Username:  "Alice",
		Email:     "Alice@Example.com",
		IsActive:  true,
		CreatedAt: created,
		UpdatedAt: created,
	})
	assert.Equal(t, "alice", doc.UsernameKey)
	assert.Equal(t, "Alice", doc.Username)
	assert.Equal(t, "alice@example.com", doc.Email)
	assert.Equal(t, time.UTC, doc.CreatedAt.Location())

	doc.ID = primitive.NewObjectID()
	u := doc.toDomain()
	assert.Equal(t, doc.ID.Hex(), u.ID)
	assert.True(t, u.CreatedAt.Equal(created))
}

func TestTaskDoc_DueDateOptional(t *testing.T) {
	doc := toTaskDoc(&domain.Task{Title: "t", Priority: domain.PriorityHigh, Status: domain.TaskPending})
	assert.Nil(t, doc.DueDate)
	assert.Nil(t, doc.toDomain().DueDate)

	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	doc = toTaskDoc(&domain.Task{Title: "t", DueDate: &due})
	require.NotNil(t, doc.DueDate)
	task := doc.toDomain()
	require.NotNil(t, task.DueDate)
	assert.Equal(t, due, *task.DueDate)
}

// Malformed IDs never reach the server, so an unreachable client is enough.
func TestRepositories_MalformedIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(100*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	db := client.Database("study_tracker_test")

	_, err = NewUserRepository(db).GetByID(ctx, "999")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = NewRoleRepository(db).GetByID(ctx, "999")
	assert.ErrorIs(t, err, domain.ErrRoleNotFound)
	_, err = NewSessionRepository(db).GetByID(ctx, "999")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = NewTaskRepository(db).GetByID(ctx, "999")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	_, err = NewNotificationRepository(db).GetByID(ctx, "999")
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
}
