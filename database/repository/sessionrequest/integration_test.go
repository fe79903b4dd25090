package sessionRepo

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mentorbook/database"
)

func TestMongoSessionRepo(t *testing.T) {
	uri := os.Getenv("MENTORBOOK_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("MENTORBOOK_TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	db := client.Database("mentorbook_test_" + uuid.NewString()[:8])
	t.Cleanup(func() { _ = db.Drop(context.Background()) })
	require.NoError(t, EnsureIndexes(ctx, db))

	runContract(t, func(t *testing.T) SessionRequestRepository {
		return NewMongoSessionRepo(db)
	})
}

func TestPostgresSessionRepo(t *testing.T) {
	dsn := os.Getenv("MENTORBOOK_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("MENTORBOOK_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	pool, err := database.ConnectPostgres(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	migrator, err := database.NewMigrator(pool)
	require.NoError(t, err)
	t.Cleanup(func() { _ = migrator.Close() })
	require.NoError(t, migrator.Run(ctx))

	runContract(t, func(t *testing.T) SessionRequestRepository {
		return NewPostgresSessionRepo(pool)
	})
}
