package mongo

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	globalClient     *mongo.Client
	globalClientErr  error
	globalClientOnce sync.Once
)

// getGlobalTestClient returns a client shared by every test in the package.
// Tests are skipped unless NOTES_TEST_MONGO_URI points at a replica set,
// since change streams are not available on a standalone server.
func getGlobalTestClient(t *testing.T) *mongo.Client {
	t.Helper()

	uri := os.Getenv("NOTES_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("NOTES_TEST_MONGO_URI not set")
	}

	globalClientOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		globalClient, globalClientErr = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if globalClientErr == nil {
			globalClientErr = globalClient.Ping(ctx, nil)
		}
	})
	if globalClientErr != nil {
		t.Skipf("mongo unavailable: %v", globalClientErr)
	}
	return globalClient
}

type TestEnv struct {
	DBName string
	DB     *mongo.Database
}

func setupTestEnv(t *testing.T) *TestEnv {
	t.Parallel()

	client := getGlobalTestClient(t)

	safeName := strings.ReplaceAll(t.Name(), "/", "_")
	if len(safeName) > 20 {
		safeName = safeName[len(safeName)-20:]
	}
	dbName := fmt.Sprintf("test_notes_%s_%d", safeName, time.Now().UnixNano()%100000)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Database(dbName).Drop(ctx)
	})

	return &TestEnv{
		DBName: dbName,
		DB:     client.Database(dbName),
	}
}
