package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/platform/config"
	"quill/internal/platform/db"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func stubMongoIndexes(t *testing.T, err error) *int {
	t.Helper()
	calls := 0
	previous := ensureMongoIndexes
	ensureMongoIndexes = func(context.Context, *mongo.Database) error {
		calls++
		return err
	}
	t.Cleanup(func() { ensureMongoIndexes = previous })
	return &calls
}

func TestPrepareEnsuresMongoIndexes(t *testing.T) {
	calls := stubMongoIndexes(t, nil)

	st := &stores{mongo: &db.Mongo{}}
	require.NoError(t, st.prepare(context.Background()))
	require.Equal(t, 1, *calls)
}

func TestPrepareReportsIndexFailure(t *testing.T) {
	stubMongoIndexes(t, errors.New("not primary"))

	st := &stores{mongo: &db.Mongo{}}
	require.ErrorContains(t, st.prepare(context.Background()), "ensure mongo indexes: not primary")
}

func TestPrepareSkipsOtherDrivers(t *testing.T) {
	calls := stubMongoIndexes(t, nil)

	require.NoError(t, (&stores{}).prepare(context.Background()))
	require.Zero(t, *calls)
}

func TestBuildAPIWithMemoryDrivers(t *testing.T) {
	calls := stubMongoIndexes(t, nil)
	cfg := config.Config{
		ServiceName:            "quill",
		HTTPPort:               "0",
		LogFormat:              "json",
		StoreDriver:            config.DriverMemory,
		ImageStoreDriver:       config.DriverMemory,
		JWTSecret:              "secret",
		BcryptCost:             4,
		UploadDir:              t.TempDir(),
		UploadMaxBytes:         1 << 20,
		PostsPageSize:          3,
		DefaultProfilePhotoURL: "https://example.com/blank.png",
	}

	app, err := BuildAPI(context.Background(), cfg, slog.Default())
	require.NoError(t, err)
	defer app.Close(context.Background())
	require.Zero(t, *calls)

	rr := httptest.NewRecorder()
	app.server.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/posts/count", nil))
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestNormalizeAddr(t *testing.T) {
	require.Equal(t, ":8080", normalizeAddr(""))
	require.Equal(t, ":9090", normalizeAddr("9090"))
	require.Equal(t, ":9090", normalizeAddr(" :9090 "))
}
