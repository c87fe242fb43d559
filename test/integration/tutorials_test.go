package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/tutorialhub/backend/internal/config"
	"github.com/tutorialhub/backend/internal/handlers"
	"github.com/tutorialhub/backend/internal/models"
	"github.com/tutorialhub/backend/internal/repositories"
	"github.com/tutorialhub/backend/internal/services"
)

var (
	testClient *mongo.Client
	testDB     *mongo.Database
	testRouter chi.Router
	testLogger *zap.Logger
)

// setupTestRouter creates a test router with all handlers
func setupTestRouter(db *mongo.Database, logger *zap.Logger) chi.Router {
	repo := repositories.NewTutorialsRepository(db, logger)
	svc := services.NewTutorialsService(repo, logger)
	tutorialsHandler := handlers.NewTutorialsHandler(svc, logger)

	r := chi.NewRouter()
	tutorialsHandler.RegisterRoutes(r)

	return r
}

// cleanupTestData removes all test data
func cleanupTestData(t *testing.T) {
	t.Helper()
	_, err := testDB.Collection(repositories.CollectionName).DeleteMany(context.Background(), bson.M{})
	require.NoError(t, err, "Failed to cleanup test data")
}

func connectMongo(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return err
	}

	testClient = client
	return nil
}

// TestMain sets up and tears down the test environment.
// TEST_MONGO_* variables point the suite at an existing instance; otherwise a
// throwaway mongo container is started with dockertest.
func TestMain(m *testing.M) {
	var err error
	testLogger, err = zap.NewDevelopment()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	cfg, err := config.LoadTestConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load test config: %v", err))
	}

	var resource *dockertest.Resource
	var pool *dockertest.Pool

	dbName := "tutorials_test"
	if cfg.Mongo.Host != "" {
		dbName = cfg.Mongo.DBName
		if err := connectMongo(cfg.URI()); err != nil {
			fmt.Printf("Could not connect to configured test instance: %s\n", err)
			os.Exit(1)
		}
	} else {
		pool, err = dockertest.NewPool("")
		if err != nil || pool.Client.Ping() != nil {
			fmt.Println("Docker is not available, skipping integration tests")
			os.Exit(0)
		}

		resource, err = pool.RunWithOptions(&dockertest.RunOptions{
			Repository: "mongo",
			Tag:        "6.0",
		}, func(config *docker.HostConfig) {
			config.AutoRemove = true
		})
		if err != nil {
			fmt.Printf("Could not start resource: %s\n", err)
			os.Exit(1)
		}

		pool.MaxWait = 120 * time.Second

		if err := pool.Retry(func() error {
			return connectMongo("mongodb://localhost:" + resource.GetPort("27017/tcp"))
		}); err != nil {
			fmt.Printf("Could not connect to docker: %s\n", err)
			os.Exit(1)
		}
	}

	testDB = testClient.Database(dbName)
	testRouter = setupTestRouter(testDB, testLogger)

	code := m.Run()

	if err := testClient.Disconnect(context.Background()); err != nil {
		fmt.Printf("Could not disconnect: %s\n", err)
	}
	if resource != nil {
		if err := pool.Purge(resource); err != nil {
			fmt.Printf("Could not purge resource: %s\n", err)
		}
	}
	os.Exit(code)
}

// doRequest runs a request against the test router and decodes the response
func doRequest(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	testRouter.ServeHTTP(rec, req)

	return rec
}

func createTutorial(t *testing.T, title, description string) models.Tutorial {
	t.Helper()

	rec := doRequest(t, http.MethodPost, "/api/tutorials", map[string]string{
		"title":       title,
		"description": description,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var tutorial models.Tutorial
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tutorial))
	return tutorial
}

func TestCreateAndGetByID(t *testing.T) {
	cleanupTestData(t)

	created := createTutorial(t, "Learn X", "desc")
	assert.False(t, created.ID.IsZero(), "id should be assigned by the store")
	assert.False(t, created.Published, "new tutorials must be unpublished")

	rec := doRequest(t, http.MethodGet, "/api/tutorials/"+created.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched models.Tutorial
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Learn X", fetched.Title)
	assert.Equal(t, "desc", fetched.Description)
	assert.False(t, fetched.Published)
}

func TestCreateRequiresTitle(t *testing.T) {
	cleanupTestData(t)

	rec := doRequest(t, http.MethodPost, "/api/tutorials", map[string]string{
		"description": "no title",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "title is required", resp["error"])
}

func TestGetByIDNotFound(t *testing.T) {
	cleanupTestData(t)

	// Well-formed but unknown id
	rec := doRequest(t, http.MethodGet, "/api/tutorials/64f000000000000000000000", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Malformed id is reported the same way
	rec = doRequest(t, http.MethodGet, "/api/tutorials/not-an-id", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete(t *testing.T) {
	cleanupTestData(t)

	created := createTutorial(t, "Ephemeral", "")

	rec := doRequest(t, http.MethodDelete, "/api/tutorials/"+created.ID.Hex(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, http.MethodGet, "/api/tutorials/"+created.ID.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, http.MethodDelete, "/api/tutorials/"+created.ID.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAll(t *testing.T) {
	cleanupTestData(t)

	createTutorial(t, "One", "")
	createTutorial(t, "Two", "")
	createTutorial(t, "Three", "")

	rec := doRequest(t, http.MethodDelete, "/api/tutorials", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.DeleteAllResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.DeletedCount)

	rec = doRequest(t, http.MethodGet, "/api/tutorials", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var tutorials []models.Tutorial
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tutorials))
	assert.Empty(t, tutorials)
}

func TestListWithTitleFilter(t *testing.T) {
	cleanupTestData(t)

	createTutorial(t, "Learn Go", "")
	createTutorial(t, "learn mongo", "")
	createTutorial(t, "Something else", "")

	rec := doRequest(t, http.MethodGet, "/api/tutorials?title=LEARN", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var tutorials []models.Tutorial
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tutorials))
	require.Len(t, tutorials, 2)
	for _, tutorial := range tutorials {
		assert.Contains(t, []string{"Learn Go", "learn mongo"}, tutorial.Title)
	}

	// No matches
	rec = doRequest(t, http.MethodGet, "/api/tutorials?title=missing", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tutorials))
	assert.Empty(t, tutorials)
}

func TestPublishFlow(t *testing.T) {
	cleanupTestData(t)

	published := createTutorial(t, "Learn X", "desc")
	unpublished := createTutorial(t, "Draft", "")

	rec := doRequest(t, http.MethodPut, "/api/tutorials/"+published.ID.Hex(), map[string]any{
		"published": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Tutorial
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.True(t, updated.Published)
	assert.Equal(t, "Learn X", updated.Title, "partial update must keep other fields")

	rec = doRequest(t, http.MethodGet, "/api/tutorials/published", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var tutorials []models.Tutorial
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tutorials))
	require.Len(t, tutorials, 1)
	assert.Equal(t, published.ID, tutorials[0].ID)
	assert.NotEqual(t, unpublished.ID, tutorials[0].ID)
}

func TestUpdateMergesFields(t *testing.T) {
	cleanupTestData(t)

	created := createTutorial(t, "Original", "before")

	rec := doRequest(t, http.MethodPut, "/api/tutorials/"+created.ID.Hex(), map[string]any{
		"description": "after",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Tutorial
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Original", updated.Title)
	assert.Equal(t, "after", updated.Description)
	assert.False(t, updated.Published)
}

func TestUpdateNotFound(t *testing.T) {
	cleanupTestData(t)

	rec := doRequest(t, http.MethodPut, "/api/tutorials/64f000000000000000000000", map[string]any{
		"title": "ghost",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
