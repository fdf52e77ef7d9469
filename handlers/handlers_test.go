package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"transcriptly/api-gateway/internal/pipeline"
	"transcriptly/api-gateway/internal/store"
	"transcriptly/api-gateway/internal/worker"
	"transcriptly/api-gateway/middleware"
	"transcriptly/api-gateway/models"
)

const testUserID = "test_user"

type fakeSigner struct {
	mu          sync.Mutex
	uploadCalls int
}

func (f *fakeSigner) GenerateUploadURL(ctx context.Context, extension string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploadCalls++
	videoID := fmt.Sprintf("%s.%s", uuid.NewString(), extension)
	return "https://signed.example/upload/" + videoID, videoID, nil
}

func (f *fakeSigner) GenerateDownloadURL(ctx context.Context, videoID string) (string, error) {
	return "https://signed.example/get/" + videoID, nil
}

func (f *fakeSigner) Download(ctx context.Context, videoID string, destPath string) error {
	return errors.New("not used in handler tests")
}

func (f *fakeSigner) UploadCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uploadCalls
}

type fakeRecognizer struct{}

func (fakeRecognizer) Recognize(ctx context.Context, audio []byte) ([]models.Word, error) {
	return []models.Word{}, nil
}

type testEnv struct {
	app     *fiber.App
	store   *store.MemoryStore
	objects *fakeSigner
}

// newTestEnv wires the app the way main does, with the cloud-backed pieces
// replaced by fakes. The dispatcher is created but not run, so submitted
// transcription jobs stay queued and versions keep their pre-pipeline state.
func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithQueueSize(t, 16)
}

func newTestEnvWithQueueSize(t *testing.T, jobQueueSize int) *testEnv {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	metadata := store.NewMemoryStore()
	objects := &fakeSigner{}
	processor := pipeline.NewProcessor(metadata, objects, fakeRecognizer{}, nil, log)
	dispatcher := worker.NewDispatcher(1, jobQueueSize, log)

	h := NewApplicationHandler(log, metadata, objects, processor, dispatcher)

	app := fiber.New()
	app.Use(middleware.Authenticate(middleware.Static{UserID: testUserID}))
	app.Post("/projects", h.CreateProject)
	app.Get("/projects", h.ListProjects)
	app.Get("/projects/:id", h.GetProject)
	app.Get("/projects/:id/versions", h.ListVersions)
	app.Get("/projects/:id/versions/:vid", h.GetVersion)
	app.Post("/projects/:id/versions/:vid/edit", h.CreateEdit)
	app.Post("/upload-url", h.CreateUploadURL)
	app.Get("/videos/:id/url", h.GetVideoURL)

	return &testEnv{app: app, store: metadata, objects: objects}
}

func (e *testEnv) request(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func seedProjectWithVersion(t *testing.T, e *testEnv, projectID, versionID string, transcript []models.Word) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, e.store.SaveProject(ctx, models.Project{
		ID:               projectID,
		UserID:           testUserID,
		Name:             "seeded",
		CurrentVersionID: versionID,
		CreatedAt:        now,
	}))
	require.NoError(t, e.store.SaveVersion(ctx, models.Version{
		ID:         versionID,
		ProjectID:  projectID,
		VideoID:    "abc.mp4",
		Timestamp:  now,
		Status:     models.StatusCompleted,
		Transcript: transcript,
	}))
}

func sampleTranscript() []models.Word {
	return []models.Word{
		{Text: "hello", StartTime: decimal.RequireFromString("0.100"), EndTime: decimal.RequireFromString("0.500"), Speaker: "Speaker 1"},
		{Text: "world", StartTime: decimal.RequireFromString("0.500"), EndTime: decimal.RequireFromString("0.900"), Speaker: "Speaker 2"},
	}
}
