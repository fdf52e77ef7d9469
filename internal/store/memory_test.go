package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"transcriptly/api-gateway/models"
)

func strPtr(s string) *string { return &s }

func sampleVersion(id, projectID string, ts time.Time) models.Version {
	return models.Version{
		ID:        id,
		ProjectID: projectID,
		VideoID:   "abc.mp4",
		Timestamp: ts,
		Status:    models.StatusProcessing,
		Transcript: []models.Word{
			{Text: "hi", StartTime: decimal.RequireFromString("0.10"), EndTime: decimal.RequireFromString("0.40"), Speaker: "Speaker 1"},
		},
	}
}

func TestMemoryStoreProjectRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	project := models.Project{
		ID:               "p1",
		UserID:           "test_user",
		Name:             "demo",
		Description:      strPtr("a demo"),
		CurrentVersionID: "v1",
		CreatedAt:        time.Now().UTC(),
	}
	require.NoError(t, s.SaveProject(ctx, project))

	got, found, err := s.GetProject(ctx, "p1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, project, got)

	_, found, err = s.GetProject(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryStoreListProjectsByOwner(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	base := time.Now().UTC()
	require.NoError(t, s.SaveProject(ctx, models.Project{ID: "p2", UserID: "alice", Name: "second", CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, s.SaveProject(ctx, models.Project{ID: "p1", UserID: "alice", Name: "first", CreatedAt: base}))
	require.NoError(t, s.SaveProject(ctx, models.Project{ID: "p3", UserID: "bob", Name: "other", CreatedAt: base}))

	projects, err := s.ListProjects(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, projects, 2)
	require.Equal(t, "p1", projects[0].ID)
	require.Equal(t, "p2", projects[1].ID)
}

func TestMemoryStoreVersionCrossProjectLookupIsNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	version := sampleVersion("v1", "p1", time.Now().UTC())
	require.NoError(t, s.SaveVersion(ctx, version))

	got, found, err := s.GetVersion(ctx, "p1", "v1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, version.ID, got.ID)

	// The id exists, but under another project it must look absent.
	_, found, err = s.GetVersion(ctx, "p2", "v1")
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryStoreListVersionsOrderedByTimestamp(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	base := time.Now().UTC()
	require.NoError(t, s.SaveVersion(ctx, sampleVersion("v2", "p1", base.Add(time.Second))))
	require.NoError(t, s.SaveVersion(ctx, sampleVersion("v1", "p1", base)))
	require.NoError(t, s.SaveVersion(ctx, sampleVersion("v9", "p2", base)))

	versions, err := s.ListVersions(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, versions, 2)
	require.Equal(t, "v1", versions[0].ID)
	require.Equal(t, "v2", versions[1].ID)
}

func TestMemoryStoreCopiesTranscripts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	version := sampleVersion("v1", "p1", time.Now().UTC())
	require.NoError(t, s.SaveVersion(ctx, version))

	// Mutating the caller's slice must not reach the stored record.
	version.Transcript[0].Text = "mutated"

	got, found, err := s.GetVersion(ctx, "p1", "v1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "hi", got.Transcript[0].Text)
}
