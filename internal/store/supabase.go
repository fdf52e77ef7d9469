package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"transcriptly/api-gateway/models"
)

const (
	projectsTable = "projects"
	versionsTable = "versions"
)

// projectRow is the persisted layout of a project. Time fields are ISO-8601
// strings, never driver-dependent timestamp types.
type projectRow struct {
	ID               string  `json:"id"`
	UserID           string  `json:"user_id"`
	Name             string  `json:"name"`
	Description      *string `json:"description"`
	CurrentVersionID string  `json:"current_version_id"`
	CreatedAt        string  `json:"created_at"`
}

// versionRow is the persisted layout of a version. The transcript is a JSONB
// array whose timing values are decimal strings, so they come back exactly as
// written.
type versionRow struct {
	ID              string        `json:"id"`
	ProjectID       string        `json:"project_id"`
	ParentVersionID *string       `json:"parent_version_id"`
	VideoID         string        `json:"video_id"`
	Timestamp       string        `json:"timestamp"`
	Status          string        `json:"status"`
	Transcript      []models.Word `json:"transcript"`
	ErrorMessage    *string       `json:"error_message"`
}

func encodeProject(p models.Project) projectRow {
	return projectRow{
		ID:               p.ID,
		UserID:           p.UserID,
		Name:             p.Name,
		Description:      p.Description,
		CurrentVersionID: p.CurrentVersionID,
		CreatedAt:        p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func decodeProject(r projectRow) (models.Project, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return models.Project{}, fmt.Errorf("parse project %s created_at: %w", r.ID, err)
	}
	return models.Project{
		ID:               r.ID,
		UserID:           r.UserID,
		Name:             r.Name,
		Description:      r.Description,
		CurrentVersionID: r.CurrentVersionID,
		CreatedAt:        createdAt,
	}, nil
}

func encodeVersion(v models.Version) versionRow {
	transcript := v.Transcript
	if transcript == nil {
		transcript = []models.Word{}
	}
	return versionRow{
		ID:              v.ID,
		ProjectID:       v.ProjectID,
		ParentVersionID: v.ParentVersionID,
		VideoID:         v.VideoID,
		Timestamp:       v.Timestamp.UTC().Format(time.RFC3339Nano),
		Status:          string(v.Status),
		Transcript:      transcript,
		ErrorMessage:    v.ErrorMessage,
	}
}

func decodeVersion(r versionRow) (models.Version, error) {
	timestamp, err := time.Parse(time.RFC3339Nano, r.Timestamp)
	if err != nil {
		return models.Version{}, fmt.Errorf("parse version %s timestamp: %w", r.ID, err)
	}
	transcript := r.Transcript
	if transcript == nil {
		transcript = []models.Word{}
	}
	return models.Version{
		ID:              r.ID,
		ProjectID:       r.ProjectID,
		ParentVersionID: r.ParentVersionID,
		VideoID:         r.VideoID,
		Timestamp:       timestamp,
		Status:          models.ProcessingStatus(r.Status),
		Transcript:      transcript,
		ErrorMessage:    r.ErrorMessage,
	}, nil
}

// SupabaseStore persists projects and versions in Supabase tables through the
// PostgREST client. Saves are upserts keyed on id, so a pipeline status update
// is the same write as the initial insert.
type SupabaseStore struct {
	client *supa.Client
}

func NewSupabaseStore(client *supa.Client) *SupabaseStore {
	return &SupabaseStore{client: client}
}

func (s *SupabaseStore) SaveProject(ctx context.Context, project models.Project) error {
	_, _, err := s.client.From(projectsTable).
		Insert(encodeProject(project), true, "id", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("save project %s: %w", project.ID, err)
	}
	return nil
}

func (s *SupabaseStore) GetProject(ctx context.Context, projectID string) (models.Project, bool, error) {
	body, _, err := s.client.From(projectsTable).
		Select("*", "", false).
		Eq("id", projectID).
		Execute()
	if err != nil {
		return models.Project{}, false, fmt.Errorf("get project %s: %w", projectID, err)
	}

	var rows []projectRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return models.Project{}, false, fmt.Errorf("decode project %s: %w", projectID, err)
	}
	if len(rows) == 0 {
		return models.Project{}, false, nil
	}

	project, err := decodeProject(rows[0])
	if err != nil {
		return models.Project{}, false, err
	}
	return project, true, nil
}

func (s *SupabaseStore) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	body, _, err := s.client.From(projectsTable).
		Select("*", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("list projects for user %s: %w", userID, err)
	}

	var rows []projectRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode projects for user %s: %w", userID, err)
	}

	projects := make([]models.Project, 0, len(rows))
	for _, row := range rows {
		project, err := decodeProject(row)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, nil
}

func (s *SupabaseStore) SaveVersion(ctx context.Context, version models.Version) error {
	_, _, err := s.client.From(versionsTable).
		Insert(encodeVersion(version), true, "id", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("save version %s: %w", version.ID, err)
	}
	return nil
}

func (s *SupabaseStore) GetVersion(ctx context.Context, projectID, versionID string) (models.Version, bool, error) {
	body, _, err := s.client.From(versionsTable).
		Select("*", "", false).
		Eq("id", versionID).
		Execute()
	if err != nil {
		return models.Version{}, false, fmt.Errorf("get version %s: %w", versionID, err)
	}

	var rows []versionRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return models.Version{}, false, fmt.Errorf("decode version %s: %w", versionID, err)
	}
	if len(rows) == 0 {
		return models.Version{}, false, nil
	}
	// A guessed version id from another project must look absent.
	if rows[0].ProjectID != projectID {
		return models.Version{}, false, nil
	}

	version, err := decodeVersion(rows[0])
	if err != nil {
		return models.Version{}, false, err
	}
	return version, true, nil
}

func (s *SupabaseStore) ListVersions(ctx context.Context, projectID string) ([]models.Version, error) {
	body, _, err := s.client.From(versionsTable).
		Select("*", "", false).
		Eq("project_id", projectID).
		Order("timestamp", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("list versions for project %s: %w", projectID, err)
	}

	var rows []versionRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode versions for project %s: %w", projectID, err)
	}

	versions := make([]models.Version, 0, len(rows))
	for _, row := range rows {
		version, err := decodeVersion(row)
		if err != nil {
			return nil, err
		}
		versions = append(versions, version)
	}
	return versions, nil
}
