package store

import (
	"context"
	"sort"
	"sync"

	"transcriptly/api-gateway/models"
)

// MemoryStore is a map-backed MetadataStore used by tests and local
// development. Records are copied on the way in and out so callers cannot
// mutate stored transcripts through shared slices.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]models.Project
	versions map[string]models.Version
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects: make(map[string]models.Project),
		versions: make(map[string]models.Version),
	}
}

func copyVersion(v models.Version) models.Version {
	out := v
	out.Transcript = append([]models.Word{}, v.Transcript...)
	return out
}

func (m *MemoryStore) SaveProject(ctx context.Context, project models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[project.ID] = project
	return nil
}

func (m *MemoryStore) GetProject(ctx context.Context, projectID string) (models.Project, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	project, ok := m.projects[projectID]
	return project, ok, nil
}

func (m *MemoryStore) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	projects := []models.Project{}
	for _, project := range m.projects {
		if project.UserID == userID {
			projects = append(projects, project)
		}
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.Before(projects[j].CreatedAt)
	})
	return projects, nil
}

func (m *MemoryStore) SaveVersion(ctx context.Context, version models.Version) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.versions[version.ID] = copyVersion(version)
	return nil
}

func (m *MemoryStore) GetVersion(ctx context.Context, projectID, versionID string) (models.Version, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	version, ok := m.versions[versionID]
	if !ok || version.ProjectID != projectID {
		return models.Version{}, false, nil
	}
	return copyVersion(version), true, nil
}

func (m *MemoryStore) ListVersions(ctx context.Context, projectID string) ([]models.Version, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	versions := []models.Version{}
	for _, version := range m.versions {
		if version.ProjectID == projectID {
			versions = append(versions, copyVersion(version))
		}
	}
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Timestamp.Before(versions[j].Timestamp)
	})
	return versions, nil
}
