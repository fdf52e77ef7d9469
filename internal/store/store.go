package store

import (
	"context"

	"transcriptly/api-gateway/models"
)

// MetadataStore is durable persistence for Project and Version records.
// Lookups report absence through the found flag rather than an error, so
// callers can map a miss to a 404 without unwrapping anything.
type MetadataStore interface {
	SaveProject(ctx context.Context, project models.Project) error
	GetProject(ctx context.Context, projectID string) (models.Project, bool, error)
	ListProjects(ctx context.Context, userID string) ([]models.Project, error)

	SaveVersion(ctx context.Context, version models.Version) error
	// GetVersion treats a record whose project_id does not match the requested
	// project as absent, so version ids cannot be probed across projects.
	GetVersion(ctx context.Context, projectID, versionID string) (models.Version, bool, error)
	ListVersions(ctx context.Context, projectID string) ([]models.Version, error)
}
