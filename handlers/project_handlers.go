package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"transcriptly/api-gateway/internal/jobs"
	"transcriptly/api-gateway/middleware"
	"transcriptly/api-gateway/models"
	"transcriptly/api-gateway/utils"
)

// CreateProjectRequest defines the expected request body for creating a
// project. The video must already be uploaded; its id comes from the
// upload-url endpoint.
type CreateProjectRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	VideoID     string  `json:"video_id" validate:"required"`
}

// CreateProject allocates a project with its root version and schedules
// transcription in the background. The response does not wait for the
// pipeline to finish.
func (h *ApplicationHandler) CreateProject(c *fiber.Ctx) error {
	payload := new(CreateProjectRequest)
	if err := c.BodyParser(payload); err != nil {
		h.Logger.Errorf("Error parsing create project payload: %v", err)
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse project JSON: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Validation failed: %s", strings.Join(utils.FormatValidationErrors(err), "; ")))
	}

	now := time.Now().UTC()
	projectID := uuid.NewString()
	versionID := uuid.NewString()

	project := models.Project{
		ID:               projectID,
		UserID:           middleware.UserID(c),
		Name:             payload.Name,
		Description:      payload.Description,
		CurrentVersionID: versionID,
		CreatedAt:        now,
	}
	version := models.Version{
		ID:         versionID,
		ProjectID:  projectID,
		VideoID:    payload.VideoID,
		Timestamp:  now,
		Status:     models.StatusProcessing,
		Transcript: []models.Word{},
	}

	ctx := c.UserContext()
	if err := h.Store.SaveProject(ctx, project); err != nil {
		h.Logger.Errorf("Error saving project %s: %v", projectID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not create project")
	}
	if err := h.Store.SaveVersion(ctx, version); err != nil {
		h.Logger.Errorf("Error saving root version %s: %v", versionID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not create initial version")
	}

	job := jobs.NewTranscribeJob(version, h.Processor)
	if err := h.Dispatcher.Submit(job); err != nil {
		h.Logger.Errorf("Error scheduling transcription for version %s: %v", versionID, err)
		// The version is already persisted; with no job to resolve it, it must
		// be failed rather than left in processing forever.
		message := err.Error()
		version.Status = models.StatusFailed
		version.ErrorMessage = &message
		if saveErr := h.Store.SaveVersion(ctx, version); saveErr != nil {
			h.Logger.Errorf("Error recording scheduling failure for version %s: %v", versionID, saveErr)
		}
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not schedule transcription")
	}

	h.Logger.WithFields(logrus.Fields{
		"project_id": projectID,
		"version_id": versionID,
		"job_id":     job.ID(),
	}).Info("Project created, transcription scheduled")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

// ListProjects returns all projects owned by the authenticated user.
func (h *ApplicationHandler) ListProjects(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	projects, err := h.Store.ListProjects(c.UserContext(), userID)
	if err != nil {
		h.Logger.Errorf("Error listing projects for user %s: %v", userID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not retrieve projects")
	}
	return c.Status(fiber.StatusOK).JSON(projects)
}

// GetProject returns one project by id.
func (h *ApplicationHandler) GetProject(c *fiber.Ctx) error {
	projectID := c.Params("id")

	project, found, err := h.Store.GetProject(c.UserContext(), projectID)
	if err != nil {
		h.Logger.Errorf("Error fetching project %s: %v", projectID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not retrieve project")
	}
	if !found {
		return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Project with ID %s not found", projectID))
	}
	return c.Status(fiber.StatusOK).JSON(project)
}
