package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"transcriptly/api-gateway/models"
	"transcriptly/api-gateway/utils"
)

// CreateEditRequest wraps the edit command applied to a parent version.
type CreateEditRequest struct {
	Command models.EditCommand `json:"command"`
}

// ListVersions returns the version history of a project, oldest first.
func (h *ApplicationHandler) ListVersions(c *fiber.Ctx) error {
	projectID := c.Params("id")

	versions, err := h.Store.ListVersions(c.UserContext(), projectID)
	if err != nil {
		h.Logger.Errorf("Error listing versions for project %s: %v", projectID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not retrieve versions")
	}
	return c.Status(fiber.StatusOK).JSON(versions)
}

// GetVersion returns one version of a project. A version id that belongs to a
// different project is reported as not found.
func (h *ApplicationHandler) GetVersion(c *fiber.Ctx) error {
	projectID := c.Params("id")
	versionID := c.Params("vid")

	version, found, err := h.Store.GetVersion(c.UserContext(), projectID, versionID)
	if err != nil {
		h.Logger.Errorf("Error fetching version %s of project %s: %v", versionID, projectID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not retrieve version")
	}
	if !found {
		return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Version with ID %s not found", versionID))
	}
	return c.Status(fiber.StatusOK).JSON(version)
}

// CreateEdit forks a new version from an existing one. The fork carries a
// copy of the parent's full transcript and does not re-run transcription.
func (h *ApplicationHandler) CreateEdit(c *fiber.Ctx) error {
	projectID := c.Params("id")
	versionID := c.Params("vid")

	payload := new(CreateEditRequest)
	if err := c.BodyParser(payload); err != nil {
		h.Logger.Errorf("Error parsing edit payload for version %s: %v", versionID, err)
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse edit command: %v", err))
	}
	if err := payload.Command.Validate(); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid edit command: %v", err))
	}

	ctx := c.UserContext()
	parent, found, err := h.Store.GetVersion(ctx, projectID, versionID)
	if err != nil {
		h.Logger.Errorf("Error fetching parent version %s: %v", versionID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not retrieve parent version")
	}
	if !found {
		return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Version with ID %s not found", versionID))
	}

	parentID := parent.ID
	newVersion := models.Version{
		ID:              uuid.NewString(),
		ProjectID:       projectID,
		ParentVersionID: &parentID,
		VideoID:         parent.VideoID,
		Timestamp:       time.Now().UTC(),
		Status:          models.StatusProcessing,
		Transcript:      append([]models.Word{}, parent.Transcript...),
	}

	if err := h.Store.SaveVersion(ctx, newVersion); err != nil {
		h.Logger.Errorf("Error saving forked version %s: %v", newVersion.ID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not create edit version")
	}

	h.Logger.WithFields(logrus.Fields{
		"project_id": projectID,
		"parent_id":  parentID,
		"version_id": newVersion.ID,
		"command":    string(payload.Command.Kind),
	}).Info("Edit version created")
	return c.Status(fiber.StatusOK).JSON(newVersion)
}
