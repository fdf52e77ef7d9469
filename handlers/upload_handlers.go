package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"transcriptly/api-gateway/utils"
)

// UploadURLRequest defines the expected request body for minting an upload
// URL.
type UploadURLRequest struct {
	FileExtension string `json:"file_extension" validate:"required"`
}

// supportedUploadExtensions lists the extensions the API currently accepts.
// The restriction sits here rather than in the object store because it is a
// policy of this API, not of storage.
var supportedUploadExtensions = map[string]bool{
	"mp4": true,
}

// CreateUploadURL mints a fresh video id and a signed URL the client uploads
// the file to directly. The bytes never pass through this service.
func (h *ApplicationHandler) CreateUploadURL(c *fiber.Ctx) error {
	payload := new(UploadURLRequest)
	if err := c.BodyParser(payload); err != nil {
		h.Logger.Errorf("Error parsing upload url payload: %v", err)
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse upload request JSON: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Validation failed: %s", strings.Join(utils.FormatValidationErrors(err), "; ")))
	}

	extension := strings.TrimPrefix(strings.ToLower(payload.FileExtension), ".")
	if !supportedUploadExtensions[extension] {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Unsupported file type")
	}

	url, videoID, err := h.Objects.GenerateUploadURL(c.UserContext(), extension)
	if err != nil {
		h.Logger.Errorf("Error generating upload url: %v", err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not generate upload URL")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"upload_url": url,
		"video_id":   videoID,
	})
}

// GetVideoURL mints a signed read URL for a stored video object.
func (h *ApplicationHandler) GetVideoURL(c *fiber.Ctx) error {
	videoID := c.Params("id")

	url, err := h.Objects.GenerateDownloadURL(c.UserContext(), videoID)
	if err != nil {
		h.Logger.Errorf("Error generating download url for video %s: %v", videoID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not generate video URL")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"url": url})
}
