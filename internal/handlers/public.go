package handlers

import (
	"fmt"

	"github.com/arcziwoda/skylock-sub000/internal/services"
	"github.com/arcziwoda/skylock-sub000/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// PublicHandler serves share links. No authentication; the service layer
// refuses anything that is not flagged public.
type PublicHandler struct {
	Resources *services.ResourceService
}

func NewPublicHandler(resources *services.ResourceService) *PublicHandler {
	return &PublicHandler{Resources: resources}
}

func (h *PublicHandler) GetFolder(c *fiber.Ctx) error {
	folderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid folder id")
	}

	folder, err := h.Resources.PublicFolder(c.Context(), folderID)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, folder)
}

func (h *PublicHandler) GetFolderContents(c *fiber.Ctx) error {
	folderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid folder id")
	}

	contents, err := h.Resources.PublicFolderContents(c.Context(), folderID)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, contents)
}

func (h *PublicHandler) GetFile(c *fiber.Ctx) error {
	fileID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	file, err := h.Resources.PublicFile(c.Context(), fileID)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, file)
}

func (h *PublicHandler) DownloadFile(c *fiber.Ctx) error {
	fileID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	file, reader, info, err := h.Resources.OpenPublicFile(c.Context(), fileID)
	if err != nil {
		return respondError(c, err)
	}

	contentType := info.ContentType
	if contentType == "" {
		contentType = file.MimeType
	}

	c.Set("Content-Type", contentType)
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	return c.SendStream(reader, int(info.Size))
}
