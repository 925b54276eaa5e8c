package handlers

import (
	"fmt"
	"mime"
	"path/filepath"
	"strconv"

	"github.com/arcziwoda/skylock-sub000/internal/middleware"
	"github.com/arcziwoda/skylock-sub000/internal/services"
	"github.com/arcziwoda/skylock-sub000/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type FilesHandler struct {
	Resources *services.ResourceService
}

func NewFilesHandler(resources *services.ResourceService) *FilesHandler {
	return &FilesHandler{Resources: resources}
}

// Upload stores the multipart "file" part at the wildcard path. Form
// fields "force" and "public" carry the creation flags.
func (h *FilesHandler) Upload(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	path, err := wildcardPath(c)
	if err != nil {
		return respondError(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "file is required")
	}

	force, _ := strconv.ParseBool(c.FormValue("force"))
	public, _ := strconv.ParseBool(c.FormValue("public"))

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(path.Name()))
	}

	stream, err := fileHeader.Open()
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed opening uploaded file")
	}
	defer stream.Close()

	file, err := h.Resources.CreateFile(c.Context(), currentUser, path, stream, fileHeader.Size, contentType, services.CreateFileOptions{
		Force:  force,
		Public: public,
	})
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.StatusCreated, file)
}

func (h *FilesHandler) Get(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	path, err := wildcardPath(c)
	if err != nil {
		return respondError(c, err)
	}

	file, err := h.Resources.GetFile(c.Context(), currentUser, path)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, file)
}

func (h *FilesHandler) Download(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	path, err := wildcardPath(c)
	if err != nil {
		return respondError(c, err)
	}

	file, reader, info, err := h.Resources.OpenFile(c.Context(), currentUser, path)
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

func (h *FilesHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	path, err := wildcardPath(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.Resources.DeleteFile(c.Context(), currentUser, path); err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "file deleted"})
}

func (h *FilesHandler) UpdateVisibility(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	path, err := wildcardPath(c)
	if err != nil {
		return respondError(c, err)
	}

	var req updateVisibilityRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	file, err := h.Resources.SetFileVisibility(c.Context(), currentUser, path, *req.IsPublic)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, file)
}

func (h *FilesHandler) ShareURL(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	path, err := wildcardPath(c)
	if err != nil {
		return respondError(c, err)
	}

	shareURL, err := h.Resources.FileURL(c.Context(), currentUser, path)
	if err != nil {
		return respondError(c, err)
	}

	downloadURL, err := h.Resources.FileDownloadURL(c.Context(), currentUser, path)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"url":         shareURL,
		"downloadURL": downloadURL,
	})
}
