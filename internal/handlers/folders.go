package handlers

import (
	"bytes"
	"fmt"

	"github.com/arcziwoda/skylock-sub000/internal/middleware"
	"github.com/arcziwoda/skylock-sub000/internal/services"
	"github.com/arcziwoda/skylock-sub000/pkg/utils"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
)

type FoldersHandler struct {
	Resources *services.ResourceService
}

func NewFoldersHandler(resources *services.ResourceService) *FoldersHandler {
	return &FoldersHandler{Resources: resources}
}

type createFolderRequest struct {
	Parents bool `json:"parents"`
	Public  bool `json:"public"`
}

type updateVisibilityRequest struct {
	IsPublic *bool `json:"isPublic"`
}

func (r updateVisibilityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IsPublic, validation.NotNil),
	)
}

func (h *FoldersHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	path, err := wildcardPath(c)
	if err != nil {
		return respondError(c, err)
	}

	var req createFolderRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
		}
	}

	folder, err := h.Resources.CreateFolder(c.Context(), currentUser, path, services.CreateFolderOptions{
		Parents: req.Parents,
		Public:  req.Public,
	})
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.StatusCreated, folder)
}

// Get returns the folder at the wildcard path along with its immediate
// children.
func (h *FoldersHandler) Get(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	path, err := wildcardPath(c)
	if err != nil {
		return respondError(c, err)
	}

	contents, err := h.Resources.FolderContents(c.Context(), currentUser, path)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, contents)
}

func (h *FoldersHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	path, err := wildcardPath(c)
	if err != nil {
		return respondError(c, err)
	}

	recursive := c.QueryBool("recursive")
	if err := h.Resources.DeleteFolder(c.Context(), currentUser, path, recursive); err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "folder deleted"})
}

func (h *FoldersHandler) UpdateVisibility(c *fiber.Ctx) error {
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

	folder, err := h.Resources.SetFolderVisibility(c.Context(), currentUser, path, *req.IsPublic)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, folder)
}

func (h *FoldersHandler) ShareURL(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	path, err := wildcardPath(c)
	if err != nil {
		return respondError(c, err)
	}

	shareURL, err := h.Resources.FolderURL(c.Context(), currentUser, path)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"url": shareURL})
}

// Archive streams the folder subtree as a zip attachment.
func (h *FoldersHandler) Archive(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	path, err := wildcardPath(c)
	if err != nil {
		return respondError(c, err)
	}

	var buf bytes.Buffer
	if err := h.Resources.WriteFolderArchive(c.Context(), &buf, currentUser, path); err != nil {
		return respondError(c, err)
	}

	name := path.Name()
	if name == "" {
		name = "root"
	}

	c.Set("Content-Type", "application/zip")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".zip"))
	return c.Send(buf.Bytes())
}
