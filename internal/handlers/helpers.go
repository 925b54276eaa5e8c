package handlers

import (
	"errors"
	"net/url"
	"strings"

	"github.com/arcziwoda/skylock-sub000/internal/domain"
	"github.com/arcziwoda/skylock-sub000/internal/vpath"
	"github.com/arcziwoda/skylock-sub000/pkg/logger"
	"github.com/arcziwoda/skylock-sub000/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func parseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(value))
}

// wildcardPath parses the route's wildcard segment as a virtual path.
func wildcardPath(c *fiber.Ctx) (vpath.Path, error) {
	raw := c.Params("*")
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return vpath.Parse(raw)
}

// respondError maps the service error taxonomy onto HTTP statuses.
// Integrity violations are logged and surfaced as opaque 500s; they are
// bugs or corruption, never business outcomes.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidPath):
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return utils.Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		return utils.Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrFolderNotEmpty):
		return utils.Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrRootFolderExists):
		return utils.Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return utils.Error(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrIntegrity):
		logger.Error("integrity_violation", err, map[string]interface{}{
			"path": c.Path(),
		})
		return utils.Error(c, fiber.StatusInternalServerError, "internal server error")
	default:
		logger.Error("unhandled_error", err, map[string]interface{}{
			"path": c.Path(),
		})
		return utils.Error(c, fiber.StatusInternalServerError, "internal server error")
	}
}
