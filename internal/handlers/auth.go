package handlers

import (
	"errors"

	"github.com/arcziwoda/skylock-sub000/internal/middleware"
	"github.com/arcziwoda/skylock-sub000/internal/models"
	"github.com/arcziwoda/skylock-sub000/internal/services"
	"github.com/arcziwoda/skylock-sub000/pkg/logger"
	"github.com/arcziwoda/skylock-sub000/pkg/utils"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB        *gorm.DB
	Resources *services.ResourceService
}

func NewAuthHandler(db *gorm.DB, resources *services.ResourceService) *AuthHandler {
	return &AuthHandler{DB: db, Resources: resources}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 128)),
	)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// Register creates the user and their root folder in one step; a user
// without a root folder is an integrity violation everywhere else.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	var existing int64
	if err := h.DB.Model(&models.User{}).Where("username = ?", req.Username).Count(&existing).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed checking username")
	}
	if existing > 0 {
		return utils.Error(c, fiber.StatusConflict, "username already taken")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed hashing password")
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: hash,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed creating user")
	}

	if _, err := h.Resources.CreateRootFolder(c.Context(), &user); err != nil {
		return respondError(c, err)
	}

	logger.InfoWithUser(user.ID.String(), "user_registered", map[string]interface{}{
		"username": user.Username,
	})

	return utils.Success(c, fiber.StatusCreated, user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	var user models.User
	if err := h.DB.First(&user, "username = ?", req.Username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Error(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading user")
	}

	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		logger.Warn("login_failed", map[string]interface{}{
			"username": req.Username,
			"ip":       c.IP(),
		})
		return utils.Error(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed generating token")
	}

	logger.InfoWithUser(user.ID.String(), "user_logged_in", map[string]interface{}{
		"username": user.Username,
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return utils.Success(c, fiber.StatusOK, currentUser)
}
