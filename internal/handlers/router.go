package handlers

import (
	"github.com/arcziwoda/skylock-sub000/internal/middleware"
	"github.com/arcziwoda/skylock-sub000/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// NewApp assembles the fiber app with all routes. Shared between the
// server entrypoint and the handler tests so the two never drift.
func NewApp(db *gorm.DB, resources *services.ResourceService) *fiber.App {
	authHandler := NewAuthHandler(db, resources)
	foldersHandler := NewFoldersHandler(resources)
	filesHandler := NewFilesHandler(resources)
	publicHandler := NewPublicHandler(resources)

	authMiddleware := middleware.NewAuthMiddleware(db)

	app := fiber.New(fiber.Config{BodyLimit: 100 * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/me", authMiddleware.RequireAuth, authHandler.Me)

	publicRoutes := api.Group("/public")
	publicRoutes.Get("/folders/:id", publicHandler.GetFolder)
	publicRoutes.Get("/folders/:id/contents", publicHandler.GetFolderContents)
	publicRoutes.Get("/files/:id", publicHandler.GetFile)
	publicRoutes.Get("/files/:id/download", publicHandler.DownloadFile)

	api.Get("/download/files/*", authMiddleware.RequireAuth, filesHandler.Download)
	api.Get("/links/folders/*", authMiddleware.RequireAuth, foldersHandler.ShareURL)
	api.Get("/links/files/*", authMiddleware.RequireAuth, filesHandler.ShareURL)
	api.Get("/archive/folders/*", authMiddleware.RequireAuth, foldersHandler.Archive)

	folderRoutes := api.Group("/folders", authMiddleware.RequireAuth)
	folderRoutes.Post("/*", foldersHandler.Create)
	folderRoutes.Get("/*", foldersHandler.Get)
	folderRoutes.Delete("/*", foldersHandler.Delete)
	folderRoutes.Patch("/*", foldersHandler.UpdateVisibility)

	fileRoutes := api.Group("/files", authMiddleware.RequireAuth)
	fileRoutes.Post("/*", filesHandler.Upload)
	fileRoutes.Get("/*", filesHandler.Get)
	fileRoutes.Delete("/*", filesHandler.Delete)
	fileRoutes.Patch("/*", filesHandler.UpdateVisibility)

	return app
}
