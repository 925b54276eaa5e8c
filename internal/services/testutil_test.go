package services

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/arcziwoda/skylock-sub000/internal/database"
	"github.com/arcziwoda/skylock-sub000/internal/models"
	"github.com/arcziwoda/skylock-sub000/internal/storage"
	"github.com/arcziwoda/skylock-sub000/internal/vpath"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupServiceTest(t *testing.T) (*gorm.DB, *storage.MemoryStore, *ResourceService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed automigrating models: %v", err)
	}

	store := storage.NewMemoryStore()
	svc := NewResourceService(db, store, NewLinkBuilder("http://localhost:8080"))
	return db, store, svc
}

func createOwner(t *testing.T, db *gorm.DB, svc *ResourceService, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username, PasswordHash: "irrelevant"}
	require.NoError(t, db.Create(user).Error, "creating user %s", username)

	_, err := svc.CreateRootFolder(context.Background(), user)
	require.NoError(t, err, "creating root folder for %s", username)
	return user
}

func mustPath(t *testing.T, raw string) vpath.Path {
	t.Helper()

	p, err := vpath.Parse(raw)
	require.NoError(t, err, "parsing path %q", raw)
	return p
}

func uploadFile(t *testing.T, svc *ResourceService, user *models.User, raw, content string, opts CreateFileOptions) *models.File {
	t.Helper()

	file, err := svc.CreateFile(context.Background(), user, mustPath(t, raw),
		bytes.NewReader([]byte(content)), int64(len(content)), "text/plain", opts)
	require.NoError(t, err, "uploading %q", raw)
	return file
}

func readAllString(t *testing.T, store *storage.MemoryStore, file *models.File) string {
	t.Helper()

	reader, _, err := store.Open(context.Background(), file.ID)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	return string(data)
}
