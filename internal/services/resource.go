package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/arcziwoda/skylock-sub000/internal/domain"
	"github.com/arcziwoda/skylock-sub000/internal/models"
	"github.com/arcziwoda/skylock-sub000/internal/storage"
	"github.com/arcziwoda/skylock-sub000/internal/vpath"
	"github.com/arcziwoda/skylock-sub000/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResourceService owns the folder/file tree semantics: creation with
// parent-chain validation, recursive deletion with cascading blob
// cleanup, visibility toggling and public-id lookups. Metadata mutations
// run inside a single transaction per call; blob writes are ordered
// around them so a failure leaves an orphaned blob rather than a row
// pointing at nothing.
type ResourceService struct {
	db      *gorm.DB
	storage storage.Store
	links   *LinkBuilder
}

func NewResourceService(db *gorm.DB, store storage.Store, links *LinkBuilder) *ResourceService {
	return &ResourceService{db: db, storage: store, links: links}
}

type CreateFolderOptions struct {
	// Parents creates missing ancestors in path order, mkdir -p style.
	Parents bool
	Public  bool
}

type CreateFileOptions struct {
	// Force replaces an existing file in place, keeping its id so share
	// links stay valid across re-uploads.
	Force  bool
	Public bool
}

// FolderContents is a folder plus its immediate children.
type FolderContents struct {
	Folder  *models.Folder  `json:"folder"`
	Path    string          `json:"path"`
	Folders []models.Folder `json:"folders"`
	Files   []models.File   `json:"files"`
}

// CreateRootFolder sets up the tree for a new user. The root's name is
// the owner's id so it can never collide with user-chosen names.
func (s *ResourceService) CreateRootFolder(ctx context.Context, user *models.User) (*models.Folder, error) {
	var root *models.Folder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Folder{}).
			Where("owner_id = ? AND parent_id IS NULL", user.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrRootFolderExists
		}

		root = &models.Folder{
			Name:    user.ID.String(),
			OwnerID: user.ID,
		}
		return tx.Create(root).Error
	})
	if err != nil {
		return nil, err
	}

	logger.InfoWithUser(user.ID.String(), "root_folder_created", map[string]interface{}{
		"folder_id": root.ID.String(),
	})
	return root, nil
}

// CreateFolder creates the folder at path under the owner's tree.
func (s *ResourceService) CreateFolder(ctx context.Context, user *models.User, path vpath.Path, opts CreateFolderOptions) (*models.Folder, error) {
	if path.IsRoot() {
		return nil, fmt.Errorf("cannot create the root folder: %w", domain.ErrForbidden)
	}

	parentPath, err := path.Parent()
	if err != nil {
		return nil, err
	}

	var folder *models.Folder
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		resolver := NewResolver(tx)

		var parent *models.Folder
		var resolveErr error
		if opts.Parents {
			parent, resolveErr = s.ensureFolderChain(ctx, tx, user, parentPath)
		} else {
			parent, resolveErr = resolver.ResolveFolder(ctx, user, parentPath)
		}
		if resolveErr != nil {
			return resolveErr
		}

		var count int64
		if err := tx.Model(&models.Folder{}).
			Where("parent_id = ? AND name = ?", parent.ID, path.Name()).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("folder %q: %w", path.Name(), domain.ErrAlreadyExists)
		}

		folder = &models.Folder{
			Name:     path.Name(),
			ParentID: &parent.ID,
			OwnerID:  user.ID,
			IsPublic: opts.Public,
		}
		if err := tx.Create(folder).Error; err != nil {
			return translateDuplicate(err, path.Name())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoWithUser(user.ID.String(), "folder_created", map[string]interface{}{
		"folder_id": folder.ID.String(),
		"path":      path.String(),
		"is_public": opts.Public,
	})
	return folder, nil
}

// GetFolder resolves the folder at path.
func (s *ResourceService) GetFolder(ctx context.Context, user *models.User, path vpath.Path) (*models.Folder, error) {
	return NewResolver(s.db).ResolveFolder(ctx, user, path)
}

// GetFile resolves the file at path.
func (s *ResourceService) GetFile(ctx context.Context, user *models.User, path vpath.Path) (*models.File, error) {
	return NewResolver(s.db).ResolveFile(ctx, user, path)
}

// FolderContents resolves the folder at path and lists its immediate
// child folders and files.
func (s *ResourceService) FolderContents(ctx context.Context, user *models.User, path vpath.Path) (*FolderContents, error) {
	resolver := NewResolver(s.db)
	folder, err := resolver.ResolveFolder(ctx, user, path)
	if err != nil {
		return nil, err
	}

	contents, err := s.listChildren(ctx, s.db, folder)
	if err != nil {
		return nil, err
	}
	contents.Path = path.String()
	return contents, nil
}

// DeleteFolder removes the folder at path. Without recursive, a folder
// with any child fails and the tree stays untouched. With recursive, the
// subtree is removed leaves-first, each file's blob before its row, all
// rows in one transaction.
func (s *ResourceService) DeleteFolder(ctx context.Context, user *models.User, path vpath.Path, recursive bool) error {
	if path.IsRoot() {
		return fmt.Errorf("cannot delete the root folder: %w", domain.ErrForbidden)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		folder, err := NewResolver(tx).ResolveFolder(ctx, user, path)
		if err != nil {
			return err
		}

		if !recursive {
			empty, err := s.folderIsEmpty(ctx, tx, folder.ID)
			if err != nil {
				return err
			}
			if !empty {
				return fmt.Errorf("folder %q: %w", folder.Name, domain.ErrFolderNotEmpty)
			}
			return tx.Delete(&models.Folder{}, "id = ?", folder.ID).Error
		}

		return s.deleteFolderTree(ctx, tx, folder)
	})
	if err != nil {
		return err
	}

	logger.InfoWithUser(user.ID.String(), "folder_deleted", map[string]interface{}{
		"path":      path.String(),
		"recursive": recursive,
	})
	return nil
}

// CreateFile stores content as the file at path. New files write the
// blob before the row; a forced replacement deletes the old blob,
// updates the row in place and writes the new blob under the same id.
func (s *ResourceService) CreateFile(ctx context.Context, user *models.User, path vpath.Path, content io.Reader, size int64, mimeType string, opts CreateFileOptions) (*models.File, error) {
	if path.IsRoot() {
		return nil, fmt.Errorf("file name is empty: %w", domain.ErrForbidden)
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	parentPath, err := path.Parent()
	if err != nil {
		return nil, err
	}

	resolver := NewResolver(s.db)
	parent, err := resolver.ResolveFolder(ctx, user, parentPath)
	if err != nil {
		return nil, err
	}

	var existing models.File
	err = s.db.WithContext(ctx).
		Where("folder_id = ? AND name = ?", parent.ID, path.Name()).
		First(&existing).Error
	switch {
	case err == nil:
		if !opts.Force {
			return nil, fmt.Errorf("file %q: %w", path.Name(), domain.ErrAlreadyExists)
		}
		return s.replaceFile(ctx, user, &existing, content, size, mimeType, opts.Public)
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to create
	default:
		return nil, err
	}

	file := &models.File{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      path.Name(),
		FolderID:  parent.ID,
		OwnerID:   user.ID,
		IsPublic:  opts.Public,
		Size:      size,
		MimeType:  mimeType,
	}

	if err := s.storage.Save(ctx, file.ID, content, size, mimeType); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(file).Error; err != nil {
		// The row never landed; remove the blob we just wrote.
		if cleanupErr := s.storage.Delete(ctx, file.ID); cleanupErr != nil {
			logger.Error("orphaned_blob", cleanupErr, map[string]interface{}{
				"file_id": file.ID.String(),
			})
		}
		return nil, translateDuplicate(err, path.Name())
	}

	logger.InfoWithUser(user.ID.String(), "file_created", map[string]interface{}{
		"file_id":   file.ID.String(),
		"path":      path.String(),
		"size":      size,
		"mime_type": mimeType,
		"is_public": opts.Public,
	})
	return file, nil
}

func (s *ResourceService) replaceFile(ctx context.Context, user *models.User, existing *models.File, content io.Reader, size int64, mimeType string, public bool) (*models.File, error) {
	if err := s.storage.Delete(ctx, existing.ID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"size":      size,
		"mime_type": mimeType,
		"is_public": public,
	}
	if err := s.db.WithContext(ctx).Model(existing).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := s.storage.Save(ctx, existing.ID, content, size, mimeType); err != nil {
		return nil, err
	}

	existing.Size = size
	existing.MimeType = mimeType
	existing.IsPublic = public

	logger.InfoWithUser(user.ID.String(), "file_replaced", map[string]interface{}{
		"file_id": existing.ID.String(),
		"size":    size,
	})
	return existing, nil
}

// OpenFile resolves the file at path and opens its payload stream. The
// caller owns the returned reader.
func (s *ResourceService) OpenFile(ctx context.Context, user *models.User, path vpath.Path) (*models.File, io.ReadCloser, storage.ObjectInfo, error) {
	file, err := s.GetFile(ctx, user, path)
	if err != nil {
		return nil, nil, storage.ObjectInfo{}, err
	}

	reader, info, err := s.storage.Open(ctx, file.ID)
	if err != nil {
		return nil, nil, storage.ObjectInfo{}, err
	}
	return file, reader, info, nil
}

// DeleteFile removes the file at path, blob first. A failed blob delete
// aborts, leaving the row intact and the operation retryable.
func (s *ResourceService) DeleteFile(ctx context.Context, user *models.User, path vpath.Path) error {
	file, err := s.GetFile(ctx, user, path)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, file.ID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.File{}, "id = ?", file.ID).Error; err != nil {
		return err
	}

	logger.InfoWithUser(user.ID.String(), "file_deleted", map[string]interface{}{
		"file_id": file.ID.String(),
		"path":    path.String(),
	})
	return nil
}

// SetFolderVisibility flips the folder's public flag. Visibility never
// cascades; every descendant keeps its own flag.
func (s *ResourceService) SetFolderVisibility(ctx context.Context, user *models.User, path vpath.Path, public bool) (*models.Folder, error) {
	folder, err := s.GetFolder(ctx, user, path)
	if err != nil {
		return nil, err
	}
	if folder.IsRoot() {
		return nil, fmt.Errorf("cannot change root folder visibility: %w", domain.ErrForbidden)
	}

	if err := s.db.WithContext(ctx).Model(folder).Update("is_public", public).Error; err != nil {
		return nil, err
	}
	folder.IsPublic = public

	logger.InfoWithUser(user.ID.String(), "folder_visibility_changed", map[string]interface{}{
		"folder_id": folder.ID.String(),
		"is_public": public,
	})
	return folder, nil
}

// SetFileVisibility flips the file's public flag.
func (s *ResourceService) SetFileVisibility(ctx context.Context, user *models.User, path vpath.Path, public bool) (*models.File, error) {
	file, err := s.GetFile(ctx, user, path)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(file).Update("is_public", public).Error; err != nil {
		return nil, err
	}
	file.IsPublic = public

	logger.InfoWithUser(user.ID.String(), "file_visibility_changed", map[string]interface{}{
		"file_id":   file.ID.String(),
		"is_public": public,
	})
	return file, nil
}

// PublicFolder looks a folder up by id for anonymous share access.
// Private folders are indistinguishable from absent ones.
func (s *ResourceService) PublicFolder(ctx context.Context, id uuid.UUID) (*models.Folder, error) {
	var folder models.Folder
	err := s.db.WithContext(ctx).First(&folder, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound(id.String())
		}
		return nil, err
	}
	if !folder.IsPublic {
		return nil, domain.NotFound(id.String())
	}
	return &folder, nil
}

// PublicFolderContents lists a public folder's children. Child metadata
// is listed regardless of each child's own flag; the children's own
// public endpoints still gate on it.
func (s *ResourceService) PublicFolderContents(ctx context.Context, id uuid.UUID) (*FolderContents, error) {
	folder, err := s.PublicFolder(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.listChildren(ctx, s.db, folder)
}

// PublicFile looks a file up by id for anonymous share access.
func (s *ResourceService) PublicFile(ctx context.Context, id uuid.UUID) (*models.File, error) {
	var file models.File
	err := s.db.WithContext(ctx).First(&file, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound(id.String())
		}
		return nil, err
	}
	if !file.IsPublic {
		return nil, domain.NotFound(id.String())
	}
	return &file, nil
}

// OpenPublicFile opens a public file's payload stream by id.
func (s *ResourceService) OpenPublicFile(ctx context.Context, id uuid.UUID) (*models.File, io.ReadCloser, storage.ObjectInfo, error) {
	file, err := s.PublicFile(ctx, id)
	if err != nil {
		return nil, nil, storage.ObjectInfo{}, err
	}

	reader, info, err := s.storage.Open(ctx, file.ID)
	if err != nil {
		return nil, nil, storage.ObjectInfo{}, err
	}
	return file, reader, info, nil
}

// FolderURL returns the folder's share link. Private resources never
// yield one.
func (s *ResourceService) FolderURL(ctx context.Context, user *models.User, path vpath.Path) (string, error) {
	folder, err := s.GetFolder(ctx, user, path)
	if err != nil {
		return "", err
	}
	if !folder.IsPublic {
		return "", fmt.Errorf("folder %q is private: %w", folder.Name, domain.ErrForbidden)
	}
	return s.links.FolderURL(folder.ID), nil
}

// FileURL returns the file's share link.
func (s *ResourceService) FileURL(ctx context.Context, user *models.User, path vpath.Path) (string, error) {
	file, err := s.GetFile(ctx, user, path)
	if err != nil {
		return "", err
	}
	if !file.IsPublic {
		return "", fmt.Errorf("file %q is private: %w", file.Name, domain.ErrForbidden)
	}
	return s.links.FileURL(file.ID), nil
}

// FileDownloadURL returns the fully-qualified anonymous download link.
func (s *ResourceService) FileDownloadURL(ctx context.Context, user *models.User, path vpath.Path) (string, error) {
	file, err := s.GetFile(ctx, user, path)
	if err != nil {
		return "", err
	}
	if !file.IsPublic {
		return "", fmt.Errorf("file %q is private: %w", file.Name, domain.ErrForbidden)
	}
	return s.links.FileDownloadURL(file.ID), nil
}

// ensureFolderChain resolves path, creating any missing folder along the
// way in path order.
func (s *ResourceService) ensureFolderChain(ctx context.Context, tx *gorm.DB, user *models.User, path vpath.Path) (*models.Folder, error) {
	resolver := NewResolver(tx)
	current, err := resolver.RootFolder(ctx, user)
	if err != nil {
		return nil, err
	}

	for _, segment := range path.Segments() {
		child, err := resolver.childFolder(ctx, segment, current.ID)
		if err == nil {
			current = child
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}

		created := &models.Folder{
			Name:     segment,
			ParentID: &current.ID,
			OwnerID:  user.ID,
		}
		if err := tx.Create(created).Error; err != nil {
			return nil, translateDuplicate(err, segment)
		}
		current = created
	}

	return current, nil
}

// deleteFolderTree removes folder and everything beneath it depth-first.
// Blobs go before their rows so a blob failure aborts with the metadata
// still in place.
func (s *ResourceService) deleteFolderTree(ctx context.Context, tx *gorm.DB, folder *models.Folder) error {
	var subfolders []models.Folder
	if err := tx.Where("parent_id = ?", folder.ID).Find(&subfolders).Error; err != nil {
		return err
	}
	for i := range subfolders {
		if err := s.deleteFolderTree(ctx, tx, &subfolders[i]); err != nil {
			return err
		}
	}

	var files []models.File
	if err := tx.Where("folder_id = ?", folder.ID).Find(&files).Error; err != nil {
		return err
	}
	for _, file := range files {
		if err := s.storage.Delete(ctx, file.ID); err != nil {
			return err
		}
		if err := tx.Delete(&models.File{}, "id = ?", file.ID).Error; err != nil {
			return err
		}
	}

	return tx.Delete(&models.Folder{}, "id = ?", folder.ID).Error
}

func (s *ResourceService) listChildren(ctx context.Context, db *gorm.DB, folder *models.Folder) (*FolderContents, error) {
	var subfolders []models.Folder
	if err := db.WithContext(ctx).
		Where("parent_id = ?", folder.ID).
		Order("name ASC").
		Find(&subfolders).Error; err != nil {
		return nil, err
	}

	var files []models.File
	if err := db.WithContext(ctx).
		Where("folder_id = ?", folder.ID).
		Order("name ASC").
		Find(&files).Error; err != nil {
		return nil, err
	}

	return &FolderContents{Folder: folder, Folders: subfolders, Files: files}, nil
}

func (s *ResourceService) folderIsEmpty(ctx context.Context, tx *gorm.DB, folderID uuid.UUID) (bool, error) {
	var folderCount int64
	if err := tx.Model(&models.Folder{}).Where("parent_id = ?", folderID).Count(&folderCount).Error; err != nil {
		return false, err
	}
	if folderCount > 0 {
		return false, nil
	}

	var fileCount int64
	if err := tx.Model(&models.File{}).Where("folder_id = ?", folderID).Count(&fileCount).Error; err != nil {
		return false, err
	}
	return fileCount == 0, nil
}

// translateDuplicate maps the store's unique-constraint violation to the
// business error. Pre-checks catch most duplicates; this handles the two
// writers racing on the same name, which the unique index serializes.
func translateDuplicate(err error, name string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key") {
		return fmt.Errorf("%q: %w", name, domain.ErrAlreadyExists)
	}
	return err
}
