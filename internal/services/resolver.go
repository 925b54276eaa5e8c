package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arcziwoda/skylock-sub000/internal/domain"
	"github.com/arcziwoda/skylock-sub000/internal/models"
	"github.com/arcziwoda/skylock-sub000/internal/vpath"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resolver walks virtual paths through the folder/file tables. It is
// stateless; construct one over a transaction handle to resolve inside
// that transaction.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// RootFolder returns the owner's root folder, identified by the
// registration-time convention (name = owner id, no parent). A missing
// root is data corruption, not a user error.
func (r *Resolver) RootFolder(ctx context.Context, owner *models.User) (*models.Folder, error) {
	var root models.Folder
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND parent_id IS NULL AND name = ?", owner.ID, owner.ID.String()).
		First(&root).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s has no root folder: %w", owner.ID, domain.ErrIntegrity)
		}
		return nil, err
	}
	return &root, nil
}

// ResolveFolder walks the path's segments from the owner's root. The
// empty path resolves to the root itself. The first segment with no
// matching child folder fails with a NotFoundError naming that segment.
func (r *Resolver) ResolveFolder(ctx context.Context, owner *models.User, path vpath.Path) (*models.Folder, error) {
	current, err := r.RootFolder(ctx, owner)
	if err != nil {
		return nil, err
	}

	for _, segment := range path.Segments() {
		child, err := r.childFolder(ctx, segment, current.ID)
		if err != nil {
			return nil, err
		}
		current = child
	}

	return current, nil
}

// ResolveFile resolves the path's parent as a folder, then looks the
// file up by name within it.
func (r *Resolver) ResolveFile(ctx context.Context, owner *models.User, path vpath.Path) (*models.File, error) {
	parentPath, err := path.Parent()
	if err != nil {
		return nil, err
	}

	parent, err := r.ResolveFolder(ctx, owner, parentPath)
	if err != nil {
		return nil, err
	}

	var file models.File
	err = r.db.WithContext(ctx).
		Where("folder_id = ? AND name = ?", parent.ID, path.Name()).
		First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound(path.Name())
		}
		return nil, err
	}
	return &file, nil
}

// PathOf reconstructs a folder's virtual path by following parent ids up
// to the root. The root folder's own name is not part of the path. An
// orphaned chain or a root whose owner no longer exists is reported as
// an integrity violation.
func (r *Resolver) PathOf(ctx context.Context, folder *models.Folder) (string, error) {
	names := make([]string, 0, 8)
	current := folder

	for current.ParentID != nil {
		names = append(names, current.Name)

		var parent models.Folder
		err := r.db.WithContext(ctx).First(&parent, "id = ?", *current.ParentID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", fmt.Errorf("folder %s has a dangling parent: %w", current.ID, domain.ErrIntegrity)
			}
			return "", err
		}
		current = &parent
	}

	var ownerCount int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", current.OwnerID).Count(&ownerCount).Error; err != nil {
		return "", err
	}
	if ownerCount == 0 {
		return "", fmt.Errorf("root folder %s has no owner: %w", current.ID, domain.ErrIntegrity)
	}

	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "/"), nil
}

func (r *Resolver) childFolder(ctx context.Context, name string, parentID uuid.UUID) (*models.Folder, error) {
	var folder models.Folder
	err := r.db.WithContext(ctx).
		Where("parent_id = ? AND name = ?", parentID, name).
		First(&folder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound(name)
		}
		return nil, err
	}
	return &folder, nil
}
