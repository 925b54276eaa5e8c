package services

import (
	"archive/zip"
	"context"
	"io"

	"github.com/arcziwoda/skylock-sub000/internal/models"
	"github.com/arcziwoda/skylock-sub000/internal/vpath"
)

// WriteFolderArchive streams the subtree at path as a zip. Folder
// entries are emitted so empty directories survive the round trip; file
// payloads come straight from blob storage.
func (s *ResourceService) WriteFolderArchive(ctx context.Context, w io.Writer, user *models.User, path vpath.Path) error {
	folder, err := s.GetFolder(ctx, user, path)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	if err := s.archiveFolder(ctx, zw, folder, ""); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func (s *ResourceService) archiveFolder(ctx context.Context, zw *zip.Writer, folder *models.Folder, prefix string) error {
	contents, err := s.listChildren(ctx, s.db, folder)
	if err != nil {
		return err
	}

	if prefix != "" && len(contents.Folders) == 0 && len(contents.Files) == 0 {
		if _, err := zw.Create(prefix); err != nil {
			return err
		}
		return nil
	}

	for _, file := range contents.Files {
		if err := s.archiveFile(ctx, zw, &file, prefix); err != nil {
			return err
		}
	}

	for i := range contents.Folders {
		sub := &contents.Folders[i]
		if err := s.archiveFolder(ctx, zw, sub, prefix+sub.Name+"/"); err != nil {
			return err
		}
	}
	return nil
}

func (s *ResourceService) archiveFile(ctx context.Context, zw *zip.Writer, file *models.File, prefix string) error {
	reader, _, err := s.storage.Open(ctx, file.ID)
	if err != nil {
		return err
	}
	defer reader.Close()

	entry, err := zw.Create(prefix + file.Name)
	if err != nil {
		return err
	}
	_, err = io.Copy(entry, reader)
	return err
}
