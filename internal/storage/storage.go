// Package storage holds file payloads, keyed by the owning file row's id.
package storage

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
)

// ErrObjectNotFound is returned when no payload exists for the given id.
var ErrObjectNotFound = errors.New("object not found")

type ObjectInfo struct {
	Size        int64
	ContentType string
}

// Store is the blob collaborator the resource service writes through.
// Payload lifecycle follows the file row's: the service saves the blob
// before creating the row and deletes the blob before deleting the row.
type Store interface {
	Save(ctx context.Context, fileID uuid.UUID, reader io.Reader, size int64, contentType string) error
	Open(ctx context.Context, fileID uuid.UUID) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, fileID uuid.UUID) error
}
