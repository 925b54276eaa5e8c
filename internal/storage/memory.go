package storage

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
)

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryStore keeps payloads in process memory. Used by tests and by
// local development without a MinIO instance.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[uuid.UUID]memoryObject
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[uuid.UUID]memoryObject)}
}

func (m *MemoryStore) Save(ctx context.Context, fileID uuid.UUID, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[fileID] = memoryObject{data: data, contentType: contentType}
	return nil
}

func (m *MemoryStore) Open(ctx context.Context, fileID uuid.UUID) (io.ReadCloser, ObjectInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[fileID]
	if !ok {
		return nil, ObjectInfo{}, ErrObjectNotFound
	}

	info := ObjectInfo{Size: int64(len(obj.data)), ContentType: obj.contentType}
	return io.NopCloser(bytes.NewReader(obj.data)), info, nil
}

func (m *MemoryStore) Delete(ctx context.Context, fileID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[fileID]; !ok {
		return ErrObjectNotFound
	}
	delete(m.objects, fileID)
	return nil
}

// Len reports how many payloads are held. Handy in tests asserting
// recursive deletes left no blobs behind.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

// Has reports whether a payload exists for the id.
func (m *MemoryStore) Has(fileID uuid.UUID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[fileID]
	return ok
}
