package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	id := uuid.New()

	payload := []byte("hello blob")
	if err := store.Save(ctx, id, bytes.NewReader(payload), int64(len(payload)), "text/plain"); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}
	if !store.Has(id) || store.Len() != 1 {
		t.Fatal("expected the object to be stored")
	}

	reader, info, err := store.Open(ctx, id)
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}
	defer reader.Close()

	if info.Size != int64(len(payload)) {
		t.Errorf("expected size %d, got %d", len(payload), info.Size)
	}
	if info.ContentType != "text/plain" {
		t.Errorf("expected content type text/plain, got %q", info.ContentType)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("failed reading object: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("content mismatch: %q", data)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	id := uuid.New()

	if err := store.Save(ctx, id, bytes.NewReader([]byte("x")), 1, ""); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}
	if err := store.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() returned error: %v", err)
	}
	if store.Has(id) {
		t.Fatal("expected the object to be gone")
	}

	if err := store.Delete(ctx, id); err != ErrObjectNotFound {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
	if _, _, err := store.Open(ctx, id); err != ErrObjectNotFound {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	id := uuid.New()

	if err := store.Save(ctx, id, bytes.NewReader([]byte("v1")), 2, "text/plain"); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}
	if err := store.Save(ctx, id, bytes.NewReader([]byte("v2 longer")), 9, "text/plain"); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	reader, info, err := store.Open(ctx, id)
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}
	defer reader.Close()
	if info.Size != 9 {
		t.Errorf("expected size 9, got %d", info.Size)
	}
	if store.Len() != 1 {
		t.Errorf("expected one object, got %d", store.Len())
	}
}
