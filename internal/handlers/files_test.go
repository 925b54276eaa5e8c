package handlers

import (
	"io"
	"net/http"
	"testing"

	"github.com/arcziwoda/skylock-sub000/internal/models"
	"github.com/google/uuid"
)

func TestUploadAndDownloadFile(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env, "alice", "password123")

	resp := performUpload(t, env.app, "/api/files/report.txt", "quarterly numbers", nil, authHeaders(token))
	assertStatus(t, resp, http.StatusCreated)
	created := dataMap(t, decodeJSONMap(t, resp))
	if created["name"] != "report.txt" {
		t.Fatalf("expected name report.txt, got %v", created["name"])
	}
	if created["size"] != float64(len("quarterly numbers")) {
		t.Fatalf("expected size %d, got %v", len("quarterly numbers"), created["size"])
	}

	resp = performRequest(t, env.app, http.MethodGet, "/api/files/report.txt", nil, authHeaders(token))
	assertStatus(t, resp, http.StatusOK)

	resp = performRequest(t, env.app, http.MethodGet, "/api/download/files/report.txt", nil, authHeaders(token))
	assertStatus(t, resp, http.StatusOK)
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("failed reading download body: %v", err)
	}
	if string(raw) != "quarterly numbers" {
		t.Fatalf("downloaded content mismatch: %q", string(raw))
	}
}

func TestUploadRequiresFilePart(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env, "alice", "password123")

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/files/report.txt", map[string]string{}, authHeaders(token))
	assertStatus(t, resp, http.StatusBadRequest)
}

func TestUploadDuplicateAndForce(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env, "alice", "password123")

	resp := performUpload(t, env.app, "/api/files/report.txt", "v1", nil, authHeaders(token))
	assertStatus(t, resp, http.StatusCreated)
	firstID, _ := dataMap(t, decodeJSONMap(t, resp))["id"].(string)

	resp = performUpload(t, env.app, "/api/files/report.txt", "v2", nil, authHeaders(token))
	assertStatus(t, resp, http.StatusConflict)

	resp = performUpload(t, env.app, "/api/files/report.txt", "v2", map[string]string{"force": "true"}, authHeaders(token))
	assertStatus(t, resp, http.StatusCreated)
	replacedID, _ := dataMap(t, decodeJSONMap(t, resp))["id"].(string)
	if replacedID != firstID {
		t.Fatalf("forced replacement changed the file id: %s != %s", replacedID, firstID)
	}

	resp = performRequest(t, env.app, http.MethodGet, "/api/download/files/report.txt", nil, authHeaders(token))
	assertStatus(t, resp, http.StatusOK)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(raw) != "v2" {
		t.Fatalf("expected replaced content v2, got %q", string(raw))
	}
}

func TestUploadIntoMissingFolder(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env, "alice", "password123")

	resp := performUpload(t, env.app, "/api/files/nope/report.txt", "data", nil, authHeaders(token))
	assertStatus(t, resp, http.StatusNotFound)
	if env.store.Len() != 0 {
		t.Fatalf("expected no blobs after failed upload, got %d", env.store.Len())
	}
}

func TestDeleteFileCleansBlob(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env, "alice", "password123")

	resp := performUpload(t, env.app, "/api/files/report.txt", "data", nil, authHeaders(token))
	assertStatus(t, resp, http.StatusCreated)
	fileID, _ := dataMap(t, decodeJSONMap(t, resp))["id"].(string)

	resp = performRequest(t, env.app, http.MethodDelete, "/api/files/report.txt", nil, authHeaders(token))
	assertStatus(t, resp, http.StatusOK)

	id, err := uuid.Parse(fileID)
	if err != nil {
		t.Fatalf("invalid file id %q: %v", fileID, err)
	}
	if env.store.Has(id) {
		t.Fatal("blob must be removed with the file")
	}

	var fileCount int64
	if err := env.db.Model(&models.File{}).Count(&fileCount).Error; err != nil {
		t.Fatalf("failed counting files: %v", err)
	}
	if fileCount != 0 {
		t.Fatalf("expected no file rows, got %d", fileCount)
	}
}

func TestFileShareURL(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env, "alice", "password123")

	resp := performUpload(t, env.app, "/api/files/report.txt", "data", map[string]string{"public": "true"}, authHeaders(token))
	assertStatus(t, resp, http.StatusCreated)
	fileID, _ := dataMap(t, decodeJSONMap(t, resp))["id"].(string)

	resp = performRequest(t, env.app, http.MethodGet, "/api/links/files/report.txt", nil, authHeaders(token))
	assertStatus(t, resp, http.StatusOK)
	link := dataMap(t, decodeJSONMap(t, resp))
	if link["url"] != "/files/"+fileID {
		t.Fatalf("expected /files/%s, got %v", fileID, link["url"])
	}
	if link["downloadURL"] != "http://localhost:8080/api/public/files/"+fileID+"/download" {
		t.Fatalf("unexpected download url %v", link["downloadURL"])
	}

	// Flipping the file private revokes the link.
	resp = performJSONRequest(t, env.app, http.MethodPatch, "/api/files/report.txt", map[string]bool{"isPublic": false}, authHeaders(token))
	assertStatus(t, resp, http.StatusOK)

	resp = performRequest(t, env.app, http.MethodGet, "/api/links/files/report.txt", nil, authHeaders(token))
	assertStatus(t, resp, http.StatusForbidden)
}
