package handlers

import (
	"io"
	"net/http"
	"testing"

	"github.com/google/uuid"
)

func TestPublicFolderAccess(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env, "alice", "password123")

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/folders/docs", map[string]bool{"public": true}, authHeaders(token))
	assertStatus(t, resp, http.StatusCreated)
	folderID, _ := dataMap(t, decodeJSONMap(t, resp))["id"].(string)

	resp = performUpload(t, env.app, "/api/files/docs/report.txt", "data", nil, authHeaders(token))
	assertStatus(t, resp, http.StatusCreated)

	// Anonymous metadata lookup.
	resp = performRequest(t, env.app, http.MethodGet, "/api/public/folders/"+folderID, nil, nil)
	assertStatus(t, resp, http.StatusOK)
	folder := dataMap(t, decodeJSONMap(t, resp))
	if folder["name"] != "docs" {
		t.Fatalf("expected folder name docs, got %v", folder["name"])
	}

	resp = performRequest(t, env.app, http.MethodGet, "/api/public/folders/"+folderID+"/contents", nil, nil)
	assertStatus(t, resp, http.StatusOK)
	contents := dataMap(t, decodeJSONMap(t, resp))
	files, _ := contents["files"].([]any)
	if len(files) != 1 {
		t.Fatalf("expected one file listed, got %v", contents["files"])
	}
}

func TestPrivateFolderLooksAbsent(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env, "alice", "password123")

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/folders/docs", nil, authHeaders(token))
	assertStatus(t, resp, http.StatusCreated)
	folderID, _ := dataMap(t, decodeJSONMap(t, resp))["id"].(string)

	resp = performRequest(t, env.app, http.MethodGet, "/api/public/folders/"+folderID, nil, nil)
	assertStatus(t, resp, http.StatusNotFound)

	resp = performRequest(t, env.app, http.MethodGet, "/api/public/folders/"+uuid.NewString(), nil, nil)
	assertStatus(t, resp, http.StatusNotFound)
}

func TestPublicFileDownload(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env, "alice", "password123")

	resp := performUpload(t, env.app, "/api/files/report.txt", "shared data", map[string]string{"public": "true"}, authHeaders(token))
	assertStatus(t, resp, http.StatusCreated)
	fileID, _ := dataMap(t, decodeJSONMap(t, resp))["id"].(string)

	resp = performRequest(t, env.app, http.MethodGet, "/api/public/files/"+fileID, nil, nil)
	assertStatus(t, resp, http.StatusOK)

	resp = performRequest(t, env.app, http.MethodGet, "/api/public/files/"+fileID+"/download", nil, nil)
	assertStatus(t, resp, http.StatusOK)
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("failed reading download body: %v", err)
	}
	if string(raw) != "shared data" {
		t.Fatalf("downloaded content mismatch: %q", string(raw))
	}
}

func TestPrivateFileNotDownloadable(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env, "alice", "password123")

	resp := performUpload(t, env.app, "/api/files/report.txt", "secret", nil, authHeaders(token))
	assertStatus(t, resp, http.StatusCreated)
	fileID, _ := dataMap(t, decodeJSONMap(t, resp))["id"].(string)

	resp = performRequest(t, env.app, http.MethodGet, "/api/public/files/"+fileID, nil, nil)
	assertStatus(t, resp, http.StatusNotFound)

	resp = performRequest(t, env.app, http.MethodGet, "/api/public/files/"+fileID+"/download", nil, nil)
	assertStatus(t, resp, http.StatusNotFound)
}

func TestPublicLookupRejectsBadID(t *testing.T) {
	env := setupTestEnv(t)

	resp := performRequest(t, env.app, http.MethodGet, "/api/public/folders/not-a-uuid", nil, nil)
	assertStatus(t, resp, http.StatusBadRequest)
}
