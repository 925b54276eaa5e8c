package api

import "time"

// Response is the standard { success, data, error } envelope.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
}

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parentID,omitempty"`
	OwnerID   string    `json:"ownerID"`
	IsPublic  bool      `json:"isPublic"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type File struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	FolderID  string    `json:"folderID"`
	OwnerID   string    `json:"ownerID"`
	IsPublic  bool      `json:"isPublic"`
	Size      int64     `json:"size"`
	MimeType  string    `json:"mimeType"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Contents mirrors the server's folder-listing payload.
type Contents struct {
	Folder  Folder   `json:"folder"`
	Path    string   `json:"path"`
	Folders []Folder `json:"folders"`
	Files   []File   `json:"files"`
}

type Login struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ShareLink struct {
	URL         string `json:"url"`
	DownloadURL string `json:"downloadURL,omitempty"`
}
