package models

import "github.com/google/uuid"

// File is a leaf entry. Its payload lives in blob storage keyed by ID;
// the row and the blob are kept in lockstep by the resource service.
// Files and folders are distinct row kinds, so a file may share a name
// with a sibling folder.
type File struct {
	BaseModel
	Name     string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:idx_files_folder_name"`
	FolderID uuid.UUID `json:"folderID" gorm:"type:uuid;not null;index;uniqueIndex:idx_files_folder_name"`
	OwnerID  uuid.UUID `json:"ownerID" gorm:"type:uuid;not null;index"`
	IsPublic bool      `json:"isPublic" gorm:"not null;default:false"`
	Size     int64     `json:"size" gorm:"not null;default:0"`
	MimeType string    `json:"mimeType" gorm:"type:varchar(255);not null"`

	Folder Folder `json:"-" gorm:"foreignKey:FolderID;references:ID"`
	Owner  User   `json:"-" gorm:"foreignKey:OwnerID;references:ID"`
}
