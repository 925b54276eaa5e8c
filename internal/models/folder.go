package models

import "github.com/google/uuid"

// Folder is a node in a user's tree. The root folder has a nil ParentID
// and its name is the owner's id, so it can never collide with a
// user-chosen segment name. Sibling names are unique per parent; the
// unique index is what resolves concurrent same-name creates.
type Folder struct {
	BaseModel
	Name     string     `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:idx_folders_parent_name"`
	ParentID *uuid.UUID `json:"parentID,omitempty" gorm:"type:uuid;index;uniqueIndex:idx_folders_parent_name"`
	OwnerID  uuid.UUID  `json:"ownerID" gorm:"type:uuid;not null;index"`
	IsPublic bool       `json:"isPublic" gorm:"not null;default:false"`

	Parent  *Folder  `json:"-" gorm:"foreignKey:ParentID"`
	Folders []Folder `json:"-" gorm:"foreignKey:ParentID"`
	Files   []File   `json:"-" gorm:"foreignKey:FolderID"`
	Owner   User     `json:"-" gorm:"foreignKey:OwnerID;references:ID"`
}

// IsRoot reports whether this is the owner's root folder.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}
