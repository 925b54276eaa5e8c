package models

type User struct {
	BaseModel
	Username     string `json:"username" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"type:text;not null"`

	Folders []Folder `json:"-" gorm:"foreignKey:OwnerID"`
	Files   []File   `json:"-" gorm:"foreignKey:OwnerID"`
}
