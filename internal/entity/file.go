package entity

import (
	"time"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/pkg/identifier"
)

// Entity kinds an attachment may point at. The (EntityType, EntityID) pair
// is an untyped polymorphic reference; it is validated at the application
// layer, never by a foreign key.
const (
	AttachableThread  = "thread"
	AttachableComment = "comment"
	AttachableMessage = "message"
	AttachableEvent   = "event"
	AttachableUser    = "user"
)

// File tracks metadata for content stored in the external object store.
type File struct {
	ID               string     `gorm:"size:40;primaryKey" json:"id"`
	Filename         string     `gorm:"size:255;not null" json:"filename"`
	OriginalFilename string     `gorm:"size:255;not null" json:"original_filename"`
	MimeType         string     `gorm:"size:100;not null;index" json:"mime_type"`
	Extension        *string    `gorm:"size:20" json:"extension,omitempty"`
	Size             int64      `gorm:"not null" json:"size"`
	UploaderID       string     `gorm:"size:40;not null;index" json:"uploader_id"`
	Uploader         User       `gorm:"foreignKey:UploaderID;constraint:OnDelete:CASCADE" json:"-"`
	IsPublic         bool       `gorm:"default:false" json:"is_public"`
	URL              *string    `gorm:"type:text" json:"url,omitempty"`
	UploadedAt       time.Time  `gorm:"autoCreateTime;index" json:"uploaded_at"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
}

func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = identifier.New(identifier.TagFile)
	}
	return nil
}

// Attachment links a file to any entity via (EntityType, EntityID).
type Attachment struct {
	ID           string    `gorm:"size:40;primaryKey" json:"id"`
	FileID       string    `gorm:"size:40;not null;index" json:"file_id"`
	File         File      `gorm:"constraint:OnDelete:CASCADE" json:"file,omitempty"`
	EntityType   string    `gorm:"size:20;not null;index:idx_attachment_entity,priority:1" json:"entity_type"`
	EntityID     string    `gorm:"size:40;not null;index:idx_attachment_entity,priority:2" json:"entity_id"`
	IsPrimary    bool      `gorm:"default:false" json:"is_primary"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	Caption      *string   `gorm:"type:text" json:"caption,omitempty"`
	AddedAt      time.Time `gorm:"autoCreateTime" json:"added_at"`
	AddedByID    *string   `gorm:"size:40" json:"added_by_id,omitempty"`
	AddedBy      *User     `gorm:"foreignKey:AddedByID;constraint:OnDelete:SET NULL" json:"-"`
}

func (a *Attachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = identifier.New(identifier.TagAttachment)
	}
	return nil
}

// Folder is a virtual folder tree for UI organization only.
type Folder struct {
	ID        string    `gorm:"size:40;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Path      string    `gorm:"size:500;not null;index" json:"path"`
	OwnerID   string    `gorm:"size:40;not null;index" json:"owner_id"`
	Owner     User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	ParentID  *string   `gorm:"size:40;index" json:"parent_id,omitempty"`
	Parent    *Folder   `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
	IsShared  bool      `gorm:"default:false" json:"is_shared"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (f *Folder) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = identifier.New(identifier.TagFolder)
	}
	return nil
}

type FolderFile struct {
	ID       string    `gorm:"size:40;primaryKey" json:"id"`
	FolderID string    `gorm:"size:40;not null;index" json:"folder_id"`
	Folder   Folder    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	FileID   string    `gorm:"size:40;not null;index" json:"file_id"`
	File     File      `gorm:"constraint:OnDelete:CASCADE" json:"file,omitempty"`
	AddedAt  time.Time `gorm:"autoCreateTime" json:"added_at"`
}

func (f *FolderFile) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = identifier.New(identifier.TagFolderFile)
	}
	return nil
}
