package dto

type AttachFileRequest struct {
	FileID     string  `json:"fileId" binding:"required"`
	EntityType string  `json:"entityType" binding:"required"`
	EntityID   string  `json:"entityId" binding:"required"`
	IsPrimary  bool    `json:"isPrimary"`
	Caption    *string `json:"caption"`
}

type CreateFolderRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=100"`
	ParentID *string `json:"parentId"`
}

type AddFolderFileRequest struct {
	FileID string `json:"fileId" binding:"required"`
}
