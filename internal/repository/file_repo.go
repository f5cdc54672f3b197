package repository

import (
	"context"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
)

type FileRepository interface {
	Create(ctx context.Context, file *entity.File) error
	FindByID(ctx context.Context, id string) (*entity.File, error)
	FindByUploader(ctx context.Context, uploaderID string, page dto.PageQuery) ([]*entity.File, int64, error)
	Delete(ctx context.Context, id string) error

	CreateAttachment(ctx context.Context, attachment *entity.Attachment) error
	FindAttachment(ctx context.Context, id string) (*entity.Attachment, error)
	FindAttachments(ctx context.Context, entityType, entityID string) ([]*entity.Attachment, error)
	DeleteAttachment(ctx context.Context, id string) error
	NextDisplayOrder(ctx context.Context, entityType, entityID string) (int, error)

	CreateFolder(ctx context.Context, folder *entity.Folder) error
	FindFolder(ctx context.Context, id string) (*entity.Folder, error)
	FindFolders(ctx context.Context, ownerID string, parentID *string) ([]*entity.Folder, error)
	DeleteFolder(ctx context.Context, id string) error

	AddFolderFile(ctx context.Context, folderFile *entity.FolderFile) error
	FindFolderFiles(ctx context.Context, folderID string) ([]*entity.FolderFile, error)
	RemoveFolderFile(ctx context.Context, folderID, fileID string) (bool, error)
}

type fileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(ctx context.Context, file *entity.File) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *fileRepository) FindByID(ctx context.Context, id string) (*entity.File, error) {
	var file entity.File
	if err := r.db.WithContext(ctx).First(&file, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *fileRepository) FindByUploader(ctx context.Context, uploaderID string, page dto.PageQuery) ([]*entity.File, int64, error) {
	var files []*entity.File
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.File{}).Where("uploader_id = ?", uploaderID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := page.Normalize()
	if err := query.
		Order("uploaded_at desc").
		Offset(offset).
		Limit(page.Limit).
		Find(&files).Error; err != nil {
		return nil, 0, err
	}

	return files, total, nil
}

func (r *fileRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.File{}, "id = ?", id).Error
}

func (r *fileRepository) CreateAttachment(ctx context.Context, attachment *entity.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *fileRepository) FindAttachment(ctx context.Context, id string) (*entity.Attachment, error) {
	var attachment entity.Attachment
	if err := r.db.WithContext(ctx).Preload("File").First(&attachment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *fileRepository) FindAttachments(ctx context.Context, entityType, entityID string) ([]*entity.Attachment, error) {
	var attachments []*entity.Attachment
	err := r.db.WithContext(ctx).
		Preload("File").
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("display_order asc, added_at asc").
		Find(&attachments).Error
	return attachments, err
}

func (r *fileRepository) DeleteAttachment(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Attachment{}, "id = ?", id).Error
}

func (r *fileRepository) NextDisplayOrder(ctx context.Context, entityType, entityID string) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&entity.Attachment{}).
		Select("MAX(display_order)").
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Scan(&max).Error
	if err != nil || max == nil {
		return 0, err
	}
	return *max + 1, nil
}

func (r *fileRepository) CreateFolder(ctx context.Context, folder *entity.Folder) error {
	return r.db.WithContext(ctx).Create(folder).Error
}

func (r *fileRepository) FindFolder(ctx context.Context, id string) (*entity.Folder, error) {
	var folder entity.Folder
	if err := r.db.WithContext(ctx).First(&folder, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *fileRepository) FindFolders(ctx context.Context, ownerID string, parentID *string) ([]*entity.Folder, error) {
	var folders []*entity.Folder
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	err := query.Order("name asc").Find(&folders).Error
	return folders, err
}

func (r *fileRepository) DeleteFolder(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Folder{}, "id = ?", id).Error
}

func (r *fileRepository) AddFolderFile(ctx context.Context, folderFile *entity.FolderFile) error {
	return r.db.WithContext(ctx).Create(folderFile).Error
}

func (r *fileRepository) FindFolderFiles(ctx context.Context, folderID string) ([]*entity.FolderFile, error) {
	var rows []*entity.FolderFile
	err := r.db.WithContext(ctx).
		Preload("File").
		Where("folder_id = ?", folderID).
		Order("added_at asc").
		Find(&rows).Error
	return rows, err
}

func (r *fileRepository) RemoveFolderFile(ctx context.Context, folderID, fileID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("folder_id = ? AND file_id = ?", folderID, fileID).
		Delete(&entity.FolderFile{})
	return result.RowsAffected > 0, result.Error
}
