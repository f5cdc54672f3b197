package service

import (
	"context"
	"errors"
	"io"
	"log"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/apperror"
	"parastaran.ir/nursesforum/pkg/identifier"
	"parastaran.ir/nursesforum/pkg/response"
	"parastaran.ir/nursesforum/pkg/storage"
)

// attachableTags maps each attachable entity kind to the ID tag its targets
// must carry. The pair has no foreign key, so this is the only referential
// check attachments get.
var attachableTags = map[string]identifier.Tag{
	entity.AttachableThread:  identifier.TagThread,
	entity.AttachableComment: identifier.TagComment,
	entity.AttachableMessage: identifier.TagMessage,
	entity.AttachableEvent:   identifier.TagEvent,
	entity.AttachableUser:    identifier.TagUser,
}

type FileService interface {
	Upload(ctx context.Context, uploaderID, originalName, mimeType string, size int64, isPublic bool, r io.Reader) (*entity.File, error)
	GetByID(ctx context.Context, id, userID string) (*entity.File, error)
	GetMine(ctx context.Context, userID string, page dto.PageQuery) ([]*entity.File, response.Pagination, error)
	Delete(ctx context.Context, id, userID string, isAdmin bool) error

	Attach(ctx context.Context, userID string, req dto.AttachFileRequest) (*entity.Attachment, error)
	GetAttachments(ctx context.Context, entityType, entityID string) ([]*entity.Attachment, error)
	Detach(ctx context.Context, attachmentID, userID string, isAdmin bool) error

	CreateFolder(ctx context.Context, ownerID string, req dto.CreateFolderRequest) (*entity.Folder, error)
	GetFolders(ctx context.Context, ownerID string, parentID *string) ([]*entity.Folder, error)
	DeleteFolder(ctx context.Context, id, ownerID string) error
	AddFolderFile(ctx context.Context, folderID, ownerID, fileID string) (*entity.FolderFile, error)
	GetFolderFiles(ctx context.Context, folderID, ownerID string) ([]*entity.FolderFile, error)
	RemoveFolderFile(ctx context.Context, folderID, ownerID, fileID string) error
}

type fileService struct {
	repo    repository.FileRepository
	storage storage.FileStorage
}

func NewFileService(repo repository.FileRepository, fileStorage storage.FileStorage) FileService {
	return &fileService{repo: repo, storage: fileStorage}
}

func (s *fileService) Upload(ctx context.Context, uploaderID, originalName, mimeType string, size int64, isPublic bool, r io.Reader) (*entity.File, error) {
	safeName := filepath.Base(originalName)

	url, err := s.storage.Upload(ctx, r, uploaderID, safeName)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	var extension *string
	if ext := strings.TrimPrefix(filepath.Ext(safeName), "."); ext != "" {
		extension = &ext
	}

	file := &entity.File{
		Filename:         safeName,
		OriginalFilename: originalName,
		MimeType:         mimeType,
		Extension:        extension,
		Size:             size,
		UploaderID:       uploaderID,
		IsPublic:         isPublic,
		URL:              &url,
	}

	if err := s.repo.Create(ctx, file); err != nil {
		// Metadata write failed; drop the orphaned object.
		if url != "" {
			if delErr := s.storage.Delete(ctx, url); delErr != nil {
				log.Printf("failed to clean up orphaned upload %s: %v", url, delErr)
			}
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	return file, nil
}

func (s *fileService) GetByID(ctx context.Context, id, userID string) (*entity.File, error) {
	file, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	if !file.IsPublic && file.UploaderID != userID {
		return nil, apperror.New(apperror.CodePermissionDenied)
	}
	return file, nil
}

func (s *fileService) GetMine(ctx context.Context, userID string, page dto.PageQuery) ([]*entity.File, response.Pagination, error) {
	page.Normalize()
	files, total, err := s.repo.FindByUploader(ctx, userID, page)
	if err != nil {
		return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
	}
	return files, response.NewPagination(page.Page, page.Limit, total), nil
}

func (s *fileService) Delete(ctx context.Context, id, userID string, isAdmin bool) error {
	file, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeNotFound)
		}
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	if file.UploaderID != userID && !isAdmin {
		return apperror.New(apperror.CodePermissionDenied)
	}

	if file.URL != nil {
		if err := s.storage.Delete(ctx, *file.URL); err != nil {
			log.Printf("failed to delete stored content of file %s: %v", id, err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

func (s *fileService) Attach(ctx context.Context, userID string, req dto.AttachFileRequest) (*entity.Attachment, error) {
	tag, ok := attachableTags[req.EntityType]
	if !ok {
		return nil, apperror.New(apperror.CodeBadRequest)
	}
	if !identifier.HasTag(req.EntityID, tag) {
		return nil, apperror.New(apperror.CodeBadRequest)
	}

	file, err := s.repo.FindByID(ctx, req.FileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	if file.UploaderID != userID {
		return nil, apperror.New(apperror.CodePermissionDenied)
	}

	order, err := s.repo.NextDisplayOrder(ctx, req.EntityType, req.EntityID)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	attachment := &entity.Attachment{
		FileID:       req.FileID,
		EntityType:   req.EntityType,
		EntityID:     req.EntityID,
		IsPrimary:    req.IsPrimary,
		DisplayOrder: order,
		Caption:      req.Caption,
		AddedByID:    &userID,
	}

	if err := s.repo.CreateAttachment(ctx, attachment); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return s.repo.FindAttachment(ctx, attachment.ID)
}

func (s *fileService) GetAttachments(ctx context.Context, entityType, entityID string) ([]*entity.Attachment, error) {
	if _, ok := attachableTags[entityType]; !ok {
		return nil, apperror.New(apperror.CodeBadRequest)
	}

	attachments, err := s.repo.FindAttachments(ctx, entityType, entityID)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return attachments, nil
}

func (s *fileService) Detach(ctx context.Context, attachmentID, userID string, isAdmin bool) error {
	attachment, err := s.repo.FindAttachment(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeNotFound)
		}
		return apperror.Wrap(apperror.CodeInternal, err)
	}

	owner := attachment.AddedByID != nil && *attachment.AddedByID == userID
	if !owner && attachment.File.UploaderID != userID && !isAdmin {
		return apperror.New(apperror.CodePermissionDenied)
	}

	if err := s.repo.DeleteAttachment(ctx, attachmentID); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

func (s *fileService) CreateFolder(ctx context.Context, ownerID string, req dto.CreateFolderRequest) (*entity.Folder, error) {
	path := "/" + req.Name
	if req.ParentID != nil {
		parent, err := s.repo.FindFolder(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.New(apperror.CodeNotFound)
			}
			return nil, apperror.Wrap(apperror.CodeInternal, err)
		}
		if parent.OwnerID != ownerID {
			return nil, apperror.New(apperror.CodePermissionDenied)
		}
		path = parent.Path + "/" + req.Name
	}

	folder := &entity.Folder{
		Name:     req.Name,
		Path:     path,
		OwnerID:  ownerID,
		ParentID: req.ParentID,
	}

	if err := s.repo.CreateFolder(ctx, folder); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return folder, nil
}

func (s *fileService) GetFolders(ctx context.Context, ownerID string, parentID *string) ([]*entity.Folder, error) {
	folders, err := s.repo.FindFolders(ctx, ownerID, parentID)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return folders, nil
}

func (s *fileService) DeleteFolder(ctx context.Context, id, ownerID string) error {
	folder, err := s.ownedFolder(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteFolder(ctx, folder.ID); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

func (s *fileService) AddFolderFile(ctx context.Context, folderID, ownerID, fileID string) (*entity.FolderFile, error) {
	if _, err := s.ownedFolder(ctx, folderID, ownerID); err != nil {
		return nil, err
	}

	file, err := s.repo.FindByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	if file.UploaderID != ownerID {
		return nil, apperror.New(apperror.CodePermissionDenied)
	}

	folderFile := &entity.FolderFile{FolderID: folderID, FileID: fileID}
	if err := s.repo.AddFolderFile(ctx, folderFile); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return folderFile, nil
}

func (s *fileService) GetFolderFiles(ctx context.Context, folderID, ownerID string) ([]*entity.FolderFile, error) {
	folder, err := s.repo.FindFolder(ctx, folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	if folder.OwnerID != ownerID && !folder.IsShared {
		return nil, apperror.New(apperror.CodePermissionDenied)
	}

	files, err := s.repo.FindFolderFiles(ctx, folderID)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return files, nil
}

func (s *fileService) RemoveFolderFile(ctx context.Context, folderID, ownerID, fileID string) error {
	if _, err := s.ownedFolder(ctx, folderID, ownerID); err != nil {
		return err
	}

	removed, err := s.repo.RemoveFolderFile(ctx, folderID, fileID)
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	if !removed {
		return apperror.New(apperror.CodeNotFound)
	}
	return nil
}

func (s *fileService) ownedFolder(ctx context.Context, folderID, ownerID string) (*entity.Folder, error) {
	folder, err := s.repo.FindFolder(ctx, folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	if folder.OwnerID != ownerID {
		return nil, apperror.New(apperror.CodePermissionDenied)
	}
	return folder, nil
}
