package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/apperror"
	"parastaran.ir/nursesforum/pkg/identifier"
)

// memoryStorage keeps uploaded content in a map keyed by the returned URL.
type memoryStorage struct {
	objects map[string]string
	deleted []string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string]string{}}
}

func (m *memoryStorage) Upload(_ context.Context, r io.Reader, folder, fileName string) (string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	url := "mem://" + folder + "/" + fileName
	m.objects[url] = string(content)
	return url, nil
}

func (m *memoryStorage) Delete(_ context.Context, fileURL string) error {
	delete(m.objects, fileURL)
	m.deleted = append(m.deleted, fileURL)
	return nil
}

func newFileService(t *testing.T, db *gorm.DB) (FileService, *memoryStorage) {
	t.Helper()
	store := newMemoryStorage()
	return NewFileService(repository.NewFileRepository(db), store), store
}

func TestFileUploadAndPrivacy(t *testing.T) {
	db := newTestDB(t)
	svc, store := newFileService(t, db)
	uploader := seedUser(t, db, "nurse1")
	other := seedUser(t, db, "nurse2")
	ctx := context.Background()

	file, err := svc.Upload(ctx, uploader.ID, "report.pdf", "application/pdf", 12, false, strings.NewReader("file content"))
	require.NoError(t, err)
	assert.Len(t, store.objects, 1)

	_, err = svc.GetByID(ctx, file.ID, other.ID)
	assert.True(t, apperror.Is(err, apperror.CodePermissionDenied))

	got, err := svc.GetByID(ctx, file.ID, uploader.ID)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", got.OriginalFilename)
}

func TestFileDeleteRemovesObject(t *testing.T) {
	db := newTestDB(t)
	svc, store := newFileService(t, db)
	uploader := seedUser(t, db, "nurse1")
	ctx := context.Background()

	file, err := svc.Upload(ctx, uploader.ID, "photo.jpg", "image/jpeg", 5, true, strings.NewReader("bytes"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, file.ID, uploader.ID, false))
	assert.Len(t, store.deleted, 1)
	assert.Empty(t, store.objects)
}

func TestAttachValidatesEntityReference(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newFileService(t, db)
	uploader := seedUser(t, db, "nurse1")
	ctx := context.Background()

	file, err := svc.Upload(ctx, uploader.ID, "scan.png", "image/png", 3, true, strings.NewReader("img"))
	require.NoError(t, err)

	// unknown entity type
	_, err = svc.Attach(ctx, uploader.ID, dto.AttachFileRequest{
		FileID:     file.ID,
		EntityType: "report",
		EntityID:   identifier.New(identifier.TagReport),
	})
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))

	// entity ID with the wrong tag for the declared type
	_, err = svc.Attach(ctx, uploader.ID, dto.AttachFileRequest{
		FileID:     file.ID,
		EntityType: "thread",
		EntityID:   identifier.New(identifier.TagComment),
	})
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))
}

func TestAttachAndDetach(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newFileService(t, db)
	uploader := seedUser(t, db, "nurse1")
	category := seedCategory(t, db, "بخش عمومی", "general")
	thread := seedThread(t, db, uploader, category, "تاپیک با پیوست")
	ctx := context.Background()

	file, err := svc.Upload(ctx, uploader.ID, "scan.png", "image/png", 3, true, strings.NewReader("img"))
	require.NoError(t, err)

	attachment, err := svc.Attach(ctx, uploader.ID, dto.AttachFileRequest{
		FileID:     file.ID,
		EntityType: "thread",
		EntityID:   thread.ID,
	})
	require.NoError(t, err)

	attachments, err := svc.GetAttachments(ctx, "thread", thread.ID)
	require.NoError(t, err)
	require.Len(t, attachments, 1)

	require.NoError(t, svc.Detach(ctx, attachment.ID, uploader.ID, false))

	attachments, err = svc.GetAttachments(ctx, "thread", thread.ID)
	require.NoError(t, err)
	assert.Empty(t, attachments)
}

func TestFolderOwnership(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newFileService(t, db)
	owner := seedUser(t, db, "nurse1")
	stranger := seedUser(t, db, "nurse2")
	ctx := context.Background()

	folder, err := svc.CreateFolder(ctx, owner.ID, dto.CreateFolderRequest{Name: "جزوه‌ها"})
	require.NoError(t, err)

	file, err := svc.Upload(ctx, owner.ID, "notes.pdf", "application/pdf", 9, false, strings.NewReader("pdf"))
	require.NoError(t, err)

	_, err = svc.AddFolderFile(ctx, folder.ID, stranger.ID, file.ID)
	assert.True(t, apperror.Is(err, apperror.CodePermissionDenied))

	_, err = svc.AddFolderFile(ctx, folder.ID, owner.ID, file.ID)
	require.NoError(t, err)

	entries, err := svc.GetFolderFiles(ctx, folder.ID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFolderNestedPath(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newFileService(t, db)
	owner := seedUser(t, db, "nurse1")
	ctx := context.Background()

	parent, err := svc.CreateFolder(ctx, owner.ID, dto.CreateFolderRequest{Name: "آموزش"})
	require.NoError(t, err)
	child, err := svc.CreateFolder(ctx, owner.ID, dto.CreateFolderRequest{Name: "تریاژ", ParentID: &parent.ID})
	require.NoError(t, err)

	assert.Equal(t, parent.Path+"/"+"تریاژ", child.Path)

	var stored entity.Folder
	require.NoError(t, db.First(&stored, "id = ?", child.ID).Error)
	assert.Equal(t, child.Path, stored.Path)
}
