package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"parastaran.ir/nursesforum/internal/entity"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// in-memory sqlite: every connection gets a separate database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.NurseProfile{},
		&entity.Category{},
		&entity.Thread{},
		&entity.Comment{},
		&entity.ThreadReaction{},
		&entity.CommentReaction{},
		&entity.ThreadFollow{},
		&entity.CategoryFollow{},
		&entity.UserFollow{},
		&entity.Conversation{},
		&entity.ConversationParticipant{},
		&entity.AnonymousIdentity{},
		&entity.Message{},
		&entity.Shift{},
		&entity.ShiftApplication{},
		&entity.Mentorship{},
		&entity.Event{},
		&entity.EventParticipant{},
		&entity.File{},
		&entity.Attachment{},
		&entity.Folder{},
		&entity.FolderFile{},
		&entity.Notification{},
		&entity.UserReport{},
		&entity.ContentReport{},
		&entity.PolicyUpdate{},
		&entity.EquipmentReview{},
		&entity.Resource{},
		&entity.ResourceTag{},
		&entity.ResourceToTag{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()

	user := &entity.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         entity.RoleMember,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) *entity.Category {
	t.Helper()

	category := &entity.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedThread(t *testing.T, db *gorm.DB, author *entity.User, category *entity.Category, title string) *entity.Thread {
	t.Helper()

	thread := &entity.Thread{
		Title:      title,
		Content:    "محتوای تاپیک برای تست",
		CategoryID: category.ID,
		AuthorID:   author.ID,
	}
	require.NoError(t, db.Create(thread).Error)
	return thread
}
