package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"parastaran.ir/nursesforum/internal/entity"
	"parastaran.ir/nursesforum/internal/middleware"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/internal/service"
)

func newCategoryRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.NurseProfile{},
		&entity.Category{},
		&entity.Thread{},
	))

	h := NewCategoryHandler(service.NewCategoryService(repository.NewCategoryRepository(db)))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	// the auth middleware normally sets this
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, "usr_test")
	})
	router.POST("/category", h.Create)
	router.GET("/category", h.GetAll)
	router.GET("/category/:id", h.GetByID)
	router.GET("/category/slug/:slug", h.GetBySlug)
	router.DELETE("/category/:id", h.Delete)
	return router, db
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCategoryHandlerCreate(t *testing.T) {
	router, _ := newCategoryRouter(t)

	rec := postJSON(t, router, "/category", gin.H{
		"name": "بخش اورژانس",
		"slug": "emergency",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Success bool           `json:"success"`
		Message string         `json:"message"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "دسته‌بندی با موفقیت ایجاد شد", body.Message)
	assert.Equal(t, "emergency", body.Data["slug"])
}

func TestCategoryHandlerCreateValidation(t *testing.T) {
	router, _ := newCategoryRouter(t)

	// name too short, slug missing
	rec := postJSON(t, router, "/category", gin.H{"name": "اب"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestCategoryHandlerGetByIDNotFound(t *testing.T) {
	router, _ := newCategoryRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/category/cat_missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "دسته‌بندی مورد نظر یافت نشد.", body["error"])
}

func TestCategoryHandlerGetBySlug(t *testing.T) {
	router, db := newCategoryRouter(t)

	category := &entity.Category{Name: "بخش عمومی", Slug: "general"}
	require.NoError(t, db.Create(category).Error)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/category/slug/general", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), category.ID)
}

func TestCategoryHandlerDeleteMissing(t *testing.T) {
	router, _ := newCategoryRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/category/cat_missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoryHandlerPaginatedList(t *testing.T) {
	router, db := newCategoryRouter(t)

	for _, slug := range []string{"a", "b", "c"} {
		require.NoError(t, db.Create(&entity.Category{Name: "دسته " + slug, Slug: slug}).Error)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/category?page=1&limit=2", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data       []map[string]any `json:"data"`
		Pagination struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"totalPages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
	assert.Equal(t, int64(3), body.Pagination.Total)
	assert.Equal(t, 2, body.Pagination.TotalPages)
}

// reads are served to visitors without a session, the same way the site
// exposes the forum to search engines
func TestCategoryHandlerListWithoutSession(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&entity.Category{}, &entity.Thread{}))

	h := NewCategoryHandler(service.NewCategoryService(repository.NewCategoryRepository(db)))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/category", h.GetAll)

	require.NoError(t, db.Create(&entity.Category{Name: "بخش عمومی", Slug: "general"}).Error)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/category", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "general")
}
