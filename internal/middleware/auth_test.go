package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"parastaran.ir/nursesforum/internal/entity"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/response"
)

const testSecret = "test-secret"

func newAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entity.User{}, &entity.NurseProfile{}))
	return db
}

func seedAuthUser(t *testing.T, db *gorm.DB, username, role string) *entity.User {
	t.Helper()

	user := &entity.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func signToken(t *testing.T, subject string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newAuthRouter(t *testing.T, db *gorm.DB, admin bool) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(repository.NewUserRepository(db), testSecret)

	router := gin.New()
	group := router.Group("", m.RequireAuth())
	if admin {
		group.Use(m.RequireAdmin())
	}
	group.GET("/ping", func(c *gin.Context) {
		userID, err := response.GetUserID(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

func TestRequireAuthMissingToken(t *testing.T) {
	router := newAuthRouter(t, newAuthTestDB(t), false)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthBadToken(t *testing.T) {
	router := newAuthRouter(t, newAuthTestDB(t), false)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	db := newAuthTestDB(t)
	user := seedAuthUser(t, db, "nurse1", entity.RoleMember)
	router := newAuthRouter(t, db, false)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, user.ID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), user.ID)
}

func TestRequireAuthQueryTokenFallback(t *testing.T) {
	db := newAuthTestDB(t)
	user := seedAuthUser(t, db, "nurse1", entity.RoleMember)
	router := newAuthRouter(t, db, false)

	req := httptest.NewRequest(http.MethodGet, "/ping?token="+signToken(t, user.ID), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdminRejectsMember(t *testing.T) {
	db := newAuthTestDB(t)
	user := seedAuthUser(t, db, "nurse1", entity.RoleMember)
	router := newAuthRouter(t, db, true)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, user.ID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	db := newAuthTestDB(t)
	user := seedAuthUser(t, db, "headnurse", entity.RoleAdmin)
	router := newAuthRouter(t, db, true)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, user.ID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
