package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"restopos/controllers"
	"restopos/middlewares"
	"restopos/models"
	"restopos/utils"
)

func setupTestDBForUsers(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()
	utils.SetJWTSecret("test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	userCtrl := controllers.NewUserController(db)
	router.POST("/admin/register", userCtrl.Register)
	router.POST("/admin/login", userCtrl.Login)

	auth := router.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())
	auth.GET("/profile", userCtrl.GetProfile)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, url string, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	assert.NoError(t, err)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(payload))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterLoginAndProfile(t *testing.T) {
	db := setupTestDBForUsers(t)
	router := setupUserRouter(db)

	w := postJSON(t, router, "/admin/register", map[string]string{
		"name": "Admin", "email": "admin@resto.es", "password": "secret123", "role": "admin",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/admin/login", map[string]string{
		"email": "admin@resto.es", "password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	token := data["token"].(string)
	assert.NotEmpty(t, token)

	req, _ := http.NewRequest("GET", "/admin/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	data = response["data"].(map[string]interface{})
	assert.Equal(t, "admin@resto.es", data["email"])
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db := setupTestDBForUsers(t)
	router := setupUserRouter(db)

	w := postJSON(t, router, "/admin/register", map[string]string{
		"name": "Admin", "email": "admin@resto.es", "password": "secret123", "role": "admin",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/admin/login", map[string]string{
		"email": "admin@resto.es", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileRequiresToken(t *testing.T) {
	db := setupTestDBForUsers(t)
	router := setupUserRouter(db)

	req, _ := http.NewRequest("GET", "/admin/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	db := setupTestDBForUsers(t)
	router := setupUserRouter(db)

	w := postJSON(t, router, "/admin/register", map[string]string{
		"name": "X", "email": "x@resto.es", "password": "secret123", "role": "chef",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
