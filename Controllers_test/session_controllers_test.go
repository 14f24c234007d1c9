package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"restopos/controllers"
	"restopos/models"
	"restopos/utils"
)

func setupTestDBForSessions(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Customer{},
		&models.Table{},
		&models.TableSession{},
		&models.SessionParticipant{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupSessionRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	sessionCtrl := controllers.NewSessionController(db, 120)
	router.POST("/login", sessionCtrl.GuestLogin)
	router.GET("/sessions/:token", sessionCtrl.GetSessionByToken)
	router.POST("/admin/sessions/repair-duplicates", sessionCtrl.RepairDuplicates)
	return router
}

func doLogin(t *testing.T, router *gin.Engine, tableID, email, name string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(map[string]string{"email": email, "nombre": name})
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/login?id_mesa="+tableID, bytes.NewBuffer(payload))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGuestLoginSuccessShape(t *testing.T) {
	db := setupTestDBForSessions(t)
	table := models.Table{Number: 1, Active: true}
	db.Create(&table)

	router := setupSessionRouter(db)
	w := doLogin(t, router, table.ID, "a@x.com", "A")
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(200), response["status"])
	assert.Equal(t, "SUCCESS", response["code"])
	assert.NotEmpty(t, response["id_usuario"])
	assert.NotEmpty(t, response["id_sesion_mesa"])
	assert.NotEmpty(t, response["token_sesion"])
	assert.NotEmpty(t, response["fecha_expiracion"])

	// persisted session matches the response
	var session models.TableSession
	assert.NoError(t, db.First(&session, "id = ?", response["id_sesion_mesa"]).Error)
	assert.Equal(t, session.Token, response["token_sesion"])
}

func TestGuestLoginSharesTokenBetweenGuests(t *testing.T) {
	db := setupTestDBForSessions(t)
	table := models.Table{Number: 2, Active: true}
	db.Create(&table)

	router := setupSessionRouter(db)

	w1 := doLogin(t, router, table.ID, "a@x.com", "A")
	w2 := doLogin(t, router, table.ID, "b@x.com", "B")
	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, http.StatusOK, w2.Code)

	var r1, r2 map[string]interface{}
	assert.NoError(t, json.Unmarshal(w1.Body.Bytes(), &r1))
	assert.NoError(t, json.Unmarshal(w2.Body.Bytes(), &r2))

	assert.Equal(t, r1["token_sesion"], r2["token_sesion"])
	assert.Equal(t, r1["id_sesion_mesa"], r2["id_sesion_mesa"])
	assert.NotEqual(t, r1["id_usuario"], r2["id_usuario"])
}

func TestGuestLoginTableNotFound(t *testing.T) {
	db := setupTestDBForSessions(t)
	router := setupSessionRouter(db)

	w := doLogin(t, router, "01HZZZZZZZZZZZZZZZZZZZZZZZ", "a@x.com", "A")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "MESA_NOT_FOUND", response["detail"]["code"])

	var customerCount int64
	db.Model(&models.Customer{}).Count(&customerCount)
	assert.Equal(t, int64(0), customerCount)
}

func TestGuestLoginTableInactive(t *testing.T) {
	db := setupTestDBForSessions(t)
	table := models.Table{Number: 3, Active: false}
	db.Create(&table)

	router := setupSessionRouter(db)
	w := doLogin(t, router, table.ID, "a@x.com", "A")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "MESA_INACTIVE", response["detail"]["code"])
}

func TestGuestLoginRejectsBadEmail(t *testing.T) {
	db := setupTestDBForSessions(t)
	table := models.Table{Number: 4, Active: true}
	db.Create(&table)

	router := setupSessionRouter(db)
	w := doLogin(t, router, table.ID, "nonsense", "A")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var customerCount int64
	db.Model(&models.Customer{}).Count(&customerCount)
	assert.Equal(t, int64(0), customerCount)
}

func TestGuestLoginRequiresTableParam(t *testing.T) {
	db := setupTestDBForSessions(t)
	router := setupSessionRouter(db)

	payload, _ := json.Marshal(map[string]string{"email": "a@x.com", "nombre": "A"})
	req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetSessionByToken(t *testing.T) {
	db := setupTestDBForSessions(t)
	table := models.Table{Number: 5, Active: true}
	db.Create(&table)

	router := setupSessionRouter(db)
	w := doLogin(t, router, table.ID, "a@x.com", "A")
	assert.Equal(t, http.StatusOK, w.Code)

	var login map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	token := login["token_sesion"].(string)

	req, _ := http.NewRequest("GET", "/sessions/"+token, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var detail map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, login["id_sesion_mesa"], detail["id_sesion_mesa"])
	assert.Equal(t, "activa", detail["estado"])
	participants := detail["participantes"].([]interface{})
	assert.Len(t, participants, 1)
}

func TestGetSessionByTokenNotFound(t *testing.T) {
	db := setupTestDBForSessions(t)
	router := setupSessionRouter(db)

	req, _ := http.NewRequest("GET", "/sessions/doesnotexist", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "SESSION_NOT_FOUND", response["detail"]["code"])
}

func TestRepairDuplicatesEndpoint(t *testing.T) {
	db := setupTestDBForSessions(t)
	table := models.Table{Number: 6, Active: true}
	db.Create(&table)

	now := time.Now()
	for i, offset := range []time.Duration{-30 * time.Minute, -20 * time.Minute, -10 * time.Minute} {
		session := models.TableSession{
			TableID:         table.ID,
			CreatedByID:     "seed",
			Token:           utils.NewSessionToken(),
			Status:          models.SessionActive,
			StartedAt:       now.Add(offset),
			DurationMinutes: 120,
		}
		assert.NoError(t, db.Create(&session).Error, "seed %d", i)
	}

	router := setupSessionRouter(db)
	req, _ := http.NewRequest("POST", "/admin/sessions/repair-duplicates", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var activeCount, finalizedCount int64
	db.Model(&models.TableSession{}).Where("status = ?", models.SessionActive).Count(&activeCount)
	db.Model(&models.TableSession{}).Where("status = ?", models.SessionFinalized).Count(&finalizedCount)
	assert.Equal(t, int64(1), activeCount)
	assert.Equal(t, int64(2), finalizedCount)
}
