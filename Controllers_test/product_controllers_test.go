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
	"restopos/models"
	"restopos/utils"
)

func setupTestDBForProducts(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductOption{},
		&models.Allergen{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupProductRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	productCtrl := controllers.NewProductController(db)
	router.GET("/products", productCtrl.GetActiveProducts)
	router.POST("/products", productCtrl.CreateProduct)
	router.PATCH("/products/:product_id", productCtrl.UpdateProduct)
	return router
}

func TestCreateProductWithOptionsAndAllergens(t *testing.T) {
	db := setupTestDBForProducts(t)

	category := models.Category{Name: "Raciones"}
	db.Create(&category)
	gluten := models.Allergen{Name: "gluten"}
	db.Create(&gluten)

	router := setupProductRouter(db)

	payload, err := json.Marshal(map[string]interface{}{
		"id_categoria": category.ID,
		"nombre":       "Croquetas",
		"precio":       7.5,
		"descripcion":  "de jamón",
		"opciones": []map[string]interface{}{
			{"nombre": "ración grande", "precio_extra": 3.0},
		},
		"alergenos": []string{gluten.ID},
	})
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/products", bytes.NewBuffer(payload))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var product models.Product
	err = db.Preload("Options").Preload("Allergens").First(&product, "name = ?", "Croquetas").Error
	assert.NoError(t, err)
	assert.Len(t, product.Options, 1)
	assert.Len(t, product.Allergens, 1)
	assert.True(t, product.Active)
}

func TestGuestMenuExcludesInactiveProducts(t *testing.T) {
	db := setupTestDBForProducts(t)

	category := models.Category{Name: "Entrantes"}
	db.Create(&category)
	db.Create(&models.Product{CategoryID: category.ID, Name: "Activo", Price: 5, Active: true})
	db.Create(&models.Product{CategoryID: category.ID, Name: "Retirado", Price: 5, Active: false})

	router := setupProductRouter(db)
	req, _ := http.NewRequest("GET", "/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
	item := data[0].(map[string]interface{})
	assert.Equal(t, "Activo", item["Name"])
}

func TestUpdateProductReplacesOptions(t *testing.T) {
	db := setupTestDBForProducts(t)

	category := models.Category{Name: "Bebidas"}
	db.Create(&category)
	product := models.Product{
		CategoryID: category.ID,
		Name:       "Tinto de verano",
		Price:      3,
		Active:     true,
		Options: []models.ProductOption{
			{Name: "con limón", ExtraPrice: 0},
		},
	}
	db.Create(&product)

	router := setupProductRouter(db)

	payload, err := json.Marshal(map[string]interface{}{
		"opciones": []map[string]interface{}{
			{"nombre": "jarra", "precio_extra": 5.0},
			{"nombre": "con naranja", "precio_extra": 0.5},
		},
	})
	assert.NoError(t, err)

	req, err := http.NewRequest("PATCH", "/products/"+product.ID, bytes.NewBuffer(payload))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var options []models.ProductOption
	assert.NoError(t, db.Where("product_id = ?", product.ID).Find(&options).Error)
	assert.Len(t, options, 2)
}
