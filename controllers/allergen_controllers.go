package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restopos/models"
	"restopos/utils"
)

type AllergenController struct {
	DB *gorm.DB
}

func NewAllergenController(db *gorm.DB) *AllergenController {
	return &AllergenController{DB: db}
}

// GetAllAllergens
func (ac *AllergenController) GetAllAllergens(c *gin.Context) {
	var allergens []models.Allergen
	if err := ac.DB.Order("name ASC").Find(&allergens).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All allergens", allergens)
}

// CreateAllergen
func (ac *AllergenController) CreateAllergen(c *gin.Context) {
	var body struct {
		Name string `json:"nombre" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	allergen := models.Allergen{Name: body.Name}
	if err := ac.DB.Create(&allergen).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Allergen created", allergen)
}

// DeleteAllergen
func (ac *AllergenController) DeleteAllergen(c *gin.Context) {
	var allergen models.Allergen
	if err := ac.DB.First(&allergen, "id = ?", c.Param("allergen_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := ac.DB.Exec("DELETE FROM product_allergens WHERE allergen_id = ?", allergen.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := ac.DB.Delete(&allergen).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Allergen deleted", gin.H{"id": allergen.ID})
}
