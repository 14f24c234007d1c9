package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restopos/models"
	"restopos/utils"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

// GetAllCategories
func (cac *CategoryController) GetAllCategories(c *gin.Context) {
	var categories []models.Category
	if err := cac.DB.Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All categories", categories)
}

// CreateCategory
func (cac *CategoryController) CreateCategory(c *gin.Context) {
	var body struct {
		Name      string `json:"nombre" binding:"required"`
		SortOrder int    `json:"orden"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.Category{
		Name:      body.Name,
		SortOrder: body.SortOrder,
	}
	if err := cac.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// UpdateCategory
func (cac *CategoryController) UpdateCategory(c *gin.Context) {
	var body struct {
		Name      *string `json:"nombre"`
		SortOrder *int    `json:"orden"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.Category
	if err := cac.DB.First(&category, "id = ?", c.Param("cat_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != nil {
		category.Name = *body.Name
	}
	if body.SortOrder != nil {
		category.SortOrder = *body.SortOrder
	}
	if err := cac.DB.Save(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory
func (cac *CategoryController) DeleteCategory(c *gin.Context) {
	var category models.Category
	if err := cac.DB.First(&category, "id = ?", c.Param("cat_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var productCount int64
	cac.DB.Model(&models.Product{}).Where("category_id = ?", category.ID).Count(&productCount)
	if productCount > 0 {
		utils.RespondError(c, http.StatusConflict, &CustomError{"Category still has products"})
		return
	}

	if err := cac.DB.Delete(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"id": category.ID})
}
