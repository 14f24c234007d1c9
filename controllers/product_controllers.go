package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restopos/models"
	"restopos/utils"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// GetAllProducts -> full catalog for back-office; guests get only active
// rows via GetActiveProducts.
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	query := pc.DB.Preload("Category").Preload("Options").Preload("Allergens")
	if catID := c.Query("categoria"); catID != "" {
		query = query.Where("category_id = ?", catID)
	}

	var products []models.Product
	if err := query.Order("name ASC").Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

// GetActiveProducts -> the guest-facing menu
func (pc *ProductController) GetActiveProducts(c *gin.Context) {
	query := pc.DB.Preload("Category").Preload("Options").Preload("Allergens").
		Where("active = ?", true)
	if catID := c.Query("categoria"); catID != "" {
		query = query.Where("category_id = ?", catID)
	}

	var products []models.Product
	if err := query.Order("name ASC").Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active products", products)
}

// GetProductByID
func (pc *ProductController) GetProductByID(c *gin.Context) {
	var product models.Product
	err := pc.DB.Preload("Category").Preload("Options").Preload("Allergens").
		First(&product, "id = ?", c.Param("product_id")).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

type productOptionBody struct {
	Name       string  `json:"nombre" binding:"required"`
	ExtraPrice float64 `json:"precio_extra"`
}

// CreateProduct
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var body struct {
		CategoryID  string              `json:"id_categoria" binding:"required"`
		Name        string              `json:"nombre" binding:"required"`
		Price       float64             `json:"precio" binding:"required"`
		Description string              `json:"descripcion"`
		Options     []productOptionBody `json:"opciones"`
		AllergenIDs []string            `json:"alergenos"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.Category
	if err := pc.DB.First(&category, "id = ?", body.CategoryID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	product := models.Product{
		CategoryID:  category.ID,
		Name:        body.Name,
		Price:       body.Price,
		Description: body.Description,
		Active:      true,
	}
	for _, opt := range body.Options {
		product.Options = append(product.Options, models.ProductOption{
			Name:       opt.Name,
			ExtraPrice: opt.ExtraPrice,
		})
	}

	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if len(body.AllergenIDs) > 0 {
		var allergens []models.Allergen
		if err := pc.DB.Find(&allergens, "id IN ?", body.AllergenIDs).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if err := pc.DB.Model(&product).Association("Allergens").Replace(allergens); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.InfoLogger.Printf("Product created: %s (%.2f)", product.Name, product.Price)
	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

// UpdateProduct
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	var body struct {
		CategoryID  *string              `json:"id_categoria"`
		Name        *string              `json:"nombre"`
		Price       *float64             `json:"precio"`
		Description *string              `json:"descripcion"`
		Active      *bool                `json:"activo"`
		Options     *[]productOptionBody `json:"opciones"`
		AllergenIDs *[]string            `json:"alergenos"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var product models.Product
	if err := pc.DB.First(&product, "id = ?", c.Param("product_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.CategoryID != nil {
		var category models.Category
		if err := pc.DB.First(&category, "id = ?", *body.CategoryID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		product.CategoryID = category.ID
	}
	if body.Name != nil {
		product.Name = *body.Name
	}
	if body.Price != nil {
		product.Price = *body.Price
	}
	if body.Description != nil {
		product.Description = *body.Description
	}
	if body.Active != nil {
		product.Active = *body.Active
	}

	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// options are replaced wholesale when the field is present
	if body.Options != nil {
		if err := pc.DB.Where("product_id = ?", product.ID).Delete(&models.ProductOption{}).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		for _, opt := range *body.Options {
			option := models.ProductOption{
				ProductID:  product.ID,
				Name:       opt.Name,
				ExtraPrice: opt.ExtraPrice,
			}
			if err := pc.DB.Create(&option).Error; err != nil {
				utils.RespondError(c, http.StatusInternalServerError, err)
				return
			}
		}
	}

	if body.AllergenIDs != nil {
		var allergens []models.Allergen
		if err := pc.DB.Find(&allergens, "id IN ?", *body.AllergenIDs).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if err := pc.DB.Model(&product).Association("Allergens").Replace(allergens); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	var product models.Product
	if err := pc.DB.First(&product, "id = ?", c.Param("product_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := pc.DB.Model(&product).Association("Allergens").Clear(); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := pc.DB.Where("product_id = ?", product.ID).Delete(&models.ProductOption{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := pc.DB.Delete(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Product %s deleted", product.ID)
	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"id": product.ID})
}
