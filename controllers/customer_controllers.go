package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restopos/models"
	"restopos/utils"
)

// CustomerController exposes the guest directory to back-office users.
// Guests are created by the login flow, never through this controller.
type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// GetAllCustomers -> list guests, most recently seen first
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := cc.DB.Order("last_access_at DESC").Find(&customers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}

// GetCustomerByID -> one guest with the sessions they joined
func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	var customer models.Customer
	if err := cc.DB.First(&customer, "id = ?", c.Param("customer_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var participations []models.SessionParticipant
	if err := cc.DB.Preload("Session").
		Where("customer_id = ?", customer.ID).
		Order("joined_at DESC").
		Find(&participations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Customer detail", gin.H{
		"customer":       customer,
		"participations": participations,
	})
}

// DeleteCustomer -> explicit admin cleanup of a guest record
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	var customer models.Customer
	if err := cc.DB.First(&customer, "id = ?", c.Param("customer_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := cc.DB.Where("customer_id = ?", customer.ID).Delete(&models.SessionParticipant{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := cc.DB.Delete(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Customer %s deleted", customer.ID)
	utils.RespondJSON(c, http.StatusOK, "Customer deleted", gin.H{"id": customer.ID})
}
