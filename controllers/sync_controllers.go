package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restopos/models"
	"restopos/services"
	"restopos/utils"
)

type SyncController struct {
	DB   *gorm.DB
	Sync *services.SyncService
}

func NewSyncController(db *gorm.DB) *SyncController {
	return &SyncController{
		DB:   db,
		Sync: services.NewSyncService(db),
	}
}

// ImportSnapshot -> POST /admin/sync/domotica
// Accepts a pre-scraped Domotica snapshot and merges it into the catalog.
func (syc *SyncController) ImportSnapshot(c *gin.Context) {
	var input services.SyncInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	batch, err := syc.Sync.Import(input)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Snapshot imported", batch)
}

// ListBatches -> GET /admin/sync/batches
func (syc *SyncController) ListBatches(c *gin.Context) {
	var batches []models.SyncBatch
	if err := syc.DB.Order("received_at DESC").Limit(100).Find(&batches).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Sync batches", batches)
}
