package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"restopos/models"
	"restopos/utils"
)

// SyncService imports a Domotica snapshot: tables and products are upserted
// by their external code, and products missing from the snapshot are
// deactivated (never deleted). Each import is recorded as a SyncBatch.
type SyncService struct {
	db *gorm.DB
}

func NewSyncService(db *gorm.DB) *SyncService {
	return &SyncService{db: db}
}

type SyncTable struct {
	Code   string `json:"codigo" binding:"required"`
	Number int    `json:"numero" binding:"required"`
	Active bool   `json:"activo"`
}

type SyncProduct struct {
	Code        string   `json:"codigo" binding:"required"`
	Name        string   `json:"nombre" binding:"required"`
	Price       float64  `json:"precio"`
	Description string   `json:"descripcion"`
	Category    string   `json:"categoria" binding:"required"`
	Allergens   []string `json:"alergenos"`
}

type SyncInput struct {
	Source   string        `json:"origen" binding:"required"`
	Tables   []SyncTable   `json:"mesas"`
	Products []SyncProduct `json:"productos"`
}

func (s *SyncService) Import(in SyncInput) (*models.SyncBatch, error) {
	batch := &models.SyncBatch{
		Source:     in.Source,
		ReceivedAt: time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, st := range in.Tables {
			if err := s.upsertTable(tx, st, batch); err != nil {
				return err
			}
		}

		seen := make(map[string]bool, len(in.Products))
		for _, sp := range in.Products {
			seen[sp.Code] = true
			if err := s.upsertProduct(tx, sp, batch); err != nil {
				return err
			}
		}

		if err := s.deactivateMissing(tx, seen, batch); err != nil {
			return err
		}

		// The audit row commits or rolls back with the catalog changes.
		return tx.Create(batch).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Sync batch %s from %s: %d/%d tables, %d/%d products, %d deactivated",
		batch.ID, batch.Source,
		batch.TablesCreated, batch.TablesUpdated,
		batch.ProductsCreated, batch.ProductsUpdated,
		batch.ProductsDeactivated)

	return batch, nil
}

func (s *SyncService) upsertTable(tx *gorm.DB, st SyncTable, batch *models.SyncBatch) error {
	var table models.Table
	err := tx.First(&table, "domotica_code = ?", st.Code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		code := st.Code
		table = models.Table{
			Number:       st.Number,
			Active:       st.Active,
			DomoticaCode: &code,
		}
		if err := tx.Create(&table).Error; err != nil {
			return err
		}
		batch.TablesCreated++
		return nil
	}
	if err != nil {
		return err
	}

	if table.Number == st.Number && table.Active == st.Active {
		return nil
	}
	table.Number = st.Number
	table.Active = st.Active
	if err := tx.Save(&table).Error; err != nil {
		return err
	}
	batch.TablesUpdated++
	return nil
}

func (s *SyncService) upsertProduct(tx *gorm.DB, sp SyncProduct, batch *models.SyncBatch) error {
	var category models.Category
	if err := tx.Where(models.Category{Name: sp.Category}).FirstOrCreate(&category).Error; err != nil {
		return err
	}

	allergens, err := s.resolveAllergens(tx, sp.Allergens)
	if err != nil {
		return err
	}

	var product models.Product
	err = tx.First(&product, "domotica_code = ?", sp.Code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		code := sp.Code
		product = models.Product{
			CategoryID:   category.ID,
			Name:         sp.Name,
			Price:        sp.Price,
			Description:  sp.Description,
			DomoticaCode: &code,
			Active:       true,
		}
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		if err := tx.Model(&product).Association("Allergens").Replace(allergens); err != nil {
			return err
		}
		batch.ProductsCreated++
		return nil
	}
	if err != nil {
		return err
	}

	changed := product.Name != sp.Name ||
		product.Price != sp.Price ||
		product.Description != sp.Description ||
		product.CategoryID != category.ID ||
		!product.Active
	product.Name = sp.Name
	product.Price = sp.Price
	product.Description = sp.Description
	product.CategoryID = category.ID
	product.Active = true
	if changed {
		if err := tx.Save(&product).Error; err != nil {
			return err
		}
		batch.ProductsUpdated++
	}
	return tx.Model(&product).Association("Allergens").Replace(allergens)
}

func (s *SyncService) resolveAllergens(tx *gorm.DB, names []string) ([]models.Allergen, error) {
	allergens := make([]models.Allergen, 0, len(names))
	for _, name := range names {
		var allergen models.Allergen
		if err := tx.Where(models.Allergen{Name: name}).FirstOrCreate(&allergen).Error; err != nil {
			return nil, err
		}
		allergens = append(allergens, allergen)
	}
	return allergens, nil
}

// deactivateMissing flips active off for synced products that the snapshot
// no longer contains. Manually created products (no Domotica code) are
// never touched.
func (s *SyncService) deactivateMissing(tx *gorm.DB, seen map[string]bool, batch *models.SyncBatch) error {
	var synced []models.Product
	if err := tx.Where("domotica_code IS NOT NULL AND active = ?", true).Find(&synced).Error; err != nil {
		return err
	}
	for _, product := range synced {
		if seen[*product.DomoticaCode] {
			continue
		}
		if err := tx.Model(&product).Update("active", false).Error; err != nil {
			return err
		}
		batch.ProductsDeactivated++
	}
	return nil
}
