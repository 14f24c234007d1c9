package repository

import (
	"gorm.io/gorm"

	"restopos/models"
)

type TableRepository struct {
	DB *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{DB: db}
}

func (r *TableRepository) ByID(id string) (*models.Table, error) {
	var table models.Table
	if err := r.DB.First(&table, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &table, nil
}
