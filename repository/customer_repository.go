package repository

import (
	"time"

	"gorm.io/gorm"

	"restopos/models"
)

type CustomerRepository struct {
	DB *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) ByEmail(email string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.DB.First(&customer, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) ByID(id string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.DB.First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) Create(customer *models.Customer) error {
	return r.DB.Create(customer).Error
}

// Touch refreshes the guest's display name and last-access stamp. The name
// is only written when it actually changed.
func (r *CustomerRepository) Touch(customer *models.Customer, name string, now time.Time) error {
	updates := map[string]interface{}{"last_access_at": now}
	if name != "" && name != customer.Name {
		updates["name"] = name
		customer.Name = name
	}
	customer.LastAccessAt = now
	return r.DB.Model(customer).Updates(updates).Error
}
