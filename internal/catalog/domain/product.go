package domain

import (
	"time"

	"gorm.io/gorm"
)

// Product types
const (
	TypePhysical       = "physical"
	TypeDigitalProject = "digital_project"
)

// Product represents a catalog entry: an IoT component or a ready-made
// project sold as a deliverable
type Product struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	Price       float64        `json:"price" gorm:"not null"` // INR
	ImageURL    string         `json:"image_url"`
	Category    string         `json:"category"`
	ProductType string         `json:"product_type" gorm:"not null;default:'physical'"`
	Stock       int            `json:"stock" gorm:"not null;default:0"`
	Rating      float64        `json:"rating" gorm:"default:0"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// IsActive reports whether the product can currently be sold.
// Digital projects have no stock concept and are always active.
func (p *Product) IsActive() bool {
	return p.ProductType == TypeDigitalProject || p.Stock > 0
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error)
	FindAll(limit, offset int) ([]Product, error)
	FindByCategory(category string, limit, offset int) ([]Product, error)
	FindByType(productType string, limit, offset int) ([]Product, error)
	Update(product *Product) error
	UpdateStock(id uint, stock int) error
	Delete(id uint) error
	Count() (int64, error)
	CountByType(productType string) (int64, error)
}
