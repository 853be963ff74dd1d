package models

import (
	"time"
)

// Car represents a vehicle in the dealership inventory.
//
// Gallery holds the ordered secondary images (car_images rows); Images is the
// flat list of gallery URLs exposed over the API. When a car has no gallery,
// the storefront falls back to the primary ImageURL.
type Car struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Year         int        `json:"year"`
	Make         string     `gorm:"not null;index:idx_cars_make_model" json:"make"`
	Model        string     `gorm:"not null;index:idx_cars_make_model" json:"model"`
	Price        float64    `json:"price"`
	Mileage      float64    `json:"mileage"`
	Transmission string     `json:"transmission"`
	Fuel         string     `json:"fuel"`
	Color        string     `json:"color"`
	City         string     `json:"city"`
	State        string     `json:"state"`
	ImageURL     string     `gorm:"column:imageUrl" json:"imageUrl"`
	Description  string     `gorm:"type:text" json:"description"`
	Featured     bool       `json:"featured"`
	Gallery      []CarImage `gorm:"foreignKey:CarID;constraint:OnDelete:CASCADE" json:"-"`
	Images       []string   `gorm:"-" json:"images"`
	CreatedAt    time.Time  `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"column:updatedAt" json:"updatedAt"`
}

// TableName specifies the table name for the Car model
func (Car) TableName() string {
	return "cars"
}

// GalleryURLs returns the gallery image URLs in insertion order.
func (c *Car) GalleryURLs() []string {
	urls := make([]string, 0, len(c.Gallery))
	for _, img := range c.Gallery {
		urls = append(urls, img.ImageURL)
	}
	return urls
}
