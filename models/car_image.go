package models

import (
	"time"
)

// CarImage represents one gallery image owned by a car. Rows are removed
// together with their parent car.
type CarImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CarID     uint      `gorm:"column:car_id;not null;index:idx_car_images_car_id" json:"carId"`
	ImageURL  string    `gorm:"column:imageUrl;not null" json:"imageUrl"`
	CreatedAt time.Time `gorm:"column:createdAt" json:"createdAt"`
}

// TableName specifies the table name for the CarImage model
func (CarImage) TableName() string {
	return "car_images"
}
