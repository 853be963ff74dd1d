package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gloucester-auto/dealership-api/models"
	"github.com/gloucester-auto/dealership-api/services"
)

// DeleteCarResult reports what happened to the stored images while deleting
// a car. Row deletion is guaranteed; image-store cleanup is best-effort.
type DeleteCarResult struct {
	ImagesAttempted int `json:"imagesAttempted"`
	ImagesDeleted   int `json:"imagesDeleted"`
	ImagesFailed    int `json:"imagesFailed"`
}

// CarRepository owns the cars and car_images tables.
type CarRepository interface {
	List(ctx context.Context) ([]models.Car, error)
	Get(ctx context.Context, id uint) (*models.Car, error)
	Search(ctx context.Context, make, model string) ([]models.Car, error)
	Create(ctx context.Context, car *models.Car, galleryURLs []string) error
	Update(ctx context.Context, id uint, updates map[string]interface{}, galleryURLs []string) (*models.Car, error)
	Delete(ctx context.Context, id uint) (*DeleteCarResult, error)
}

type gormCarRepository struct {
	db     *gorm.DB
	images services.ImageStore
}

var carRepositoryInstance CarRepository

// InitCarRepository initializes the car repository singleton.
func InitCarRepository(db *gorm.DB, images services.ImageStore) CarRepository {
	carRepositoryInstance = NewCarRepository(db, images)
	return carRepositoryInstance
}

// GetCarRepository returns the initialized car repository instance
func GetCarRepository() CarRepository {
	return carRepositoryInstance
}

// SetCarRepository sets the car repository instance (primarily for testing)
func SetCarRepository(r CarRepository) {
	carRepositoryInstance = r
}

// NewCarRepository creates a car repository on the given database and image
// store.
func NewCarRepository(db *gorm.DB, images services.ImageStore) CarRepository {
	return &gormCarRepository{db: db, images: images}
}

// newestFirst orders by creation time descending, id descending as the
// deterministic tie-break for bulk-seeded rows.
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "createdAt"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true})
}

// withGallery preloads the gallery in insertion order.
func withGallery(db *gorm.DB) *gorm.DB {
	return db.Preload("Gallery", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	})
}

func attachGallery(car *models.Car) {
	car.Images = car.GalleryURLs()
}

// List returns all cars with their galleries, newest first. A gallery load
// failure fails the whole call; there is no partial list.
func (r *gormCarRepository) List(ctx context.Context) ([]models.Car, error) {
	var cars []models.Car
	if err := withGallery(newestFirst(r.db.WithContext(ctx))).Find(&cars).Error; err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	for i := range cars {
		attachGallery(&cars[i])
	}
	return cars, nil
}

// Get returns a single car with its gallery.
func (r *gormCarRepository) Get(ctx context.Context, id uint) (*models.Car, error) {
	var car models.Car
	if err := withGallery(r.db.WithContext(ctx)).First(&car, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to load car: %w", err)
	}
	attachGallery(&car)
	return &car, nil
}

// Search filters by case-insensitive substring on make and/or model. An
// absent filter matches everything.
func (r *gormCarRepository) Search(ctx context.Context, make, model string) ([]models.Car, error) {
	query := r.db.WithContext(ctx)
	if make != "" {
		query = query.Where("LOWER(make) LIKE ?", "%"+strings.ToLower(make)+"%")
	}
	if model != "" {
		query = query.Where("LOWER(model) LIKE ?", "%"+strings.ToLower(model)+"%")
	}

	var cars []models.Car
	if err := withGallery(newestFirst(query)).Find(&cars).Error; err != nil {
		return nil, fmt.Errorf("failed to search cars: %w", err)
	}
	for i := range cars {
		attachGallery(&cars[i])
	}
	return cars, nil
}

// Create inserts the car row, then one gallery row per URL in the given
// order. The two steps are deliberately not wrapped in a transaction: a crash
// in between leaves a car with an empty gallery, which the storefront handles
// by falling back to the primary imageUrl.
func (r *gormCarRepository) Create(ctx context.Context, car *models.Car, galleryURLs []string) error {
	if strings.TrimSpace(car.Make) == "" || strings.TrimSpace(car.Model) == "" {
		return &ValidationError{Message: "Make and model are required"}
	}

	if car.City == "" {
		car.City = "Gloucester"
	}
	if car.State == "" {
		car.State = "VA"
	}

	db := r.db.WithContext(ctx)
	if err := db.Omit("Gallery").Create(car).Error; err != nil {
		return fmt.Errorf("failed to create car: %w", err)
	}

	for _, url := range galleryURLs {
		img := models.CarImage{CarID: car.ID, ImageURL: url}
		if err := db.Create(&img).Error; err != nil {
			return fmt.Errorf("failed to create car image: %w", err)
		}
		car.Gallery = append(car.Gallery, img)
	}

	attachGallery(car)
	return nil
}

// Update applies an allow-listed partial field map and always bumps
// updatedAt. A non-nil galleryURLs replaces the entire gallery: existing
// rows are deleted and the new set inserted in order. Concurrent updates are
// last-write-wins; there is no optimistic locking.
func (r *gormCarRepository) Update(ctx context.Context, id uint, updates map[string]interface{}, galleryURLs []string) (*models.Car, error) {
	db := r.db.WithContext(ctx)

	var car models.Car
	if err := db.First(&car, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to load car: %w", err)
	}

	if make, ok := updates["make"].(string); ok && strings.TrimSpace(make) == "" {
		return nil, &ValidationError{Message: "Make cannot be empty"}
	}
	if model, ok := updates["model"].(string); ok && strings.TrimSpace(model) == "" {
		return nil, &ValidationError{Message: "Model cannot be empty"}
	}

	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["updatedAt"] = time.Now()

	if err := db.Model(&models.Car{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update car: %w", err)
	}

	if galleryURLs != nil {
		if err := db.Where("car_id = ?", id).Delete(&models.CarImage{}).Error; err != nil {
			return nil, fmt.Errorf("failed to clear gallery: %w", err)
		}
		for _, url := range galleryURLs {
			img := models.CarImage{CarID: id, ImageURL: url}
			if err := db.Create(&img).Error; err != nil {
				return nil, fmt.Errorf("failed to create car image: %w", err)
			}
		}
	}

	return r.Get(ctx, id)
}

// Delete removes the car row and its gallery rows, after requesting deletion
// of every backing image (primary imageUrl plus gallery) from the image
// store. Store failures are logged and counted, never fatal: the row delete
// must succeed even when cleanup does not.
func (r *gormCarRepository) Delete(ctx context.Context, id uint) (*DeleteCarResult, error) {
	car, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(car.Images)+1)
	if car.ImageURL != "" {
		urls = append(urls, car.ImageURL)
	}
	urls = append(urls, car.Images...)

	result := &DeleteCarResult{ImagesAttempted: len(urls)}
	for _, url := range urls {
		if err := r.images.Delete(ctx, url); err != nil {
			result.ImagesFailed++
			logrus.WithError(err).WithFields(logrus.Fields{
				"carId": id,
				"url":   url,
			}).Warn("Failed to delete stored image")
			continue
		}
		result.ImagesDeleted++
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("car_id = ?", id).Delete(&models.CarImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Car{}, id).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete car: %w", err)
	}

	return result, nil
}
