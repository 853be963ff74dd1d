package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gloucester-auto/dealership-api/models"
	"github.com/gloucester-auto/dealership-api/repositories"
)

// carPayload is the request body for creating and updating cars. Every field
// is optional at the JSON level; create/update decide what is required.
// Numeric fields use json.Number so clients may send "24995" or 24995;
// anything non-numeric fails the bind. Only these fields ever reach the
// database — unknown keys in the request body are dropped.
type carPayload struct {
	Year         *json.Number `json:"year"`
	Make         *string      `json:"make"`
	Model        *string      `json:"model"`
	Price        *json.Number `json:"price"`
	Mileage      *json.Number `json:"mileage"`
	Transmission *string      `json:"transmission"`
	Fuel         *string      `json:"fuel"`
	Color        *string      `json:"color"`
	City         *string      `json:"city"`
	State        *string      `json:"state"`
	ImageURL     *string      `json:"imageUrl"`
	Description  *string      `json:"description"`
	Featured     *bool        `json:"featured"`
	Images       *[]string    `json:"images"`
}

// ListCars handles GET /cars - all cars with galleries, newest first (public)
func ListCars(c *gin.Context) {
	cars, err := repositories.GetCarRepository().List(c.Request.Context())
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, cars)
}

// GetCar handles GET /cars/:id - single car with gallery (public)
func GetCar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	car, err := repositories.GetCarRepository().Get(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

// SearchCars handles GET /cars/search?make=&model= (public)
func SearchCars(c *gin.Context) {
	cars, err := repositories.GetCarRepository().Search(
		c.Request.Context(),
		c.Query("make"),
		c.Query("model"),
	)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, cars)
}

// CreateCar handles POST /cars - adds a vehicle to the inventory (admin only)
func CreateCar(c *gin.Context) {
	var req carPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	car, err := carFromPayload(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var galleryURLs []string
	if req.Images != nil {
		galleryURLs = *req.Images
	}

	if err := repositories.GetCarRepository().Create(c.Request.Context(), car, galleryURLs); err != nil {
		respondRepositoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, car)
}

// UpdateCar handles PUT /cars/:id - partial update (admin only). Absent
// fields keep their prior values; a supplied images array replaces the
// entire gallery.
func UpdateCar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req carPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	updates, err := updatesFromPayload(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var galleryURLs []string
	if req.Images != nil {
		galleryURLs = *req.Images
		if galleryURLs == nil {
			galleryURLs = []string{}
		}
	}

	car, err := repositories.GetCarRepository().Update(c.Request.Context(), id, updates, galleryURLs)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, car)
}

// DeleteCar handles DELETE /cars/:id (admin only). Stored images are cleaned
// up best-effort; the response reports the counts.
func DeleteCar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := repositories.GetCarRepository().Delete(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Car and images deleted successfully",
		"imagesAttempted": result.ImagesAttempted,
		"imagesDeleted":   result.ImagesDeleted,
		"imagesFailed":    result.ImagesFailed,
	})
}

// carFromPayload builds a new Car from a create request.
func carFromPayload(req *carPayload) (*models.Car, error) {
	car := &models.Car{}

	var err error
	if car.Year, err = asInt(req.Year, "year"); err != nil {
		return nil, err
	}
	if car.Price, err = asFloat(req.Price, "price"); err != nil {
		return nil, err
	}
	if car.Mileage, err = asFloat(req.Mileage, "mileage"); err != nil {
		return nil, err
	}

	if req.Make != nil {
		car.Make = *req.Make
	}
	if req.Model != nil {
		car.Model = *req.Model
	}
	if req.Transmission != nil {
		car.Transmission = *req.Transmission
	}
	if req.Fuel != nil {
		car.Fuel = *req.Fuel
	}
	if req.Color != nil {
		car.Color = *req.Color
	}
	if req.City != nil {
		car.City = *req.City
	}
	if req.State != nil {
		car.State = *req.State
	}
	if req.ImageURL != nil {
		car.ImageURL = *req.ImageURL
	}
	if req.Description != nil {
		car.Description = *req.Description
	}
	if req.Featured != nil {
		car.Featured = *req.Featured
	}

	return car, nil
}

// updatesFromPayload builds the allow-listed column map for a partial update.
// Only fields present in the request appear in the map.
func updatesFromPayload(req *carPayload) (map[string]interface{}, error) {
	updates := map[string]interface{}{}

	if req.Year != nil {
		year, err := asInt(req.Year, "year")
		if err != nil {
			return nil, err
		}
		updates["year"] = year
	}
	if req.Price != nil {
		price, err := asFloat(req.Price, "price")
		if err != nil {
			return nil, err
		}
		updates["price"] = price
	}
	if req.Mileage != nil {
		mileage, err := asFloat(req.Mileage, "mileage")
		if err != nil {
			return nil, err
		}
		updates["mileage"] = mileage
	}

	if req.Make != nil {
		updates["make"] = *req.Make
	}
	if req.Model != nil {
		updates["model"] = *req.Model
	}
	if req.Transmission != nil {
		updates["transmission"] = *req.Transmission
	}
	if req.Fuel != nil {
		updates["fuel"] = *req.Fuel
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.ImageURL != nil {
		updates["imageUrl"] = *req.ImageURL
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}

	return updates, nil
}
