package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gloucester-auto/dealership-api/repositories"
)

// respondRepositoryError maps repository errors onto the API error taxonomy:
// validation failures to 400, missing rows to 404, everything else to 500.
// All bodies are {"error": message}.
func respondRepositoryError(c *gin.Context, err error) {
	switch {
	case repositories.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrCarNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
	case errors.Is(err, repositories.ErrLeadNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
	default:
		logrus.WithError(err).Error("Unhandled repository error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// parseID parses a path id parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s", name)})
		return 0, false
	}
	return uint(id), true
}

// asFloat converts an optional JSON number (bare or quoted) to float64.
// Admin forms post numerics as strings, so both representations are accepted.
func asFloat(n *json.Number, field string) (float64, error) {
	if n == nil {
		return 0, nil
	}
	v, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", field)
	}
	return v, nil
}

// asInt converts an optional JSON number (bare or quoted) to int.
func asInt(n *json.Number, field string) (int, error) {
	if n == nil {
		return 0, nil
	}
	v, err := n.Int64()
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", field)
	}
	return int(v), nil
}
