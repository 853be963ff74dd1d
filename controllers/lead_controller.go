package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gloucester-auto/dealership-api/models"
	"github.com/gloucester-auto/dealership-api/repositories"
)

// createLeadRequest is the public lead-capture form payload. A client-supplied
// status is accepted in the JSON but ignored: new leads always start as "new".
type createLeadRequest struct {
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	ContactPreference string `json:"contactPreference"`
	PreferredCar      string `json:"preferredCar"`
	Notes             string `json:"notes"`
	Status            string `json:"status"`
}

type updateLeadStatusRequest struct {
	Status string `json:"status"`
}

// ListLeads handles GET /leads (admin only)
func ListLeads(c *gin.Context) {
	leads, err := repositories.GetLeadRepository().List(c.Request.Context())
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

// ListLeadsByStatus handles GET /leads/status/:status (admin only)
func ListLeadsByStatus(c *gin.Context) {
	leads, err := repositories.GetLeadRepository().ListByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

// CreateLead handles POST /leads - public form submission
func CreateLead(c *gin.Context) {
	var req createLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	lead := &models.Lead{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		ContactPreference: req.ContactPreference,
		PreferredCar:      req.PreferredCar,
		Notes:             req.Notes,
	}

	if err := repositories.GetLeadRepository().Create(c.Request.Context(), lead); err != nil {
		respondRepositoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lead)
}

// UpdateLeadStatus handles PATCH /leads/:id (admin only)
func UpdateLeadStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	lead, err := repositories.GetLeadRepository().UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, lead)
}

// DeleteLead handles DELETE /leads/:id (admin only)
func DeleteLead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := repositories.GetLeadRepository().Delete(c.Request.Context(), id); err != nil {
		respondRepositoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lead deleted successfully"})
}
