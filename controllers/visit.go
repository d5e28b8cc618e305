package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rebeauty-backend/services"
	"rebeauty-backend/utils"
)

// VisitController exposes the visit lifecycle and follow-up marking.
type VisitController struct {
	Visits *services.VisitService
}

func NewVisitController(visits *services.VisitService) *VisitController {
	return &VisitController{Visits: visits}
}

func (vc *VisitController) Create(c *gin.Context) {
	var input services.CreateVisitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	visit, err := vc.Visits.CreateVisit(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, visit)
}

func (vc *VisitController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.UpdateVisitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	visit, err := vc.Visits.UpdateVisit(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, visit)
}

func (vc *VisitController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := vc.Visits.DeleteVisit(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !deleted {
		utils.RespondWithError(c, http.StatusNotFound, "Visit not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ListByCustomer returns the customer's visit history, newest first.
func (vc *VisitController) ListByCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "customer_id")
	if !ok {
		return
	}

	visits, err := vc.Visits.VisitsByCustomer(customerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, visits)
}

// MarkFollowSent stamps a visit item's follow-up as sent; repeating the call
// leaves the original timestamp in place.
func (vc *VisitController) MarkFollowSent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := vc.Visits.MarkFollowSent(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if item == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Visit item not found")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (vc *VisitController) TodayCount(c *gin.Context) {
	count, err := vc.Visits.TodayVisitCount()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
