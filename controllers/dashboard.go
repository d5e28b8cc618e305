package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rebeauty-backend/services"
)

// DashboardController serves the aggregate counters and the purchase-follow
// inactivity list.
type DashboardController struct {
	Targeting *services.TargetingService
	Customers *services.CustomerService
}

func NewDashboardController(targeting *services.TargetingService, customers *services.CustomerService) *DashboardController {
	return &DashboardController{Targeting: targeting, Customers: customers}
}

// InactiveCustomers lists customers overdue for a follow-up in the given
// category segment. Unknown segments yield an empty list.
func (dc *DashboardController) InactiveCustomers(c *gin.Context) {
	segment := c.DefaultQuery("segment", "skincare")

	targets, err := dc.Targeting.InactiveBySegment(segment)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, targets)
}

func (dc *DashboardController) MonthlyNewCount(c *gin.Context) {
	count, err := dc.Customers.MonthlyNewCustomerCount()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
