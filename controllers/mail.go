package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rebeauty-backend/services"
	"rebeauty-backend/utils"
)

type EmailTestInput struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

type EmailBulkInput struct {
	Subject     string `json:"subject" binding:"required"`
	Body        string `json:"body" binding:"required"`
	CustomerIDs []uint `json:"customer_ids" binding:"required,min=1"`
}

// MailController exposes campaign target extraction and the dummy email
// dispatch endpoints.
type MailController struct {
	Targeting *services.TargetingService
	Mail      *services.MailService
}

func NewMailController(targeting *services.TargetingService, mail *services.MailService) *MailController {
	return &MailController{Targeting: targeting, Mail: mail}
}

// Targets serves the customer-level campaign lists (event/birthday).
// purchase_follow is refused here; item-level follow-up goes through the
// inactive-customers dashboard route.
func (mc *MailController) Targets(c *gin.Context) {
	mailType := c.Query("mail_type")
	if mailType == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "mail_type is required")
		return
	}
	if mailType == services.MailTypePurchaseFollow {
		utils.RespondWithError(c, http.StatusBadRequest,
			"purchase_follow targets are served by /api/dashboard/inactive-customers")
		return
	}

	withinDays := services.DefaultWithinDays
	if raw := c.Query("within_days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid within_days")
			return
		}
		withinDays = n
	}

	targets, err := mc.Targeting.MailTargets(mailType, withinDays)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, targets)
}

func (mc *MailController) SendTest(c *gin.Context) {
	identity := utils.CurrentIdentity(c)
	if identity == nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var input EmailTestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	count, err := mc.Mail.SendTest(identity, input.Subject, input.Body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Test email dispatched (dummy)", "sent_count": count})
}

func (mc *MailController) SendBulk(c *gin.Context) {
	identity := utils.CurrentIdentity(c)
	if identity == nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var input EmailBulkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	count, err := mc.Mail.SendBulk(identity, input.Subject, input.Body, input.CustomerIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bulk email dispatched (dummy)", "sent_count": count})
}
