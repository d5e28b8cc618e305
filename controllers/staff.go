package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rebeauty-backend/services"
	"rebeauty-backend/utils"
)

// StaffController exposes staff listing and the gated creation flow.
type StaffController struct {
	Auth *services.AuthService
}

func NewStaffController(auth *services.AuthService) *StaffController {
	return &StaffController{Auth: auth}
}

func (sc *StaffController) List(c *gin.Context) {
	staffs, err := sc.Auth.ListStaffs()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, staffs)
}

// Create registers a staff account. The first account ever requires the
// X-Bootstrap-Code header to match the server secret; afterwards a valid
// bearer token is required instead.
func (sc *StaffController) Create(c *gin.Context) {
	var input services.CreateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	bootstrapCode := c.GetHeader("X-Bootstrap-Code")
	caller := utils.CurrentIdentity(c)

	staff, err := sc.Auth.CreateStaff(input, bootstrapCode, caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, staff)
}
