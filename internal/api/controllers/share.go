package controllers

import (
	"net/http"

	"brokerkit/internal/api/middleware"
	"brokerkit/internal/api/validator"
	"brokerkit/internal/models"
	"brokerkit/internal/services"
	"brokerkit/internal/tasks"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ShareController queues delivery of a rendered email campaign to the
// member's inbox so they can forward it from their own client.
type ShareController struct {
	db    *gorm.DB
	tasks *tasks.TaskClient
}

func NewShareController(db *gorm.DB, taskClient *tasks.TaskClient) *ShareController {
	return &ShareController{db: db, tasks: taskClient}
}

// Share handles POST /api/v1/campaigns/email-campaigns/:id/share
func (c *ShareController) Share(ctx echo.Context) error {
	campaignID := ctx.Param("id")
	if campaignID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing id parameter")
	}

	var req validator.ShareRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body "+err.Error())
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	memberID := middleware.GetMemberID(ctx)
	member := &models.Member{}
	if err := c.db.WithContext(ctx.Request().Context()).
		Where("id = ? AND is_deleted = ?", memberID, false).
		First(member).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Member not found")
	}

	campaign := &models.EmailCampaign{}
	if err := c.db.WithContext(ctx.Request().Context()).
		Where("id = ? AND is_active = ? AND is_deleted = ?", campaignID, true, false).
		First(campaign).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Campaign not found")
	}

	// Render up front so a broken template fails the request instead
	// of the background worker.
	if err := services.ValidateEmailCampaign(campaign); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	recipient := req.Recipient
	if recipient == "" {
		recipient = member.Email
	}

	if err := c.tasks.EnqueueEmailSend(tasks.EmailSendPayload{
		MemberID:   member.ID,
		CampaignID: campaign.ID,
		Recipient:  recipient,
	}); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return ctx.JSON(http.StatusAccepted, map[string]string{
		"status":    "queued",
		"recipient": recipient,
	})
}
