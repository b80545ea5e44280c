package controller

import (
	"net/http"

	apperrors "github.com/bancoriental/unipersonal-backend/internal/errors"

	"github.com/bancoriental/unipersonal-backend/internal/app/model"
	"github.com/bancoriental/unipersonal-backend/internal/app/service"
	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	service service.MailService
}

func NewNotificationController(service service.MailService) *NotificationController {
	return &NotificationController{
		service: service,
	}
}

type sendRequest struct {
	Notifications []model.Notification `json:"notifications" binding:"required"`
}

// Send godoc
// @Summary Envía una lista de notificaciones por mail
// @Description Las notificaciones se procesan en orden; el primer fallo aborta el resto
// @Tags notifications
// @Accept json
// @Router /api/v1/notifications [post]
func (c *NotificationController) Send(ctx *gin.Context) {
	var req sendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(ctx, apperrors.NotificationMissingParam,
			"El cuerpo de la solicitud no es válido")
		return
	}

	if err := c.service.Send(ctx.Request.Context(), req.Notifications); err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
