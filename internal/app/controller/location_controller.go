package controller

import (
	"net/http"

	apperrors "github.com/bancoriental/unipersonal-backend/internal/errors"

	"github.com/bancoriental/unipersonal-backend/internal/app/repository"
	"github.com/gin-gonic/gin"
)

type LocationController struct {
	repo repository.LocationRepository
}

func NewLocationController(repo repository.LocationRepository) *LocationController {
	return &LocationController{
		repo: repo,
	}
}

// GetDepartments returns the department lookup keyed by ISO code.
func (c *LocationController) GetDepartments(ctx *gin.Context) {
	departments, err := c.repo.GetDepartments()
	if err != nil {
		apperrors.InternalError(ctx, "")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data": departments,
	})
}
