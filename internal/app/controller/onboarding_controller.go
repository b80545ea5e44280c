package controller

import (
	"net/http"

	apperrors "github.com/bancoriental/unipersonal-backend/internal/errors"

	"github.com/bancoriental/unipersonal-backend/internal/app/model"
	"github.com/bancoriental/unipersonal-backend/internal/app/service"
	"github.com/gin-gonic/gin"
)

type OnboardingController struct {
	service service.OnboardingService
}

func NewOnboardingController(service service.OnboardingService) *OnboardingController {
	return &OnboardingController{
		service: service,
	}
}

// Search godoc
// @Summary Valida el RUT contra el registro de DGI
// @Tags non-businesses
// @Produce json
// @Param userId query string true "Identificador de usuario del canal (ci-rut)"
// @Param rut query string true "RUT a validar"
// @Success 200 {object} gin.H{data=[]service.SearchResult}
// @Router /api/v1/non-businesses/search [get]
func (c *OnboardingController) Search(ctx *gin.Context) {
	userID := ctx.Query("userId")
	rut := ctx.Query("rut")
	if userID == "" || rut == "" {
		apperrors.BadRequest(ctx, apperrors.DocumentInvalidUserID,
			"Se requieren userId y rut")
		return
	}

	results, err := c.service.Search(ctx.Request.Context(), userID, rut)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data": results,
	})
}

type createRequest struct {
	RUT           string `json:"rut" binding:"required"`
	OwnerDocument string `json:"owner_document" binding:"required"`
	Cellphone     string `json:"cellphone"`
}

// Create godoc
// @Summary Inicia (o retoma) el alta de una unipersonal
// @Tags non-businesses
// @Accept json
// @Produce json
// @Router /api/v1/non-businesses [post]
func (c *OnboardingController) Create(ctx *gin.Context) {
	var req createRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(ctx, apperrors.DocumentInvalidUserID,
			"El cuerpo de la solicitud no es válido")
		return
	}

	externalID, err := c.service.Create(ctx.Request.Context(), req.RUT, req.OwnerDocument, req.Cellphone)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"id": externalID,
	})
}

func (c *OnboardingController) Patch(ctx *gin.Context) {
	var data service.PatchData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		apperrors.BadRequest(ctx, apperrors.DocumentInvalidUserID,
			"El cuerpo de la solicitud no es válido")
		return
	}

	if err := c.service.Patch(ctx.Request.Context(), ctx.Param("id"), data); err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *OnboardingController) PatchEconomicData(ctx *gin.Context) {
	var data model.EconomicData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		apperrors.BadRequest(ctx, apperrors.DocumentInvalidUserID,
			"El cuerpo de la solicitud no es válido")
		return
	}

	if err := c.service.PatchEconomicData(ctx.Request.Context(), ctx.Param("id"), &data); err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *OnboardingController) CreateAddress(ctx *gin.Context) {
	var addr model.AddressData
	if err := ctx.ShouldBindJSON(&addr); err != nil {
		apperrors.BadRequest(ctx, apperrors.DocumentInvalidUserID,
			"El cuerpo de la solicitud no es válido")
		return
	}

	if err := c.service.CreateAddress(ctx.Request.Context(), ctx.Param("id"), &addr); err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.Status(http.StatusCreated)
}

func (c *OnboardingController) CreateContactDetail(ctx *gin.Context) {
	var contact service.ContactInput
	if err := ctx.ShouldBindJSON(&contact); err != nil {
		apperrors.BadRequest(ctx, apperrors.DocumentInvalidUserID,
			"El cuerpo de la solicitud no es válido")
		return
	}

	if err := c.service.CreateContactDetail(ctx.Request.Context(), ctx.Param("id"), contact); err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.Status(http.StatusCreated)
}

// GetByID godoc
// @Summary Devuelve el alta identificada por su id externo
// @Tags non-businesses
// @Produce json
// @Param owner query bool false "Incluir datos del titular"
// @Param contacts query bool false "Incluir datos de contacto"
// @Router /api/v1/non-businesses/{id} [get]
func (c *OnboardingController) GetByID(ctx *gin.Context) {
	includeOwner := ctx.Query("owner") == "true"
	includeContacts := ctx.Query("contacts") == "true"

	nb, err := c.service.GetByID(ctx.Request.Context(), ctx.Param("id"), includeOwner, includeContacts)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data": nb,
	})
}

type termsRequest struct {
	Version string `json:"version" binding:"required"`
}

func (c *OnboardingController) UpdateTerms(ctx *gin.Context) {
	var req termsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(ctx, apperrors.DocumentInvalidUserID,
			"El cuerpo de la solicitud no es válido")
		return
	}

	if err := c.service.UpdateTerms(ctx.Request.Context(), ctx.Param("id"), req.Version); err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
