package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`   // stable code (see codes.go)
	Message string `json:"message"` // user-facing Spanish copy
}

// RespondWithError writes the standard error payload.
func RespondWithError(c *gin.Context, statusCode int, errorCode, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Se requiere autenticación"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func BadRequest(c *gin.Context, errorCode, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Ocurrió un error en el servidor. Intente nuevamente más tarde"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// Respond maps a workflow error onto the HTTP surface: business errors
// become 422 with their own code, missing notification parameters 400,
// everything else a generic 500.
func Respond(c *gin.Context, err error) {
	if be, ok := AsBusiness(err); ok {
		RespondWithError(c, http.StatusUnprocessableEntity, be.Code, be.Message)
		return
	}
	if ie, ok := AsInvalidParameter(err); ok {
		RespondWithError(c, http.StatusBadRequest, NotificationMissingParam,
			"Falta el parámetro requerido: "+ie.Param)
		return
	}
	InternalError(c, "")
}
