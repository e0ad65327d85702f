package controllers

import (
	"errors"
	"net/http"

	"alomana/occurrences"

	"github.com/gin-gonic/gin"
)

func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(200, payload)
}

// RespondServiceError traduz a taxonomia de erros do pacote occurrences para
// HTTP. Acesso cruzado de usuário já chega aqui como ErrNotFound, então o 404
// não vaza a existência do registro.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, occurrences.ErrNotFound):
		RespondError(c, err.Error(), http.StatusNotFound)
	case errors.Is(err, occurrences.ErrForbidden):
		RespondError(c, err.Error(), http.StatusForbidden)
	case occurrences.IsValidationError(err):
		RespondError(c, err.Error(), http.StatusBadRequest)
	default:
		RespondError(c, err.Error(), http.StatusInternalServerError)
	}
}
