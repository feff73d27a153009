package handlers

import (
	"net/http"

	"gather/services"

	"github.com/gin-gonic/gin"
)

// Единый конверт ответа: success, message и полезная нагрузка.
// Ошибки отдаются в том же конверте без нагрузки.

func respond(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondServiceError маппит таксономию ошибок сервисов на коды ответа:
// валидация - 400, не найдено - 404, остальное (ошибки хранилища) - 500
func respondServiceError(c *gin.Context, err error) {
	switch {
	case services.IsValidationError(err):
		respondError(c, http.StatusBadRequest, err.Error())
	case services.IsNotFoundError(err):
		respondError(c, http.StatusNotFound, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

// callerID достает user_id, положенный auth-мидлварью
func callerID(c *gin.Context) (int64, bool) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return 0, false
	}
	return userID, true
}
