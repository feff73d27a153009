package handlers

import (
	"net/http"

	"gather/db"
	"gather/services"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	auth := services.NewAuthService(db.GetWriteDB(c.Request.Context()))
	userID, err := auth.Register(req.FullName, req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respond(c, http.StatusCreated, "user registered successfully", gin.H{"user_id": userID})
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	auth := services.NewAuthService(db.GetWriteDB(c.Request.Context()))
	userID, token, err := auth.Login(req.Email, req.Password)
	if err != nil {
		// Детали ошибки входа наружу не отдаем
		respondError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	respond(c, http.StatusOK, "logged in successfully", gin.H{"user_id": userID, "token": token})
}

func Logout(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	auth := services.NewAuthService(db.GetWriteDB(c.Request.Context()))
	if err := auth.Logout(userID); err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "logged out successfully", nil)
}
