package handlers

import (
	"net/http"
	"strconv"
	"time"

	"gather/api/middleware"
	"gather/db"
	"gather/services"

	"github.com/gin-gonic/gin"
)

type ProfileUpdateRequest struct {
	FullName  *string `json:"full_name"`
	Bio       *string `json:"bio"`
	Avatar    *string `json:"avatar"`
	Interests *string `json:"interests"`
}

// UserSearch - поиск по всем пользователям по подстроке имени или email.
// Запрос передается единственным плоским параметром ?search=
func UserSearch(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	start := time.Now()
	social := services.NewSocialService(db.GetReadOnlyDB(c.Request.Context()))
	users, err := social.SearchUsers(userID, c.Query("search"))
	middleware.RecordSocialQuery("user_search", "gather", time.Since(start), err)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, "users found successfully", gin.H{"users": users})
}

// FriendSearch - поиск по друзьям пользователя, тот же контракт запроса
func FriendSearch(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	start := time.Now()
	social := services.NewSocialService(db.GetReadOnlyDB(c.Request.Context()))
	friends, err := social.SearchFriends(userID, c.Query("search"))
	middleware.RecordSocialQuery("friend_search", "gather", time.Since(start), err)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, "friends found successfully", gin.H{"friends": friends})
}

// UserGet - сводный профиль: пользователь, его события и участие
func UserGet(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "user ID is required")
		return
	}

	start := time.Now()
	social := services.NewSocialService(db.GetReadOnlyDB(c.Request.Context()))
	profile, err := social.GetProfile(id)
	middleware.RecordSocialQuery("profile_get", "gather", time.Since(start), err)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, "user found successfully", gin.H{
		"user":          profile.User,
		"hosted_events": profile.HostedEvents,
		"participation": profile.Participation,
	})
}

// UserUpdate - частичное обновление профиля авторизованного пользователя
func UserUpdate(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	social := services.NewSocialService(db.GetWriteDB(c.Request.Context()))
	user, err := social.UpdateProfile(userID, services.ProfileUpdate{
		FullName:  req.FullName,
		Bio:       req.Bio,
		Avatar:    req.Avatar,
		Interests: req.Interests,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, "user profile updated successfully", gin.H{"user": user})
}
