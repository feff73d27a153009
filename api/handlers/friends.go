package handlers

import (
	"net/http"

	"gather/db"
	"gather/services"

	"github.com/gin-gonic/gin"
)

type friendRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

// AddFriend - обработчик для отправки заявки в друзья
func AddFriend(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var r friendRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	fs := services.NewFriendService(db.GetWriteDB(c.Request.Context()))
	if err := fs.SendRequest(c.Request.Context(), userID, r.UserID); err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "friend request sent", nil)
}

// AcceptFriend - обработчик для принятия заявки
func AcceptFriend(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var r friendRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	fs := services.NewFriendService(db.GetWriteDB(c.Request.Context()))
	if err := fs.AcceptRequest(c.Request.Context(), userID, r.UserID); err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "friend request accepted", nil)
}

// RejectFriend - обработчик для отклонения заявки
func RejectFriend(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var r friendRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	fs := services.NewFriendService(db.GetWriteDB(c.Request.Context()))
	if err := fs.RejectRequest(c.Request.Context(), userID, r.UserID); err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "friend request rejected", nil)
}

// DeleteFriend - обработчик для удаления дружбы
func DeleteFriend(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var r friendRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	fs := services.NewFriendService(db.GetWriteDB(c.Request.Context()))
	if err := fs.Unfriend(c.Request.Context(), userID, r.UserID); err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "friend deleted", nil)
}

// GetFriends - список друзей авторизованного пользователя
func GetFriends(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	fs := services.NewFriendService(db.GetReadOnlyDB(c.Request.Context()))
	friends, err := fs.ListFriends(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "friends found successfully", gin.H{"friends": friends})
}

// GetPendingRequests - входящие заявки в друзья
func GetPendingRequests(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	fs := services.NewFriendService(db.GetReadOnlyDB(c.Request.Context()))
	requests, err := fs.PendingRequests(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "pending requests found", gin.H{"requests": requests})
}

// GetPendingRequestCount - счетчик входящих заявок (кешируется в Redis)
func GetPendingRequestCount(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	fs := services.NewFriendService(db.GetReadOnlyDB(c.Request.Context()))
	count, err := fs.PendingRequestCount(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "pending request count", gin.H{"count": count})
}
