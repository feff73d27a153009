package handlers

import (
	"net/http"
	"strconv"
	"time"

	"gather/db"
	"gather/services"

	"github.com/gin-gonic/gin"
)

type EventCreateRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
}

type eventRequest struct {
	EventID int64 `json:"event_id" binding:"required"`
}

// CreateEvent - создание события, организатором становится автор запроса
func CreateEvent(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req EventCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	es := services.NewEventService(db.GetWriteDB(c.Request.Context()))
	event, err := es.CreateEvent(c.Request.Context(), userID, req.Title, req.Description, req.Location, req.StartsAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusCreated, "event created successfully", gin.H{"event": event})
}

// GetEvent - событие по идентификатору
func GetEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "event ID is required")
		return
	}

	es := services.NewEventService(db.GetReadOnlyDB(c.Request.Context()))
	event, err := es.GetEvent(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "event found successfully", gin.H{"event": event})
}

// ListEvents - список ближайших событий
func ListEvents(c *gin.Context) {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	es := services.NewEventService(db.GetReadOnlyDB(c.Request.Context()))
	events, err := es.ListEvents(limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "events found successfully", gin.H{"events": events})
}

// JoinEvent - участие в событии
func JoinEvent(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var r eventRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	es := services.NewEventService(db.GetWriteDB(c.Request.Context()))
	if err := es.Join(c.Request.Context(), userID, r.EventID); err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "joined event successfully", nil)
}

// LeaveEvent - отказ от участия
func LeaveEvent(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var r eventRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	es := services.NewEventService(db.GetWriteDB(c.Request.Context()))
	if err := es.Leave(c.Request.Context(), userID, r.EventID); err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "left event successfully", nil)
}

// EventParticipants - публичные профили участников события
func EventParticipants(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "event ID is required")
		return
	}

	es := services.NewEventService(db.GetReadOnlyDB(c.Request.Context()))
	participants, err := es.Participants(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "participants found successfully", gin.H{"participants": participants})
}

// HostedEventCount - счетчик событий пользователя (кешируется в Redis)
func HostedEventCount(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	es := services.NewEventService(db.GetReadOnlyDB(c.Request.Context()))
	count, err := es.CountHostedEvents(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "hosted event count", gin.H{"count": count})
}
