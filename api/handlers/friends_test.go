package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"gather/db"
	"gather/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendLifecycleOverHTTP(t *testing.T) {
	r := setupRouter(t)
	alice := createUser(t, "Alice Smith", "alice@x.com")
	bob := createUser(t, "Bob", "bob@example.com")

	// Заявка alice -> bob
	w, _ := doRequest(t, r, "POST", "/api/v1/friends/add", alice.ID, map[string]int64{"user_id": bob.ID})
	require.Equal(t, http.StatusOK, w.Code)

	// У bob одна входящая заявка
	w, body := doRequest(t, r, "GET", "/api/v1/friends/requests", bob.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	requests := body["requests"].([]interface{})
	require.Len(t, requests, 1)

	w, body = doRequest(t, r, "GET", "/api/v1/friends/requests/count", bob.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["count"])

	// bob принимает, оба видят друг друга в списках друзей
	w, _ = doRequest(t, r, "POST", "/api/v1/friends/accept", bob.ID, map[string]int64{"user_id": alice.ID})
	require.Equal(t, http.StatusOK, w.Code)

	for _, userID := range []int64{alice.ID, bob.ID} {
		w, body = doRequest(t, r, "GET", "/api/v1/friends/list", userID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, body["friends"].([]interface{}), 1)
	}

	// Удаление дружбы
	w, _ = doRequest(t, r, "POST", "/api/v1/friends/delete", alice.ID, map[string]int64{"user_id": bob.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w, body = doRequest(t, r, "GET", "/api/v1/friends/list", alice.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["friends"].([]interface{}))
}

func TestAddFriendSelfOverHTTP(t *testing.T) {
	r := setupRouter(t)
	alice := createUser(t, "Alice Smith", "alice@x.com")

	w, body := doRequest(t, r, "POST", "/api/v1/friends/add", alice.ID, map[string]int64{"user_id": alice.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestRejectFriendOverHTTP(t *testing.T) {
	r := setupRouter(t)
	alice := createUser(t, "Alice Smith", "alice@x.com")
	bob := createUser(t, "Bob", "bob@example.com")

	w, _ := doRequest(t, r, "POST", "/api/v1/friends/add", alice.ID, map[string]int64{"user_id": bob.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(t, r, "POST", "/api/v1/friends/reject", bob.ID, map[string]int64{"user_id": alice.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w, body := doRequest(t, r, "GET", "/api/v1/friends/list", bob.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["friends"].([]interface{}))
}

func TestEventLifecycleOverHTTP(t *testing.T) {
	r := setupRouter(t)
	alice := createUser(t, "Alice Smith", "alice@x.com")
	bob := createUser(t, "Bob", "bob@example.com")

	w, body := doRequest(t, r, "POST", "/api/v1/events/create", alice.ID, map[string]interface{}{
		"title":     "Board games",
		"location":  "downtown",
		"starts_at": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	event := body["event"].(map[string]interface{})
	eventID := int64(event["id"].(float64))

	// bob присоединяется
	w, _ = doRequest(t, r, "POST", "/api/v1/events/join", bob.ID, map[string]int64{"event_id": eventID})
	require.Equal(t, http.StatusOK, w.Code)

	// Повторное участие - ошибка валидации
	w, _ = doRequest(t, r, "POST", "/api/v1/events/join", bob.ID, map[string]int64{"event_id": eventID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = doRequest(t, r, "GET", fmt.Sprintf("/api/v1/events/participants/%d", eventID), alice.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	participants := body["participants"].([]interface{})
	require.Len(t, participants, 1)

	// Участие отражается в сводном профиле bob
	w, body = doRequest(t, r, "GET", fmt.Sprintf("/api/v1/user/get/%d", bob.ID), alice.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, body["participation"])

	// Счетчик событий организатора
	w, body = doRequest(t, r, "GET", "/api/v1/events/hosted/count", alice.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["count"])

	// bob уходит с события
	w, _ = doRequest(t, r, "POST", "/api/v1/events/leave", bob.ID, map[string]int64{"event_id": eventID})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(t, r, "POST", "/api/v1/events/leave", bob.ID, map[string]int64{"event_id": eventID})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJoinUnknownEventOverHTTP(t *testing.T) {
	r := setupRouter(t)
	bob := createUser(t, "Bob", "bob@example.com")

	w, body := doRequest(t, r, "POST", "/api/v1/events/join", bob.ID, map[string]int64{"event_id": 777})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestListEventsOverHTTP(t *testing.T) {
	r := setupRouter(t)
	alice := createUser(t, "Alice Smith", "alice@x.com")

	require.NoError(t, db.ORM.Create(&models.Event{
		HostID: alice.ID, Title: "Picnic", StartsAt: time.Now().Add(time.Hour),
	}).Error)

	w, body := doRequest(t, r, "GET", "/api/v1/events/list", alice.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["events"].([]interface{}), 1)
}
