package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gather/api/routes"
	"gather/db"
	"gather/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	err = database.AutoMigrate(
		&models.User{},
		&models.UserTokens{},
		&models.Friend{},
		&models.Event{},
		&models.Participation{},
	)
	require.NoError(t, err)

	// Глобальный хэндл, как в боевом коде; тесты работают с in-memory SQLite
	db.ORM = database

	r := gin.New()
	routes.PublicApi(r)
	return r
}

func createUser(t *testing.T, fullName, email string) models.User {
	user := models.User{
		FullName:     fullName,
		Email:        email,
		Password:     gofakeit.Password(true, true, true, false, false, 12),
		RefreshToken: gofakeit.UUID(),
	}
	require.NoError(t, db.ORM.Create(&user).Error)
	return user
}

func acceptedFriendship(t *testing.T, senderID, receiverID int64) {
	require.NoError(t, db.ORM.Create(&models.Friend{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.FriendStatusAccepted,
		CreatedAt:  time.Now(),
		AcceptedAt: time.Now(),
	}).Error)
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, userID int64, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, path, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req.Header.Set("X-User-ID", fmt.Sprintf("%d", userID))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestUserSearchHandler(t *testing.T) {
	r := setupRouter(t)
	alice := createUser(t, "Alice Smith", "alice@x.com")
	createUser(t, "Bob Alison", "bob@example.com")

	w, body := doRequest(t, r, "GET", "/api/v1/user/search?search=ali", alice.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	users := body["users"].([]interface{})
	require.Len(t, users, 1)

	// Собственная запись не попадает в выдачу, даже если совпадает с запросом
	found := users[0].(map[string]interface{})
	assert.Equal(t, "Bob Alison", found["full_name"])
}

func TestUserSearchEmptyQuery(t *testing.T) {
	r := setupRouter(t)
	alice := createUser(t, "Alice Smith", "alice@x.com")

	w, body := doRequest(t, r, "GET", "/api/v1/user/search?search=++", alice.ID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])

	w, _ = doRequest(t, r, "GET", "/api/v1/user/search", alice.ID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFriendSearchHandler(t *testing.T) {
	r := setupRouter(t)
	alice := createUser(t, "Alice Smith", "alice@x.com")
	bob := createUser(t, "Bob", "bob@example.com")
	createUser(t, "Bobby Stranger", "bobby@example.com")
	acceptedFriendship(t, alice.ID, bob.ID)

	w, body := doRequest(t, r, "GET", "/api/v1/user/search/friends?search=bob", alice.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	friends := body["friends"].([]interface{})
	require.Len(t, friends, 1)
	assert.Equal(t, "Bob", friends[0].(map[string]interface{})["full_name"])
}

func TestFriendSearchEmptyQuery(t *testing.T) {
	r := setupRouter(t)
	alice := createUser(t, "Alice Smith", "alice@x.com")

	w, body := doRequest(t, r, "GET", "/api/v1/user/search/friends?search=", alice.ID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestSearchNeverLeaksSensitiveFields(t *testing.T) {
	r := setupRouter(t)
	alice := createUser(t, "Alice Smith", "alice@x.com")
	bob := createUser(t, "Bob", "bob@example.com")
	acceptedFriendship(t, alice.ID, bob.ID)

	for _, path := range []string{
		"/api/v1/user/search?search=bob",
		"/api/v1/user/search/friends?search=bob",
		fmt.Sprintf("/api/v1/user/get/%d", bob.ID),
	} {
		w, _ := doRequest(t, r, "GET", path, alice.ID, nil)
		require.Equal(t, http.StatusOK, w.Code, path)

		raw := strings.ToLower(w.Body.String())
		assert.NotContains(t, raw, "password", path)
		assert.NotContains(t, raw, "refresh", path)
	}
}

func TestUserGetHandler(t *testing.T) {
	r := setupRouter(t)
	alice := createUser(t, "Alice Smith", "alice@x.com")

	event := models.Event{HostID: alice.ID, Title: "Picnic", StartsAt: time.Now().Add(time.Hour)}
	require.NoError(t, db.ORM.Create(&event).Error)

	w, body := doRequest(t, r, "GET", fmt.Sprintf("/api/v1/user/get/%d", alice.ID), alice.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	user := body["user"].(map[string]interface{})
	assert.Equal(t, "Alice Smith", user["full_name"])
	hosted := body["hosted_events"].([]interface{})
	assert.Len(t, hosted, 1)
	// Участия нет - поле отсутствует, это не ошибка
	assert.Nil(t, body["participation"])
}

func TestUserGetNotFound(t *testing.T) {
	r := setupRouter(t)
	alice := createUser(t, "Alice Smith", "alice@x.com")

	w, body := doRequest(t, r, "GET", "/api/v1/user/get/99999", alice.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestUserGetBadID(t *testing.T) {
	r := setupRouter(t)
	alice := createUser(t, "Alice Smith", "alice@x.com")

	w, _ := doRequest(t, r, "GET", "/api/v1/user/get/abc", alice.ID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserUpdateHandler(t *testing.T) {
	r := setupRouter(t)
	alice := createUser(t, "Alice Smith", "alice@x.com")

	w, body := doRequest(t, r, "POST", "/api/v1/user/update", alice.ID, map[string]string{"bio": "hiking"})
	require.Equal(t, http.StatusOK, w.Code)

	user := body["user"].(map[string]interface{})
	assert.Equal(t, "hiking", user["bio"])
	assert.Equal(t, "Alice Smith", user["full_name"])
}

func TestUserUpdateEmptyPatch(t *testing.T) {
	r := setupRouter(t)
	alice := createUser(t, "Alice Smith", "alice@x.com")

	w, body := doRequest(t, r, "POST", "/api/v1/user/update", alice.ID, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestUnauthorizedWithoutUser(t *testing.T) {
	r := setupRouter(t)

	w, _ := doRequest(t, r, "GET", "/api/v1/user/search?search=abc", 0, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
