package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"task_system/internal/config"
	"task_system/internal/domain"
	"task_system/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "router-test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	// Every pooled connection to :memory: would get its own database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Task{}))
	cfg := &config.Config{JWTSecret: testSecret, TokenTTL: 30 * time.Minute}
	return NewRouter(db, cfg)
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerAndToken registers a user and returns its id and access token.
func registerAndToken(t *testing.T, r *gin.Engine, username string) (uint, string) {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/users/", `{"username":"`+username+`","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	require.Equal(t, "bearer", body["token_type"])
	return uint(body["id"].(float64)), body["access_token"].(string)
}

func TestRegisterLoginTaskScenario(t *testing.T) {
	r := newTestRouter(t)

	// Register alice and receive a token for immediate login
	aliceID, aliceToken := registerAndToken(t, r, "alice")

	// Login with the wrong password is rejected
	w := doJSON(r, http.MethodPost, "/token", `{"username":"alice","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Create a task with alice's token; the owner comes from the token
	w = doJSON(r, http.MethodPost, "/tasks/", `{"title":"x"}`, aliceToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	task := decodeBody(t, w)
	assert.Equal(t, float64(aliceID), task["owner_id"])

	// Listing without an Authorization header is rejected
	w = doJSON(r, http.MethodGet, "/tasks/", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterDuplicate(t *testing.T) {
	r := newTestRouter(t)
	registerAndToken(t, r, "alice")

	w := doJSON(r, http.MethodPost, "/users/", `{"username":"alice","password":"other"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginUnknownUserParity(t *testing.T) {
	r := newTestRouter(t)
	registerAndToken(t, r, "alice")

	// Unknown username and wrong password produce the same status
	unknown := doJSON(r, http.MethodPost, "/login", `{"username":"nobody","password":"pw"}`, "")
	wrong := doJSON(r, http.MethodPost, "/login", `{"username":"alice","password":"bad"}`, "")
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
}

func TestLoginAliases(t *testing.T) {
	r := newTestRouter(t)
	registerAndToken(t, r, "alice")

	for _, path := range []string{"/token", "/login"} {
		w := doJSON(r, http.MethodPost, path, `{"username":"alice","password":"pw"}`, "")
		require.Equal(t, http.StatusOK, w.Code, path)
		body := decodeBody(t, w)
		assert.NotEmpty(t, body["access_token"], path)
		assert.Equal(t, "bearer", body["token_type"], path)
	}
}

func TestProfile(t *testing.T) {
	r := newTestRouter(t)
	aliceID, aliceToken := registerAndToken(t, r, "alice")

	w := doJSON(r, http.MethodGet, "/users/me", "", aliceToken)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(aliceID), body["id"])
	assert.Equal(t, "alice", body["username"])

	// The hash never leaves the server
	assert.NotContains(t, w.Body.String(), "hashed_password")
}

func TestExpiredAndTamperedTokens(t *testing.T) {
	r := newTestRouter(t)
	registerAndToken(t, r, "alice")

	expired, err := utils.GenerateJWT("alice", testSecret, -time.Minute)
	require.NoError(t, err)
	w := doJSON(r, http.MethodGet, "/users/me", "", expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	forged, err := utils.GenerateJWT("alice", "some-other-secret", time.Minute)
	require.NoError(t, err)
	w = doJSON(r, http.MethodGet, "/users/me", "", forged)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTaskRoundTripAndPartialUpdate(t *testing.T) {
	r := newTestRouter(t)
	_, token := registerAndToken(t, r, "alice")

	w := doJSON(r, http.MethodPost, "/tasks/", `{"title":"T","description":"D"}`, token)
	require.Equal(t, http.StatusOK, w.Code)
	created := decodeBody(t, w)
	id := strconv.Itoa(int(created["id"].(float64)))

	// Round-trip read
	w = doJSON(r, http.MethodGet, "/tasks/"+id, "", token)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody(t, w)
	assert.Equal(t, "T", got["title"])
	assert.Equal(t, "D", got["description"])

	// Title-only update leaves the description alone
	w = doJSON(r, http.MethodPut, "/tasks/"+id, `{"title":"T2"}`, token)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody(t, w)
	assert.Equal(t, "T2", updated["title"])
	assert.Equal(t, "D", updated["description"])
}

func TestTaskNotVisibleAcrossUsers(t *testing.T) {
	r := newTestRouter(t)
	_, aliceToken := registerAndToken(t, r, "alice")
	_, bobToken := registerAndToken(t, r, "bob")

	w := doJSON(r, http.MethodPost, "/tasks/", `{"title":"hers"}`, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)
	id := strconv.Itoa(int(decodeBody(t, w)["id"].(float64)))

	// Bob's listing is empty
	w = doJSON(r, http.MethodGet, "/tasks/", "", bobToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	// Bob fetching alice's task by id reads as not found
	w = doJSON(r, http.MethodGet, "/tasks/"+id, "", bobToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTaskEmptyTitleRejected(t *testing.T) {
	r := newTestRouter(t)
	_, token := registerAndToken(t, r, "alice")

	w := doJSON(r, http.MethodPost, "/tasks/", `{"title":"","description":"x"}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteTask(t *testing.T) {
	r := newTestRouter(t)
	_, token := registerAndToken(t, r, "alice")

	w := doJSON(r, http.MethodPost, "/tasks/", `{"title":"gone soon"}`, token)
	require.Equal(t, http.StatusOK, w.Code)
	id := strconv.Itoa(int(decodeBody(t, w)["id"].(float64)))

	w = doJSON(r, http.MethodDelete, "/tasks/"+id, "", token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/tasks/"+id, "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUserOwnRecordOnly(t *testing.T) {
	r := newTestRouter(t)
	aliceID, aliceToken := registerAndToken(t, r, "alice")
	bobID, _ := registerAndToken(t, r, "bob")

	// Someone else's record reads as not found
	w := doJSON(r, http.MethodPut, "/users/"+strconv.Itoa(int(bobID)), `{"username":"hijack"}`, aliceToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Own record: username change sticks. The old token's subject no
	// longer resolves after a rename, so this request comes last.
	w = doJSON(r, http.MethodPut, "/users/"+strconv.Itoa(int(aliceID)), `{"username":"alice2"}`, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice2", decodeBody(t, w)["username"])
}

func TestDeleteAccountInvalidatesToken(t *testing.T) {
	r := newTestRouter(t)
	_, aliceToken := registerAndToken(t, r, "alice")

	// Seed a task so the cascade has something to remove
	w := doJSON(r, http.MethodPost, "/tasks/", `{"title":"doomed"}`, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/users/me", "", aliceToken)
	require.Equal(t, http.StatusOK, w.Code)

	// The token is still well-formed but its subject is gone
	w = doJSON(r, http.MethodGet, "/users/me", "", aliceToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The freed username can register again with a clean slate
	_, freshToken := registerAndToken(t, r, "alice")
	w = doJSON(r, http.MethodGet, "/tasks/", "", freshToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestRootWelcome(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(r, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "To-Do List API")
}
