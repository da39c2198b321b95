package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	testutils "github.com/Charan-Crafts/hackathon-platform/api/controllers/testing"
	"github.com/Charan-Crafts/hackathon-platform/api/models"
	"github.com/Charan-Crafts/hackathon-platform/api/transport"
	"github.com/Charan-Crafts/hackathon-platform/logging"
	"github.com/Charan-Crafts/hackathon-platform/storage"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthTest(t *testing.T) *gin.Engine {
	t.Helper()
	logging.Log = logrus.New()
	transport.ConfigureAuth("test-secret", time.Hour)

	db := localstackClient(t)
	usersStorage := &storage.DynamoUserStorage{
		Client:    db,
		TableName: testTableUsers,
	}

	t.Cleanup(func() {
		cleanupTable(t, db, testTableUsers)
	})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewAuthController(usersStorage).RegisterRoutes(r)
	return r
}

func registerUser(t *testing.T, router *gin.Engine, email, role string) models.LoginResponse {
	t.Helper()
	w := testutils.PerformRequest(router, http.MethodPost, "/api/auth/register", models.RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Password: "hunter2hunter2",
		Role:     role,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, "Expected 200 registering: %s", w.Body.String())

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRegister(t *testing.T) {
	router := setupAuthTest(t)

	t.Run("Happy path - register returns a usable token", func(t *testing.T) {
		resp := registerUser(t, router, "alice@example.com", storage.RoleParticipant)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "alice@example.com", resp.User.Email)
		assert.Equal(t, storage.RoleParticipant, resp.User.Role)
		assert.NotEmpty(t, resp.User.ID)

		w := testutils.PerformRequest(router, http.MethodGet, "/api/auth/me", nil, testutils.AuthHeaders(resp.Token))
		assert.Equal(t, http.StatusOK, w.Code, "Token from register must authenticate: %s", w.Body.String())
	})

	t.Run("Happy path - email is normalized to lower case", func(t *testing.T) {
		resp := registerUser(t, router, "Bob@Example.COM", storage.RoleOrganizer)
		assert.Equal(t, "bob@example.com", resp.User.Email)
	})

	t.Run("Unhappy path - duplicate email gets 409", func(t *testing.T) {
		registerUser(t, router, "dup@example.com", storage.RoleParticipant)
		w := testutils.PerformRequest(router, http.MethodPost, "/api/auth/register", models.RegisterRequest{
			Name:     "Someone Else",
			Email:    "dup@example.com",
			Password: "hunter2hunter2",
		}, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Unhappy path - short password gets 400", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodPost, "/api/auth/register", models.RegisterRequest{
			Name:     "Shorty",
			Email:    "short@example.com",
			Password: "short",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unhappy path - admin signup is rejected", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodPost, "/api/auth/register", models.RegisterRequest{
			Name:     "Sneaky",
			Email:    "sneaky@example.com",
			Password: "hunter2hunter2",
			Role:     storage.RoleAdmin,
		}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	router := setupAuthTest(t)
	registerUser(t, router, "carol@example.com", storage.RoleParticipant)

	t.Run("Happy path - correct credentials", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodPost, "/api/auth/login", models.LoginRequest{
			Email:    "carol@example.com",
			Password: "hunter2hunter2",
		}, nil)
		require.Equal(t, http.StatusOK, w.Code, "Expected 200 logging in: %s", w.Body.String())

		var resp models.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "carol@example.com", resp.User.Email)
	})

	t.Run("Unhappy path - wrong password gets 401", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodPost, "/api/auth/login", models.LoginRequest{
			Email:    "carol@example.com",
			Password: "not-the-password",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Unhappy path - unknown email gets same 401 as wrong password", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodPost, "/api/auth/login", models.LoginRequest{
			Email:    "nobody@example.com",
			Password: "hunter2hunter2",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "wrong email or password", resp.Error)
	})
}

func TestUpdateMe(t *testing.T) {
	router := setupAuthTest(t)
	account := registerUser(t, router, "dave@example.com", storage.RoleParticipant)

	t.Run("Happy path - change name and password", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodPut, "/api/auth/me", models.UserUpdateRequest{
			Name:     "David",
			Password: "correcthorsebattery",
		}, testutils.AuthHeaders(account.Token))
		require.Equal(t, http.StatusOK, w.Code, "Expected 200 updating profile: %s", w.Body.String())

		var resp models.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "David", resp.Name)

		// Old password must no longer work
		w = testutils.PerformRequest(router, http.MethodPost, "/api/auth/login", models.LoginRequest{
			Email:    "dave@example.com",
			Password: "hunter2hunter2",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = testutils.PerformRequest(router, http.MethodPost, "/api/auth/login", models.LoginRequest{
			Email:    "dave@example.com",
			Password: "correcthorsebattery",
		}, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Unhappy path - no token gets 401", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodPut, "/api/auth/me", models.UserUpdateRequest{Name: "X"}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
