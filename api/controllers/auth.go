package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Charan-Crafts/hackathon-platform/api/models"
	"github.com/Charan-Crafts/hackathon-platform/api/transport"
	"github.com/Charan-Crafts/hackathon-platform/logging"
	"github.com/Charan-Crafts/hackathon-platform/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	usersStorage storage.UserStorage
}

func NewAuthController(s storage.UserStorage) *AuthController {
	return &AuthController{usersStorage: s}
}

func (c *AuthController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/auth")

	group.POST("/register", c.register)
	group.POST("/login", c.login)
	group.GET("/me", transport.AuthMiddleware(), c.me)
	group.PUT("/me", transport.AuthMiddleware(), c.updateMe)
}

// register godoc
// @Summary Register a new account
// @Description Creates a participant or organizer account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration data"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Email already registered"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/auth/register [post]
func (c *AuthController) register(g *gin.Context) {
	var req models.RegisterRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Name == "" || len(req.Password) < 8 {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "name, email and a password of at least 8 characters are required"})
		return
	}

	role := req.Role
	if role == "" {
		role = storage.RoleParticipant
	}
	if _, ok := models.ValidSignupRoles[role]; !ok {
		logging.Log.Warnf("AUTH: attempted signup with invalid role: %s", role)
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid role"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logging.Log.Errorf("AUTH: failed to hash password: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not create account"})
		return
	}

	user := &storage.User{
		Email:        req.Email,
		ID:           uuid.NewString(),
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := c.usersStorage.Create(g.Request.Context(), user); err != nil {
		if errors.Is(err, storage.ErrItemWithIDAlreadyExists) {
			g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "email already registered"})
			return
		}
		logging.Log.Errorf("AUTH: failed to create user: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not create account"})
		return
	}

	token, err := transport.GenerateToken(user)
	if err != nil {
		logging.Log.Errorf("AUTH: failed to generate token: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not create session"})
		return
	}

	logging.Log.Infof("AUTH: registered user %s with role %s", user.Email, user.Role)
	g.JSON(http.StatusOK, &models.LoginResponse{Token: token, User: models.TransformUserFromStorage(user)})
}

// login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse "Wrong email or password"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/auth/login [post]
func (c *AuthController) login(g *gin.Context) {
	var req models.LoginRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	user, err := c.usersStorage.Get(g.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			g.JSON(http.StatusUnauthorized, &models.ErrorResponse{Error: "wrong email or password"})
			return
		}
		logging.Log.Errorf("AUTH: failed to load user: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not log in"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logging.Log.Warnf("AUTH: failed login attempt for %s", user.Email)
		g.JSON(http.StatusUnauthorized, &models.ErrorResponse{Error: "wrong email or password"})
		return
	}

	token, err := transport.GenerateToken(user)
	if err != nil {
		logging.Log.Errorf("AUTH: failed to generate token: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not create session"})
		return
	}

	g.JSON(http.StatusOK, &models.LoginResponse{Token: token, User: models.TransformUserFromStorage(user)})
}

// me godoc
// @Summary Get the current account
// @Tags auth
// @Produce json
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/auth/me [get]
func (c *AuthController) me(g *gin.Context) {
	user, err := c.usersStorage.Get(g.Request.Context(), g.GetString(transport.ContextUserEmail))
	if err != nil {
		logging.Log.Errorf("AUTH: failed to load current user: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load account"})
		return
	}
	g.JSON(http.StatusOK, models.TransformUserFromStorage(user))
}

// updateMe godoc
// @Summary Update the current account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.UserUpdateRequest true "Fields to update"
// @Success 200 {object} models.UserResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/auth/me [put]
func (c *AuthController) updateMe(g *gin.Context) {
	var req models.UserUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	user, err := c.usersStorage.Get(g.Request.Context(), g.GetString(transport.ContextUserEmail))
	if err != nil {
		logging.Log.Errorf("AUTH: failed to load current user: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load account"})
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Password != "" {
		if len(req.Password) < 8 {
			g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "password must be at least 8 characters"})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logging.Log.Errorf("AUTH: failed to hash password: %v", err)
			g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not update account"})
			return
		}
		user.PasswordHash = string(hash)
	}

	if err := c.usersStorage.Update(g.Request.Context(), user); err != nil {
		logging.Log.Errorf("AUTH: failed to update user: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not update account"})
		return
	}

	logging.Log.Infof("AUTH: updated profile for %s", user.Email)
	g.JSON(http.StatusOK, models.TransformUserFromStorage(user))
}
