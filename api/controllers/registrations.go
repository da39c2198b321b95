package controllers

import (
	"errors"
	"net/http"

	"github.com/Charan-Crafts/hackathon-platform/api/models"
	"github.com/Charan-Crafts/hackathon-platform/api/transport"
	"github.com/Charan-Crafts/hackathon-platform/logging"
	"github.com/Charan-Crafts/hackathon-platform/storage"
	"github.com/gin-gonic/gin"
)

type RegistrationController struct {
	registrationsStorage storage.RegistrationStorage
	hackathonsStorage    storage.HackathonStorage
}

func NewRegistrationController(regStorage storage.RegistrationStorage, hackStorage storage.HackathonStorage) *RegistrationController {
	return &RegistrationController{
		registrationsStorage: regStorage,
		hackathonsStorage:    hackStorage,
	}
}

func (c *RegistrationController) RegisterRoutes(engine *gin.Engine) {
	engine.POST("/api/hackathons/:id/register", transport.AuthMiddleware(), c.register)
	engine.GET("/api/hackathons/:id/participants", transport.AuthMiddleware(), c.participants)
	engine.GET("/api/registrations/mine", transport.AuthMiddleware(), c.mine)
}

// register godoc
// @Summary Register for a hackathon
// @Description Registers the caller as a participant. Only approved hackathons accept registrations; duplicates are rejected.
// @Tags registrations
// @Accept json
// @Produce json
// @Param id path string true "Hackathon ID"
// @Param request body models.RegistrationRequest true "Registration data"
// @Success 200 {object} models.RegistrationResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Already registered or hackathon not open"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons/{id}/register [post]
func (c *RegistrationController) register(g *gin.Context) {
	var req models.RegistrationRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	h, err := c.hackathonsStorage.Get(g.Request.Context(), g.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "hackathon not found"})
			return
		}
		logging.Log.Errorf("REGISTRATION: failed to get hackathon: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load hackathon"})
		return
	}

	if h.Status != storage.HackathonApproved {
		g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "hackathon is not open for registration"})
		return
	}

	reg := &storage.Registration{
		HackathonID: h.ID,
		UserID:      g.GetString(transport.ContextUserID),
		UserName:    g.GetString(transport.ContextUserName),
		Email:       g.GetString(transport.ContextUserEmail),
		TeamName:    req.TeamName,
	}

	if err := c.registrationsStorage.Create(g.Request.Context(), reg); err != nil {
		if errors.Is(err, storage.ErrItemWithIDAlreadyExists) {
			g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "already registered for this hackathon"})
			return
		}
		logging.Log.Errorf("REGISTRATION: failed to create registration: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not register"})
		return
	}

	logging.Log.Infof("REGISTRATION: user %s registered for hackathon %s", reg.UserID, h.ID)
	g.JSON(http.StatusOK, models.TransformRegistrationFromStorage(reg))
}

// participants godoc
// @Summary List a hackathon's participants
// @Tags registrations
// @Produce json
// @Param id path string true "Hackathon ID"
// @Success 200 {array} models.RegistrationResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons/{id}/participants [get]
func (c *RegistrationController) participants(g *gin.Context) {
	h, err := c.hackathonsStorage.Get(g.Request.Context(), g.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "hackathon not found"})
			return
		}
		logging.Log.Errorf("REGISTRATION: failed to get hackathon: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load hackathon"})
		return
	}

	if !isOwner(g, h) {
		g.JSON(http.StatusForbidden, &models.ErrorResponse{Error: "only the organizer can list participants"})
		return
	}

	regs, err := c.registrationsStorage.GetByHackathon(g.Request.Context(), h.ID)
	if err != nil {
		logging.Log.Errorf("REGISTRATION: failed to list participants: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not list participants"})
		return
	}

	responses := make([]models.RegistrationResponse, 0, len(regs))
	for _, r := range regs {
		responses = append(responses, models.TransformRegistrationFromStorage(r))
	}
	g.JSON(http.StatusOK, responses)
}

// mine godoc
// @Summary List the caller's registrations
// @Tags registrations
// @Produce json
// @Success 200 {array} models.RegistrationResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/registrations/mine [get]
func (c *RegistrationController) mine(g *gin.Context) {
	regs, err := c.registrationsStorage.GetByUser(g.Request.Context(), g.GetString(transport.ContextUserID))
	if err != nil {
		logging.Log.Errorf("REGISTRATION: failed to list registrations: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not list registrations"})
		return
	}

	responses := make([]models.RegistrationResponse, 0, len(regs))
	for _, r := range regs {
		responses = append(responses, models.TransformRegistrationFromStorage(r))
	}
	g.JSON(http.StatusOK, responses)
}
