package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Charan-Crafts/hackathon-platform/api/models"
	"github.com/Charan-Crafts/hackathon-platform/api/transport"
	"github.com/Charan-Crafts/hackathon-platform/logging"
	"github.com/Charan-Crafts/hackathon-platform/storage"
	"github.com/gin-gonic/gin"
)

// RoundController drives the round lifecycle: pending -> active -> completed,
// with at most one active round per hackathon. The invariant is enforced on
// the server: transitions are validated against a fresh read and persisted
// with a version-conditioned write, so two racing starts cannot both land.
type RoundController struct {
	hackathonsStorage storage.HackathonStorage
}

func NewRoundController(s storage.HackathonStorage) *RoundController {
	return &RoundController{hackathonsStorage: s}
}

func (c *RoundController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/hackathons/:id/rounds", transport.AuthMiddleware())

	group.POST("/:roundId/start", c.start)
	group.POST("/:roundId/complete", c.complete)
	group.PUT("/:roundId/status", c.setStatus)
	group.PUT("/:roundId", c.updateDetails)
}

// loadOwned fetches the hackathon and verifies the caller organizes it.
// Writes the error response and returns nil when the caller should stop.
func (c *RoundController) loadOwned(g *gin.Context) *storage.Hackathon {
	h, err := c.hackathonsStorage.Get(g.Request.Context(), g.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "hackathon not found"})
			return nil
		}
		logging.Log.Errorf("ROUND: failed to get hackathon: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load hackathon"})
		return nil
	}

	if !isOwner(g, h) {
		logging.Log.Warnf("ROUND: user %s denied round mutation on hackathon %s", g.GetString(transport.ContextUserID), h.ID)
		g.JSON(http.StatusForbidden, &models.ErrorResponse{Error: "only the organizer can manage rounds"})
		return nil
	}
	return h
}

// start godoc
// @Summary Start a round
// @Description Activates a round. Rejected while any round of the hackathon is active. Reactivating a completed round preserves its submissions and appends to its evaluation history.
// @Tags rounds
// @Produce json
// @Param id path string true "Hackathon ID"
// @Param roundId path string true "Round ID"
// @Success 200 {object} models.HackathonResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Another round is active, or concurrent modification"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons/{id}/rounds/{roundId}/start [post]
func (c *RoundController) start(g *gin.Context) {
	h := c.loadOwned(g)
	if h == nil {
		return
	}

	roundID := g.Param("roundId")
	if err := h.StartRound(roundID, time.Now().UTC()); err != nil {
		c.writeTransitionError(g, err)
		return
	}

	if err := c.saveRounds(g, h); err != nil {
		return
	}

	logging.Log.Infof("ROUND: started round %s of hackathon %s", roundID, h.ID)
	g.JSON(http.StatusOK, models.TransformHackathonFromStorage(h))
}

// complete godoc
// @Summary Complete a round
// @Description Moves an active round to completed. Only an active round can be completed.
// @Tags rounds
// @Produce json
// @Param id path string true "Hackathon ID"
// @Param roundId path string true "Round ID"
// @Success 200 {object} models.HackathonResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons/{id}/rounds/{roundId}/complete [post]
func (c *RoundController) complete(g *gin.Context) {
	h := c.loadOwned(g)
	if h == nil {
		return
	}

	roundID := g.Param("roundId")
	if err := h.CompleteRound(roundID, time.Now().UTC()); err != nil {
		c.writeTransitionError(g, err)
		return
	}

	if err := c.saveRounds(g, h); err != nil {
		return
	}

	logging.Log.Infof("ROUND: completed round %s of hackathon %s", roundID, h.ID)
	g.JSON(http.StatusOK, models.TransformHackathonFromStorage(h))
}

// setStatus godoc
// @Summary Set a round status directly
// @Description Organizer escape hatch: sets any status, bypassing the single-active-round guard. Every override lands in the evaluation history.
// @Tags rounds
// @Accept json
// @Produce json
// @Param id path string true "Hackathon ID"
// @Param roundId path string true "Round ID"
// @Param request body models.RoundStatusRequest true "New status"
// @Success 200 {object} models.HackathonResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons/{id}/rounds/{roundId}/status [put]
func (c *RoundController) setStatus(g *gin.Context) {
	var req models.RoundStatusRequest
	if err := g.ShouldBindJSON(&req); err != nil || req.Status == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "status is required"})
		return
	}

	h := c.loadOwned(g)
	if h == nil {
		return
	}

	roundID := g.Param("roundId")
	if err := h.SetRoundStatus(roundID, storage.RoundStatus(req.Status), time.Now().UTC()); err != nil {
		c.writeTransitionError(g, err)
		return
	}

	if err := c.saveRounds(g, h); err != nil {
		return
	}

	logging.Log.Infof("ROUND: status of round %s in hackathon %s overridden to %s", roundID, h.ID, req.Status)
	g.JSON(http.StatusOK, models.TransformHackathonFromStorage(h))
}

// updateDetails godoc
// @Summary Update a round's descriptive fields
// @Description Merges name, dates, times, link and submission type into the round. Status, submissions and evaluation history are untouched.
// @Tags rounds
// @Accept json
// @Produce json
// @Param id path string true "Hackathon ID"
// @Param roundId path string true "Round ID"
// @Param request body models.RoundDetailsUpdateRequest true "Fields to update"
// @Success 200 {object} models.HackathonResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons/{id}/rounds/{roundId} [put]
func (c *RoundController) updateDetails(g *gin.Context) {
	var req models.RoundDetailsUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}
	if req.SubmissionType != "" {
		if _, ok := models.ValidSubmissionTypes[req.SubmissionType]; !ok {
			g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid submission type: " + req.SubmissionType})
			return
		}
	}

	h := c.loadOwned(g)
	if h == nil {
		return
	}

	round := h.RoundByID(g.Param("roundId"))
	if round == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "round not found"})
		return
	}

	if req.Name != "" {
		round.Name = req.Name
	}
	if req.Type != "" {
		round.Type = req.Type
	}
	if req.Description != "" {
		round.Description = req.Description
	}
	if req.StartDate != nil {
		round.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		round.EndDate = *req.EndDate
	}
	if req.StartTime != "" {
		round.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		round.EndTime = req.EndTime
	}
	if req.PlatformLink != "" {
		round.PlatformLink = req.PlatformLink
	}
	if req.SubmissionType != "" {
		round.SubmissionType = req.SubmissionType
	}
	if req.CustomFields != nil {
		fields := make([]storage.CustomField, 0, len(req.CustomFields))
		for _, f := range req.CustomFields {
			fields = append(fields, f.ToStorage())
		}
		round.CustomFields = fields
	}

	if err := c.saveRounds(g, h); err != nil {
		return
	}

	logging.Log.Infof("ROUND: updated details of round %s in hackathon %s", round.ID, h.ID)
	g.JSON(http.StatusOK, models.TransformHackathonFromStorage(h))
}

func (c *RoundController) writeTransitionError(g *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrRoundNotFound):
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "round not found"})
	case errors.Is(err, storage.ErrActiveRoundExists):
		g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "another round is already active, end it first"})
	case errors.Is(err, storage.ErrRoundNotActive):
		g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "round is not active"})
	case errors.Is(err, storage.ErrInvalidRoundStatus):
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid round status"})
	default:
		logging.Log.Errorf("ROUND: transition failed: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "round transition failed"})
	}
}

func (c *RoundController) saveRounds(g *gin.Context, h *storage.Hackathon) error {
	err := c.hackathonsStorage.Save(g.Request.Context(), h)
	if err == nil {
		return nil
	}
	if errors.Is(err, storage.ErrVersionConflict) {
		g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "hackathon was modified concurrently, reload and retry"})
		return err
	}
	logging.Log.Errorf("ROUND: failed to save hackathon %s: %v", h.ID, err)
	g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not save round changes"})
	return err
}
