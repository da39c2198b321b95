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
	"github.com/google/uuid"
)

// SubmissionController handles participant submissions to an active round and
// the organizer's verification workflow over them.
type SubmissionController struct {
	hackathonsStorage    storage.HackathonStorage
	registrationsStorage storage.RegistrationStorage
	leaderboardCache     storage.LeaderboardCache
}

func NewSubmissionController(hackStorage storage.HackathonStorage, regStorage storage.RegistrationStorage, cache storage.LeaderboardCache) *SubmissionController {
	return &SubmissionController{
		hackathonsStorage:    hackStorage,
		registrationsStorage: regStorage,
		leaderboardCache:     cache,
	}
}

func (c *SubmissionController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/hackathons/:id/rounds/:roundId/submissions", transport.AuthMiddleware())

	group.POST("", c.submit)
	group.GET("", c.list)
	group.PUT("/:submissionId/review", c.review)
}

// submit godoc
// @Summary Submit to a round
// @Description Accepts one submission per registered participant while the round is active
// @Tags submissions
// @Accept json
// @Produce json
// @Param id path string true "Hackathon ID"
// @Param roundId path string true "Round ID"
// @Param request body models.SubmissionCreateRequest true "Submission data"
// @Success 200 {object} models.SubmissionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse "Caller is not registered"
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Round not active or duplicate submission"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons/{id}/rounds/{roundId}/submissions [post]
func (c *SubmissionController) submit(g *gin.Context) {
	var req models.SubmissionCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil || req.URL == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "submission url is required"})
		return
	}

	h, round, ok := c.loadRound(g)
	if !ok {
		return
	}

	userID := g.GetString(transport.ContextUserID)
	if _, err := c.registrationsStorage.Get(g.Request.Context(), h.ID, userID); err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			g.JSON(http.StatusForbidden, &models.ErrorResponse{Error: "register for the hackathon before submitting"})
			return
		}
		logging.Log.Errorf("SUBMISSION: failed to check registration: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not verify registration"})
		return
	}

	if round.Status != storage.RoundActive {
		g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "round is not accepting submissions"})
		return
	}

	for i := range round.Submissions {
		if round.Submissions[i].UserID == userID {
			g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "already submitted to this round"})
			return
		}
	}

	sub := storage.Submission{
		ID:          uuid.NewString(),
		UserID:      userID,
		UserName:    g.GetString(transport.ContextUserName),
		URL:         req.URL,
		Notes:       req.Notes,
		Status:      storage.SubmissionSubmitted,
		SubmittedAt: time.Now().UTC(),
	}
	round.Submissions = append(round.Submissions, sub)

	if err := c.save(g, h); err != nil {
		return
	}

	logging.Log.Infof("SUBMISSION: user %s submitted to round %s of hackathon %s", userID, round.ID, h.ID)
	g.JSON(http.StatusOK, models.TransformSubmissionFromStorage(&sub))
}

// list godoc
// @Summary List a round's submissions
// @Tags submissions
// @Produce json
// @Param id path string true "Hackathon ID"
// @Param roundId path string true "Round ID"
// @Success 200 {array} models.SubmissionResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons/{id}/rounds/{roundId}/submissions [get]
func (c *SubmissionController) list(g *gin.Context) {
	h, round, ok := c.loadRound(g)
	if !ok {
		return
	}

	if !isOwner(g, h) {
		g.JSON(http.StatusForbidden, &models.ErrorResponse{Error: "only the organizer can list submissions"})
		return
	}

	responses := make([]models.SubmissionResponse, 0, len(round.Submissions))
	for i := range round.Submissions {
		responses = append(responses, models.TransformSubmissionFromStorage(&round.Submissions[i]))
	}
	g.JSON(http.StatusOK, responses)
}

// review godoc
// @Summary Review a submission
// @Description Marks a submission verified or rejected with a score. The round's evaluation history records the review; the leaderboard cache is invalidated.
// @Tags submissions
// @Accept json
// @Produce json
// @Param id path string true "Hackathon ID"
// @Param roundId path string true "Round ID"
// @Param submissionId path string true "Submission ID"
// @Param request body models.SubmissionReviewRequest true "Review verdict"
// @Success 200 {object} models.SubmissionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons/{id}/rounds/{roundId}/submissions/{submissionId}/review [put]
func (c *SubmissionController) review(g *gin.Context) {
	var req models.SubmissionReviewRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	verdict := storage.SubmissionStatus(req.Status)
	if verdict != storage.SubmissionVerified && verdict != storage.SubmissionRejected {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "status must be verified or rejected"})
		return
	}

	h, round, ok := c.loadRound(g)
	if !ok {
		return
	}

	if !isOwner(g, h) {
		g.JSON(http.StatusForbidden, &models.ErrorResponse{Error: "only the organizer can review submissions"})
		return
	}

	sub := round.SubmissionByID(g.Param("submissionId"))
	if sub == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "submission not found"})
		return
	}

	now := time.Now().UTC()
	sub.Status = verdict
	sub.Score = req.Score
	sub.ReviewedAt = &now
	sub.ReviewedBy = g.GetString(transport.ContextUserID)

	reason := req.Reason
	if reason == "" {
		reason = "submission " + sub.ID + " " + string(verdict)
	}
	round.Evaluation.Current = storage.EvaluationInProgress
	round.Evaluation.History = append(round.Evaluation.History, storage.EvaluationEvent{
		Status:    storage.EvaluationInProgress,
		Timestamp: now,
		Reason:    reason,
	})

	if err := c.save(g, h); err != nil {
		return
	}

	c.leaderboardCache.Invalidate(g.Request.Context(), h.ID)
	logging.Log.Infof("SUBMISSION: %s of round %s reviewed as %s (score %d)", sub.ID, round.ID, verdict, req.Score)
	g.JSON(http.StatusOK, models.TransformSubmissionFromStorage(sub))
}

func (c *SubmissionController) loadRound(g *gin.Context) (*storage.Hackathon, *storage.Round, bool) {
	h, err := c.hackathonsStorage.Get(g.Request.Context(), g.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "hackathon not found"})
			return nil, nil, false
		}
		logging.Log.Errorf("SUBMISSION: failed to get hackathon: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load hackathon"})
		return nil, nil, false
	}

	round := h.RoundByID(g.Param("roundId"))
	if round == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "round not found"})
		return nil, nil, false
	}
	return h, round, true
}

func (c *SubmissionController) save(g *gin.Context, h *storage.Hackathon) error {
	err := c.hackathonsStorage.Save(g.Request.Context(), h)
	if err == nil {
		return nil
	}
	if errors.Is(err, storage.ErrVersionConflict) {
		g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "hackathon was modified concurrently, reload and retry"})
		return err
	}
	logging.Log.Errorf("SUBMISSION: failed to save hackathon %s: %v", h.ID, err)
	g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not save submission"})
	return err
}
