package controllers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/Charan-Crafts/hackathon-platform/api/models"
	"github.com/Charan-Crafts/hackathon-platform/api/transport"
	"github.com/Charan-Crafts/hackathon-platform/logging"
	"github.com/Charan-Crafts/hackathon-platform/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type HackathonController struct {
	hackathonsStorage storage.HackathonStorage
}

func NewHackathonController(s storage.HackathonStorage) *HackathonController {
	return &HackathonController{hackathonsStorage: s}
}

func (c *HackathonController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/hackathons")

	group.GET("", transport.TryAuthMiddleware(), c.list)
	group.GET("/:id", c.get)
	group.POST("", transport.AuthMiddleware(), transport.RoleMiddleware(storage.RoleOrganizer), c.create)
	group.PUT("/:id", transport.AuthMiddleware(), c.update)
	group.DELETE("/:id", transport.AuthMiddleware(), c.delete)
	group.PUT("/:id/status", transport.AuthMiddleware(), transport.RoleMiddleware(storage.RoleAdmin), c.setStatus)
}

// isOwner reports whether the authenticated caller organizes the hackathon.
// Admins count as owners everywhere ownership is checked.
func isOwner(g *gin.Context, h *storage.Hackathon) bool {
	if g.GetString(transport.ContextUserRole) == storage.RoleAdmin {
		return true
	}
	return g.GetString(transport.ContextUserID) == h.OrganizerID
}

// list godoc
// @Summary List hackathons
// @Description Anonymous callers and participants see approved hackathons only; organizers additionally see their own; admins see everything and may filter by status
// @Tags hackathons
// @Produce json
// @Param status query string false "Status filter (admin only)"
// @Success 200 {array} models.HackathonResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons [get]
func (c *HackathonController) list(g *gin.Context) {
	all, err := c.hackathonsStorage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("HACKATHON: failed to list hackathons: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not list hackathons"})
		return
	}

	role := g.GetString(transport.ContextUserRole)
	callerID := g.GetString(transport.ContextUserID)
	statusFilter := g.Query("status")

	visible := make([]*storage.Hackathon, 0, len(all))
	for _, h := range all {
		switch {
		case role == storage.RoleAdmin:
			if statusFilter == "" || string(h.Status) == statusFilter {
				visible = append(visible, h)
			}
		case role == storage.RoleOrganizer && h.OrganizerID == callerID:
			visible = append(visible, h)
		default:
			if h.Status == storage.HackathonApproved {
				visible = append(visible, h)
			}
		}
	}

	// Stable ordering, newest first
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})

	responses := make([]models.HackathonResponse, 0, len(visible))
	for _, h := range visible {
		responses = append(responses, models.TransformHackathonFromStorage(h))
	}
	g.JSON(http.StatusOK, responses)
}

// get godoc
// @Summary Get a hackathon by id
// @Description Returns the full document with derived progress and active-round flag
// @Tags hackathons
// @Produce json
// @Param id path string true "Hackathon ID"
// @Success 200 {object} models.HackathonResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons/{id} [get]
func (c *HackathonController) get(g *gin.Context) {
	h, err := c.hackathonsStorage.Get(g.Request.Context(), g.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "hackathon not found"})
			return
		}
		logging.Log.Errorf("HACKATHON: failed to get hackathon: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load hackathon"})
		return
	}
	g.JSON(http.StatusOK, models.TransformHackathonFromStorage(h))
}

// create godoc
// @Summary Create a hackathon
// @Description Creates a hackathon with its rounds; all rounds start pending and the hackathon awaits admin approval
// @Tags hackathons
// @Accept json
// @Produce json
// @Param request body models.HackathonCreateRequest true "Hackathon data"
// @Success 200 {object} models.HackathonResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons [post]
func (c *HackathonController) create(g *gin.Context) {
	var req models.HackathonCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}
	if req.Title == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "title is required"})
		return
	}

	rounds := make([]storage.Round, 0, len(req.Rounds))
	for _, r := range req.Rounds {
		if r.SubmissionType != "" {
			if _, ok := models.ValidSubmissionTypes[r.SubmissionType]; !ok {
				g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid submission type: " + r.SubmissionType})
				return
			}
		}
		fields := make([]storage.CustomField, 0, len(r.CustomFields))
		for _, f := range r.CustomFields {
			fields = append(fields, f.ToStorage())
		}
		rounds = append(rounds, storage.Round{
			ID:             uuid.NewString(),
			Name:           r.Name,
			Type:           r.Type,
			Description:    r.Description,
			StartDate:      r.StartDate,
			EndDate:        r.EndDate,
			StartTime:      r.StartTime,
			EndTime:        r.EndTime,
			PlatformLink:   r.PlatformLink,
			SubmissionType: r.SubmissionType,
			Status:         storage.RoundPending,
			CustomFields:   fields,
		})
	}

	h := &storage.Hackathon{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Description:   req.Description,
		OrganizerID:   g.GetString(transport.ContextUserID),
		OrganizerName: g.GetString(transport.ContextUserName),
		Status:        storage.HackathonPending,
		LocationType:  req.LocationType,
		Prize:         req.Prize,
		Fee:           req.Fee,
		Rounds:        rounds,
	}

	if err := c.hackathonsStorage.Create(g.Request.Context(), h); err != nil {
		logging.Log.Errorf("HACKATHON: failed to create hackathon: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not create hackathon"})
		return
	}

	logging.Log.Infof("HACKATHON: created %s (%s) with %d rounds", h.Title, h.ID, len(h.Rounds))
	g.JSON(http.StatusOK, models.TransformHackathonFromStorage(h))
}

// update godoc
// @Summary Update a hackathon's descriptive fields
// @Tags hackathons
// @Accept json
// @Produce json
// @Param id path string true "Hackathon ID"
// @Param request body models.HackathonUpdateRequest true "Fields to update"
// @Success 200 {object} models.HackathonResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse "Caller is not the organizer"
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Concurrent modification"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons/{id} [put]
func (c *HackathonController) update(g *gin.Context) {
	var req models.HackathonUpdateRequest
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
		logging.Log.Errorf("HACKATHON: failed to get hackathon: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load hackathon"})
		return
	}

	if !isOwner(g, h) {
		g.JSON(http.StatusForbidden, &models.ErrorResponse{Error: "only the organizer can update this hackathon"})
		return
	}

	if req.Title != "" {
		h.Title = req.Title
	}
	if req.Description != "" {
		h.Description = req.Description
	}
	if req.LocationType != "" {
		h.LocationType = req.LocationType
	}
	if req.Prize != "" {
		h.Prize = req.Prize
	}
	if req.Fee != nil {
		h.Fee = *req.Fee
	}

	if err := c.saveOrConflict(g, h); err != nil {
		return
	}
	g.JSON(http.StatusOK, models.TransformHackathonFromStorage(h))
}

// delete godoc
// @Summary Delete a hackathon
// @Tags hackathons
// @Produce json
// @Param id path string true "Hackathon ID"
// @Success 200 {object} models.MessageResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons/{id} [delete]
func (c *HackathonController) delete(g *gin.Context) {
	h, err := c.hackathonsStorage.Get(g.Request.Context(), g.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "hackathon not found"})
			return
		}
		logging.Log.Errorf("HACKATHON: failed to get hackathon: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load hackathon"})
		return
	}

	if !isOwner(g, h) {
		g.JSON(http.StatusForbidden, &models.ErrorResponse{Error: "only the organizer can delete this hackathon"})
		return
	}

	if err := c.hackathonsStorage.Delete(g.Request.Context(), h.ID); err != nil {
		logging.Log.Errorf("HACKATHON: failed to delete hackathon: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not delete hackathon"})
		return
	}

	logging.Log.Infof("HACKATHON: deleted %s", h.ID)
	g.JSON(http.StatusOK, &models.MessageResponse{Message: "hackathon deleted"})
}

// setStatus godoc
// @Summary Set or toggle the approval status
// @Description With an explicit status sets it; with an empty body toggles between approved and pending
// @Tags hackathons
// @Accept json
// @Produce json
// @Param id path string true "Hackathon ID"
// @Param request body models.HackathonStatusRequest true "New status, may be empty"
// @Success 200 {object} models.HackathonResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons/{id}/status [put]
func (c *HackathonController) setStatus(g *gin.Context) {
	var req models.HackathonStatusRequest
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
		logging.Log.Errorf("HACKATHON: failed to get hackathon: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load hackathon"})
		return
	}

	switch storage.HackathonStatus(req.Status) {
	case "":
		h.ToggleStatus()
	case storage.HackathonPending, storage.HackathonApproved, storage.HackathonRejected:
		h.Status = storage.HackathonStatus(req.Status)
	default:
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid status: " + req.Status})
		return
	}

	if err := c.saveOrConflict(g, h); err != nil {
		return
	}

	logging.Log.Infof("HACKATHON: status of %s is now %s", h.ID, h.Status)
	g.JSON(http.StatusOK, models.TransformHackathonFromStorage(h))
}

// saveOrConflict persists the document and writes the HTTP error response
// itself when the save fails. Callers just return on a non-nil error.
func (c *HackathonController) saveOrConflict(g *gin.Context, h *storage.Hackathon) error {
	err := c.hackathonsStorage.Save(g.Request.Context(), h)
	if err == nil {
		return nil
	}
	if errors.Is(err, storage.ErrVersionConflict) {
		g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "hackathon was modified concurrently, reload and retry"})
		return err
	}
	logging.Log.Errorf("HACKATHON: failed to save hackathon %s: %v", h.ID, err)
	g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not save hackathon"})
	return err
}
