package controllers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/Charan-Crafts/hackathon-platform/api/models"
	"github.com/Charan-Crafts/hackathon-platform/logging"
	"github.com/Charan-Crafts/hackathon-platform/storage"
	"github.com/gin-gonic/gin"
)

// LeaderboardController aggregates verified submission scores per participant
// across all rounds. Results are cached for a short TTL; reviews invalidate
// the cache.
type LeaderboardController struct {
	hackathonsStorage storage.HackathonStorage
	cache             storage.LeaderboardCache
}

func NewLeaderboardController(hackStorage storage.HackathonStorage, cache storage.LeaderboardCache) *LeaderboardController {
	return &LeaderboardController{
		hackathonsStorage: hackStorage,
		cache:             cache,
	}
}

func (c *LeaderboardController) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/api/hackathons/:id/leaderboard", c.get)
}

// get godoc
// @Summary Get a hackathon's leaderboard
// @Tags leaderboard
// @Produce json
// @Param id path string true "Hackathon ID"
// @Success 200 {array} storage.LeaderboardEntry
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons/{id}/leaderboard [get]
func (c *LeaderboardController) get(g *gin.Context) {
	hackathonID := g.Param("id")

	if entries, ok := c.cache.Get(g.Request.Context(), hackathonID); ok {
		g.JSON(http.StatusOK, entries)
		return
	}

	h, err := c.hackathonsStorage.Get(g.Request.Context(), hackathonID)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "hackathon not found"})
			return
		}
		logging.Log.Errorf("LEADERBOARD: failed to get hackathon: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load hackathon"})
		return
	}

	entries := computeLeaderboard(h)
	c.cache.Set(g.Request.Context(), hackathonID, entries)
	g.JSON(http.StatusOK, entries)
}

func computeLeaderboard(h *storage.Hackathon) []storage.LeaderboardEntry {
	byUser := make(map[string]*storage.LeaderboardEntry)
	for i := range h.Rounds {
		for j := range h.Rounds[i].Submissions {
			sub := &h.Rounds[i].Submissions[j]
			if sub.Status != storage.SubmissionVerified {
				continue
			}
			entry, ok := byUser[sub.UserID]
			if !ok {
				entry = &storage.LeaderboardEntry{UserID: sub.UserID, UserName: sub.UserName}
				byUser[sub.UserID] = entry
			}
			entry.Score += sub.Score
			entry.Submissions++
		}
	}

	entries := make([]storage.LeaderboardEntry, 0, len(byUser))
	for _, e := range byUser {
		entries = append(entries, *e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].UserName < entries[j].UserName
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
